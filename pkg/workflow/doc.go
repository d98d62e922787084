// Package workflow builds static task graphs over files.
//
// A Workflow names output files, registers single tasks and task groups, and
// links a task to the tasks producing its dependencies. Each task carries a
// command template that is checked against its own dependencies, targets and
// arguments when it is added, so a malformed pipeline fails before anything
// runs. Running the tasks is left to an external executor, which can read the
// graph through Tasks, Edges or the manifest package.
package workflow
