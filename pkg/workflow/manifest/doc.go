// Package manifest exports a workflow as a YAML document an execution engine
// can schedule from: every task with its rendered command, its files, its
// resources and the tasks it must wait for.
package manifest
