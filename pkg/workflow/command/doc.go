// Package command parses and renders command templates.
//
// A template is a command line containing zero-indexed placeholders of three
// kinds: [depends[i]], [targets[i]] and [args[i]]. Templates are validated
// against the lengths of a task's sequences when the task is constructed, so a
// reference that cannot resolve fails the pipeline before any tool runs.
// The templater performs no looping: options with a variable number of values
// must be flattened by the caller into a single argument.
package command
