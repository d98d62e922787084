// Package model provides the data structures shared by the workflow packages.
// It defines the tasks and task groups of a workflow graph, their resource
// requirements, and the hooks a workflow option implements.
package model
