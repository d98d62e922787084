// Package measure sums the resources a workflow reserves on the grid, per
// task group.
package measure
