// Package drawer renders a workflow task graph as Graphviz DOT.
package drawer
