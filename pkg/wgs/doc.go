// Package wgs declares the whole genome shotgun stages: quality control with
// kneaddata, taxonomic profiling with metaphlan2 and functional profiling with
// humann2.
//
// Stage functions only name files and register tasks on a
// workflow.Collaborator. Each stage consumes the targets declared by the
// previous one, unmodified, so the collaborator can order the tasks and skip
// those whose outputs are up to date.
package wgs
