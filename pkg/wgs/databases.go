package wgs

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-workflow/pkg/workflow"
)

// DBShape tells how many reference databases quality control filters against.
type DBShape int

const (
	NoDatabases DBShape = iota
	OneDatabase
	ManyDatabases
)

func (s DBShape) String() string {
	switch s {
	case NoDatabases:
		return "none"
	case OneDatabase:
		return "one"
	case ManyDatabases:
		return "many"
	default:
		return "unknown"
	}
}

// ReferenceDBs is the set of kneaddata reference databases. The zero value
// holds no database.
type ReferenceDBs struct {
	shape DBShape
	paths []string
}

// Databases builds the set from paths, in order. Repeated paths are kept.
func Databases(paths ...string) ReferenceDBs {
	shape := ManyDatabases
	switch len(paths) {
	case 0:
		return ReferenceDBs{}
	case 1:
		shape = OneDatabase
	}

	return ReferenceDBs{shape: shape, paths: append([]string(nil), paths...)}
}

func (r ReferenceDBs) Shape() DBShape { return r.shape }

func (r ReferenceDBs) Paths() []string { return append([]string(nil), r.paths...) }

func (r ReferenceDBs) validate() error {
	for i, path := range r.paths {
		if strings.TrimSpace(path) == "" {
			return errors.Wrapf(workflow.ErrInvalidInput, "database %d is empty", i)
		}
	}

	return nil
}

const referenceDBFlag = " --reference-db "

// Flag renders one " --reference-db <path>" clause per database, or nothing.
func (r ReferenceDBs) Flag() string {
	switch r.shape {
	case OneDatabase:
		return referenceDBFlag + r.paths[0]
	case ManyDatabases:
		return referenceDBFlag + strings.Join(r.paths, referenceDBFlag)
	default:
		return ""
	}
}
