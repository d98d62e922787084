package workflow

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentStats = 16

// CheckInputs verifies that every root input of the workflow exists. All
// missing files are reported in one ErrMissingUpstreamOutput error.
func (w *Workflow) CheckInputs(ctx context.Context) error {
	inputs := w.Inputs()

	var (
		mu      sync.Mutex
		missing []string
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentStats)
	for _, input := range inputs {
		input := input
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			_, err := os.Stat(input)
			switch {
			case err == nil:
				return nil
			case errors.Is(err, os.ErrNotExist):
				mu.Lock()
				missing = append(missing, input)
				mu.Unlock()

				return nil
			default:
				return errors.Wrapf(err, "unable to stat %q", input)
			}
		})
	}

	err := g.Wait()
	if err != nil {
		return errors.Wrap(err, "unable to check inputs")
	}

	if len(missing) > 0 {
		sort.Strings(missing)

		return errors.Wrapf(ErrMissingUpstreamOutput, "missing input(s): %s", strings.Join(missing, ", "))
	}

	w.logger.Debug("Inputs checked.", "inputs", len(inputs))

	return nil
}
