package workflow

import "github.com/pkg/errors"

// Each turns a sequence of files into a batch of one-element tuples.
func Each(files []string) [][]string {
	batch := make([][]string, len(files))
	for i, file := range files {
		batch[i] = []string{file}
	}

	return batch
}

// Zip pairs the i-th element of every sequence into one tuple. All sequences
// must have the same length.
func Zip(seqs ...[]string) ([][]string, error) {
	if len(seqs) == 0 {
		return nil, nil
	}

	size := len(seqs[0])
	for i, seq := range seqs[1:] {
		if len(seq) != size {
			return nil, errors.Wrapf(ErrBatchLengthMismatch, "sequence %d has %d item(s), sequence 0 has %d", i+1, len(seq), size)
		}
	}

	batch := make([][]string, size)
	for i := 0; i < size; i++ {
		tuple := make([]string, len(seqs))
		for j, seq := range seqs {
			tuple[j] = seq[i]
		}
		batch[i] = tuple
	}

	return batch, nil
}

// Concat appends batches one after the other.
func Concat(batches ...[][]string) [][]string {
	var out [][]string
	for _, batch := range batches {
		out = append(out, batch...)
	}

	return out
}

// Column returns the idx-th element of every tuple.
func Column(batch [][]string, idx int) ([]string, error) {
	out := make([]string, len(batch))
	for i, tuple := range batch {
		if idx < 0 || idx >= len(tuple) {
			return nil, errors.Wrapf(ErrInvalidInput, "tuple %d has no element %d", i, idx)
		}
		out[i] = tuple[idx]
	}

	return out, nil
}
