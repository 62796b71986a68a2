package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jfim/bitio/codec"
)

// makeJobs maps the command arguments to codec jobs. Without outDir the
// arguments are exactly one input and one output.
func makeJobs(args []string, outDir, ext string) ([]codec.Job, error) {
	if outDir == "" {
		if len(args) != 2 {
			return nil, fmt.Errorf("expected an input and an output file, given %d arguments", len(args))
		}
		return []codec.Job{{Input: args[0], Output: args[1]}}, nil
	}

	jobs := make([]codec.Job, 0, len(args))
	outputs := make(map[string]string, len(args))
	for _, input := range args {
		base := filepath.Base(input)
		output := filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+ext)
		if prev, ok := outputs[output]; ok {
			return nil, fmt.Errorf("inputs %v and %v map to the same output %v", prev, input, output)
		}
		outputs[output] = input
		jobs = append(jobs, codec.Job{Input: input, Output: output})
	}

	return jobs, nil
}
