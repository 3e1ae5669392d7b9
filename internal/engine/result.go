package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joshua23/animation-Build-hub/internal/diag"
)

// Format is the output format recorded in every Result.
const Format = "lottie"

// Structure summarises what the classifier found in a document.
type Structure struct {
	IsFlat     bool   `json:"is_flat" yaml:"is_flat"`
	Groups     int    `json:"groups" yaml:"groups"`
	Paths      int    `json:"paths" yaml:"paths"`
	Shapes     int    `json:"shapes" yaml:"shapes"`
	Dimensions string `json:"dimensions" yaml:"dimensions"`
}

// Result is the outcome of converting one document. Document-level
// failures are reported here rather than returned as errors.
type Result struct {
	Success     bool              `json:"success" yaml:"success"`
	InputFile   string            `json:"input_file" yaml:"input_file"`
	OutputFiles []string          `json:"output_files" yaml:"output_files"`
	Format      string            `json:"format" yaml:"format"`
	Messages    []string          `json:"messages" yaml:"messages"`
	Diagnostics []diag.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Structure   *Structure        `json:"structure_info,omitempty" yaml:"structure_info,omitempty"`

	err error
}

func newResult(input string) *Result {
	return &Result{
		InputFile:   input,
		OutputFiles: []string{},
		Format:      Format,
		Messages:    []string{},
	}
}

// Err returns the document-level failure, if any.
func (r *Result) Err() error { return r.err }

func (r *Result) fail(err error) *Result {
	r.Success = false
	r.err = err
	r.Messages = append(r.Messages, "error: "+err.Error())
	return r
}

func (r *Result) addf(format string, args ...any) {
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

// BatchResult is the outcome of converting a directory.
type BatchResult struct {
	Success   bool      `json:"success" yaml:"success"`
	Total     int       `json:"total_files" yaml:"total_files"`
	Processed int       `json:"processed_files" yaml:"processed_files"`
	Failed    int       `json:"failed_files" yaml:"failed_files"`
	InputDir  string    `json:"input_dir" yaml:"input_dir"`
	OutputDir string    `json:"output_dir" yaml:"output_dir"`
	RunID     string    `json:"run_id" yaml:"run_id"`
	Results   []*Result `json:"results" yaml:"results"`
}

func (b *BatchResult) tally() {
	b.Processed, b.Failed = 0, 0
	for _, r := range b.Results {
		if r.Success {
			b.Processed++
		} else {
			b.Failed++
		}
	}
	b.Total = len(b.Results)
	b.Success = b.Failed == 0
}

// FailedResults returns the results that did not succeed, in input order.
func (b *BatchResult) FailedResults() []*Result {
	var out []*Result
	for _, r := range b.Results {
		if !r.Success {
			out = append(out, r)
		}
	}
	return out
}

// WriteReport writes v, a Result or BatchResult, as YAML.
func WriteReport(v any, path string) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return diag.Wrap(diag.SerializationError, path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return diag.Wrap(diag.SerializationError, path, err)
	}
	return nil
}
