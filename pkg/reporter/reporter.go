// Package reporter writes check results in human and machine formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gosmf/pkg/runner"
)

// Reporter writes one check run.
type Reporter interface {
	// Report writes result and returns the number of findings written.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New returns the Reporter for opts.Format, writing to opts.Writer or
// stdout.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	switch opts.Format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format %q; valid formats: %s", opts.Format, FormatList())
	}
}
