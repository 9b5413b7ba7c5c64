package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gosmf/internal/ui/pretty"
	"github.com/yaklabco/gosmf/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:     10,
		BlocksChecked:      12,
		FilesWithIssues:    3,
		FindingsTotal:      15,
		FindingsBySeverity: map[string]int{"error": 5, "warning": 10},
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files checked:     10")
	assert.Contains(t, result, "Sources checked:   12")
	assert.Contains(t, result, "Files with issues: 3")
	assert.Contains(t, result, "Total issues:      15")
	assert.Contains(t, result, "Errors:          5")
	assert.Contains(t, result, "Warnings:        10")
	assert.Contains(t, result, "Check failed with errors")
}

func TestFormatSummary_Status(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 5, FindingsBySeverity: map[string]int{}},
			want:  "Check passed",
		},
		{
			name:  "warnings",
			stats: runner.Stats{FindingsTotal: 1, FindingsBySeverity: map[string]int{"warning": 1}},
			want:  "Check completed with warnings",
		},
		{
			name:  "unreadable",
			stats: runner.Stats{FilesErrored: 1, FindingsBySeverity: map[string]int{}},
			want:  "Check failed with errors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, styles.FormatSummary(tt.stats), tt.want)
		})
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "no issues",
			stats: runner.Stats{FilesProcessed: 1, BlocksChecked: 2},
			want:  "No issues found (1 file, 2 sources checked)\n",
		},
		{
			name: "mixed",
			stats: runner.Stats{
				FindingsTotal:      3,
				FilesWithIssues:    2,
				FindingsBySeverity: map[string]int{"error": 2, "warning": 1},
			},
			want: "3 issues (2 errors, 1 warning) in 2 files\n",
		},
		{
			name: "single with unreadable",
			stats: runner.Stats{
				FindingsTotal:      1,
				FilesWithIssues:    1,
				FilesErrored:       1,
				FindingsBySeverity: map[string]int{"error": 1},
			},
			want: "1 issue (1 error) in 1 file, 1 unreadable\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}
