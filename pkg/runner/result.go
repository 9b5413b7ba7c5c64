package runner

// FileOutcome is the check result for one discovered file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result is nil when Error is set.
	Result *CheckResult

	// Error is set if the file could not be processed.
	Error error
}

// Findings returns the outcome's findings, or nil on error.
func (o FileOutcome) Findings() []Finding {
	if o.Result == nil {
		return nil
	}
	return o.Result.Findings
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesErrored is the number of files that could not be processed.
	FilesErrored int

	// BlocksChecked is the number of smf sources checked across all files.
	BlocksChecked int

	// FindingsTotal is the total number of findings across all files.
	FindingsTotal int

	// FindingsBySeverity maps severity names to counts.
	FindingsBySeverity map[string]int

	// FilesWithIssues is the number of files with at least one finding.
	FilesWithIssues int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any finding has error severity or any file
// could not be processed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FindingsBySeverity[SeverityError] > 0 || r.Stats.FilesErrored > 0
}

// HasIssues reports whether any findings were produced.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.FindingsTotal > 0
}

func newStats() Stats {
	return Stats{FindingsBySeverity: make(map[string]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.BlocksChecked += len(outcome.Result.Blocks)

	findings := outcome.Result.Findings
	r.Stats.FindingsTotal += len(findings)
	if len(findings) > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, finding := range findings {
		severity := finding.Severity
		if severity == "" {
			severity = SeverityWarning
		}
		r.Stats.FindingsBySeverity[severity]++
	}
}
