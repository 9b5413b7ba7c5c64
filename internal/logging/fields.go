package logging

// Structured field names shared by all commands.
const (
	FieldCommand    = "command"
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// check, layout and render.
	FieldJobs     = "jobs"
	FieldFormat   = "format"
	FieldMeasurer = "measurer"
	FieldViewport = "viewport"
	FieldEvent    = "event"

	// Run statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithIssues = "files_with_issues"
	FieldBlocksChecked   = "blocks_checked"
	FieldFindingsTotal   = "findings_total"
	FieldNodes           = "nodes"

	// Build info.
	FieldVersion  = "version"
	FieldCommit   = "commit"
	FieldBuilt    = "built"
	FieldGo       = "go"
	FieldPlatform = "platform"

	// lsp.
	FieldURI       = "uri"
	FieldMethod    = "method"
	FieldDocuments = "documents"
)
