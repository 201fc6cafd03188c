package logging

// Structured logging keys shared by the build commands.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Build settings.
	FieldSource      = "source"
	FieldPagesDir    = "pages_dir"
	FieldCategory    = "category"
	FieldFrontMatter = "front_matter"
	FieldDryRun      = "dry_run"
	FieldJobs        = "jobs"

	// Per-page details.
	FieldURL      = "url"
	FieldHeadings = "headings"
	FieldWritten  = "written"
	FieldArtifact = "artifact"
	FieldBytes    = "bytes"

	// Run statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWritten    = "files_written"
	FieldFilesErrored    = "files_errored"
	FieldDuration        = "duration"

	// Version.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
