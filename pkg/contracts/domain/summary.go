package domain

// TransformStats counts how many non-empty raw values a column lost during
// parsing. A non-zero BecameEmpty surfaces silent data loss.
type TransformStats struct {
	BeforeNonEmpty int `json:"before_non_empty"`
	AfterNonEmpty  int `json:"after_non_empty"`
	BecameEmpty    int `json:"became_empty"`
}

// RunSummary is the machine-readable record of one pipeline invocation.
// Created once per run, written once, never mutated afterwards.
type RunSummary struct {
	RunID      string   `json:"run_id"`
	StartedAt  string   `json:"started_at"`
	InputFile  string   `json:"input_file"`
	OutputFile string   `json:"output_file"`
	Rows       int      `json:"rows"`
	Cols       int      `json:"cols"`
	NumErrors  int      `json:"num_errors"`
	NumWarn    int      `json:"num_warn"`
	Notes      RunNotes `json:"notes"`
}

// RunNotes carries auxiliary per-run observations keyed by column name.
type RunNotes struct {
	TransformStats map[string]TransformStats `json:"transform_stats"`
}
