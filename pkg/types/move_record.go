package types

// Outcome classifies what happened to a single file during one phase.
type Outcome string

const (
	// Moved means the file was relocated to its destination.
	Moved Outcome = "moved"
	// SkippedDuplicate means identical content already exists at the destination.
	SkippedDuplicate Outcome = "skipped_duplicate"
	// SkippedUnclassified means the file's camera model could not be determined
	// or mapped; the file stays at its original path for manual handling.
	SkippedUnclassified Outcome = "skipped_unclassified"
	// Error means the move was attempted but failed.
	Error Outcome = "error"
)

// Phase names the pipeline phase that produced a record.
type Phase string

const (
	PhaseModel Phase = "model"
	PhaseDate  Phase = "date"
)

// MoveRecord holds the outcome of processing a single file in one phase.
// Records are immutable after creation and are only consumed by reporting.
type MoveRecord struct {
	SourcePath      string  `json:"source_path"`
	DestinationPath string  `json:"destination_path,omitempty"` // empty unless Moved
	Outcome         Outcome `json:"outcome"`
	Phase           Phase   `json:"phase"`
	SizeBytes       int64   `json:"size_bytes"`
	Err             error   `json:"-"`
}
