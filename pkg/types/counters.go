package types

// FolderTally accumulates per-destination counts.
type FolderTally struct {
	Files int   `json:"files"`
	Bytes int64 `json:"bytes"`
}

// Counters aggregates MoveRecords for a whole run. Only the pipeline
// engine mutates them, monotonically; reporting reads them.
type Counters struct {
	Processed int `json:"processed"`

	ByOutcome map[Outcome]int `json:"by_outcome"`
	// ByFolder is keyed by canonical folder (model phase) or
	// "<folder>/<YYYY.MM>" (date phase) and counts moved files only.
	ByFolder map[string]*FolderTally `json:"by_folder"`

	BytesMoved int64 `json:"bytes_moved"`
}

// NewCounters returns an empty, ready-to-use Counters value.
func NewCounters() *Counters {
	return &Counters{
		ByOutcome: make(map[Outcome]int),
		ByFolder:  make(map[string]*FolderTally),
	}
}

// Record folds a single MoveRecord into the totals.
func (c *Counters) Record(rec MoveRecord, folderKey string) {
	c.Processed++
	c.ByOutcome[rec.Outcome]++
	if rec.Outcome != Moved {
		return
	}
	c.BytesMoved += rec.SizeBytes
	if folderKey == "" {
		return
	}
	tally := c.ByFolder[folderKey]
	if tally == nil {
		tally = &FolderTally{}
		c.ByFolder[folderKey] = tally
	}
	tally.Files++
	tally.Bytes += rec.SizeBytes
}

// Count returns the number of records with the given outcome.
func (c *Counters) Count(o Outcome) int {
	return c.ByOutcome[o]
}
