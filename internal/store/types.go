package store

import "time"

// Dataset describes a stored transaction dataset.
type Dataset struct {
	ID          int64
	Name        string
	Format      string // dataset.FormatText or dataset.FormatItems
	CreatedAt   time.Time
	RecordCount int
}

// Run records the parameters and outcome of one stored mining run.
type Run struct {
	ID            int64
	DatasetID     int64
	DatasetName   string
	CreatedAt     time.Time
	MinSupport    float64
	MinConfidence float64
	MinSize       int
	MaxSize       int
	RuleCount     int
}
