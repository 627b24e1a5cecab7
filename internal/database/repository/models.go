package repository

import "time"

// Run represents an annotation run over one corpus file.
type Run struct {
	ID            string
	Name          string
	SentencePath  string
	OutputDir     string
	CurrentSentID int
	FinishedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Annotation represents a saved sentence annotation.
type Annotation struct {
	RunID   string
	SentID  int
	Body    string
	SavedAt time.Time
}

// RunProgress summarises a run for status listings.
type RunProgress struct {
	Run
	Saved int
}
