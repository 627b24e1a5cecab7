package annotate

import (
	"context"
	"errors"
)

var (
	// ErrExhausted is returned by Session.NextSentence when the corpus is done.
	ErrExhausted = errors.New("no more sentences")
	// ErrSessionInactive is returned by a closed session.
	ErrSessionInactive = errors.New("session is not active")
)

// Unlabeled marks a word without a label in a group.
const Unlabeled = "-"

// Row is one word with one label per configured group, in group order.
type Row struct {
	Word   string
	Labels []string
}

// Session supplies sentences and persists finished annotations.
type Session interface {
	NextSentence(ctx context.Context) (string, error)
	SaveAnnotation(ctx context.Context, rows []Row) error
	Close() error
}
