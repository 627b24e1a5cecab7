// Package sentence holds the tokenized sentence under annotation and the
// per-word, per-group label assignments.
package sentence

import (
	"errors"
	"maps"
)

var ErrEmpty = errors.New("sentence has no tokens")

// Word is an immutable token with mutable label assignments keyed by group.
type Word struct {
	text   string
	labels map[string]string
}

func NewWord(text string) *Word {
	return &Word{text: text, labels: make(map[string]string)}
}

func (w *Word) Text() string { return w.text }

// Label returns the label assigned in group, if any.
func (w *Word) Label(group string) (string, bool) {
	l, ok := w.labels[group]
	return l, ok
}

func (w *Word) SetLabel(group, name string) { w.labels[group] = name }

// ClearLabels removes the assignment of every group.
func (w *Word) ClearLabels() { clear(w.labels) }

// Labels returns a copy of the assignments.
func (w *Word) Labels() map[string]string { return maps.Clone(w.labels) }

// Sentence is an index-stable sequence of words.
type Sentence struct {
	text  string
	words []*Word
}

// New tokenizes text once.
func New(text string) (*Sentence, error) {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil, ErrEmpty
	}
	words := make([]*Word, len(tokens))
	for i, tok := range tokens {
		words[i] = NewWord(tok)
	}
	return &Sentence{text: text, words: words}, nil
}

func (s *Sentence) Text() string { return s.text }

func (s *Sentence) Len() int { return len(s.words) }

func (s *Sentence) Word(i int) *Word { return s.words[i] }

// Words returns the words in [start, end], both inclusive.
func (s *Sentence) Words(start, end int) []*Word {
	return s.words[start : end+1]
}

// All returns every word in order.
func (s *Sentence) All() []*Word {
	return s.words
}
