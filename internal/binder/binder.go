// Package binder builds the command trie from configuration and exposes it
// as a typed view over operations.
package binder

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/spantag/internal/config"
	"github.com/jask/spantag/internal/op"
	"github.com/jask/spantag/internal/trie"
)

var (
	ErrAmbiguous   = errors.New("command is not complete")
	ErrReservedKey = errors.New("key is reserved")
)

// QuitKey always quits the annotator and cannot be bound.
const QuitKey = "ctrl+c"

// UnknownOperatorError is returned when configuration binds keys to a name
// that is not an operation.
type UnknownOperatorError struct {
	Name       string
	Suggestion string
}

func (e *UnknownOperatorError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("invalid operator name %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("invalid operator name %q", e.Name)
}

// Binding is one registered key sequence.
type Binding struct {
	Keys      []string
	Operation op.Operation
}

// Binder is not safe for concurrent use.
type Binder struct {
	trie     *trie.Trie[string, op.Operation]
	bindings []Binding
}

// New registers label shortcuts group by group, then operators in their
// canonical order.
func New(groups []config.LabelGroup, keys map[string]config.KeySeq) (*Binder, error) {
	b := &Binder{trie: trie.New[string, op.Operation]()}

	for _, g := range groups {
		for _, e := range g.Entries {
			if err := b.register([]string{e.Key}, op.Label(g.Group, e.Name)); err != nil {
				return nil, err
			}
		}
	}

	byKind := make(map[op.Kind]config.KeySeq, len(keys))
	names := make([]string, 0, len(keys))
	for name := range keys {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		kind, ok := op.ParseOperator(name)
		if !ok {
			return nil, &UnknownOperatorError{Name: name, Suggestion: suggest(name)}
		}
		byKind[kind] = keys[name]
	}
	for _, kind := range op.Operators() {
		seq, ok := byKind[kind]
		if !ok {
			continue
		}
		if err := b.register(seq, op.Of(kind)); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Binder) register(seq []string, o op.Operation) error {
	norm := make([]string, len(seq))
	for i, k := range seq {
		norm[i] = NormalizeKey(k)
		if norm[i] == QuitKey {
			return fmt.Errorf("bind %s: %q: %w", o, norm[i], ErrReservedKey)
		}
	}
	if err := b.trie.Register(norm, o); err != nil {
		return fmt.Errorf("bind %s: %w", o, err)
	}
	b.bindings = append(b.bindings, Binding{Keys: norm, Operation: o})
	return nil
}

// suggest returns the closest operator name when it is near enough to be a typo.
func suggest(name string) string {
	best, bestDist := "", -1
	lower := strings.ToLower(name)
	for _, k := range op.Operators() {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(k.String()))
		if bestDist < 0 || d < bestDist {
			best, bestDist = k.String(), d
		}
	}
	if bestDist > len(best)/3 {
		return ""
	}
	return best
}

// Feed advances the automaton by key. An invalid key leaves the pending
// sequence untouched; the caller decides whether to reset.
func (b *Binder) Feed(key string) error {
	return b.trie.Step(key)
}

func (b *Binder) Reset() { b.trie.Reset() }

// Pending returns the keys consumed since the last reset.
func (b *Binder) Pending() []string { return b.trie.Path() }

func (b *Binder) ValidNext() []string { return b.trie.ValidNext() }

// Reachable returns every operation that can still complete from the current position.
func (b *Binder) Reachable() []op.Operation {
	matches := b.trie.MatchingPaths()
	out := make([]op.Operation, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Payload)
	}
	return out
}

// CanCommit reports whether exactly one operation is reachable.
func (b *Binder) CanCommit() bool {
	return len(b.trie.MatchingPaths()) == 1
}

// Commit returns the single reachable operation. The caller resets afterwards.
func (b *Binder) Commit() (op.Operation, error) {
	ops := b.Reachable()
	if len(ops) != 1 {
		return op.Operation{}, fmt.Errorf("%w: %d operations reachable", ErrAmbiguous, len(ops))
	}
	return ops[0], nil
}

// Bindings returns registered bindings in registration order.
func (b *Binder) Bindings() []Binding {
	out := make([]Binding, len(b.bindings))
	copy(out, b.bindings)
	return out
}
