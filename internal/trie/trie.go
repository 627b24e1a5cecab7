// Package trie implements the command automaton: a prefix tree over key
// sequences with a movable position, used to recognise multi-key commands.
package trie

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrDuplicatePath     = errors.New("path already registered")
	ErrEmptyPath         = errors.New("empty path")
	ErrInvalidTransition = errors.New("invalid transition")
)

// DuplicatePathError reports a sequence that is already terminal.
type DuplicatePathError[K comparable] struct {
	Path []K
}

func (e *DuplicatePathError[K]) Error() string {
	return fmt.Sprintf("path %s exists", quoteAll(e.Path))
}

func (e *DuplicatePathError[K]) Is(target error) bool { return target == ErrDuplicatePath }

// InvalidTransitionError reports a key that does not extend any registered
// path from the current position.
type InvalidTransitionError[K comparable] struct {
	Attempted K
	ValidNext []K
}

func (e *InvalidTransitionError[K]) Error() string {
	return fmt.Sprintf("invalid input %q, valid are %s", fmt.Sprint(e.Attempted), quoteAll(e.ValidNext))
}

func (e *InvalidTransitionError[K]) Is(target error) bool { return target == ErrInvalidTransition }

func quoteAll[K comparable](keys []K) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.Quote(fmt.Sprint(k))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Match is a terminal payload reachable from the current position.
type Match[K comparable, P any] struct {
	Path    []K
	Payload P
}

type node[K comparable, P any] struct {
	keys     []K // insertion order
	children map[K]*node[K, P]
	terminal bool
	payload  P
}

func newNode[K comparable, P any]() *node[K, P] {
	return &node[K, P]{children: make(map[K]*node[K, P])}
}

// Trie is not safe for concurrent use.
type Trie[K comparable, P any] struct {
	root    *node[K, P]
	current *node[K, P]
	path    []K
}

func New[K comparable, P any]() *Trie[K, P] {
	root := newNode[K, P]()
	return &Trie[K, P]{root: root, current: root}
}

// Register inserts seq with its payload. Registering a sequence that is
// already terminal fails and leaves the trie untouched.
func (t *Trie[K, P]) Register(seq []K, payload P) error {
	if len(seq) == 0 {
		return ErrEmptyPath
	}
	if t.HasPath(seq) {
		return &DuplicatePathError[K]{Path: slices.Clone(seq)}
	}
	n := t.root
	for _, k := range seq {
		child, ok := n.children[k]
		if !ok {
			child = newNode[K, P]()
			n.children[k] = child
			n.keys = append(n.keys, k)
		}
		n = child
	}
	n.terminal = true
	n.payload = payload
	return nil
}

// HasPath reports whether seq, read from the root, ends on a terminal node.
func (t *Trie[K, P]) HasPath(seq []K) bool {
	n := t.root
	for _, k := range seq {
		child, ok := n.children[k]
		if !ok {
			return false
		}
		n = child
	}
	return n.terminal
}

// Step advances the position by k. On failure the position is unchanged.
func (t *Trie[K, P]) Step(k K) error {
	child, ok := t.current.children[k]
	if !ok {
		return &InvalidTransitionError[K]{Attempted: k, ValidNext: t.ValidNext()}
	}
	t.current = child
	t.path = append(t.path, k)
	return nil
}

func (t *Trie[K, P]) ValidNext() []K {
	return slices.Clone(t.current.keys)
}

// Path returns the keys consumed since the last reset.
func (t *Trie[K, P]) Path() []K {
	return slices.Clone(t.path)
}

// MatchingPaths enumerates every terminal payload reachable from the current
// position, depth first, the current node before its children.
func (t *Trie[K, P]) MatchingPaths() []Match[K, P] {
	var out []Match[K, P]
	var walk func(n *node[K, P], path []K)
	walk = func(n *node[K, P], path []K) {
		if n.terminal {
			out = append(out, Match[K, P]{Path: slices.Clone(path), Payload: n.payload})
		}
		for _, k := range n.keys {
			walk(n.children[k], append(path, k))
		}
	}
	walk(t.current, slices.Clone(t.path))
	return out
}

func (t *Trie[K, P]) Reset() {
	t.current = t.root
	t.path = nil
}
