// Package annotate owns the sentence under annotation: cursor, selection and
// labeled ranges, and the transition to the next sentence.
package annotate

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/jask/spantag/internal/op"
	"github.com/jask/spantag/internal/sentence"
)

var (
	// ErrUnsupported is returned for vertical cursor movement.
	ErrUnsupported  = errors.New("operation not supported")
	ErrUnknownGroup = errors.New("unknown label group")
)

// Placeholder is shown once the session has no more sentences.
const Placeholder = "No more sentences."

// Range is a closed interval of word indices.
type Range struct {
	Start int
	End   int
}

func (r Range) Contains(i int) bool { return i >= r.Start && i <= r.End }

type selection struct {
	anchor int
	offset int
}

func (s selection) bounds() Range {
	a, b := s.anchor, s.anchor+s.offset
	return Range{Start: min(a, b), End: max(a, b)}
}

// Machine applies operations to the current sentence. It is not safe for
// concurrent use; operations are applied strictly in order.
type Machine struct {
	session Session
	groups  []string
	log     *zap.Logger

	sent      *sentence.Sentence
	cursor    int
	sel       *selection
	ranges    []Range
	exhausted bool
}

type Option func(*Machine)

func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) { m.log = l }
}

// New loads the first sentence from session. groups fixes the column order of
// snapshots and saved rows.
func New(ctx context.Context, session Session, groups []string, opts ...Option) (*Machine, error) {
	if len(groups) == 0 {
		return nil, errors.New("annotate: no label groups")
	}
	m := &Machine{
		session: session,
		groups:  slices.Clone(groups),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.advance(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// Apply dispatches one operation.
func (m *Machine) Apply(ctx context.Context, o op.Operation) error {
	switch o.Kind {
	case op.KindCursorLeft:
		m.cursorLeft()
	case op.KindCursorRight:
		m.cursorRight()
	case op.KindCursorUp, op.KindCursorDown:
		return fmt.Errorf("%s: %w", o, ErrUnsupported)
	case op.KindSetMark:
		m.setMark()
	case op.KindLabel:
		return m.label(o.Group, o.Name)
	case op.KindCancelLabel:
		m.cancelLabel()
	case op.KindConfirmSentence:
		return m.confirmSentence(ctx)
	default:
		return fmt.Errorf("unknown operation %s", o)
	}
	return nil
}

func (m *Machine) indexMax() int { return m.sent.Len() - 1 }

func (m *Machine) cursorLeft() {
	if m.sel != nil {
		if m.sel.anchor+m.sel.offset-1 >= 0 {
			m.sel.offset--
		}
		return
	}
	if m.cursor == 0 {
		m.cursor = m.indexMax()
	} else {
		m.cursor--
	}
}

func (m *Machine) cursorRight() {
	if m.sel != nil {
		if m.sel.anchor+m.sel.offset+1 <= m.indexMax() {
			m.sel.offset++
		}
		return
	}
	if m.cursor == m.indexMax() {
		m.cursor = 0
	} else {
		m.cursor++
	}
}

// setMark toggles selection. Turning it off drops the range without labeling.
func (m *Machine) setMark() {
	if m.sel != nil {
		m.sel = nil
		return
	}
	m.sel = &selection{anchor: m.cursor}
}

func (m *Machine) label(group, name string) error {
	if !slices.Contains(m.groups, group) {
		return fmt.Errorf("%w %q", ErrUnknownGroup, group)
	}
	r := m.active()
	m.ranges = append(m.ranges, r)
	for _, w := range m.sent.Words(r.Start, r.End) {
		w.SetLabel(group, name)
	}
	m.sel = nil
	m.log.Debug("label applied",
		zap.String("group", group),
		zap.String("label", name),
		zap.Int("start", r.Start),
		zap.Int("end", r.End),
	)
	return nil
}

// cancelLabel clears every group on the oldest range holding the cursor.
func (m *Machine) cancelLabel() {
	for i, r := range m.ranges {
		if !r.Contains(m.cursor) {
			continue
		}
		for _, w := range m.sent.Words(r.Start, r.End) {
			w.ClearLabels()
		}
		m.ranges = slices.Delete(m.ranges, i, i+1)
		m.log.Debug("label canceled", zap.Int("start", r.Start), zap.Int("end", r.End))
		return
	}
}

func (m *Machine) confirmSentence(ctx context.Context) error {
	if m.exhausted {
		return ErrSessionInactive
	}
	if err := m.session.SaveAnnotation(ctx, m.Rows()); err != nil {
		return fmt.Errorf("save annotation: %w", err)
	}
	m.log.Info("sentence confirmed", zap.Int("words", m.sent.Len()), zap.Int("ranges", len(m.ranges)))
	return m.advance(ctx)
}

// advance installs the next sentence, or the placeholder once the session
// runs dry, in which case the session is closed.
func (m *Machine) advance(ctx context.Context) error {
	text, err := m.session.NextSentence(ctx)
	switch {
	case errors.Is(err, ErrExhausted):
		text = Placeholder
		m.exhausted = true
	case err != nil:
		return fmt.Errorf("next sentence: %w", err)
	}
	sent, err := sentence.New(text)
	if err != nil {
		return fmt.Errorf("next sentence: %w", err)
	}
	m.sent = sent
	m.cursor = 0
	m.sel = nil
	m.ranges = nil
	if m.exhausted {
		m.log.Info("sentences exhausted")
		if err := m.session.Close(); err != nil {
			return fmt.Errorf("close session: %w", err)
		}
	}
	return nil
}

// active is the selection range, or the cursor point.
func (m *Machine) active() Range {
	if m.sel != nil {
		return m.sel.bounds()
	}
	return Range{Start: m.cursor, End: m.cursor}
}

func (m *Machine) Cursor() int { return m.cursor }

// Selection returns the normalized selection range when selecting.
func (m *Machine) Selection() (Range, bool) {
	if m.sel == nil {
		return Range{}, false
	}
	return m.sel.bounds(), true
}

func (m *Machine) Selecting() bool { return m.sel != nil }

// Ranges returns the labeled ranges, oldest first.
func (m *Machine) Ranges() []Range { return slices.Clone(m.ranges) }

func (m *Machine) Groups() []string { return slices.Clone(m.groups) }

func (m *Machine) Sentence() *sentence.Sentence { return m.sent }

// Exhausted reports whether the placeholder sentence is installed.
func (m *Machine) Exhausted() bool { return m.exhausted }
