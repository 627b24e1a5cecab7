package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/spantag/internal/annotate"
	"github.com/jask/spantag/internal/binder"
	"github.com/jask/spantag/internal/config"
)

type fakeSession struct {
	sentences []string
	next      int
	saved     [][]annotate.Row
	closed    bool
}

func (s *fakeSession) NextSentence(context.Context) (string, error) {
	if s.closed {
		return "", annotate.ErrSessionInactive
	}
	if s.next >= len(s.sentences) {
		return "", annotate.ErrExhausted
	}
	s.next++
	return s.sentences[s.next-1], nil
}

func (s *fakeSession) SaveAnnotation(_ context.Context, rows []annotate.Row) error {
	if s.closed {
		return annotate.ErrSessionInactive
	}
	s.saved = append(s.saved, rows)
	return nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

func newTestApp(t *testing.T, keys map[string]config.KeySeq, sentences ...string) (*App, *fakeSession) {
	t.Helper()
	groups := []config.LabelGroup{{
		Group: "role",
		Entries: []config.LabelEntry{
			{Name: "subject", Key: "s"},
			{Name: "predicate", Key: "p"},
		},
	}}
	if keys == nil {
		keys = map[string]config.KeySeq{
			"cursorleft":      {"j"},
			"cursorright":     {"l"},
			"setmark":         {"space"},
			"cancellabel":     {"backspace"},
			"confirmsentence": {"enter"},
		}
	}
	b, err := binder.New(groups, keys)
	require.NoError(t, err)

	sess := &fakeSession{sentences: sentences}
	m, err := annotate.New(context.Background(), sess, []string{"role"})
	require.NoError(t, err)

	return New(context.Background(), b, m, WithStyles(Plain([]string{"role"})), WithTitle("test")), sess
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(a *App, msgs ...tea.Msg) {
	for _, m := range msgs {
		a.Update(m)
	}
}

func TestKeysDriveTheMachine(t *testing.T) {
	a, _ := newTestApp(t, nil, "Alice reads books")

	press(a, runes("s"), runes("l"), runes("p"))

	rows := a.machine.Rows()
	require.Equal(t, []string{"subject"}, rows[0].Labels)
	require.Equal(t, []string{"predicate"}, rows[1].Labels)
	require.Equal(t, []string{annotate.Unlabeled}, rows[2].Labels)
	require.Equal(t, 1, a.machine.Cursor())
	require.Empty(t, a.Status())
}

func TestSelectionWithSpace(t *testing.T) {
	a, _ := newTestApp(t, nil, "the red car")

	press(a, tea.KeyMsg{Type: tea.KeySpace}, runes("l"), runes("l"), runes("s"))

	for _, r := range a.machine.Rows() {
		require.Equal(t, []string{"subject"}, r.Labels, r.Word)
	}
	require.False(t, a.machine.Selecting())
}

func TestConfirmSavesAndReports(t *testing.T) {
	a, sess := newTestApp(t, nil, "one", "two")

	press(a, runes("s"), tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, sess.saved, 1)
	require.Equal(t, []annotate.Row{{Word: "one", Labels: []string{"subject"}}}, sess.saved[0])
	require.Equal(t, "saved", a.Status())
	require.Equal(t, "two", a.machine.Sentence().Text())

	press(a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "all sentences annotated", a.Status())
	require.True(t, a.machine.Exhausted())

	press(a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, sess.saved, 2)
	require.True(t, a.statusErr)
	require.Contains(t, a.Status(), "no more sentences")
}

func TestBackspaceCancelsLabel(t *testing.T) {
	a, _ := newTestApp(t, nil, "hello world")

	press(a, runes("s"), tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, []string{annotate.Unlabeled}, a.machine.Rows()[0].Labels)
}

func TestInvalidKeyShowsError(t *testing.T) {
	a, _ := newTestApp(t, nil, "hello")

	press(a, runes("z"))
	require.True(t, a.statusErr)
	require.Contains(t, a.Status(), `invalid input "z"`)

	press(a, runes("s"))
	require.False(t, a.statusErr)
	require.Equal(t, []string{"subject"}, a.machine.Rows()[0].Labels)
}

func TestMultiKeySequenceAndEscape(t *testing.T) {
	keys := map[string]config.KeySeq{
		"cursorright":     {"c", "l"},
		"confirmsentence": {"c", "c"},
	}
	a, sess := newTestApp(t, keys, "first", "second")

	press(a, runes("c"))
	require.Equal(t, []string{"c"}, a.binder.Pending())
	require.Contains(t, a.View(), "next: l c")

	press(a, tea.KeyMsg{Type: tea.KeyEsc})
	require.Empty(t, a.binder.Pending())
	require.Empty(t, sess.saved)

	press(a, runes("c"), runes("c"))
	require.Len(t, sess.saved, 1)
	require.Empty(t, a.binder.Pending())
}

func TestCtrlCQuits(t *testing.T) {
	a, _ := newTestApp(t, nil, "hello")

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsSentenceAndHelp(t *testing.T) {
	a, _ := newTestApp(t, nil, "Alice reads")
	press(a, tea.WindowSizeMsg{Width: 120, Height: 40}, runes("s"))

	view := a.View()
	require.Contains(t, view, "spantag")
	require.Contains(t, view, "test")
	require.Contains(t, view, "Alice")
	require.Contains(t, view, "subject")
	require.Contains(t, view, "predicate")
}

func TestEmptyCorpusStartsWithNotice(t *testing.T) {
	a, _ := newTestApp(t, nil)
	require.True(t, a.machine.Exhausted())
	require.Contains(t, a.Status(), "nothing to annotate")
	require.Contains(t, a.View(), "sentences")
}

func TestSessionClosedEarlyEndsProgram(t *testing.T) {
	a, sess := newTestApp(t, nil, "one", "two")
	require.NoError(t, sess.Close())

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.ErrorIs(t, a.Err(), annotate.ErrSessionInactive)
}
