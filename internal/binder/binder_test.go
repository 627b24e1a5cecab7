package binder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/spantag/internal/config"
	"github.com/jask/spantag/internal/op"
	"github.com/jask/spantag/internal/trie"
)

func testGroups() []config.LabelGroup {
	return []config.LabelGroup{
		{Group: "role", Entries: []config.LabelEntry{
			{Name: "subject", Key: "s"},
			{Name: "predicate", Key: "p"},
			{Name: "object", Key: "o"},
		}},
		{Group: "is_product", Entries: []config.LabelEntry{{Name: "product", Key: "f"}}},
	}
}

func testKeys() map[string]config.KeySeq {
	return map[string]config.KeySeq{
		"cancellabel":     {"backspace"},
		"cursorup":        {"i"},
		"cursordown":      {"k"},
		"cursorleft":      {"j"},
		"cursorright":     {"l"},
		"setmark":         {"space"},
		"confirmsentence": {"\n"},
	}
}

func newTestBinder(t *testing.T) *Binder {
	t.Helper()
	b, err := New(testGroups(), testKeys())
	require.NoError(t, err)
	return b
}

func TestSingleKeyCommits(t *testing.T) {
	b := newTestBinder(t)

	require.False(t, b.CanCommit())
	require.NoError(t, b.Feed("j"))
	require.True(t, b.CanCommit())
	o, err := b.Commit()
	require.NoError(t, err)
	require.Equal(t, op.CursorLeft(), o)

	b.Reset()
	require.False(t, b.CanCommit())
	require.NoError(t, b.Feed("f"))
	require.True(t, b.CanCommit())
	require.Equal(t, []op.Operation{op.Label("is_product", "product")}, b.Reachable())
}

func TestKeyAliasesAreNormalised(t *testing.T) {
	b := newTestBinder(t)

	require.NoError(t, b.Feed(" "))
	o, err := b.Commit()
	require.NoError(t, err)
	require.Equal(t, op.SetMark(), o)
	b.Reset()

	require.NoError(t, b.Feed("enter"))
	o, err = b.Commit()
	require.NoError(t, err)
	require.Equal(t, op.ConfirmSentence(), o)
}

func TestAmbiguousPrefixWaitsForMoreKeys(t *testing.T) {
	keys := testKeys()
	keys["confirmsentence"] = config.KeySeq{"g", "g"}
	keys["cancellabel"] = config.KeySeq{"g"}
	b, err := New(testGroups(), keys)
	require.NoError(t, err)

	require.NoError(t, b.Feed("g"))
	require.False(t, b.CanCommit())
	require.Equal(t, []op.Operation{op.CancelLabel(), op.ConfirmSentence()}, b.Reachable())
	_, err = b.Commit()
	require.ErrorIs(t, err, ErrAmbiguous)

	require.NoError(t, b.Feed("g"))
	require.True(t, b.CanCommit())
	o, err := b.Commit()
	require.NoError(t, err)
	require.Equal(t, op.ConfirmSentence(), o)
}

func TestInvalidKeyKeepsPending(t *testing.T) {
	keys := testKeys()
	keys["confirmsentence"] = config.KeySeq{"g", "g"}
	b, err := New(testGroups(), keys)
	require.NoError(t, err)

	require.NoError(t, b.Feed("g"))
	err = b.Feed("x")
	require.ErrorIs(t, err, trie.ErrInvalidTransition)
	require.Equal(t, []string{"g"}, b.Pending())
	require.Equal(t, []string{"g"}, b.ValidNext())

	require.NoError(t, b.Feed("g"))
	require.True(t, b.CanCommit())
}

func TestUnknownOperator(t *testing.T) {
	keys := testKeys()
	keys["cursorleftt"] = config.KeySeq{"h"}
	_, err := New(testGroups(), keys)

	var unknown *UnknownOperatorError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, "cursorleftt", unknown.Name)
	require.Equal(t, "CursorLeft", unknown.Suggestion)
	require.Contains(t, err.Error(), `did you mean "CursorLeft"`)

	_, err = New(testGroups(), map[string]config.KeySeq{"Label": {"x"}})
	require.True(t, errors.As(err, &unknown))

	_, err = New(testGroups(), map[string]config.KeySeq{"teleport": {"x"}})
	require.True(t, errors.As(err, &unknown))
	require.Empty(t, unknown.Suggestion)
}

func TestDuplicateBindingIsRejected(t *testing.T) {
	keys := testKeys()
	keys["cursorleft"] = config.KeySeq{"s"} // collides with role/subject
	_, err := New(testGroups(), keys)
	require.ErrorIs(t, err, trie.ErrDuplicatePath)
	require.ErrorContains(t, err, "CursorLeft")
}

func TestQuitKeyCannotBeBound(t *testing.T) {
	keys := testKeys()
	keys["confirmsentence"] = config.KeySeq{"Ctrl+C"}
	_, err := New(testGroups(), keys)
	require.ErrorIs(t, err, ErrReservedKey)
	require.ErrorContains(t, err, "ConfirmSentence")

	groups := testGroups()
	groups[0].Entries[0].Key = "ctrl+c"
	_, err = New(groups, testKeys())
	require.ErrorIs(t, err, ErrReservedKey)
}

func TestBindingsInRegistrationOrder(t *testing.T) {
	b := newTestBinder(t)
	bs := b.Bindings()
	require.Len(t, bs, 11)
	require.Equal(t, Binding{Keys: []string{"s"}, Operation: op.Label("role", "subject")}, bs[0])
	require.Equal(t, Binding{Keys: []string{"f"}, Operation: op.Label("is_product", "product")}, bs[3])
	require.Equal(t, Binding{Keys: []string{"backspace"}, Operation: op.CancelLabel()}, bs[4])
	require.Equal(t, op.SetMark(), bs[10].Operation)
}

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"space":     " ",
		" ":         " ",
		"S":         "S",
		"Enter":     "enter",
		"\n":        "enter",
		"Backspace": "backspace",
		"ctrl+A":    "ctrl+a",
		"Escape":    "esc",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeKey(in), "NormalizeKey(%q)", in)
	}
}
