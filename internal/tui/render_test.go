package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/spantag/internal/annotate"
)

func twoWords() annotate.Snapshot {
	return annotate.Snapshot{
		Groups: []string{"role"},
		Rows: []annotate.Row{
			{Word: "a", Labels: []string{annotate.Unlabeled}},
			{Word: "b", Labels: []string{"x"}},
		},
	}
}

func TestRenderSentenceOneLine(t *testing.T) {
	out := RenderSentence(Plain([]string{"role"}), twoWords(), 80)
	require.Equal(t, "a  b\n-  x", out)
}

func TestRenderSentenceWraps(t *testing.T) {
	out := RenderSentence(Plain([]string{"role"}), twoWords(), 3)
	require.Equal(t, "a\n-\n\nb\nx", out)
}

func TestRenderSentenceNoWidthNeverWraps(t *testing.T) {
	out := RenderSentence(Plain([]string{"role"}), twoWords(), 0)
	require.Equal(t, "a  b\n-  x", out)
}

func TestFitTruncates(t *testing.T) {
	require.Equal(t, "abc", fit("abc", 0))
	require.Equal(t, "ab…", fit("abcdef", 3))
}
