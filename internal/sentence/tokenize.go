package sentence

import (
	"strings"
	"unicode"
)

var clitics = []string{"n't", "'s", "'re", "'ve", "'ll", "'d", "'m"}

// Tokenize splits text into word tokens. Whitespace separates chunks; leading
// and trailing punctuation and symbols become their own tokens, English
// clitics are split off, and punctuation inside a chunk is kept (U.S., 3.5).
func Tokenize(text string) []string {
	var out []string
	for _, chunk := range strings.Fields(text) {
		out = append(out, splitChunk(chunk)...)
	}
	return out
}

func isEdge(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func splitChunk(chunk string) []string {
	runes := []rune(chunk)

	var lead []string
	for len(runes) > 0 && isEdge(runes[0]) {
		lead = append(lead, string(runes[0]))
		runes = runes[1:]
	}

	var trail []string
	for len(runes) > 0 && isEdge(runes[len(runes)-1]) {
		last := runes[len(runes)-1]
		// keep the final period of an abbreviation such as "U.S."
		if last == '.' && len(runes) > 1 && unicode.IsLetter(runes[len(runes)-2]) &&
			strings.ContainsRune(string(runes[:len(runes)-1]), '.') {
			break
		}
		trail = append([]string{string(last)}, trail...)
		runes = runes[:len(runes)-1]
	}

	out := lead
	if core := string(runes); core != "" {
		out = append(out, splitClitic(core)...)
	}
	return append(out, trail...)
}

func splitClitic(word string) []string {
	lower := strings.ToLower(word)
	for _, c := range clitics {
		if len(lower) > len(c) && strings.HasSuffix(lower, c) {
			cut := len(word) - len(c)
			return []string{word[:cut], word[cut:]}
		}
	}
	return []string{word}
}
