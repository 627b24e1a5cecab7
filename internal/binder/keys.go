package binder

import "strings"

var keyAliases = map[string]string{
	"space":  " ",
	"return": "enter",
	"\n":     "enter",
	"\r":     "enter",
	"\t":     "tab",
	"bs":     "backspace",
	"escape": "esc",
}

// NormalizeKey maps configured key names onto the names bubbletea reports.
// Single characters are case sensitive; named keys are not.
func NormalizeKey(k string) string {
	if alias, ok := keyAliases[k]; ok {
		return alias
	}
	if len([]rune(k)) == 1 {
		return k
	}
	lower := strings.ToLower(strings.TrimSpace(k))
	if alias, ok := keyAliases[lower]; ok {
		return alias
	}
	return lower
}

// DisplayKey renders a key name for help text.
func DisplayKey(k string) string {
	switch k {
	case " ":
		return "space"
	case "enter":
		return "↵"
	}
	return k
}
