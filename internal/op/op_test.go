package op

import "testing"

func TestParseOperator(t *testing.T) {
	cases := map[string]Kind{
		"CancelLabel":     KindCancelLabel,
		"cursorleft":      KindCursorLeft,
		" CursorRight ":   KindCursorRight,
		"CURSORUP":        KindCursorUp,
		"cursordown":      KindCursorDown,
		"confirmsentence": KindConfirmSentence,
		"setmark":         KindSetMark,
	}
	for name, want := range cases {
		got, ok := ParseOperator(name)
		if !ok {
			t.Fatalf("ParseOperator(%q) not recognised", name)
		}
		if got != want {
			t.Fatalf("ParseOperator(%q) = %v, want %v", name, got, want)
		}
	}

	for _, name := range []string{"Label", "label", "CursorLeftt", ""} {
		if _, ok := ParseOperator(name); ok {
			t.Fatalf("ParseOperator(%q) unexpectedly recognised", name)
		}
	}
}

func TestOperationString(t *testing.T) {
	if got := Label("is_product", "product").String(); got != "Label(is_product, product)" {
		t.Fatalf("label string = %q", got)
	}
	if got := CursorLeft().String(); got != "CursorLeft" {
		t.Fatalf("cursor string = %q", got)
	}
	if got := Kind(99).String(); got != "Kind(99)" {
		t.Fatalf("unknown kind string = %q", got)
	}
}

func TestOperationsAreComparable(t *testing.T) {
	if Label("role", "subject") != Label("role", "subject") {
		t.Fatal("equal labels compare unequal")
	}
	if Label("role", "subject") == Label("role", "object") {
		t.Fatal("different labels compare equal")
	}
	if Of(KindSetMark) != SetMark() {
		t.Fatal("Of(KindSetMark) != SetMark()")
	}
}
