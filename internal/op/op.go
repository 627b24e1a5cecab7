// Package op defines the closed set of operations the command binder emits
// and the annotation machine consumes.
package op

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindLabel Kind = iota
	KindCancelLabel
	KindCursorLeft
	KindCursorRight
	KindCursorUp
	KindCursorDown
	KindConfirmSentence
	KindSetMark
)

var kindNames = map[Kind]string{
	KindLabel:           "Label",
	KindCancelLabel:     "CancelLabel",
	KindCursorLeft:      "CursorLeft",
	KindCursorRight:     "CursorRight",
	KindCursorUp:        "CursorUp",
	KindCursorDown:      "CursorDown",
	KindConfirmSentence: "ConfirmSentence",
	KindSetMark:         "SetMark",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Operators lists the zero-argument kinds that can be bound to keys by name.
func Operators() []Kind {
	return []Kind{
		KindCancelLabel,
		KindCursorLeft,
		KindCursorRight,
		KindCursorUp,
		KindCursorDown,
		KindConfirmSentence,
		KindSetMark,
	}
}

// ParseOperator resolves an operator name case-insensitively. Label is not an
// operator: it is bound through label groups.
func ParseOperator(name string) (Kind, bool) {
	for _, k := range Operators() {
		if strings.EqualFold(k.String(), strings.TrimSpace(name)) {
			return k, true
		}
	}
	return 0, false
}

// Operation is an immutable value. Group and Name are only set for Label.
type Operation struct {
	Kind  Kind
	Group string
	Name  string
}

func Label(group, name string) Operation {
	return Operation{Kind: KindLabel, Group: group, Name: name}
}

func CancelLabel() Operation     { return Operation{Kind: KindCancelLabel} }
func CursorLeft() Operation      { return Operation{Kind: KindCursorLeft} }
func CursorRight() Operation     { return Operation{Kind: KindCursorRight} }
func CursorUp() Operation        { return Operation{Kind: KindCursorUp} }
func CursorDown() Operation      { return Operation{Kind: KindCursorDown} }
func ConfirmSentence() Operation { return Operation{Kind: KindConfirmSentence} }
func SetMark() Operation         { return Operation{Kind: KindSetMark} }

// Of builds the zero-argument operation for an operator kind.
func Of(k Kind) Operation { return Operation{Kind: k} }

func (o Operation) String() string {
	if o.Kind == KindLabel {
		return fmt.Sprintf("Label(%s, %s)", o.Group, o.Name)
	}
	return o.Kind.String()
}
