package peg

import "strings"

// Semantic values produced by matchers are one of:
//
//   - raw matched text (internal; surfaces as string)
//   - Empty, the canonical empty sequence
//   - False, the OptFlag absence sentinel
//   - []any, an ordered sequence of structured values
//   - any value returned by a user action
type empty struct{}

func (empty) String() string { return "()" }

// Empty is the canonical empty sequence: the value of a match that consumed
// or contributed nothing. It is distinct from the empty string and from
// False.
var Empty = empty{}

// False is the sentinel produced by OptFlag when its rule is absent.
const False = false

// text is raw matched text. Character-level matchers produce it and the
// combination rule concatenates it; it surfaces to users as a plain string.
// Values of any other type (including string) are treated as structured and
// collect into sequences instead.
type text string

// droppedType marks the value of a Drop rule so combination can elide it.
type droppedType struct{}

var droppedValue any = droppedType{}

// combine merges the sub-results of a composite match into one value.
// Dropped and Empty values contribute nothing. If every contributing value
// is raw text the result is their concatenation; otherwise the contributing
// values form an ordered []any. A zero-length combination is Empty.
func combine(values []any) any {
	kept := make([]any, 0, len(values))
	allText := true
	for _, v := range values {
		switch v.(type) {
		case droppedType, empty:
			continue
		case text:
		default:
			allText = false
		}
		kept = append(kept, v)
	}
	if len(kept) == 0 {
		return Empty
	}
	if allText {
		var sb strings.Builder
		for _, v := range kept {
			sb.WriteString(string(v.(text)))
		}
		return text(sb.String())
	}
	out := make([]any, len(kept))
	for i, v := range kept {
		out[i] = export(v)
	}
	return out
}

// export converts an internal value into its user-facing form.
func export(v any) any {
	switch v := v.(type) {
	case text:
		return string(v)
	case droppedType:
		return Empty
	default:
		return v
	}
}
