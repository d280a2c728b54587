// Package typehint classifies a plain scalar's lexical shape without
// constructing a native value: null, bool, int, float, inf, nan, or
// unknown. It is advisory — callers that want an actual int64/float64
// use the hint to pick a tag, not to parse the value (that conversion
// is host-language glue, out of scope per spec.md §1).
package typehint

// Kind is the lexical classification of a plain scalar.
type Kind int

const (
	Unknown Kind = iota
	Null
	Bool
	Int
	Float
	Inf
	NaN
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Inf:
		return "inf"
	case NaN:
		return "nan"
	default:
		return "unknown"
	}
}

var nullWords = map[string]bool{
	"~": true, "null": true, "Null": true, "NULL": true,
}

var boolWords = map[string]bool{
	"true": true, "True": true, "TRUE": true,
	"false": true, "False": true, "FALSE": true,
	"yes": true, "Yes": true, "YES": true,
	"no": true, "No": true, "NO": true,
	"on": true, "On": true, "ON": true,
	"off": true, "Off": true, "OFF": true,
	"y": true, "Y": true, "n": true, "N": true,
}

var infWords = map[string]bool{
	".inf": true, ".Inf": true, ".INF": true,
	"+.inf": true, "+.Inf": true, "+.INF": true,
	"-.inf": true, "-.Inf": true, "-.INF": true,
}

var nanWords = map[string]bool{
	".nan": true, ".NaN": true, ".NAN": true,
}

// Guess classifies s. It depends only on s (spec §8 "type hint
// purity"): no surrounding document state affects the result.
func Guess(s string) Kind {
	if s == "" {
		return Null
	}
	if nullWords[s] {
		return Null
	}
	if boolWords[s] {
		return Bool
	}
	if infWords[s] {
		return Inf
	}
	if nanWords[s] {
		return NaN
	}
	if looksLikeInt(s) {
		return Int
	}
	if looksLikeFloat(s) {
		return Float
	}
	return Unknown
}

func looksLikeInt(s string) bool {
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i = 1
	}
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			continue
		}
		if c < '0' || c > '9' {
			// allow hex/octal/binary prefixes as a lexical int shape
			return looksLikeRadixInt(s)
		}
	}
	return true
}

func looksLikeRadixInt(s string) bool {
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i = 1
	}
	if i+2 > len(s) || s[i] != '0' {
		return false
	}
	switch s[i+1] {
	case 'x', 'X':
		return allDigitsIn(s[i+2:], isHexDigit)
	case 'o', 'O':
		return allDigitsIn(s[i+2:], isOctalDigit)
	case 'b', 'B':
		return allDigitsIn(s[i+2:], isBinaryDigit)
	default:
		return false
	}
}

func allDigitsIn(s string, pred func(byte) bool) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			continue
		}
		if !pred(s[i]) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func isOctalDigit(c byte) bool { return c >= '0' && c <= '7' }

func isBinaryDigit(c byte) bool { return c == '0' || c == '1' }

func looksLikeFloat(s string) bool {
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i = 1
	}
	if i == len(s) {
		return false
	}
	sawDigit := false
	sawDot := false
	sawExp := false
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			sawDigit = true
		case c == '_':
		case c == '.' && !sawDot && !sawExp:
			sawDot = true
		case (c == 'e' || c == 'E') && sawDigit && !sawExp:
			sawExp = true
			if i+1 < len(s) && (s[i+1] == '+' || s[i+1] == '-') {
				i++
			}
		default:
			return false
		}
	}
	return sawDigit && (sawDot || sawExp)
}
