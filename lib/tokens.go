package lib

import "fmt"

type tokenType int

const (
	tokenTypeNumber tokenType = iota
	tokenTypeVariable
	tokenTypeEqual
	tokenTypeInvalid
)

func (t tokenType) String() string {
	switch t {
	case tokenTypeNumber:
		return "Number"
	case tokenTypeVariable:
		return "VariableTerm"
	case tokenTypeEqual:
		return "Equals"
	case tokenTypeInvalid:
		return "Invalid"
	default:
		return fmt.Sprintf("tokenType(%d)", int(t))
	}
}

type charLocation struct {
	col int
}

type token struct {
	tokType  tokenType
	value    []rune
	location charLocation
}

// String returns the signed source text of the token, e.g. "+3x" or "=".
func (t token) String() string {
	return string(t.value)
}

func tokenString(tok token) string {
	return fmt.Sprintf("%s %q at col %d", tok.tokType, string(tok.value), tok.location.col)
}

// formatTokens renders a token sequence the way the diagnostics print it:
// ["x", "+1", "=", "2"].
func formatTokens(tokens []token) string {
	out := "["
	for i, tok := range tokens {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%q", tok.String())
	}
	return out + "]"
}
