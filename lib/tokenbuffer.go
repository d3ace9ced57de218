package lib

// tokenBuffer holds the output of the lexer until the side parser reads it.
// Everything is lexed before parsing starts, so reads never block.
type tokenBuffer struct {
	tokens []token
	pos    int
}

func newTokenBuffer() *tokenBuffer {
	return &tokenBuffer{
		tokens: []token{},
		pos:    0,
	}
}

func (tb *tokenBuffer) Next() (tok token, done bool, err error) {
	tok, done, err = tb.Peek()
	if !done {
		tb.pos++
	}
	return tok, done, err
}

func (tb *tokenBuffer) Peek() (token, bool, error) {
	if tb.pos >= len(tb.tokens) {
		return token{}, true, nil
	}
	return tb.tokens[tb.pos], false, nil
}

func (tb *tokenBuffer) Write(tok token) {
	tb.tokens = append(tb.tokens, tok)
}

// Tokens returns everything written so far, read or not.
func (tb *tokenBuffer) Tokens() []token {
	return tb.tokens
}
