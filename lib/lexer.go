package lib

import (
	"fmt"
	"unicode"
)

type charInfo struct {
	ch       rune
	location charLocation
}

type lexOptions struct {
	variable rune
	lenient  bool
}

// SyntaxError reports a character the tokenizer could not place in any
// token. Col is 1-based and counts whitespace.
type SyntaxError struct {
	Col int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at col %d: %s", e.Col, e.Msg)
}

func lex(equation string, opts lexOptions, emit func(token)) error {
	l := newLexer(equation, opts, emit)
	return l.scan()
}

// tokenize collects the tokens of an equation into a slice.
func tokenize(equation string, opts lexOptions) ([]token, error) {
	tokens := []token{}
	err := lex(equation, opts, func(tok token) {
		tokens = append(tokens, tok)
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

type lexer struct {
	chars            []charInfo
	length           int
	currentCharIndex int
	opts             lexOptions
	emitCallback     func(token)
}

// Whitespace is dropped up front so that "2 x" lexes the same as "2x". The
// remaining characters keep their original columns for error reporting.
func newLexer(equation string, opts lexOptions, emit func(token)) *lexer {
	chars := []charInfo{}
	col := 0
	for _, ch := range equation {
		col++
		if unicode.IsSpace(ch) {
			continue
		}
		chars = append(chars, charInfo{ch: ch, location: charLocation{col: col}})
	}
	return &lexer{
		chars:            chars,
		length:           len(chars),
		currentCharIndex: 0,
		opts:             opts,
		emitCallback:     emit,
	}
}

func (l *lexer) peek(offset int) (charInfo, bool) {
	i := l.currentCharIndex + offset
	if i >= l.length {
		return charInfo{}, false
	}
	return l.chars[i], true
}

func (l *lexer) advance() (charInfo, bool) {
	info, ok := l.peek(0)
	if ok {
		l.currentCharIndex++
	}
	return info, ok
}

func (l *lexer) scan() error {
	for {
		more, err := l.next()
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	return nil
}

func (l *lexer) next() (bool, error) {
	chInfo, ok := l.peek(0)
	if !ok {
		return false, nil
	}
	ch := chInfo.ch

	switch {
	case ch == '=':
		_, _ = l.advance()
		l.emitCallback(token{tokType: tokenTypeEqual, value: []rune{ch}, location: chInfo.location})
		return true, nil
	case ch == '+' || ch == '-' || isDigit(ch) || ch == l.opts.variable:
		return l.scanTerm()
	default:
		_, _ = l.advance()
		if l.opts.lenient {
			return true, nil
		}
		return false, &SyntaxError{Col: chInfo.location.col, Msg: fmt.Sprintf("unexpected character %q", ch)}
	}
}

// scanTerm reads the longest of [+-]?\d*x and [+-]?\d+ starting at the
// current character.
func (l *lexer) scanTerm() (bool, error) {
	first, _ := l.peek(0)
	value := []rune{}

	if first.ch == '+' || first.ch == '-' {
		_, _ = l.advance()
		value = append(value, first.ch)
	}

	digits := 0
	for {
		next, ok := l.peek(0)
		if !ok || !isDigit(next.ch) {
			break
		}
		_, _ = l.advance()
		value = append(value, next.ch)
		digits++
	}

	if next, ok := l.peek(0); ok && next.ch == l.opts.variable {
		_, _ = l.advance()
		value = append(value, next.ch)
		l.emitCallback(token{tokType: tokenTypeVariable, value: value, location: first.location})
		return true, nil
	}

	if digits > 0 {
		l.emitCallback(token{tokType: tokenTypeNumber, value: value, location: first.location})
		return true, nil
	}

	// A sign with nothing after it. Lenient mode lets the normalizer reject it
	// as a malformed term.
	if l.opts.lenient {
		l.emitCallback(token{tokType: tokenTypeInvalid, value: value, location: first.location})
		return true, nil
	}
	return false, &SyntaxError{
		Col: first.location.col,
		Msg: fmt.Sprintf("sign %q must be followed by digits or %q", first.ch, l.opts.variable),
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
