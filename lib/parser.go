package lib

import (
	"github.com/pkg/errors"
)

var (
	ErrMissingEquals = errors.New("equation has no '='")
	ErrExtraEquals   = errors.New("equation has more than one '='")
	ErrEmptySide     = errors.New("equation has an empty side")
)

type tokenReader interface {
	Next() (tok token, done bool, err error)
	Peek() (tok token, done bool, err error)
}

type parser struct {
	reader  tokenReader
	lenient bool
}

// split divides a token sequence into the terms left and right of the first
// equals sign.
func split(reader tokenReader, lenient bool) (EquationSides, error) {
	p := parser{reader: reader, lenient: lenient}
	return p.scan()
}

func (p *parser) scan() (EquationSides, error) {
	sides := EquationSides{Left: []token{}, Right: []token{}}
	current := &sides.Left
	equalsSeen := 0

	for {
		tok, done, err := p.reader.Next()
		if err != nil {
			return EquationSides{}, err
		}

		if done {
			break
		}

		if tok.tokType == tokenTypeEqual {
			equalsSeen++
			if equalsSeen > 1 && !p.lenient {
				return EquationSides{}, errors.Wrapf(ErrExtraEquals, "at %s", tokenString(tok))
			}
			// Later equals signs never switch back to the left side.
			current = &sides.Right
			continue
		}

		*current = append(*current, tok)
	}

	if p.lenient {
		return sides, nil
	}
	if equalsSeen == 0 {
		return EquationSides{}, ErrMissingEquals
	}
	if len(sides.Left) == 0 {
		return EquationSides{}, errors.Wrap(ErrEmptySide, "left side")
	}
	if len(sides.Right) == 0 {
		return EquationSides{}, errors.Wrap(ErrEmptySide, "right side")
	}
	return sides, nil
}
