package parser

import (
	"strings"
	"unicode"

	"github.com/matzehuels/polycalc/pkg/errors"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokX
	tokWord
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokX:
		return "x"
	case tokWord:
		return "word"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokCaret:
		return "'^'"
	default:
		return "unknown"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits input into tokens. Letters are grouped into words; a lone "x"
// (in any case) is the variable.
func lex(input string) ([]token, error) {
	var toks []token
	runes := []rune(input)
	offset := 0 // byte offset of runes[i]

	for i := 0; i < len(runes); {
		r := runes[i]
		start := offset

		switch {
		case unicode.IsSpace(r):
			i++
			offset += len(string(r))
			continue

		case unicode.IsDigit(r) || r == '.':
			j := i
			dots := 0
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				if runes[j] == '.' {
					dots++
				}
				j++
			}
			text := string(runes[i:j])
			if dots > 1 || text == "." {
				return nil, errors.NewParseError(input, start, "malformed number %q", text)
			}
			toks = append(toks, token{kind: tokNumber, text: text, pos: start})
			offset += len(text)
			i = j
			continue

		case unicode.IsLetter(r):
			j := i
			for j < len(runes) && unicode.IsLetter(runes[j]) {
				j++
			}
			text := string(runes[i:j])
			kind := tokWord
			if strings.EqualFold(text, "x") {
				kind = tokX
			}
			toks = append(toks, token{kind: kind, text: strings.ToLower(text), pos: start})
			offset += len(text)
			i = j
			continue
		}

		var kind tokenKind
		switch r {
		case '+':
			kind = tokPlus
		case '-':
			kind = tokMinus
		case '*':
			kind = tokStar
		case '/':
			kind = tokSlash
		case '^':
			kind = tokCaret
		default:
			return nil, errors.NewParseError(input, start, "unexpected character %q", r)
		}
		toks = append(toks, token{kind: kind, text: string(r), pos: start})
		offset += len(string(r))
		i++
	}

	toks = append(toks, token{kind: tokEOF, pos: len(input)})
	return toks, nil
}
