package parse

import (
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokLParen
	tokRParen
	tokComma
	tokOperator
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokIdent:
		return "identifier"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	default:
		return "operator"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits src into tokens. Whitespace separates tokens and is otherwise
// ignored.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case r == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case r == ',':
			toks = append(toks, token{tokComma, ",", i})
			i++
		case r == '+' || r == '-' || r == '*' || r == '/':
			toks = append(toks, token{tokOperator, string(r), i})
			i++
		case isDigit(r) || r == '.':
			end := scanNumber(src, i)
			toks = append(toks, token{tokNumber, src[i:end], i})
			i = end
		case isIdentStart(r):
			end := i + size
			for end < len(src) {
				r, size := utf8.DecodeRuneInString(src[end:])
				if !isIdentPart(r) {
					break
				}
				end += size
			}
			toks = append(toks, token{tokIdent, src[i:end], i})
			i = end
		default:
			return nil, &SyntaxError{Pos: i, Msg: "unexpected character " + quoteRune(r)}
		}
	}
	toks = append(toks, token{tokEOF, "", len(src)})
	return toks, nil
}

// scanNumber returns the end of the decimal literal starting at i, including
// an optional exponent such as "1e-07".
func scanNumber(src string, i int) int {
	for i < len(src) && (isDigit(rune(src[i])) || src[i] == '.') {
		i++
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(rune(src[j])) {
			for j < len(src) && isDigit(rune(src[j])) {
				j++
			}
			return j
		}
	}
	return i
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentPart(r rune) bool { return isIdentStart(r) || unicode.IsDigit(r) }

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}
