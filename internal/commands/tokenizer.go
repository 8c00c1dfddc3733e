package commands

import (
	"fmt"
	"strings"
	"unicode"
)

type TokenKind string

const (
	KindWord         TokenKind = "word"
	KindWhitespace   TokenKind = "whitespace"
	KindQuotedString TokenKind = "quoted"
)

type Token struct {
	Text string
	Kind TokenKind
}

func Word(text string) Token         { return Token{Text: text, Kind: KindWord} }
func Whitespace(text string) Token   { return Token{Text: text, Kind: KindWhitespace} }
func QuotedString(text string) Token { return Token{Text: text, Kind: KindQuotedString} }

type TokenizeErrorKind string

const ErrUnterminatedQuote TokenizeErrorKind = "unterminated_quote"

type TokenizeError struct {
	Kind TokenizeErrorKind
	// Pos is the byte offset of the opening quote.
	Pos int
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Kind, e.Pos)
}

// Tokenize splits a command line into words, whitespace runs and quoted
// strings. Whitespace runs are kept as single tokens so that argument
// positions can be validated later. A quote only opens a quoted string at
// a token boundary; inside a word it is an ordinary character.
func Tokenize(line string) ([]Token, error) {
	out := make([]Token, 0, 8)
	runes := []rune(line)
	offsets := byteOffsets(line)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			j := i
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			out = append(out, Whitespace(string(runes[i:j])))
			i = j
		case r == '\'' || r == '"':
			j := i + 1
			for j < len(runes) && runes[j] != r {
				j++
			}
			if j >= len(runes) {
				return nil, &TokenizeError{Kind: ErrUnterminatedQuote, Pos: offsets[i]}
			}
			out = append(out, QuotedString(string(runes[i+1:j])))
			i = j + 1
		default:
			var b strings.Builder
			j := i
			for j < len(runes) && !unicode.IsSpace(runes[j]) {
				b.WriteRune(runes[j])
				j++
			}
			out = append(out, Word(b.String()))
			i = j
		}
	}
	return out, nil
}

func byteOffsets(s string) []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	return out
}
