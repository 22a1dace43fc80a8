// Package parser turns arithmetic expression text into a validated
// postfix program. The pipeline is Scan (raw tokens) followed by Build
// (classification, order validation and shunting-yard conversion).
package parser

// symbol tokens are always emitted as their own one-character token.
func isSymbol(ch byte) bool {
	switch ch {
	case '+', '-', '*', '/', '^', '(', ')':
		return true
	}
	return false
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// Lexer splits expression text into raw tokens. It performs no
// validation: malformed numeric runs surface later, when the builder
// attempts a full-token numeric parse.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// Next returns the next raw token. The second result is false once the
// input is exhausted.
func (l *Lexer) Next() (string, bool) {
	for isSpace(l.ch) {
		l.readChar()
	}
	if l.ch == 0 {
		return "", false
	}

	switch {
	case isSymbol(l.ch):
		tok := string(l.ch)
		l.readChar()
		return tok, true
	case isDigit(l.ch) || l.ch == '.':
		return l.readNumber(), true
	default:
		return l.readWord(), true
	}
}

// readNumber consumes a maximal numeric run: integer part, optional
// fraction, optional exponent with sign. The run always consumes at
// least the starting character, so a bare '.' becomes a one-byte token
// and is rejected later as an unbound variable rather than looping.
func (l *Lexer) readNumber() string {
	start := l.pos

	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && l.exponentHasDigits()) {
			l.readChar() // skip 'e' or 'E'
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	return l.input[start:l.pos]
}

// exponentHasDigits reports whether a signed exponent at the current
// position is followed by at least one digit, e.g. "e+5" but not "e+".
func (l *Lexer) exponentHasDigits() bool {
	// l.pos is at 'e'/'E', l.readPos at the sign.
	return l.readPos+1 < len(l.input) && isDigit(l.input[l.readPos+1])
}

// readWord consumes a run of non-space, non-symbol characters. This
// covers the sqrt keyword and variable-like identifiers.
func (l *Lexer) readWord() string {
	start := l.pos
	for l.ch != 0 && !isSpace(l.ch) && !isSymbol(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// Scan returns all raw tokens from the input. Empty or blank input
// yields an empty slice.
func Scan(input string) []string {
	l := NewLexer(input)
	var tokens []string
	for {
		tok, ok := l.Next()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
