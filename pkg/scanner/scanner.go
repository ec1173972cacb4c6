package scanner

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/token"
)

// Scanner turns Lox source text into tokens.
type Scanner struct {
	source   string
	reporter diag.Reporter
	tokens   []token.Token
	start    int
	current  int
	line     int
}

// New creates a scanner. A nil reporter discards diagnostics.
func New(source string, reporter diag.Reporter) *Scanner {
	if reporter == nil {
		reporter = diag.Discard
	}
	return &Scanner{source: source, reporter: reporter, line: 1}
}

// ScanTokens scans the whole source. The result always ends with an EOF
// token; malformed lexemes are reported and skipped.
func (s *Scanner) ScanTokens() []token.Token {
	s.tokens = nil
	s.start, s.current, s.line = 0, 0, 1
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.EOFToken(s.line))
	return s.tokens
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(token.LeftParen, nil)
	case ')':
		s.addToken(token.RightParen, nil)
	case '{':
		s.addToken(token.LeftBrace, nil)
	case '}':
		s.addToken(token.RightBrace, nil)
	case ',':
		s.addToken(token.Comma, nil)
	case '.':
		s.addToken(token.Dot, nil)
	case '-':
		s.addToken(token.Minus, nil)
	case '+':
		s.addToken(token.Plus, nil)
	case ';':
		s.addToken(token.Semicolon, nil)
	case '*':
		s.addToken(token.Star, nil)
	case '!':
		s.addToken(s.choose('=', token.BangEqual, token.Bang), nil)
	case '=':
		s.addToken(s.choose('=', token.EqualEqual, token.Equal), nil)
	case '<':
		s.addToken(s.choose('=', token.LessEqual, token.Less), nil)
	case '>':
		s.addToken(s.choose('=', token.GreaterEqual, token.Greater), nil)
	case '/':
		if s.match('/') {
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
			return
		}
		s.addToken(token.Slash, nil)
	case ' ', '\r', '\t':
	case '\n':
		s.line++
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(c):
			s.scanNumber()
		case isAlpha(c):
			s.scanIdentifier()
		default:
			if c >= utf8.RuneSelf {
				// Skip the rest of the encoded rune so it is reported once.
				_, size := utf8.DecodeRuneInString(s.source[s.start:])
				s.current = s.start + size
			}
			s.reporter.Report(diag.AtLine(diag.PhaseScan, s.line, "Unexpected character."))
		}
	}
}

func (s *Scanner) scanString() {
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.isAtEnd() {
		s.reporter.Report(diag.AtLine(diag.PhaseScan, s.line, "Unterminated string."))
		return
	}
	s.advance()
	s.addToken(token.String, s.source[s.start+1:s.current-1])
}

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	// Literals too large for a float64 scan as infinity.
	value, err := strconv.ParseFloat(s.source[s.start:s.current], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		s.reporter.Report(diag.AtLine(diag.PhaseScan, s.line, "Invalid number literal."))
		return
	}
	s.addToken(token.Number, value)
}

func (s *Scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	text := s.source[s.start:s.current]
	kind, ok := token.Keywords[text]
	if !ok {
		kind = token.Identifier
	}
	s.addToken(kind, nil)
}

func (s *Scanner) choose(expected byte, matched, otherwise token.Kind) token.Kind {
	if s.match(expected) {
		return matched
	}
	return otherwise
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) addToken(kind token.Kind, literal any) {
	s.tokens = append(s.tokens, token.New(kind, s.source[s.start:s.current], literal, s.line))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
