package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/logger"
)

// Lexer is a single-pass, single-file scanner. It never aborts: an
// unrecognized byte sequence produces TSyntaxError and the lexer
// advances past it, leaving recovery to the parser (spec §4.1).
type Lexer struct {
	Log    *logger.Log
	Source string
	File   string

	start   int
	current int
	end     int

	Token             Token
	TokenStart        int
	HasNewlineBefore  bool
	Identifier        string
	StringValue       string
	Number            float64
	BigIntText        string
	RegExpPattern     string
	RegExpFlags       string

	Comments []ast.Comment
}

func NewLexer(log *logger.Log, file string, source string) *Lexer {
	l := &Lexer{Log: log, Source: source, File: file, end: len(source)}
	l.Next()
	return l
}

func (l *Lexer) Span() logger.Span {
	return logger.Span{Loc: logger.Loc{Start: int32(l.TokenStart)}, Len: int32(l.current - l.TokenStart)}
}

func (l *Lexer) Raw() string { return l.Source[l.TokenStart:l.current] }

func (l *Lexer) addError(start int, text string) {
	l.Log.AddError(logger.Span{Loc: logger.Loc{Start: int32(start)}}, text)
}

func (l *Lexer) peekByte() byte {
	if l.current >= l.end {
		return 0
	}
	return l.Source[l.current]
}

func (l *Lexer) peekByteAt(offset int) byte {
	i := l.current + offset
	if i >= l.end {
		return 0
	}
	return l.Source[i]
}

// Next scans the next token, following the lexical grammar for "regular"
// expression position (i.e. a "/" here starts a divide, not a regex;
// the parser calls RescanSlashAsRegExp when it knows better from
// grammar context, matching esbuild's approach of letting the parser
// drive regex/JSX disambiguation rather than a context-free lexer).
func (l *Lexer) Next() {
	l.HasNewlineBefore = l.current == 0

	for {
		l.start = l.current
		l.Token = TEndOfFile

		if l.current >= l.end {
			l.TokenStart = l.current
			return
		}

		c := l.Source[l.current]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.current++
			continue
		case c == '\n':
			l.current++
			l.HasNewlineBefore = true
			continue
		case c == '/' && l.peekByteAt(1) == '/':
			l.scanLineComment()
			continue
		case c == '/' && l.peekByteAt(1) == '*':
			if l.scanBlockComment() {
				l.HasNewlineBefore = true
			}
			continue
		}

		l.TokenStart = l.current
		l.scanToken()
		return
	}
}

func (l *Lexer) scanLineComment() {
	start := l.current
	for l.current < l.end && l.Source[l.current] != '\n' {
		l.current++
	}
	l.Comments = append(l.Comments, ast.Comment{
		Kind: ast.CommentLine,
		Span: logger.Span{Loc: logger.Loc{Start: int32(start)}, Len: int32(l.current - start)},
		Text: l.Source[start:l.current],
	})
}

// scanBlockComment returns true if the comment spans multiple lines.
func (l *Lexer) scanBlockComment() bool {
	start := l.current
	l.current += 2
	multiline := false
	for l.current < l.end {
		if l.Source[l.current] == '\n' {
			multiline = true
		}
		if l.Source[l.current] == '*' && l.peekByteAt(1) == '/' {
			l.current += 2
			break
		}
		l.current++
	}
	l.Comments = append(l.Comments, ast.Comment{
		Kind: ast.CommentBlock,
		Span: logger.Span{Loc: logger.Loc{Start: int32(start)}, Len: int32(l.current - start)},
		Text: l.Source[start:l.current],
	})
	return multiline
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func (l *Lexer) scanToken() {
	c := l.Source[l.current]

	switch {
	case c == '#':
		l.current++
		if l.current == 1 && l.peekByte() == '!' {
			// hashbang handled by parser before the lexer is constructed
		}
		start := l.current
		for l.current < l.end {
			r, size := utf8.DecodeRuneInString(l.Source[l.current:])
			if !isIdentPart(r) {
				break
			}
			l.current += size
		}
		l.Identifier = l.Source[start:l.current]
		l.Token = TPrivateIdentifier
		return

	case c >= '0' && c <= '9':
		l.scanNumber()
		return

	case c == '.' && l.peekByteAt(1) >= '0' && l.peekByteAt(1) <= '9':
		l.scanNumber()
		return

	case c == '"' || c == '\'':
		l.scanString(c)
		return

	case c == '`':
		l.scanTemplate(true)
		return
	}

	if r, _ := utf8.DecodeRuneInString(l.Source[l.current:]); isIdentStart(r) {
		l.scanIdentifier()
		return
	}

	l.scanPunctuator()
}

func (l *Lexer) scanIdentifier() {
	start := l.current
	for l.current < l.end {
		r, size := utf8.DecodeRuneInString(l.Source[l.current:])
		if !isIdentPart(r) {
			break
		}
		l.current += size
	}
	name := l.Source[start:l.current]
	l.Identifier = name
	if kw, ok := Keywords[name]; ok {
		l.Token = kw
	} else {
		l.Token = TIdentifier
	}
}

func (l *Lexer) scanNumber() {
	start := l.current
	isBigInt := false
	if l.Source[l.current] == '0' && (l.peekByteAt(1) == 'x' || l.peekByteAt(1) == 'X' ||
		l.peekByteAt(1) == 'o' || l.peekByteAt(1) == 'O' || l.peekByteAt(1) == 'b' || l.peekByteAt(1) == 'B') {
		l.current += 2
		for l.current < l.end && (isHexDigit(l.Source[l.current]) || l.Source[l.current] == '_') {
			l.current++
		}
	} else {
		for l.current < l.end && (isDigit(l.Source[l.current]) || l.Source[l.current] == '_') {
			l.current++
		}
		if l.current < l.end && l.Source[l.current] == '.' {
			l.current++
			for l.current < l.end && (isDigit(l.Source[l.current]) || l.Source[l.current] == '_') {
				l.current++
			}
		}
		if l.current < l.end && (l.Source[l.current] == 'e' || l.Source[l.current] == 'E') {
			l.current++
			if l.current < l.end && (l.Source[l.current] == '+' || l.Source[l.current] == '-') {
				l.current++
			}
			for l.current < l.end && isDigit(l.Source[l.current]) {
				l.current++
			}
		}
	}
	if l.current < l.end && l.Source[l.current] == 'n' {
		isBigInt = true
		l.current++
	}
	raw := strings.ReplaceAll(l.Source[start:l.current], "_", "")
	if isBigInt {
		l.BigIntText = raw[:len(raw)-1]
		l.Token = TBigIntLiteral
		return
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// Hex/octal/binary integer literals aren't parsed by ParseFloat;
		// fall back to ParseInt for those prefixes.
		if n, ierr := strconv.ParseInt(raw[2:], radixFor(raw), 64); ierr == nil {
			value = float64(n)
		} else {
			l.addError(start, "invalid number literal")
		}
	}
	l.Number = value
	l.Token = TNumericLiteral
}

func radixFor(raw string) int {
	if len(raw) < 2 {
		return 10
	}
	switch raw[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	default:
		return 10
	}
}

func isDigit(c byte) bool    { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }

func (l *Lexer) scanString(quote byte) {
	start := l.current
	l.current++
	var sb strings.Builder
	for l.current < l.end {
		c := l.Source[l.current]
		if c == quote {
			l.current++
			break
		}
		if c == '\n' {
			l.addError(start, "unterminated string literal")
			break
		}
		if c == '\\' && l.current+1 < l.end {
			l.current++
			sb.WriteByte(unescapeSimple(l.Source[l.current]))
			l.current++
			continue
		}
		sb.WriteByte(c)
		l.current++
	}
	l.StringValue = sb.String()
	l.Token = TStringLiteral
}

func unescapeSimple(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}

// scanTemplate scans from an opening backtick or a "}" that resumes a
// template after an interpolation. The parser is responsible for
// calling back into the lexer to resume scanning the next template
// part once it has parsed the interpolated expression; that level of
// lexer/parser cooperation is represented here by always scanning a
// full head/no-substitution/tail token and leaving substitution
// boundaries to the parser's balanced-brace tracking.
func (l *Lexer) scanTemplate(isHead bool) {
	start := l.current
	l.current++ // skip ` or }
	var sb strings.Builder
	for l.current < l.end {
		c := l.Source[l.current]
		if c == '`' {
			l.current++
			l.StringValue = sb.String()
			if isHead {
				l.Token = TNoSubstitutionTemplateLiteral
			} else {
				l.Token = TTemplateTail
			}
			return
		}
		if c == '$' && l.peekByteAt(1) == '{' {
			l.current += 2
			l.StringValue = sb.String()
			if isHead {
				l.Token = TTemplateHead
			} else {
				l.Token = TTemplateMiddle
			}
			return
		}
		if c == '\\' && l.current+1 < l.end {
			l.current++
			sb.WriteByte(unescapeSimple(l.Source[l.current]))
			l.current++
			continue
		}
		sb.WriteByte(c)
		l.current++
	}
	l.addError(start, "unterminated template literal")
	l.StringValue = sb.String()
	l.Token = TTemplateTail
}

// ResumeTemplate is called by the parser after it finishes parsing the
// "${ expr }" interpolation, to scan the next template chunk starting
// at the current "}" byte.
func (l *Lexer) ResumeTemplate() {
	l.TokenStart = l.current
	l.scanTemplate(false)
}

// RescanSlashAsRegExp is called by the parser when grammar context
// says a "/" at the current token start begins a regular expression
// literal rather than a division operator (spec §4.1: "parse_regular_
// expression" option gates whether the sub-parser runs over the body).
func (l *Lexer) RescanSlashAsRegExp() {
	l.current = l.TokenStart + 1
	inClass := false
	for l.current < l.end {
		c := l.Source[l.current]
		if c == '\\' && l.current+1 < l.end {
			l.current += 2
			continue
		}
		if c == '[' {
			inClass = true
		} else if c == ']' {
			inClass = false
		} else if c == '/' && !inClass {
			l.current++
			break
		} else if c == '\n' {
			l.addError(l.TokenStart, "unterminated regular expression")
			break
		}
		l.current++
	}
	patternEnd := l.current
	flagsStart := l.current
	for l.current < l.end {
		r, size := utf8.DecodeRuneInString(l.Source[l.current:])
		if !isIdentPart(r) {
			break
		}
		l.current += size
	}
	l.RegExpPattern = l.Source[l.TokenStart+1 : patternEnd-1]
	l.RegExpFlags = l.Source[flagsStart:l.current]
	l.Token = TRegExpLiteral
}

var punctuators = []struct {
	text  string
	token Token
}{
	{">>>=", TGreaterThanGreaterThanGreaterThanEquals},
	{"...", TDotDotDot},
	{"===", TEqualsEqualsEquals},
	{"!==", TExclamationEqualsEquals},
	{"**=", TAsteriskAsteriskEquals},
	{"<<=", TLessThanLessThanEquals},
	{">>=", TGreaterThanGreaterThanEquals},
	{">>>", TGreaterThanGreaterThanGreaterThan},
	{"&&=", TAmpersandAmpersandEquals},
	{"||=", TBarBarEquals},
	{"??=", TQuestionQuestionEquals},
	{"?.", TQuestionDot},
	{"=>", TEqualsGreaterThan},
	{"==", TEqualsEquals},
	{"!=", TExclamationEquals},
	{"<=", TLessThanEquals},
	{">=", TGreaterThanEquals},
	{"&&", TAmpersandAmpersand},
	{"||", TBarBar},
	{"??", TQuestionQuestion},
	{"++", TPlusPlus},
	{"--", TMinusMinus},
	{"**", TAsteriskAsterisk},
	{"<<", TLessThanLessThan},
	{">>", TGreaterThanGreaterThan},
	{"+=", TPlusEquals},
	{"-=", TMinusEquals},
	{"*=", TAsteriskEquals},
	{"/=", TSlashEquals},
	{"%=", TPercentEquals},
	{"&=", TAmpersandEquals},
	{"|=", TBarEquals},
	{"^=", TCaretEquals},
	{"&", TAmpersand},
	{"|", TBar},
	{"^", TCaret},
	{"~", TTilde},
	{"!", TExclamation},
	{"?", TQuestion},
	{":", TColon},
	{";", TSemicolon},
	{",", TComma},
	{".", TDot},
	{"(", TOpenParen},
	{")", TCloseParen},
	{"{", TOpenBrace},
	{"}", TCloseBrace},
	{"[", TOpenBracket},
	{"]", TCloseBracket},
	{"<", TLessThan},
	{">", TGreaterThan},
	{"=", TEquals},
	{"+", TPlus},
	{"-", TMinus},
	{"*", TAsterisk},
	{"/", TSlash},
	{"%", TPercent},
	{"@", TAt},
}

// ScanJSXText scans raw JSX text content starting at the lexer's
// current read position (which must sit immediately after an
// already-consumed ">" or "}" token) up to the next "<", "{", or end
// of file. JSX text is literal: unlike ordinary tokenization it does
// not skip whitespace or interpret escapes.
func (l *Lexer) ScanJSXText() {
	l.TokenStart = l.current
	for l.current < l.end {
		c := l.Source[l.current]
		if c == '<' || c == '{' {
			break
		}
		l.current++
	}
	l.Token = TJSXText
	l.HasNewlineBefore = false
}

// SplitGreaterThan is called by the parser when a composite token
// beginning with ">" (">>", ">>>", ">=", ">>=", ">>>=") needs to close
// one level of a nested generic argument list one ">" at a time.
func (l *Lexer) SplitGreaterThan() {
	l.TokenStart++
	l.current = l.TokenStart
	l.scanPunctuator()
}

func (l *Lexer) scanPunctuator() {
	for _, p := range punctuators {
		if strings.HasPrefix(l.Source[l.current:], p.text) {
			l.current += len(p.text)
			l.Token = p.token
			return
		}
	}
	r, size := utf8.DecodeRuneInString(l.Source[l.current:])
	l.addError(l.current, "unexpected character")
	l.current += size
	if size == 0 {
		l.current++
	}
	_ = r
	l.Token = TSyntaxError
}
