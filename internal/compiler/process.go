package compiler

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Processor transforms compiled CSS before it is written.
type Processor interface {
	Process(css string) (string, error)
}

// ProcessorFunc adapts a plain function to the Processor interface.
type ProcessorFunc func(css string) (string, error)

// Process calls f(css).
func (f ProcessorFunc) Process(css string) (string, error) {
	return f(css)
}

// NewProcessor returns the processor selected by opts. Minify wins over
// Prettify, and with neither set the CSS passes through unchanged.
func NewProcessor(opts Options) Processor {
	switch {
	case opts.Minify:
		return ProcessorFunc(Minify)
	case opts.Prettify:
		return ProcessorFunc(Prettify)
	}
	return ProcessorFunc(func(css string) (string, error) { return css, nil })
}

// Minify removes comments and insignificant whitespace. Comments starting
// with "/*!" are kept.
func Minify(src string) (string, error) {
	w := &minifier{}
	if err := walkCSS(src, w, true); err != nil {
		return "", err
	}
	if w.needSemi {
		w.buf.WriteByte(';')
	}
	return w.buf.String(), nil
}

// Prettify reformats CSS with one declaration per line and two-space indentation.
func Prettify(src string) (string, error) {
	w := &prettifier{}
	if err := walkCSS(src, w, false); err != nil {
		return "", err
	}
	return w.buf.String(), nil
}

// cssWriter receives the grammar events of a stylesheet.
type cssWriter interface {
	comment(text string)
	atRule(name, prelude string)
	beginBlock(prelude string)
	selector(sel string, last bool)
	endBlock()
	declaration(prop, value string)
}

// joinMode selects how joinTokens spaces the tokens it renders.
type joinMode int

const (
	prettyJoin joinMode = iota
	compactValue
	compactSelector
)

func walkCSS(src string, w cssWriter, compact bool) error {
	valueMode, selectorMode := prettyJoin, prettyJoin
	if compact {
		valueMode, selectorMode = compactValue, compactSelector
	}

	p := css.NewParser(parse.NewInputString(src), false)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && err != io.EOF {
				return fmt.Errorf("parse css: %w", err)
			}
			return nil
		case css.CommentGrammar:
			w.comment(string(data))
		case css.AtRuleGrammar:
			w.atRule(string(data), joinTokens(p.Values(), valueMode))
		case css.BeginAtRuleGrammar:
			w.beginBlock(joinPrelude(string(data), joinTokens(p.Values(), valueMode)))
		case css.QualifiedRuleGrammar:
			for _, sel := range splitSelectors(p.Values()) {
				w.selector(joinTokens(sel, selectorMode), false)
			}
		case css.BeginRulesetGrammar:
			sels := splitSelectors(p.Values())
			for i, sel := range sels {
				w.selector(joinTokens(sel, selectorMode), i == len(sels)-1)
			}
			w.beginBlock("")
		case css.EndRulesetGrammar, css.EndAtRuleGrammar:
			w.endBlock()
		case css.DeclarationGrammar:
			w.declaration(string(data), joinTokens(p.Values(), valueMode))
		case css.CustomPropertyGrammar:
			var raw bytes.Buffer
			for _, tok := range p.Values() {
				raw.Write(tok.Data)
			}
			w.declaration(string(data), strings.TrimSpace(raw.String()))
		case css.TokenGrammar:
			// stray tokens such as <!-- and --> carry no meaning
		}
	}
}

func joinPrelude(name, prelude string) string {
	if prelude == "" {
		return name
	}
	return name + " " + prelude
}

// splitSelectors splits a selector list on its top-level commas. Commas
// inside functions, parentheses and attribute brackets are kept.
func splitSelectors(tokens []css.Token) [][]css.Token {
	var (
		sels  [][]css.Token
		depth int
		start int
	)
	for i, tok := range tokens {
		switch tok.TokenType {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.CommaToken:
			if depth == 0 {
				sels = append(sels, tokens[start:i])
				start = i + 1
			}
		}
	}
	return append(sels, tokens[start:])
}

// joinTokens renders tokens with every whitespace run collapsed to a single
// space. Comments inside values are dropped.
func joinTokens(tokens []css.Token, mode joinMode) string {
	var b strings.Builder
	hadSpace := false
	var prev css.Token

	for _, tok := range tokens {
		if tok.TokenType == css.WhitespaceToken || tok.TokenType == css.CommentToken {
			hadSpace = true
			continue
		}
		if b.Len() > 0 && needsSpace(prev, tok, hadSpace, mode) {
			b.WriteByte(' ')
		}
		hadSpace = false
		b.Write(tok.Data)
		prev = tok
	}
	return b.String()
}

func needsSpace(prev, next css.Token, hadSpace bool, mode joinMode) bool {
	if prev.TokenType == css.CommaToken {
		return mode == prettyJoin
	}
	if !hadSpace {
		return false
	}
	switch {
	case prev.TokenType == css.LeftParenthesisToken, prev.TokenType == css.FunctionToken:
		return false
	case next.TokenType == css.CommaToken, next.TokenType == css.RightParenthesisToken:
		return false
	case mode != prettyJoin && prev.TokenType == css.ColonToken:
		return false
	case mode == compactSelector && (isCombinator(prev) || isCombinator(next)):
		return false
	}
	return true
}

func isCombinator(tok css.Token) bool {
	if tok.TokenType != css.DelimToken || len(tok.Data) != 1 {
		return false
	}
	switch tok.Data[0] {
	case '>', '+', '~':
		return true
	}
	return false
}

type minifier struct {
	buf      bytes.Buffer
	needSemi bool
}

func (m *minifier) comment(text string) {
	if strings.HasPrefix(text, "/*!") {
		m.flushSemi()
		m.buf.WriteString(text)
	}
}

func (m *minifier) atRule(name, prelude string) {
	m.flushSemi()
	m.buf.WriteString(joinPrelude(name, prelude))
	m.needSemi = true
}

func (m *minifier) beginBlock(prelude string) {
	if prelude != "" {
		m.flushSemi()
		m.buf.WriteString(prelude)
	}
	m.buf.WriteByte('{')
	m.needSemi = false
}

func (m *minifier) selector(sel string, last bool) {
	m.flushSemi()
	m.buf.WriteString(sel)
	if !last {
		m.buf.WriteByte(',')
	}
}

func (m *minifier) endBlock() {
	m.buf.WriteByte('}')
	m.needSemi = false
}

func (m *minifier) declaration(prop, value string) {
	m.flushSemi()
	m.buf.WriteString(prop)
	m.buf.WriteByte(':')
	m.buf.WriteString(value)
	m.needSemi = true
}

func (m *minifier) flushSemi() {
	if m.needSemi {
		m.buf.WriteByte(';')
		m.needSemi = false
	}
}

type prettifier struct {
	buf   bytes.Buffer
	depth int
}

func (p *prettifier) indent() {
	p.buf.WriteString(strings.Repeat("  ", p.depth))
}

func (p *prettifier) comment(text string) {
	p.indent()
	p.buf.WriteString(text)
	p.buf.WriteByte('\n')
}

func (p *prettifier) atRule(name, prelude string) {
	p.indent()
	p.buf.WriteString(joinPrelude(name, prelude))
	p.buf.WriteString(";\n")
}

func (p *prettifier) beginBlock(prelude string) {
	if prelude != "" {
		p.indent()
		p.buf.WriteString(prelude)
	}
	p.buf.WriteString(" {\n")
	p.depth++
}

func (p *prettifier) selector(sel string, last bool) {
	p.indent()
	p.buf.WriteString(sel)
	if !last {
		p.buf.WriteString(",\n")
	}
}

func (p *prettifier) endBlock() {
	if p.depth > 0 {
		p.depth--
	}
	p.indent()
	p.buf.WriteString("}\n")
}

func (p *prettifier) declaration(prop, value string) {
	p.indent()
	p.buf.WriteString(prop)
	p.buf.WriteString(": ")
	p.buf.WriteString(value)
	p.buf.WriteString(";\n")
}
