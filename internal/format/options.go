// Package format renders a parsed Program back into canonically styled
// source text, independent of the raw, precedence-preserving printer in
// internal/codegen. It builds a Document intermediate representation —
// a tree of text, line breaks, and groups — and then commits that tree
// to text with a width-budget printer that decides, group by group,
// whether flattening the group to a single line still fits.
package format

import "fmt"

// IndentStyle selects between tab and space indentation.
type IndentStyle uint8

const (
	IndentSpace IndentStyle = iota
	IndentTab
)

// QuoteStyle selects the preferred quote character for string literals.
type QuoteStyle uint8

const (
	QuoteDouble QuoteStyle = iota
	QuoteSingle
)

func (q QuoteStyle) Char() byte {
	if q == QuoteSingle {
		return '\''
	}
	return '"'
}

// QuoteProperties controls when object property keys get quoted.
type QuoteProperties uint8

const (
	QuotePropertiesAsNeeded QuoteProperties = iota
	QuotePropertiesPreserve
	QuotePropertiesConsistent
)

// TrailingCommas controls where trailing commas are printed.
type TrailingCommas uint8

const (
	TrailingCommasAll TrailingCommas = iota
	TrailingCommasES5
	TrailingCommasNone
)

// Semicolons controls whether statements always get a trailing `;`.
type Semicolons uint8

const (
	SemicolonsAlways Semicolons = iota
	SemicolonsAsNeeded
)

// ArrowParentheses controls whether a single arrow-function parameter
// is always wrapped in parens or only when syntactically required.
type ArrowParentheses uint8

const (
	ArrowParensAlways ArrowParentheses = iota
	ArrowParensAsNeeded
)

// Expand controls when object/array literals are forced onto multiple lines.
type Expand uint8

const (
	ExpandAuto Expand = iota
	ExpandAlways
	ExpandNever
)

// Options holds the knobs that shape the printed document, mirroring
// the option surface of a Prettier-style formatter. Program and the
// printer read IndentStyle, IndentWidth, LineWidth, TrailingCommas
// (any value but TrailingCommasNone prints them), BracketSpacing and
// JSDoc; QuoteStyle, JSXQuoteStyle, QuoteProperties, Semicolons,
// ArrowParentheses, BracketSameLine and Expand do not change the output.
type Options struct {
	IndentStyle      IndentStyle
	IndentWidth      int
	LineWidth        int
	QuoteStyle       QuoteStyle
	JSXQuoteStyle    QuoteStyle
	QuoteProperties  QuoteProperties
	TrailingCommas   TrailingCommas
	Semicolons       Semicolons
	ArrowParentheses ArrowParentheses
	BracketSpacing   bool
	BracketSameLine  bool
	Expand           Expand
	JSDoc            JSDocOptions
}

// Default returns the formatter's baseline option set.
func Default() Options {
	return Options{
		IndentStyle:      IndentSpace,
		IndentWidth:      2,
		LineWidth:        100,
		QuoteStyle:       QuoteDouble,
		JSXQuoteStyle:    QuoteDouble,
		QuoteProperties:  QuotePropertiesAsNeeded,
		TrailingCommas:   TrailingCommasAll,
		Semicolons:       SemicolonsAlways,
		ArrowParentheses: ArrowParensAlways,
		BracketSpacing:   true,
		Expand:           ExpandAuto,
		JSDoc: JSDocOptions{
			CapitalizeDescriptions: true,
			SingleLineWhenPossible: true,
		},
	}
}

func (o Options) indentUnit() string {
	if o.IndentStyle == IndentTab {
		return "\t"
	}
	width := o.IndentWidth
	if width <= 0 {
		width = 2
	}
	return fmt.Sprintf("%*s", width, "")
}
