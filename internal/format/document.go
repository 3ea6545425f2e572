package format

// Doc is a node in the format Document IR: a tree of text fragments,
// requested line breaks, and groups that the printer may flatten onto
// one line if the remaining content fits the configured width. The
// vocabulary (Group/Indent/Line/Fill/BestFitting/ExpandParent) follows
// the tagged-union shape a Document's FormatElement takes, re-expressed
// here as a closed set of Go structs implementing a marker interface
// instead of a Rust enum.
type Doc struct {
	data docData
}

type docData interface{ isDoc() }

// LineMode selects how a Line node behaves when its enclosing group is
// printed flat versus expanded.
type LineMode uint8

const (
	// LineSoft prints nothing when flat, a newline when expanded.
	LineSoft LineMode = iota
	// LineSoftOrSpace prints a space when flat, a newline when expanded.
	LineSoftOrSpace
	// LineHard always prints a newline and forces its enclosing groups to expand.
	LineHard
	// LineEmpty is a hard line plus a fully blank line, also forcing expansion.
	LineEmpty
)

type dText struct{ s string }
type dLine struct{ mode LineMode }
type dConcat struct{ parts []Doc }
type dGroup struct {
	content Doc
	id      string // optional label; the printer does not look groups up by id
	expand  bool   // forced expansion, e.g. because content already contains a hard line
}
type dIndent struct{ content Doc }
type dDedent struct{ content Doc }
type dAlign struct {
	n       int
	content Doc
}
type dIndentIfGroupBreaks struct {
	groupID string
	content Doc
}
type dConditionalGroupContent struct {
	groupID string
	flat    bool // true: print in flat mode; false: print in expanded mode
	content Doc
}
type dLineSuffix struct{ content Doc }
type dLineSuffixBoundary struct{}
type dExpandParent struct{}
type dFill struct{ parts []Doc } // alternating content/separator, each pair fit-tested independently
type dBestFitting struct{ variants []Doc }

func (dText) isDoc()                     {}
func (dLine) isDoc()                     {}
func (dConcat) isDoc()                   {}
func (*dGroup) isDoc()                   {}
func (dIndent) isDoc()                   {}
func (dDedent) isDoc()                   {}
func (dAlign) isDoc()                    {}
func (dIndentIfGroupBreaks) isDoc()      {}
func (dConditionalGroupContent) isDoc()  {}
func (dLineSuffix) isDoc()               {}
func (dLineSuffixBoundary) isDoc()       {}
func (dExpandParent) isDoc()             {}
func (dFill) isDoc()                     {}
func (dBestFitting) isDoc()              {}

// Text is a literal run of characters with no embedded line breaks.
func Text(s string) Doc { return Doc{dText{s}} }

// Concat joins documents with no separator.
func Concat(docs ...Doc) Doc { return Doc{dConcat{docs}} }

// Join concatenates docs, inserting sep between each pair.
func Join(sep Doc, docs []Doc) Doc {
	if len(docs) == 0 {
		return Concat()
	}
	parts := make([]Doc, 0, len(docs)*2-1)
	for i, d := range docs {
		if i > 0 {
			parts = append(parts, sep)
		}
		parts = append(parts, d)
	}
	return Concat(parts...)
}

// SoftLine breaks only when its group expands; otherwise prints nothing.
func SoftLine() Doc { return Doc{dLine{LineSoft}} }

// Line breaks when its group expands; otherwise prints a single space.
func Line() Doc { return Doc{dLine{LineSoftOrSpace}} }

// HardLine always breaks and forces every enclosing group to expand.
func HardLine() Doc { return Doc{dLine{LineHard}} }

// EmptyLine is a hard line followed by one fully blank line.
func EmptyLine() Doc { return Doc{dLine{LineEmpty}} }

// Group marks content as a unit the printer measures and flattens if
// it fits within the remaining line width; it expands (fully breaking
// every Line inside it) only when it doesn't fit, or when it was
// forced to expand because it already contains a hard break.
func Group(content Doc) Doc { return Doc{&dGroup{content: content}} }

// GroupWithID is a Group carrying an id label. The printer treats it
// exactly like Group; IndentIfGroupBreaks, IfGroupBreaks and IfGroupFits
// do not look it up by id.
func GroupWithID(id string, content Doc) Doc { return Doc{&dGroup{content: content, id: id}} }

// Indent increases the indent level for content, taking effect the
// next time a Line inside it actually breaks.
func Indent(content Doc) Doc { return Doc{dIndent{content}} }

// Dedent removes one indent level from content.
func Dedent(content Doc) Doc { return Doc{dDedent{content}} }

// Align adds n columns of alignment, independent of the indent unit
// width, used e.g. to line up continuation lines under an opening token.
func Align(n int, content Doc) Doc { return Doc{dAlign{n, content}} }

// IndentIfGroupBreaks records content with a group id. The printer does
// not look the named group up: content is printed at the current
// indentation, with no extra level, whatever mode that group takes.
func IndentIfGroupBreaks(groupID string, content Doc) Doc {
	return Doc{dIndentIfGroupBreaks{groupID, content}}
}

// IfGroupBreaks prints content only when the enclosing group being
// printed is expanded. The printer decides by that enclosing mode;
// groupID is not looked up.
func IfGroupBreaks(groupID string, content Doc) Doc {
	return Doc{dConditionalGroupContent{groupID, false, content}}
}

// IfGroupFits prints content only when the enclosing group being printed
// is flat. As with IfGroupBreaks, groupID is not looked up.
func IfGroupFits(groupID string, content Doc) Doc {
	return Doc{dConditionalGroupContent{groupID, true, content}}
}

// LineSuffix defers content to just before the next hard line break —
// used for trailing line comments that must not affect fits-on-line math.
func LineSuffix(content Doc) Doc { return Doc{dLineSuffix{content}} }

// LineSuffixBoundary forces any pending line suffixes to flush even
// though no hard line was requested at this point.
func LineSuffixBoundary() Doc { return Doc{dLineSuffixBoundary{}} }

// ExpandParent forces every enclosing group to print expanded, with
// no content of its own.
func ExpandParent() Doc { return Doc{dExpandParent{}} }

// Fill alternates content and separator docs (content, sep, content,
// sep, ...), measuring each adjacent content/separator pair
// independently instead of committing the whole sequence to one mode,
// so a long sequence can wrap mid-list.
func Fill(parts ...Doc) Doc { return Doc{dFill{parts}} }

// BestFitting picks the first variant (ordered most-flat to most-
// expanded) that fits the remaining width, falling back to the last
// variant if none do.
func BestFitting(variants ...Doc) Doc { return Doc{dBestFitting{variants}} }
