package format

import "strings"

// printMode selects how a Doc's Line nodes are rendered while it is
// being committed: Flat prints them as their flat-mode text (nothing,
// or a single space), Expanded prints them as real newlines.
type printMode uint8

const (
	modeFlat printMode = iota
	modeExpand
)

// cmd is one entry on the printer's explicit work stack: a document
// paired with the indent/align state and print mode it should be
// rendered under. Walking an explicit stack instead of recursing keeps
// the fits-on-line lookahead (which walks a fresh stack holding just
// the document being measured, without committing it) cheap and
// allocation-light.
type cmd struct {
	doc    Doc
	indent indentState
	mode   printMode
}

type indentState struct {
	level int    // number of indent units
	align int    // extra alignment columns, independent of indent units
	unit  string // one indent unit's text, e.g. "  " or "\t"
}

func (s indentState) text() string {
	return strings.Repeat(s.unit, s.level) + strings.Repeat(" ", s.align)
}

func (s indentState) width() int {
	return s.level*len(s.unit) + s.align
}

func (s indentState) indented() indentState {
	s.level++
	return s
}

func (s indentState) dedented() indentState {
	if s.level > 0 {
		s.level--
	}
	return s
}

func (s indentState) aligned(n int) indentState {
	s.align += n
	return s
}

type printer struct {
	opts       Options
	out        strings.Builder
	pos        int // column of the current line
	lineSuffix []cmd
}

// Print commits a Document to text under the given options.
func Print(doc Doc, opts Options) string {
	propagateExpand(doc)
	p := &printer{opts: opts}
	root := indentState{unit: opts.indentUnit()}
	stack := []cmd{{doc: doc, indent: root, mode: modeExpand}}
	p.run(stack)
	return p.out.String()
}

func (p *printer) run(stack []cmd) {
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = p.step(top, stack)
	}
}

// step processes a single command, pushing whatever follow-up commands
// its children need onto stack (which is LIFO, so children are pushed
// in reverse order), and returns the updated stack.
func (p *printer) step(c cmd, stack []cmd) []cmd {
	switch v := c.doc.data.(type) {
	case dText:
		p.write(v.s)

	case dConcat:
		for i := len(v.parts) - 1; i >= 0; i-- {
			stack = append(stack, cmd{v.parts[i], c.indent, c.mode})
		}

	case *dGroup:
		mode := modeFlat
		if v.expand || c.mode == modeExpand && !fits(cmd{v.content, c.indent, modeFlat}, p.remaining()) {
			mode = modeExpand
		}
		stack = append(stack, cmd{v.content, c.indent, mode})

	case dIndent:
		stack = append(stack, cmd{v.content, c.indent.indented(), c.mode})

	case dDedent:
		stack = append(stack, cmd{v.content, c.indent.dedented(), c.mode})

	case dAlign:
		stack = append(stack, cmd{v.content, c.indent.aligned(v.n), c.mode})

	case dIndentIfGroupBreaks:
		stack = append(stack, cmd{v.content, c.indent, c.mode})

	case dConditionalGroupContent:
		if (v.flat && c.mode == modeFlat) || (!v.flat && c.mode == modeExpand) {
			stack = append(stack, cmd{v.content, c.indent, c.mode})
		}

	case dLine:
		p.writeLine(v.mode, c)

	case dLineSuffix:
		p.lineSuffix = append(p.lineSuffix, cmd{v.content, c.indent, c.mode})

	case dLineSuffixBoundary:
		if len(p.lineSuffix) > 0 {
			stack = append(stack, cmd{Doc{dLine{LineHard}}, c.indent, c.mode})
		}

	case dExpandParent:
		// no output of its own; propagateExpand already consumed this

	case dFill:
		stack = p.stepFill(v, c, stack)

	case dBestFitting:
		stack = p.stepBestFitting(v, c, stack)
	}
	return stack
}

func (p *printer) writeLine(mode LineMode, c cmd) {
	flat := c.mode == modeFlat && mode != LineHard && mode != LineEmpty
	if flat {
		if mode == LineSoftOrSpace {
			p.write(" ")
		}
		return
	}
	p.flushLineSuffix()
	if mode == LineEmpty {
		p.out.WriteString("\n")
	}
	p.out.WriteString("\n")
	p.out.WriteString(c.indent.text())
	p.pos = c.indent.width()
}

func (p *printer) flushLineSuffix() {
	if len(p.lineSuffix) == 0 {
		return
	}
	pending := p.lineSuffix
	p.lineSuffix = nil
	p.run(reverseCmds(pending))
}

func reverseCmds(cmds []cmd) []cmd {
	out := make([]cmd, len(cmds))
	for i, c := range cmds {
		out[len(cmds)-1-i] = c
	}
	return out
}

func (p *printer) write(s string) {
	p.out.WriteString(s)
	if idx := strings.LastIndexByte(s, '\n'); idx >= 0 {
		p.pos = len(s) - idx - 1
	} else {
		p.pos += len(s)
	}
}

func (p *printer) remaining() int {
	return p.opts.LineWidth - p.pos
}

// fits measures whether c alone (not what follows it on the printer's
// stack) can be printed without exceeding width columns, without
// actually committing any output — the core decision the group
// printer relies on to choose flat vs expanded mode.
func fits(c cmd, width int) bool {
	stack := []cmd{c}
	remaining := width
	for len(stack) > 0 && remaining >= 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v := top.doc.data.(type) {
		case dText:
			remaining -= len(v.s)

		case dConcat:
			for i := len(v.parts) - 1; i >= 0; i-- {
				stack = append(stack, cmd{v.parts[i], top.indent, top.mode})
			}

		case *dGroup:
			mode := modeFlat
			if v.expand {
				mode = modeExpand
			}
			stack = append(stack, cmd{v.content, top.indent, mode})

		case dIndent:
			stack = append(stack, cmd{v.content, top.indent.indented(), top.mode})

		case dDedent:
			stack = append(stack, cmd{v.content, top.indent.dedented(), top.mode})

		case dAlign:
			stack = append(stack, cmd{v.content, top.indent.aligned(v.n), top.mode})

		case dIndentIfGroupBreaks:
			stack = append(stack, cmd{v.content, top.indent, top.mode})

		case dConditionalGroupContent:
			if (v.flat && top.mode == modeFlat) || (!v.flat && top.mode == modeExpand) {
				stack = append(stack, cmd{v.content, top.indent, top.mode})
			}

		case dLine:
			if top.mode == modeExpand || v.mode == LineHard || v.mode == LineEmpty {
				// A real newline always fits: whatever follows starts a fresh line.
				return true
			}
			if v.mode == LineSoftOrSpace {
				remaining--
			}

		case dLineSuffix:
			// deferred content never counts against the current line

		case dLineSuffixBoundary:

		case dFill:
			for i := len(v.parts) - 1; i >= 0; i-- {
				stack = append(stack, cmd{v.parts[i], top.indent, top.mode})
			}

		case dBestFitting:
			if len(v.variants) > 0 {
				stack = append(stack, cmd{v.variants[0], top.indent, top.mode})
			}

		case dExpandParent:
			// already folded into group.expand by propagateExpand
		}
	}
	return remaining >= 0
}

func (p *printer) stepFill(v dFill, c cmd, stack []cmd) []cmd {
	// Each (content, separator) pair is fit-tested against what remains
	// of the line independently, so a long list can wrap mid-sequence
	// instead of committing the whole Fill to one mode.
	for i := 0; i < len(v.parts); i += 2 {
		content := v.parts[i]
		mode := modeFlat
		if !fits(cmd{content, c.indent, modeFlat}, p.remaining()) {
			mode = modeExpand
		}
		p.run([]cmd{{content, c.indent, mode}})
		if i+1 < len(v.parts) {
			sep := v.parts[i+1]
			sepMode := modeFlat
			if !fits(cmd{sep, c.indent, modeFlat}, p.remaining()) {
				sepMode = modeExpand
			}
			p.run([]cmd{{sep, c.indent, sepMode}})
		}
	}
	return stack
}

func (p *printer) stepBestFitting(v dBestFitting, c cmd, stack []cmd) []cmd {
	if len(v.variants) == 0 {
		return stack
	}
	for i, variant := range v.variants[:len(v.variants)-1] {
		if fits(cmd{variant, c.indent, modeFlat}, p.remaining()) {
			return append(stack, cmd{v.variants[i], c.indent, modeFlat})
		}
	}
	return append(stack, cmd{v.variants[len(v.variants)-1], c.indent, modeExpand})
}
