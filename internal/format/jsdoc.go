package format

import (
	"strings"
	"unicode"
)

// JSDocOptions controls how /** ... */ comments get reflowed.
type JSDocOptions struct {
	CapitalizeDescriptions bool
	SingleLineWhenPossible bool
}

// jsdocTag is a single @tag entry extracted from a comment's inner text.
type jsdocTag struct {
	kind    string
	typ     string // contents of a {Type} annotation, if any
	name    string // parameter/property name, if any
	comment string
}

// FormatJSDocComment attempts to reflow a `/** ... */` block comment to
// fit within lineWidth columns once reindented to indentColumn.
// It returns ("", true) for an empty block (so the caller drops it), and
// ("", false) when raw is not a JSDoc block or reflowing would leave it
// unchanged (so the caller should leave the original text alone).
//
// This is a line-oriented reflow, not a Document-based one: JSDoc's
// internal `* ` gutter needs exact per-line control that doesn't map
// cleanly onto the group/indent vocabulary used for code.
func FormatJSDocComment(raw string, opts JSDocOptions, lineWidth, indentColumn int) (string, bool) {
	if len(raw) < 5 || !strings.HasPrefix(raw, "/**") || !strings.HasSuffix(raw, "*/") {
		return "", false
	}
	inner := raw[3 : len(raw)-2]

	description, tags := parseJSDoc(inner)
	description = strings.TrimSpace(description)
	if description == "" && len(tags) == 0 {
		return "", true // an empty JSDoc block carries no information
	}

	prefixWidth := indentColumn + 3 // " * "
	available := lineWidth - prefixWidth
	if available < 1 {
		available = 1
	}

	var lines []string
	if description != "" {
		desc := description
		if opts.CapitalizeDescriptions {
			desc = capitalizeFirst(desc)
		}
		wrapText(desc, available, &lines)
	}

	var prevKind string
	havePrev := false
	for _, tag := range tags {
		if len(lines) > 0 && lines[len(lines)-1] != "" {
			if !havePrev || tagsNeedSeparator(prevKind, tag.kind) {
				lines = append(lines, "")
			}
		}
		formatTag(tag, opts, available, &lines)
		prevKind = tag.kind
		havePrev = true
	}

	if opts.SingleLineWhenPossible && canBeSingleLine(lines, available) {
		return "/** " + lines[0] + " */", true
	}

	var b strings.Builder
	b.WriteString("/**")
	indent := strings.Repeat(" ", indentColumn)
	for _, line := range lines {
		b.WriteString("\n")
		b.WriteString(indent)
		if line == "" {
			b.WriteString(" *")
		} else {
			b.WriteString(" * ")
			b.WriteString(line)
		}
	}
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString(" */")
	result := b.String()
	if result == raw {
		return "", false
	}
	return result, true
}

// parseJSDoc splits a comment's inner text (between /** and */) into
// its leading description and its @tag entries. Each JSDoc line's
// leading " * " or "*" gutter is stripped first.
func parseJSDoc(inner string) (string, []jsdocTag) {
	var gutterless []string
	for _, line := range strings.Split(inner, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case strings.HasPrefix(trimmed, "* "):
			gutterless = append(gutterless, trimmed[2:])
		case strings.HasPrefix(trimmed, "*"):
			gutterless = append(gutterless, trimmed[1:])
		default:
			gutterless = append(gutterless, trimmed)
		}
	}
	text := strings.Join(gutterless, "\n")

	var descBuilder strings.Builder
	var tags []jsdocTag
	var cur *jsdocTag
	var curBody []string

	flush := func() {
		if cur != nil {
			cur.comment = strings.TrimSpace(strings.Join(curBody, "\n"))
			tags = append(tags, *cur)
		}
		cur = nil
		curBody = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "@") {
			flush()
			kind, rest := splitTagLine(trimmed[1:])
			typ, name, comment := splitTypeNameComment(rest)
			t := jsdocTag{kind: normalizeTagKind(kind), typ: typ, name: name}
			cur = &t
			curBody = nil
			if comment != "" {
				curBody = append(curBody, comment)
			}
			continue
		}
		if cur != nil {
			curBody = append(curBody, line)
		} else {
			descBuilder.WriteString(line)
			descBuilder.WriteString("\n")
		}
	}
	flush()

	return descBuilder.String(), tags
}

func splitTagLine(s string) (kind, rest string) {
	i := 0
	for i < len(s) && !unicode.IsSpace(rune(s[i])) {
		i++
	}
	kind = s[:i]
	if i < len(s) {
		rest = strings.TrimLeft(s[i:], " \t")
	}
	return
}

// splitTypeNameComment pulls an optional leading `{Type}` and, for
// tags that carry one, a following bare/bracketed name out of rest,
// leaving whatever remains as the tag's free-text comment.
func splitTypeNameComment(rest string) (typ, name, comment string) {
	if strings.HasPrefix(rest, "{") {
		if end := strings.IndexByte(rest, '}'); end >= 0 {
			typ = rest[1:end]
			rest = strings.TrimLeft(rest[end+1:], " \t")
		}
	}
	if rest == "" {
		return typ, "", ""
	}
	if strings.HasPrefix(rest, "[") {
		if end := strings.IndexByte(rest, ']'); end >= 0 {
			name = rest[:end+1]
			rest = strings.TrimLeft(rest[end+1:], " \t")
			return typ, name, rest
		}
	}
	fields := strings.SplitN(rest, " ", 2)
	if len(fields) > 0 && isLikelyName(fields[0]) {
		name = fields[0]
		if len(fields) == 2 {
			comment = strings.TrimLeft(fields[1], " \t")
		}
		return typ, name, comment
	}
	return typ, "", rest
}

func isLikelyName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r == '.' || r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

var nameTakingTags = map[string]bool{
	"param": true, "property": true, "typedef": true, "template": true,
}

var typeOnlyTags = map[string]bool{
	"returns": true, "yields": true, "throws": true, "type": true, "satisfies": true,
}

func formatTag(tag jsdocTag, opts JSDocOptions, available int, lines *[]string) {
	switch {
	case nameTakingTags[tag.kind]:
		formatTagWithTypeNameComment(tag, opts, available, lines)
	case typeOnlyTags[tag.kind]:
		formatTagWithTypeComment(tag, opts, available, lines)
	case tag.kind == "default" || tag.kind == "defaultValue":
		line := buildTagPrefix(tag.kind, tag.typ, "")
		if tag.comment != "" {
			line += " " + tag.comment
		}
		wrapTagLine(line, available, lines)
	case tag.kind == "example":
		*lines = append(*lines, "@"+tag.kind)
		if tag.comment != "" {
			for _, l := range strings.Split(tag.comment, "\n") {
				*lines = append(*lines, l)
			}
			for len(*lines) > 0 && (*lines)[len(*lines)-1] == "" {
				*lines = (*lines)[:len(*lines)-1]
			}
		}
	default:
		formatGenericTag(tag, opts, available, lines)
	}
}

func buildTagPrefix(kind, typ, name string) string {
	s := "@" + kind
	if typ != "" {
		s += " {" + normalizeType(typ) + "}"
	}
	if name != "" {
		s += " " + name
	}
	return s
}

func formatTagWithTypeNameComment(tag jsdocTag, opts JSDocOptions, available int, lines *[]string) {
	prefix := buildTagPrefix(tag.kind, tag.typ, tag.name)
	if tag.comment == "" {
		*lines = append(*lines, prefix)
		return
	}
	sep, comment := " ", tag.comment
	if rest, ok := strings.CutPrefix(comment, "- "); ok {
		sep, comment = " - ", rest
	}
	if hasStructuredContent(comment) {
		text := comment
		if opts.CapitalizeDescriptions {
			text = capitalizeFirst(text)
		}
		first, rest := splitFirstParagraph(text)
		line := prefix + sep + joinWords(first)
		wrapTagLine(line, available, lines)
		if rest != "" {
			wrapText(rest, available, lines)
		}
		return
	}
	desc := joinWords(comment)
	if opts.CapitalizeDescriptions {
		desc = capitalizeFirst(desc)
	}
	wrapTagLine(prefix+sep+desc, available, lines)
}

func formatTagWithTypeComment(tag jsdocTag, opts JSDocOptions, available int, lines *[]string) {
	prefix := buildTagPrefix(tag.kind, tag.typ, "")
	if tag.comment == "" {
		*lines = append(*lines, prefix)
		return
	}
	if hasStructuredContent(tag.comment) {
		text := tag.comment
		if opts.CapitalizeDescriptions {
			text = capitalizeFirst(text)
		}
		first, rest := splitFirstParagraph(text)
		wrapTagLine(prefix+" "+joinWords(first), available, lines)
		if rest != "" {
			wrapText(rest, available, lines)
		}
		return
	}
	desc := joinWords(tag.comment)
	if opts.CapitalizeDescriptions {
		desc = capitalizeFirst(desc)
	}
	wrapTagLine(prefix+" "+desc, available, lines)
}

var noCapitalizeTags = map[string]bool{
	"name": true, "category": true, "see": true, "since": true, "version": true,
	"author": true, "module": true, "namespace": true, "memberof": true,
	"requires": true, "license": true, "borrows": true, "extends": true,
	"augments": true, "implements": true, "mixes": true, "override": true,
	"access": true, "alias": true, "default": true, "defaultValue": true,
}

func formatGenericTag(tag jsdocTag, opts JSDocOptions, available int, lines *[]string) {
	if tag.comment == "" {
		*lines = append(*lines, "@"+tag.kind)
		return
	}
	shouldCapitalize := opts.CapitalizeDescriptions && !noCapitalizeTags[tag.kind]
	if hasStructuredContent(tag.comment) {
		text := tag.comment
		if shouldCapitalize {
			text = capitalizeFirst(text)
		}
		first, rest := splitFirstParagraph(text)
		line := "@" + tag.kind + " " + joinWords(first)
		wrapTagLine(line, available, lines)
		if rest != "" {
			wrapText(rest, available, lines)
		}
		return
	}
	desc := joinWords(tag.comment)
	if shouldCapitalize {
		desc = capitalizeFirst(desc)
	}
	wrapTagLine("@"+tag.kind+" "+desc, available, lines)
}

func joinWords(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func normalizeTagKind(kind string) string {
	switch kind {
	case "return":
		return "returns"
	case "arg":
		return "param"
	case "yield":
		return "yields"
	case "prop":
		return "property"
	default:
		return kind
	}
}

var tagGroup = map[string]int{
	"param": 0, "property": 0, "this": 0, "template": 0, "typedef": 0,
	"returns": 1, "yields": 1,
	"throws":  2,
	"example": 3,
	"constant": 4, "name": 4, "summary": 4, "description": 4, "module": 4,
	"file": 4, "internal": 4, "public": 4, "private": 4, "protected": 4,
	"readonly": 4, "abstract": 4, "virtual": 4, "static": 4, "override": 4,
	"deprecated": 4, "since": 4, "version": 4, "author": 4, "license": 4,
	"category": 4, "memberof": 4, "namespace": 4, "class": 4, "interface": 4,
	"enum": 4, "type": 4, "satisfies": 4, "default": 4, "defaultValue": 4,
	"see": 5, "link": 5,
}

func tagsNeedSeparator(prev, current string) bool {
	if prev == current {
		return false
	}
	pg, pok := tagGroup[prev]
	cg, cok := tagGroup[current]
	if pok && cok {
		return pg != cg
	}
	return true
}

func hasStructuredContent(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isStructuredLine(trimmed) {
			return true
		}
	}
	return false
}

func isStructuredLine(trimmed string) bool {
	switch {
	case trimmed == "":
		return true
	case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "), strings.HasPrefix(trimmed, "+ "):
		return true
	case startsWithNumberedList(trimmed):
		return true
	case len(trimmed) >= 5 && isAllOf(trimmed, "=-*"):
		return true
	case strings.HasPrefix(trimmed, "```"):
		return true
	case strings.HasPrefix(trimmed, "|"):
		return true
	case strings.HasPrefix(trimmed, "#"):
		return true
	case strings.HasPrefix(trimmed, ">"):
		return true
	}
	return false
}

func isAllOf(s, set string) bool {
	for _, r := range s {
		if !strings.ContainsRune(set, r) {
			return false
		}
	}
	return true
}

func startsWithNumberedList(s string) bool {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i > 0 && i < len(s) && s[i] == '.'
}

func normalizeType(t string) string {
	cleaned := t
	if strings.Contains(t, "\n") {
		var parts []string
		for _, line := range strings.Split(t, "\n") {
			trimmed := strings.TrimLeft(line, " \t")
			switch {
			case strings.HasPrefix(trimmed, "* "):
				parts = append(parts, strings.TrimRight(trimmed[2:], " \t"))
			case strings.HasPrefix(trimmed, "*"):
				parts = append(parts, strings.TrimRight(trimmed[1:], " \t"))
			default:
				parts = append(parts, strings.TrimRight(trimmed, " \t"))
			}
		}
		cleaned = strings.Join(parts, " ")
	}
	return joinWords(strings.TrimSpace(cleaned))
}

func capitalizeFirst(s string) string {
	if s == "" || strings.HasPrefix(s, "`") {
		return s
	}
	r := []rune(s)
	if unicode.IsLower(r[0]) {
		r[0] = unicode.ToUpper(r[0])
	}
	return string(r)
}

func splitFirstParagraph(text string) (string, string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if i > 0 && (trimmed == "" || isStructuredLine(trimmed)) {
			first := strings.TrimRight(strings.Join(lines[:i], "\n"), " \t\n")
			rest := strings.TrimLeft(strings.Join(lines[i:], "\n"), "\n")
			return first, rest
		}
	}
	return text, ""
}

func wrapText(text string, maxWidth int, lines *[]string) {
	raw := strings.Split(text, "\n")
	i := 0
	inFence := false
	for i < len(raw) {
		line := raw[i]
		trimmed := strings.TrimSpace(line)

		if inFence {
			*lines = append(*lines, line)
			if strings.HasPrefix(trimmed, "```") {
				inFence = false
			}
			i++
			continue
		}
		if trimmed == "" {
			*lines = append(*lines, "")
			i++
			continue
		}
		if strings.HasPrefix(trimmed, "```") {
			*lines = append(*lines, trimmed)
			inFence = true
			i++
			continue
		}
		if isStructuredLine(trimmed) {
			*lines = append(*lines, trimmed)
			i++
			for i < len(raw) {
				next := raw[i]
				nextTrimmed := strings.TrimSpace(next)
				if nextTrimmed == "" || isStructuredLine(nextTrimmed) || !strings.HasPrefix(next, " ") {
					break
				}
				leading := len(next) - len(strings.TrimLeft(next, " "))
				if leading > 0 {
					*lines = append(*lines, strings.Repeat(" ", leading)+nextTrimmed)
				} else {
					*lines = append(*lines, nextTrimmed)
				}
				i++
			}
			continue
		}

		paragraph := trimmed
		for i+1 < len(raw) {
			next := raw[i+1]
			nextTrimmed := strings.TrimSpace(next)
			if nextTrimmed == "" || isStructuredLine(nextTrimmed) || strings.HasPrefix(next, " ") {
				break
			}
			paragraph += " " + nextTrimmed
			i++
		}
		wrapSingleParagraph(paragraph, maxWidth, lines)
		i++
	}
}

func wrapSingleParagraph(text string, maxWidth int, lines *[]string) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return
	}
	cur := ""
	for _, word := range words {
		switch {
		case cur == "":
			cur = word
		case len(cur)+1+len(word) > maxWidth:
			*lines = append(*lines, cur)
			cur = word
		default:
			cur += " " + word
		}
	}
	if cur != "" {
		*lines = append(*lines, cur)
	}
}

func wrapTagLine(tagLine string, maxWidth int, lines *[]string) {
	if len(tagLine) <= maxWidth {
		*lines = append(*lines, tagLine)
		return
	}
	words := strings.Fields(tagLine)
	cur := ""
	first := true
	for _, word := range words {
		switch {
		case cur == "":
			cur = word
		case len(cur)+1+len(word) > maxWidth && !first:
			*lines = append(*lines, cur)
			cur = "  " + word
		default:
			cur += " " + word
		}
		first = false
	}
	if cur != "" {
		*lines = append(*lines, cur)
	}
}

func canBeSingleLine(lines []string, available int) bool {
	if len(lines) != 1 {
		return false
	}
	line := lines[0]
	if len(line)+7 > available+3 {
		return false
	}
	return strings.HasPrefix(line, "@")
}
