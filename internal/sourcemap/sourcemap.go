// Package sourcemap builds version-3 source maps for a single compiled
// file (spec §6.2). Unlike a bundler, codegen here never joins chunks
// from more than one generated output together, so this package skips
// esbuild's ChunkBuilder/SourceMapPieces machinery for stitching many
// files' VLQ segments into one — there is only ever one segment. The
// VLQ codec and UTF-16-aware column counter are ported near-verbatim
// since they're just an encoding, not bundler plumbing.
package sourcemap

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// Mapping is one generated-position -> original-position pair.
type Mapping struct {
	GeneratedLine   int32 // 0-based
	GeneratedColumn int32 // 0-based, UTF-16 code units

	SourceIndex    int32
	OriginalLine   int32 // 0-based
	OriginalColumn int32 // 0-based, UTF-16 code units
	NameIndex      int32 // -1 when this mapping carries no name
}

// File is the JSON-serializable source map itself (the "version 3"
// format consumed by browsers and debuggers).
type File struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	SourceRoot     string   `json:"sourceRoot,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

var base64 = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/")

// encodeVLQ appends value as a base64 VLQ digit sequence: the low bit
// of the raw value is the sign, each digit below that carries 5 bits
// of magnitude, and bit 5 of a digit is the continuation flag.
func encodeVLQ(encoded []byte, value int) []byte {
	var vlq int
	if value < 0 {
		vlq = ((-value) << 1) | 1
	} else {
		vlq = value << 1
	}

	if (vlq >> 5) == 0 {
		return append(encoded, base64[vlq&31])
	}

	for {
		digit := vlq & 31
		vlq >>= 5
		if vlq != 0 {
			digit |= 32
		}
		encoded = append(encoded, base64[digit])
		if vlq == 0 {
			break
		}
	}
	return encoded
}

// decodeVLQ reads one VLQ value starting at encoded[start] and returns
// the value plus the index just past it.
func decodeVLQ(encoded []byte, start int) (int, int) {
	shift := 0
	vlq := 0
	for {
		index := bytes.IndexByte(base64, encoded[start])
		if index < 0 {
			break
		}
		vlq |= (index & 31) << shift
		start++
		shift += 5
		if (index & 32) == 0 {
			break
		}
	}
	value := vlq >> 1
	if (vlq & 1) != 0 {
		value = -value
	}
	return value, start
}

// LineColumnOffset tracks a cursor's position in 0-based lines and
// UTF-16 code-unit columns as text is appended to it, matching how
// every source map consumer counts columns regardless of the
// generated text's own encoding.
type LineColumnOffset struct {
	Lines   int
	Columns int
}

func (a LineColumnOffset) ComesBefore(b LineColumnOffset) bool {
	return a.Lines < b.Lines || (a.Lines == b.Lines && a.Columns < b.Columns)
}

func (a *LineColumnOffset) AdvanceString(text string) {
	columns := a.Columns
	for i, c := range text {
		switch c {
		case '\r', '\n', ' ', ' ':
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				columns++
				continue
			}
			a.Lines++
			columns = 0
		default:
			if c <= 0xFFFF {
				columns++
			} else {
				columns += 2
			}
		}
	}
	a.Columns = columns
}

func (a *LineColumnOffset) AdvanceBytes(b []byte) {
	columns := a.Columns
	for len(b) > 0 {
		c, width := utf8.DecodeRune(b)
		b = b[width:]
		switch c {
		case '\r', '\n', ' ', ' ':
			if c == '\r' && len(b) > 0 && b[0] == '\n' {
				columns++
				continue
			}
			a.Lines++
			columns = 0
		default:
			if c <= 0xFFFF {
				columns++
			} else {
				columns += 2
			}
		}
	}
	a.Columns = columns
}

// LineOffsetTable maps a byte offset in the original source to a
// 0-based line number, by recording where each line starts. It lets
// Builder.AddMapping turn an ast.Span's byte offset into a line/column
// pair with a binary search instead of a linear rescan per mapping.
type LineOffsetTable struct {
	byteOffsetToStartOfLine int32
}

// BuildLineOffsetTables scans source once, recording the byte offset
// of the start of every line (including line 0).
func BuildLineOffsetTables(source string) []LineOffsetTable {
	tables := []LineOffsetTable{{byteOffsetToStartOfLine: 0}}
	for i := 0; i < len(source); i++ {
		c := source[i]
		if c == '\n' {
			tables = append(tables, LineOffsetTable{byteOffsetToStartOfLine: int32(i + 1)})
		}
	}
	return tables
}

func lineAndColumnForOffset(tables []LineOffsetTable, offset int32) (int32, int32) {
	count := len(tables)
	line := 0
	for count > 0 {
		step := count / 2
		i := line + step
		if tables[i].byteOffsetToStartOfLine <= offset {
			line = i + 1
			count = count - step - 1
		} else {
			count = step
		}
	}
	line--
	if line < 0 {
		line = 0
	}
	col := offset - tables[line].byteOffsetToStartOfLine
	if col < 0 {
		col = 0
	}
	return int32(line), col
}

// Builder accumulates mappings while a printer emits generated text,
// then renders them into the delta-encoded VLQ "mappings" string that
// belongs in a File.
type Builder struct {
	lineOffsetTables []LineOffsetTable
	source           string
	sourceIndex      int32

	names    []string
	namesMap map[string]int32

	mappings []Mapping

	generated LineColumnOffset

	hasPrev  bool
	prevGen  LineColumnOffset
	prevOrig LineColumnOffset
	prevName int32
}

// NewBuilder starts a Builder for one generated output whose original
// source text is source (used only to resolve byte offsets to
// line/column pairs for mappings).
func NewBuilder(source string) *Builder {
	return &Builder{
		lineOffsetTables: BuildLineOffsetTables(source),
		source:           source,
		namesMap:         make(map[string]int32),
	}
}

// Advance moves the builder's notion of "where in the generated output
// we are" forward by the text that was just appended, without adding a
// mapping for it. Call this for every byte the printer writes.
func (b *Builder) Advance(generatedText string) {
	b.generated.AdvanceString(generatedText)
}

// AddMapping records that the generated position the builder is
// currently at corresponds to originalOffset (a byte offset into the
// source passed to NewBuilder). name, if non-empty, records the
// original identifier name for renamed-identifier mappings.
func (b *Builder) AddMapping(originalOffset int32, name string) {
	line, col := lineAndColumnForOffset(b.lineOffsetTables, originalOffset)
	lineStart := int(b.lineOffsetTables[line].byteOffsetToStartOfLine)
	end := lineStart + int(col)
	if end > len(b.source) {
		end = len(b.source)
	}
	var units LineColumnOffset
	units.AdvanceString(b.source[lineStart:end])
	orig := LineColumnOffset{Lines: int(line), Columns: units.Columns}

	nameIndex := int32(-1)
	if name != "" {
		nameIndex = b.internName(name)
	}

	if b.hasPrev && b.prevGen == b.generated && b.prevOrig == orig && b.prevName == nameIndex {
		return
	}

	b.mappings = append(b.mappings, Mapping{
		GeneratedLine:   int32(b.generated.Lines),
		GeneratedColumn: int32(b.generated.Columns),
		SourceIndex:     b.sourceIndex,
		OriginalLine:    int32(orig.Lines),
		OriginalColumn:  int32(orig.Columns),
		NameIndex:       nameIndex,
	})
	b.hasPrev = true
	b.prevGen = b.generated
	b.prevOrig = orig
	b.prevName = nameIndex
}

func (b *Builder) internName(name string) int32 {
	if i, ok := b.namesMap[name]; ok {
		return i
	}
	i := int32(len(b.names))
	b.names = append(b.names, name)
	b.namesMap[name] = i
	return i
}

// GenerateFile renders the accumulated mappings into a File. sourceURL
// is the path recorded in "sources" and sourceContent is embedded
// verbatim as "sourcesContent" (pass "" to omit it).
func (b *Builder) GenerateFile(sourceURL, sourceContent, outputFile string) *File {
	var out strings.Builder
	prevGeneratedLine := int32(0)
	prevGeneratedColumn := int32(0)
	prevOriginalLine := int32(0)
	prevOriginalColumn := int32(0)
	prevNameIndex := int32(0)
	lineStarted := false

	buf := make([]byte, 0, 32)
	for _, m := range b.mappings {
		if m.GeneratedLine != prevGeneratedLine {
			out.WriteString(strings.Repeat(";", int(m.GeneratedLine-prevGeneratedLine)))
			prevGeneratedLine = m.GeneratedLine
			prevGeneratedColumn = 0
			lineStarted = false
		} else if lineStarted {
			out.WriteByte(',')
		}
		lineStarted = true

		buf = buf[:0]
		buf = encodeVLQ(buf, int(m.GeneratedColumn-prevGeneratedColumn))
		buf = encodeVLQ(buf, int(m.SourceIndex))
		buf = encodeVLQ(buf, int(m.OriginalLine-prevOriginalLine))
		buf = encodeVLQ(buf, int(m.OriginalColumn-prevOriginalColumn))
		if m.NameIndex >= 0 {
			buf = encodeVLQ(buf, int(m.NameIndex-prevNameIndex))
			prevNameIndex = m.NameIndex
		}
		out.Write(buf)

		prevGeneratedColumn = m.GeneratedColumn
		prevOriginalLine = m.OriginalLine
		prevOriginalColumn = m.OriginalColumn
	}

	f := &File{
		Version:  3,
		File:     outputFile,
		Sources:  []string{sourceURL},
		Names:    b.names,
		Mappings: out.String(),
	}
	if sourceContent != "" {
		f.SourcesContent = []string{sourceContent}
	}
	if f.Names == nil {
		f.Names = []string{}
	}
	return f
}

// decodeVLQ is exported indirectly through this helper for tests that
// want to round-trip a hand-encoded mapping without depending on
// Builder's internal state.
func DecodeVLQForTest(encoded []byte, start int) (int, int) { return decodeVLQ(encoded, start) }
