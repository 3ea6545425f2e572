package estree_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsforge/jsforge/internal/arena"
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/estree"
	"github.com/jsforge/jsforge/internal/logger"
	"github.com/jsforge/jsforge/internal/parser"
)

func parse(t *testing.T, source string) *ast.Program {
	t.Helper()
	ar := arena.New(len(source))
	log := logger.NewLog()
	res := parser.Parse(ar, log, "<test>", source, ast.SourceTypeModule, parser.Options{})
	require.False(t, log.HasErrors(), "unexpected parse errors: %v", log.Done())
	return res.Program
}

func TestSerializeTopLevelShape(t *testing.T) {
	prog := parse(t, "const x = 1;")
	node := estree.Serialize(prog, "const x = 1;", estree.Options{})

	assert.Equal(t, "Program", node["type"])
	assert.Equal(t, "module", node["sourceType"])
	body, ok := node["body"].([]interface{})
	require.True(t, ok)
	require.Len(t, body, 1)

	decl, ok := body[0].(estree.Node)
	require.True(t, ok)
	assert.Equal(t, "VariableDeclaration", decl["type"])
}

func TestSerializeProducesValidJSON(t *testing.T) {
	prog := parse(t, "function add(a, b) { return a + b }")
	node := estree.Serialize(prog, "function add(a, b) { return a + b }", estree.Options{})

	data, err := json.Marshal(node)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"FunctionDeclaration"`)
	assert.Contains(t, string(data), `"BinaryExpression"`)
}

func TestSerializeLiteralCollapsesToLiteralType(t *testing.T) {
	prog := parse(t, "const x = 42;")
	node := estree.Serialize(prog, "const x = 42;", estree.Options{})
	body := node["body"].([]interface{})
	decl := body[0].(estree.Node)
	declarations := decl["declarations"].([]interface{})
	declarator := declarations[0].(estree.Node)
	init := declarator["init"].(estree.Node)
	assert.Equal(t, "Literal", init["type"])
	assert.Equal(t, float64(42), init["value"])
}

func TestSerializeUTF16OffsetsShiftForAstralCharacters(t *testing.T) {
	source := "const x = '😀a';"
	prog := parse(t, source)

	byteNode := estree.Serialize(prog, source, estree.Options{})
	utf16Node := estree.Serialize(prog, source, estree.Options{UTF16Offsets: true})

	assert.NotEqual(t, byteNode["end"], utf16Node["end"])
}
