package estree

// estreeNames overrides typeNameFor's stripped-prefix default for
// every variant that has a real, spec-defined ESTree name different
// from its bare Go suffix. Variants absent here (mostly TS-only
// constructs with no ESTree counterpart — satisfies expressions,
// non-null assertions, ambient declarations) fall back to the
// stripped-prefix name, which is stable and readable even though it
// isn't drawn from the ESTree spec itself.
var estreeNames = map[string]string{
	// Literals: ESTree collapses every primitive literal into one
	// "Literal" node distinguished by its value's JSON type, not by a
	// per-kind type tag.
	"ENull":    "Literal",
	"EBoolean": "Literal",
	"ENumber":  "Literal",
	"EBigInt":  "Literal",
	"EString":  "Literal",
	"ERegExp":  "Literal",

	"EUndefined":        "Identifier",
	"EIdentifier":        "Identifier",
	"EPrivateIdentifier": "PrivateIdentifier",
	"EThis":              "ThisExpression",
	"ESuper":             "Super",
	"EMember":            "MemberExpression",
	"ECall":              "CallExpression",
	"ENew":               "NewExpression",
	"ENewTarget":         "MetaProperty",
	"EImportMeta":        "MetaProperty",
	"EUnary":             "UnaryExpression",
	"EBinary":            "BinaryExpression",
	"ELogical":           "LogicalExpression",
	"EAssign":            "AssignmentExpression",
	"EConditional":       "ConditionalExpression",
	"ESequence":          "SequenceExpression",
	"EArray":             "ArrayExpression",
	"EObject":            "ObjectExpression",
	"EFunction":          "FunctionExpression",
	"EArrow":             "ArrowFunctionExpression",
	"EClass":             "ClassExpression",
	"ETemplate":          "TemplateLiteral",
	"EAwait":             "AwaitExpression",
	"EYield":             "YieldExpression",
	"EParenthesized":     "ParenthesizedExpression",
	"ETSAs":              "TSAsExpression",
	"ETSSatisfies":       "TSSatisfiesExpression",
	"ETSNonNull":         "TSNonNullExpression",
	"ETSTypeAssertion":   "TSTypeAssertion",

	"PIdentifier": "Identifier",
	"PArray":      "ArrayPattern",
	"PObject":     "ObjectPattern",
	"PAssign":     "AssignmentPattern",
	"PExpr":       "Identifier", // cover-grammar fallback: an expression parsed where a pattern was expected

	"SBlock":            "BlockStatement",
	"SExpr":             "ExpressionStatement",
	"SEmpty":            "EmptyStatement",
	"SDebugger":         "DebuggerStatement",
	"SIf":               "IfStatement",
	"SFor":              "ForStatement",
	"SForIn":            "ForInStatement",
	"SForOf":            "ForOfStatement",
	"SWhile":            "WhileStatement",
	"SDoWhile":          "DoWhileStatement",
	"SBreak":            "BreakStatement",
	"SContinue":         "ContinueStatement",
	"SReturn":           "ReturnStatement",
	"SThrow":            "ThrowStatement",
	"STry":              "TryStatement",
	"SWith":             "WithStatement",
	"SLabeled":          "LabeledStatement",
	"SSwitch":           "SwitchStatement",
	"SVarDecl":          "VariableDeclaration",
	"SFunctionDecl":     "FunctionDeclaration",
	"SClassDecl":        "ClassDeclaration",
	"SImportDecl":       "ImportDeclaration",
	"SExportNamedDecl":  "ExportNamedDeclaration",
	"SExportDefaultDecl": "ExportDefaultDeclaration",
	"SExportAllDecl":    "ExportAllDeclaration",
	"STSInterfaceDecl":  "TSInterfaceDeclaration",
	"STSTypeAliasDecl":  "TSTypeAliasDeclaration",
	"STSEnumDecl":       "TSEnumDeclaration",
	"STSModuleDecl":     "TSModuleDeclaration",
	"STSImportEquals":   "TSImportEqualsDeclaration",
	"STSExportAssignment": "TSExportAssignment",

	"JSXElement": "JSXElement",
	"JSXFragment": "JSXFragment",
}
