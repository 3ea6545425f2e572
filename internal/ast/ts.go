package ast

// TSType is the closed set of TypeScript type-node variants from spec
// §3.2: keyword types, union, intersection, conditional, mapped,
// indexed-access, tuple, function/constructor type, type reference,
// type query, import type, type predicate, template literal type,
// infer, literal type.
type TSType struct {
	Span Span
	Data TSTypeData
}

type TSTypeData interface{ isTSType() }

type TSKeyword uint8

const (
	TSKeywordAny TSKeyword = iota
	TSKeywordUnknown
	TSKeywordNever
	TSKeywordVoid
	TSKeywordUndefined
	TSKeywordNull
	TSKeywordBoolean
	TSKeywordNumber
	TSKeywordString
	TSKeywordSymbol
	TSKeywordBigInt
	TSKeywordObject
	TSKeywordThis
)

type TSKeywordType struct{ Keyword TSKeyword }

func (*TSKeywordType) isTSType() {}

// TSLiteralType covers `"a"`, `1`, `true`, and template-literal-type
// members; Literal holds the literal as an expression node.
type TSLiteralType struct{ Literal Expr }

func (*TSLiteralType) isTSType() {}

type TSUnionType struct{ Types []TSType }
type TSIntersectionType struct{ Types []TSType }

func (*TSUnionType) isTSType()        {}
func (*TSIntersectionType) isTSType() {}

type QualifiedName struct {
	Left  *QualifiedName // nil for the leftmost segment
	Right string
}

type TSTypeReference struct {
	Name          QualifiedName
	TypeArguments []TSType
}

func (*TSTypeReference) isTSType() {}

// TSTypeQuery is `typeof expr`, optionally with type arguments
// (`typeof foo<T>`).
type TSTypeQuery struct {
	Name          QualifiedName
	TypeArguments []TSType
}

func (*TSTypeQuery) isTSType() {}

// TSImportType is `import("mod").Foo<T>`.
type TSImportType struct {
	Argument      string // the string literal module specifier
	Qualifier     *QualifiedName
	TypeArguments []TSType
	IsTypeOf      bool // `import("mod")` used inside a typeof position
}

func (*TSImportType) isTSType() {}

type TSConditionalType struct {
	Check      TSType
	Extends    TSType
	TrueType   TSType
	FalseType  TSType
}

func (*TSConditionalType) isTSType() {}

// TSInferType is `infer T` (only legal inside the Extends clause of a
// conditional type).
type TSInferType struct {
	Name       string
	Constraint *TSType
}

func (*TSInferType) isTSType() {}

type MappedModifier uint8

const (
	MappedModifierNone MappedModifier = iota
	MappedModifierPlus
	MappedModifierMinus
)

// TSMappedType is `{ [K in Keys]: T }`, with optional `readonly`/`?`
// modifiers that each independently serialize as "+"/"-"/true/omitted
// per spec §6.1.
type TSMappedType struct {
	TypeParam     TSTypeParam // the "K in Keys" binder
	NameType      *TSType     // the `as` clause remapping the key
	ValueType     TSType
	ReadonlyMod   MappedModifier
	OptionalMod   MappedModifier
}

func (*TSMappedType) isTSType() {}

type TSIndexedAccessType struct {
	ObjectType TSType
	IndexType  TSType
}

func (*TSIndexedAccessType) isTSType() {}

type TupleMember struct {
	Type     TSType
	Label    string // "" when unnamed
	Optional bool
	Rest     bool
}

type TSTupleType struct{ Elements []TupleMember }

func (*TSTupleType) isTSType() {}

type TSArrayType struct{ ElementType TSType }

func (*TSArrayType) isTSType() {}

type TSParenthesizedType struct{ Type TSType }

func (*TSParenthesizedType) isTSType() {}

type TSTypeOperator uint8

const (
	TSTypeOperatorKeyOf TSTypeOperator = iota
	TSTypeOperatorUnique
	TSTypeOperatorReadonly
)

type TSTypeOperatorType struct {
	Operator TSTypeOperator
	Type     TSType
}

func (*TSTypeOperatorType) isTSType() {}

type TSFunctionParam struct {
	Name     string
	Type     TSType
	Optional bool
	Rest     bool
}

type TSFunctionType struct {
	Params     []TSFunctionParam
	ReturnType TSType
	TypeParams []TSTypeParam
}

type TSConstructorType struct {
	Params     []TSFunctionParam
	ReturnType TSType
	TypeParams []TSTypeParam
	Abstract   bool
}

func (*TSFunctionType) isTSType()    {}
func (*TSConstructorType) isTSType() {}

// TSTypePredicate covers `x is T` and `asserts x is T` / `asserts x`.
type TSTypePredicate struct {
	ParamName string
	IsThis    bool
	Asserts   bool
	Type      *TSType // nil for bare `asserts x`
}

func (*TSTypePredicate) isTSType() {}

type TSTemplateLiteralType struct {
	Quasis []string // len == len(Types)+1
	Types  []TSType
}

func (*TSTemplateLiteralType) isTSType() {}

// --- Type parameters, annotations, interface members ---

type TSTypeParam struct {
	Name       string
	Constraint *TSType
	Default    *TSType
	Modifiers  Modifiers // in/out/const
}

type TSTypeAnnotation struct {
	Span Span
	Type TSType
}

type TSInterfaceMemberKind uint8

const (
	TSInterfacePropertySignature TSInterfaceMemberKind = iota
	TSInterfaceMethodSignature
	TSInterfaceIndexSignature
	TSInterfaceCallSignature
	TSInterfaceConstructSignature
	TSInterfaceGetterSignature
	TSInterfaceSetterSignature
)

type TSInterfaceMember struct {
	Kind       TSInterfaceMemberKind
	Key        Expr
	Computed   bool
	Optional   bool
	TypeAnn    *TSTypeAnnotation
	Params     []TSFunctionParam
	Modifiers  Modifiers
}
