package ast

// JSXName covers `div`, `Foo.Bar`, and `ns:tag` element/attribute
// names.
type JSXName struct {
	Namespace string // "" unless `ns:name`
	Parts     []string
}

type JSXAttribute struct {
	Name  JSXName
	Value *JSXAttributeValue // nil for a boolean attribute (`disabled`)
}

// JSXAttributeValue is either a string literal or an expression
// container; exactly one field is non-nil.
type JSXAttributeValue struct {
	StringValue *string
	Expression  *Expr
}

type JSXSpreadAttribute struct{ Argument Expr }

// JSXAttributeOrSpread holds either an Attribute or a SpreadAttribute.
type JSXAttributeOrSpread struct {
	Attribute *JSXAttribute
	Spread    *JSXSpreadAttribute
}

type JSXChild struct {
	Text     *string
	Expr     *Expr // nil, or the expression inside `{ }`; both nil means `{}` empty container
	Element  *JSXElement
	Fragment *JSXFragment
}

type JSXElement struct {
	Name        JSXName
	Attributes  []JSXAttributeOrSpread
	Children    []JSXChild
	SelfClosing bool
}

type JSXFragment struct {
	Children []JSXChild
}
