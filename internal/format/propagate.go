package format

// propagateExpand walks a document and forces every enclosing group to
// print in expanded mode whenever it contains a hard line break, an
// empty line, or an explicit ExpandParent marker. BestFitting variants
// act as a boundary: expansion inside a variant does not leak out to
// groups that merely contain the BestFitting node itself.
//
// This mirrors Document::propagate_expand: a single bottom-up sweep
// that, as it walks back up out of each node, flags the nearest
// enclosing group if anything beneath it demanded a break.
func propagateExpand(d Doc) (expands bool) {
	switch v := d.data.(type) {
	case dText:
		return false

	case dLine:
		return v.mode == LineHard || v.mode == LineEmpty

	case dExpandParent:
		return true

	case dConcat:
		any := false
		for _, part := range v.parts {
			if propagateExpand(part) {
				any = true
			}
		}
		return any

	case *dGroup:
		inner := propagateExpand(v.content)
		if inner {
			v.expand = true
		}
		// A group absorbs its own content's expansion demand but does
		// not forward it further up unless it was itself forced open.
		return v.expand

	case dIndent:
		return propagateExpand(v.content)

	case dDedent:
		return propagateExpand(v.content)

	case dAlign:
		return propagateExpand(v.content)

	case dIndentIfGroupBreaks:
		return propagateExpand(v.content)

	case dConditionalGroupContent:
		return propagateExpand(v.content)

	case dLineSuffix:
		// A line suffix's content is deferred and never affects the
		// fits-on-line measurement of the groups around it.
		propagateExpand(v.content)
		return false

	case dLineSuffixBoundary:
		return false

	case dFill:
		any := false
		for _, part := range v.parts {
			if propagateExpand(part) {
				any = true
			}
		}
		return any

	case dBestFitting:
		for _, variant := range v.variants {
			propagateExpand(variant)
		}
		return false

	default:
		return false
	}
}
