package transform

import (
	"strings"
	"testing"

	"github.com/jsforge/jsforge/internal/arena"
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/codegen"
	"github.com/jsforge/jsforge/internal/logger"
	"github.com/jsforge/jsforge/internal/parser"
)

func transformSource(t *testing.T, contents string, opts Options) string {
	t.Helper()
	ar := arena.New(len(contents))
	log := logger.NewLog()
	res := parser.Parse(ar, log, "<test>", contents, ast.SourceTypeModule, parser.Options{})
	if log.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", contents, log.Done())
	}
	out := Transform(res.Program, opts)
	printed := codegen.Print(out, codegen.Options{})
	return string(printed.JS)
}

func es5() Options { return Options{Target: Engines{ES: 2015}} }

func TestTransformErasesTypeAnnotations(t *testing.T) {
	out := transformSource(t, `function add(a: number, b: number): number { return a + b; }`, Options{})
	if strings.Contains(out, "number") {
		t.Fatalf("expected type annotations to be stripped, got: %q", out)
	}
	if !strings.Contains(out, "function add(a, b)") {
		t.Fatalf("expected a bare parameter list, got: %q", out)
	}
}

func TestTransformDropsInterfaceAndTypeAlias(t *testing.T) {
	out := transformSource(t, `
		interface Point { x: number; y: number }
		type ID = string | number;
		const p: Point = { x: 1, y: 2 };
	`, Options{})
	if strings.Contains(out, "interface") || strings.Contains(out, "type ID") {
		t.Fatalf("expected interface/type-alias declarations to be gone, got: %q", out)
	}
	if !strings.Contains(out, "const p") {
		t.Fatalf("expected the value declaration to survive, got: %q", out)
	}
}

func TestTransformDropsTypeOnlyImport(t *testing.T) {
	out := transformSource(t, `
		import type { Thing } from "./thing";
		import { other } from "./other";
		other();
	`, Options{})
	if strings.Contains(out, "Thing") {
		t.Fatalf("expected the type-only import to be dropped, got: %q", out)
	}
	if !strings.Contains(out, "other") {
		t.Fatalf("expected the value import to survive, got: %q", out)
	}
}

func TestTransformLowersParameterProperties(t *testing.T) {
	out := transformSource(t, `
		class Point {
			constructor(public x: number, private y: number) {}
		}
	`, Options{})
	if strings.Contains(out, "public") || strings.Contains(out, "private") {
		t.Fatalf("expected modifiers to be gone, got: %q", out)
	}
	if !strings.Contains(out, "this.x = x") || !strings.Contains(out, "this.y = y") {
		t.Fatalf("expected constructor assignments, got: %q", out)
	}
}

func TestTransformLowersParameterPropertiesAfterSuper(t *testing.T) {
	out := transformSource(t, `
		class Base {}
		class Point extends Base {
			constructor(public x: number) { super(); }
		}
	`, Options{})
	superIdx := strings.Index(out, "super(")
	assignIdx := strings.Index(out, "this.x = x")
	if superIdx < 0 || assignIdx < 0 || assignIdx < superIdx {
		t.Fatalf("expected the assignment after super(), got: %q", out)
	}
}

func TestTransformLowersClassFieldsAssignSemantics(t *testing.T) {
	out := transformSource(t, `
		class Counter {
			count = 0;
			constructor() {}
		}
	`, Options{Target: Engines{ES: 2015}, UseDefineForClassFields: false})
	if !strings.Contains(out, "this.count = 0") {
		t.Fatalf("expected a constructor assignment, got: %q", out)
	}
}

func TestTransformLowersClassFieldsDefineSemantics(t *testing.T) {
	out := transformSource(t, `
		class Counter {
			count = 0;
		}
	`, Options{Target: Engines{ES: 2015}, UseDefineForClassFields: true})
	if !strings.Contains(out, "Object.defineProperty") {
		t.Fatalf("expected Object.defineProperty, got: %q", out)
	}
}

func TestTransformLeavesClassFieldsNativeWhenSupported(t *testing.T) {
	out := transformSource(t, `
		class Counter {
			count = 0;
		}
	`, Options{})
	if strings.Contains(out, "Object.defineProperty") || strings.Contains(out, "this.count = 0") {
		t.Fatalf("expected the native field to survive untouched, got: %q", out)
	}
	if !strings.Contains(out, "count = 0") {
		t.Fatalf("expected the field to still be present, got: %q", out)
	}
}

func TestTransformLowersPrivateFieldsToWeakMap(t *testing.T) {
	out := transformSource(t, `
		class Counter {
			#count = 0;
			increment() { this.#count++; return this.#count; }
		}
	`, es5())
	if strings.Contains(out, "#count") {
		t.Fatalf("expected the private name to be gone, got: %q", out)
	}
	if !strings.Contains(out, "new WeakMap") {
		t.Fatalf("expected a backing WeakMap, got: %q", out)
	}
	if !strings.Contains(out, ".set(this") || !strings.Contains(out, ".get(this") {
		t.Fatalf("expected WeakMap get/set calls, got: %q", out)
	}
}

func TestTransformLowersPrivateFieldCompoundAssignment(t *testing.T) {
	out := transformSource(t, `
		class Counter {
			#count = 0;
			add(n) { this.#count += n; }
		}
	`, es5())
	if !strings.Contains(out, ".get(this") || !strings.Contains(out, ".set(this") {
		t.Fatalf("expected the compound assignment to desugar through get/set, got: %q", out)
	}
}

func TestTransformLowersOptionalChaining(t *testing.T) {
	out := transformSource(t, `const y = a?.b.c;`, es5())
	if strings.Contains(out, "?.") {
		t.Fatalf("expected optional chaining syntax to be gone, got: %q", out)
	}
	if !strings.Contains(out, "== null") {
		t.Fatalf("expected a null check, got: %q", out)
	}
}

func TestTransformLowersMultiLinkOptionalChain(t *testing.T) {
	out := transformSource(t, `const y = a?.b.c?.d;`, es5())
	if strings.Contains(out, "?.") {
		t.Fatalf("expected optional chaining syntax to be gone, got: %q", out)
	}
	nullChecks := strings.Count(out, "== null")
	if nullChecks < 2 {
		t.Fatalf("expected a null check per optional link, got %d in: %q", nullChecks, out)
	}
}

func TestTransformLeavesOptionalChainingWhenSupported(t *testing.T) {
	out := transformSource(t, `const y = a?.b;`, Options{})
	if !strings.Contains(out, "?.") {
		t.Fatalf("expected optional chaining to survive untouched, got: %q", out)
	}
}

func TestTransformLowersNullishCoalescing(t *testing.T) {
	out := transformSource(t, `const y = a ?? b;`, es5())
	if strings.Contains(out, "??") {
		t.Fatalf("expected ?? to be gone, got: %q", out)
	}
	if !strings.Contains(out, "== null") {
		t.Fatalf("expected a null check, got: %q", out)
	}
}

func TestTransformLowersLogicalAssignment(t *testing.T) {
	out := transformSource(t, `a ??= b;`, es5())
	if strings.Contains(out, "??=") {
		t.Fatalf("expected ??= to be gone, got: %q", out)
	}
	if !strings.Contains(out, "= b") {
		t.Fatalf("expected the fallback assignment to survive, got: %q", out)
	}
}

func TestTransformLowersLogicalOrAssignment(t *testing.T) {
	out := transformSource(t, `obj.prop ||= value;`, es5())
	if strings.Contains(out, "||=") {
		t.Fatalf("expected ||= to be gone, got: %q", out)
	}
}

func TestTransformLowersExponentiation(t *testing.T) {
	out := transformSource(t, `const y = a ** b;`, Options{Target: Engines{ES: 2015}})
	if strings.Contains(out, "**") {
		t.Fatalf("expected ** to be gone, got: %q", out)
	}
	if !strings.Contains(out, "Math.pow(a, b)") {
		t.Fatalf("expected Math.pow, got: %q", out)
	}
}

func TestTransformLowersLegacyDecorators(t *testing.T) {
	out := transformSource(t, `
		@Component
		class Widget {
			@readonly
			render() {}
		}
	`, Options{ExperimentalDecorators: true})
	if strings.Contains(out, "@Component") || strings.Contains(out, "@readonly") {
		t.Fatalf("expected decorator syntax to be gone, got: %q", out)
	}
	if !strings.Contains(out, "__decorate") {
		t.Fatalf("expected a __decorate call, got: %q", out)
	}
	if !strings.Contains(out, "Widget = __decorate(") {
		t.Fatalf("expected the class-level decorate call, got: %q", out)
	}
}

func TestTransformLeavesDecoratorsWhenNotExperimental(t *testing.T) {
	out := transformSource(t, `
		@Component
		class Widget {}
	`, Options{})
	if !strings.Contains(out, "@Component") {
		t.Fatalf("expected the decorator to survive as native syntax, got: %q", out)
	}
}

func TestTransformCapturesSideEffectingChainBaseOnce(t *testing.T) {
	out := transformSource(t, `const y = getObj()?.prop;`, es5())
	if strings.Count(out, "getObj()") > 1 {
		t.Fatalf("expected getObj() to be evaluated exactly once, got: %q", out)
	}
}
