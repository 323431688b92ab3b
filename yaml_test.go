package cardbox

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseScalarLiterals(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		want any
	}{
		{"true", KindBool, true},
		{"false", KindBool, false},
		{"null", KindNull, nil},
		{"~", KindNull, nil},
		{"", KindNull, nil},
		{"42", KindNumber, float64(42)},
		{"-3.5", KindNumber, float64(-3.5)},
		{`"a:b"`, KindString, "a:b"},
		{`'single'`, KindString, "single"},
		{"plain text", KindString, "plain text"},
		{"1.2.3", KindString, "1.2.3"},
		{"-", KindString, "-"},
		{"value # trailing comment", KindString, "value"},
		{`"kept # inside quotes"`, KindString, "kept # inside quotes"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n := parseScalarLiteral(tt.in)
			if n.Kind != tt.kind {
				t.Fatalf("kind = %d, want %d", n.Kind, tt.kind)
			}
			if !reflect.DeepEqual(n.Value, tt.want) {
				t.Fatalf("value = %#v, want %#v", n.Value, tt.want)
			}
		})
	}
}

func TestParseScalarLiterals_InlineCollections(t *testing.T) {
	n := parseScalarLiteral("[1, 2, 3]")
	if n.Kind != KindSequence {
		t.Fatalf("expected sequence, got kind %d", n.Kind)
	}
	if got := n.Interface(); !reflect.DeepEqual(got, []any{float64(1), float64(2), float64(3)}) {
		t.Fatalf("got %#v", got)
	}

	n = parseScalarLiteral("{a: 1, b: 2}")
	if n.Kind != KindMapping {
		t.Fatalf("expected mapping, got kind %d", n.Kind)
	}
	if got := n.Interface(); !reflect.DeepEqual(got, map[string]any{"a": float64(1), "b": float64(2)}) {
		t.Fatalf("got %#v", got)
	}

	n = parseScalarLiteral(`[a, "b, c", [1, 2]]`)
	if got := n.Interface(); !reflect.DeepEqual(got, []any{"a", "b, c", []any{float64(1), float64(2)}}) {
		t.Fatalf("nested split wrong: %#v", got)
	}

	if n := parseScalarLiteral("[]"); n.Kind != KindSequence || len(n.Items) != 0 {
		t.Fatalf("empty inline sequence wrong: %#v", n)
	}
	if n := parseScalarLiteral("{}"); n.Kind != KindMapping || len(n.Pairs) != 0 {
		t.Fatalf("empty inline mapping wrong: %#v", n)
	}
}

func TestParseText_NestedMapping(t *testing.T) {
	root, err := ParseText("a: 1\nb:\n  c: two\n  d:\n    e: true\n")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"a": float64(1),
		"b": map[string]any{
			"c": "two",
			"d": map[string]any{"e": true},
		},
	}
	if got := root.Interface(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v\nwant %#v", got, want)
	}
}

func TestParseText_KeyOrderPreserved(t *testing.T) {
	root, err := ParseText("z: 1\na: 2\nm: 3\n")
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for _, pr := range root.Pairs {
		keys = append(keys, pr.Key)
	}
	if !reflect.DeepEqual(keys, []string{"z", "a", "m"}) {
		t.Fatalf("key order = %v", keys)
	}
}

func TestParseText_Sequences(t *testing.T) {
	text := "items:\n" +
		"  - plain\n" +
		"  - 7\n" +
		"  - id: comp1\n" +
		"    type: Text\n" +
		"  - id: comp2\n" +
		"    meta:\n" +
		"      depth: 2\n"
	root, err := ParseText(text)
	if err != nil {
		t.Fatal(err)
	}
	want := []any{
		"plain",
		float64(7),
		map[string]any{"id": "comp1", "type": "Text"},
		map[string]any{"id": "comp2", "meta": map[string]any{"depth": float64(2)}},
	}
	if got := root.Get("items").Interface(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v\nwant %#v", got, want)
	}
}

func TestParseText_DashOnlyItems(t *testing.T) {
	text := "items:\n  -\n    a: 1\n  -\n"
	root, err := ParseText(text)
	if err != nil {
		t.Fatal(err)
	}
	want := []any{map[string]any{"a": float64(1)}, nil}
	if got := root.Get("items").Interface(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v", got)
	}
}

func TestParseText_NullsAndComments(t *testing.T) {
	text := "# leading comment\n" +
		"\n" +
		"a: # only a comment after the key\n" +
		"b: ~\n" +
		"c:\n" +
		"\n" +
		"d: 1 # trailing\n"
	root, err := ParseText(text)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"a": nil, "b": nil, "c": nil, "d": float64(1)}
	if got := root.Interface(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v", got)
	}
}

func TestParseText_CarriageReturns(t *testing.T) {
	root, err := ParseText("a: 1\r\nb:\r\n  c: 2\r\n")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"a": float64(1), "b": map[string]any{"c": float64(2)}}
	if got := root.Interface(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v", got)
	}
}

func TestParseText_DuplicateKeyLastWins(t *testing.T) {
	root, err := ParseText("a: 1\na: 2\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(root.Pairs) != 1 {
		t.Fatalf("expected a single pair, got %d", len(root.Pairs))
	}
	if got := root.Interface(); !reflect.DeepEqual(got, map[string]any{"a": float64(2)}) {
		t.Fatalf("got %#v", got)
	}
}

func TestParseText_BlockIndicatorOpensNestedBlock(t *testing.T) {
	// The subset accepts | and > syntactically but treats them as "expect
	// a nested block", not as literal block scalars.
	root, err := ParseText("a: |\n  b: 1\nc: >\n")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"a": map[string]any{"b": float64(1)}, "c": nil}
	if got := root.Interface(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v", got)
	}
}

func TestParseText_Empty(t *testing.T) {
	for _, in := range []string{"", "\n\n", "# nothing\n"} {
		root, err := ParseText(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if root.Kind != KindMapping || len(root.Pairs) != 0 {
			t.Fatalf("%q: expected empty mapping, got %#v", in, root)
		}
	}
}

func TestParseText_QuotedKeys(t *testing.T) {
	root, err := ParseText(`"a:b": 1` + "\n")
	if err != nil {
		t.Fatal(err)
	}
	if got := root.Interface(); !reflect.DeepEqual(got, map[string]any{"a:b": float64(1)}) {
		t.Fatalf("got %#v", got)
	}
}

func TestParseText_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"top-level sequence", "- a\n- b\n"},
		{"keyless line in mapping", "a: 1\njust text\n"},
		{"sequence item inside mapping block", "a: 1\n- b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseText(tt.in)
			if !errors.Is(err, ErrTextFormat) {
				t.Fatalf("expected ErrTextFormat, got %v", err)
			}
		})
	}
}

func TestParseText_DeepNestingRejected(t *testing.T) {
	var text string
	indent := ""
	for i := 0; i < maxNestingDepth+2; i++ {
		text += indent + "k:\n"
		indent += "  "
	}
	_, err := ParseText(text)
	if !errors.Is(err, ErrTextFormat) {
		t.Fatalf("expected ErrTextFormat, got %v", err)
	}
}

func TestNodeAccessors(t *testing.T) {
	root, err := ParseText("s: hello\nn: 4\nb: true\nseq: [1]\n")
	if err != nil {
		t.Fatal(err)
	}
	if got := root.StrOr("s", ""); got != "hello" {
		t.Fatalf("StrOr(s) = %q", got)
	}
	if got := root.StrOr("n", ""); got != "4" {
		t.Fatalf("StrOr(n) = %q", got)
	}
	if got := root.StrOr("b", ""); got != "true" {
		t.Fatalf("StrOr(b) = %q", got)
	}
	if got := root.StrOr("seq", "fallback"); got != "fallback" {
		t.Fatalf("StrOr on a sequence must fall back, got %q", got)
	}
	if got := root.StrOr("missing", "d"); got != "d" {
		t.Fatalf("StrOr(missing) = %q", got)
	}
	if root.Get("missing") != nil {
		t.Fatal("Get(missing) must be nil")
	}
	var nilNode *Node
	if nilNode.Get("x") != nil {
		t.Fatal("Get on nil receiver must be nil")
	}
}
