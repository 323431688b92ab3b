package cardbox

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind discriminates the variants of a parsed configuration [Node].
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

// Pair is one ordered key/value entry of a mapping node.
type Pair struct {
	Key   string
	Value *Node
}

// Node is one vertex of a parsed configuration tree.
//
// Scalar kinds carry their value in Value (bool, float64 or string; nil for
// KindNull). Mappings keep their pairs in source order with unique keys; a
// duplicated key resolves last-wins.
type Node struct {
	Kind  Kind
	Value any
	Items []*Node
	Pairs []Pair
}

// Nesting deeper than this is treated as a structural contradiction rather
// than honored, bounding recursion on hostile input.
const maxNestingDepth = 100

var numberPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// ParseText parses the configuration subset into a Node tree. The result is
// always a mapping; an empty or comment-only input yields an empty mapping.
// ErrTextFormat is returned only for structural contradictions, such as a
// keyless line inside a mapping block.
func ParseText(text string) (*Node, error) {
	p := &textParser{lines: strings.Split(text, "\n")}
	i := p.nextContent()
	if i == -1 {
		return &Node{Kind: KindMapping}, nil
	}
	ind, t := p.line(i)
	if isSeqItem(t) {
		return nil, fmt.Errorf("%w: top level must be a mapping (line %d)", ErrTextFormat, i+1)
	}
	return p.parseMapping(ind, 0)
}

// Get returns the value under key, or nil when n is not a mapping or the
// key is absent.
func (n *Node) Get(key string) *Node {
	if n == nil || n.Kind != KindMapping {
		return nil
	}
	for _, pr := range n.Pairs {
		if pr.Key == key {
			return pr.Value
		}
	}
	return nil
}

// StrOr returns the scalar under key rendered as a string, or def when the
// key is absent or holds a non-scalar.
func (n *Node) StrOr(key, def string) string {
	if s, ok := scalarText(n.Get(key)); ok {
		return s
	}
	return def
}

// Interface converts the node to a generic Go value: nil/bool/float64/string
// for scalars, []any for sequences, map[string]any for mappings.
func (n *Node) Interface() any {
	switch n.Kind {
	case KindSequence:
		out := make([]any, 0, len(n.Items))
		for _, it := range n.Items {
			out = append(out, it.Interface())
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(n.Pairs))
		for _, pr := range n.Pairs {
			out[pr.Key] = pr.Value.Interface()
		}
		return out
	default:
		return n.Value
	}
}

func (n *Node) setPair(key string, v *Node) {
	for i := range n.Pairs {
		if n.Pairs[i].Key == key {
			n.Pairs[i].Value = v
			return
		}
	}
	n.Pairs = append(n.Pairs, Pair{Key: key, Value: v})
}

// scalarText renders a scalar node as a string.
func scalarText(n *Node) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Kind {
	case KindString:
		return n.Value.(string), true
	case KindBool:
		return strconv.FormatBool(n.Value.(bool)), true
	case KindNumber:
		return strconv.FormatFloat(n.Value.(float64), 'f', -1, 64), true
	}
	return "", false
}

func nullNode() *Node { return &Node{Kind: KindNull} }

// textParser walks the input line by line. pos always points at the next
// unconsumed line; blocks return control positioned at the first line whose
// indentation left the block.
type textParser struct {
	lines []string
	pos   int
}

// line reports the indentation (count of leading spaces and tabs) and the
// trimmed content of line i. Carriage returns are stripped.
func (p *textParser) line(i int) (indent int, text string) {
	s := strings.TrimSuffix(p.lines[i], "\r")
	for indent < len(s) && (s[indent] == ' ' || s[indent] == '\t') {
		indent++
	}
	return indent, strings.TrimRight(s[indent:], " \t")
}

// nextContent returns the index of the first non-blank, non-comment line at
// or after pos, or -1 at end of input. Skipped lines are consumed.
func (p *textParser) nextContent() int {
	for ; p.pos < len(p.lines); p.pos++ {
		_, t := p.line(p.pos)
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		return p.pos
	}
	return -1
}

func isSeqItem(text string) bool {
	return text == "-" || strings.HasPrefix(text, "- ")
}

// parseBlock parses whatever block starts at the next content line: a
// sequence if it opens with an item marker, a mapping otherwise.
func (p *textParser) parseBlock(minIndent, depth int) (*Node, error) {
	i := p.nextContent()
	if i == -1 {
		return nullNode(), nil
	}
	ind, text := p.line(i)
	if ind < minIndent {
		return nullNode(), nil
	}
	if isSeqItem(text) {
		return p.parseSequence(ind, depth)
	}
	return p.parseMapping(ind, depth)
}

// parseMapping consumes key lines while their indentation stays at or above
// indent. A line with smaller indentation ends the block and is left for
// the caller.
func (p *textParser) parseMapping(indent, depth int) (*Node, error) {
	if depth > maxNestingDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d levels", ErrTextFormat, maxNestingDepth)
	}
	node := &Node{Kind: KindMapping}
	for {
		i := p.nextContent()
		if i == -1 {
			break
		}
		ind, text := p.line(i)
		if ind < indent {
			break
		}
		if isSeqItem(text) {
			return nil, fmt.Errorf("%w: sequence item where a mapping key was expected (line %d)", ErrTextFormat, i+1)
		}
		key, rest, ok := splitKey(text)
		if !ok {
			return nil, fmt.Errorf("%w: expected \"key: value\" (line %d)", ErrTextFormat, i+1)
		}
		p.pos = i + 1
		rest = strings.TrimSpace(stripInlineComment(rest))

		var val *Node
		if rest == "" || rest == "|" || rest == ">" {
			// Null unless the following content is nested more deeply;
			// block-scalar indicators get the same treatment (subset
			// limitation: no literal block scalars).
			j := p.nextContent()
			if j != -1 {
				if childInd, _ := p.line(j); childInd > ind {
					v, err := p.parseBlock(childInd, depth+1)
					if err != nil {
						return nil, err
					}
					val = v
				}
			}
			if val == nil {
				val = nullNode()
			}
		} else {
			val = parseScalarLiteral(rest)
		}
		node.setPair(key, val)
	}
	return node, nil
}

// parseSequence consumes "- " items while their indentation stays at or
// above indent.
func (p *textParser) parseSequence(indent, depth int) (*Node, error) {
	if depth > maxNestingDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d levels", ErrTextFormat, maxNestingDepth)
	}
	node := &Node{Kind: KindSequence}
	for {
		i := p.nextContent()
		if i == -1 {
			break
		}
		ind, text := p.line(i)
		if ind < indent {
			break
		}
		if !isSeqItem(text) {
			return nil, fmt.Errorf("%w: expected a \"- \" sequence item (line %d)", ErrTextFormat, i+1)
		}
		rest := strings.TrimSpace(text[1:])

		var item *Node
		switch {
		case rest == "":
			p.pos = i + 1
			j := p.nextContent()
			if j != -1 {
				if childInd, _ := p.line(j); childInd > ind {
					v, err := p.parseBlock(childInd, depth+1)
					if err != nil {
						return nil, err
					}
					item = v
				}
			}
			if item == nil {
				item = nullNode()
			}
		case startsMapping(rest):
			// An inline-keyed item opens a mapping whose keys sit two
			// columns right of the dash. Reparsing the line at that
			// column lets the mapping parser pick up both the inline
			// pair and any more deeply indented sibling keys.
			p.lines[i] = strings.Repeat(" ", ind+2) + rest
			p.pos = i
			m, err := p.parseMapping(ind+2, depth+1)
			if err != nil {
				return nil, err
			}
			item = m
		default:
			p.pos = i + 1
			item = parseScalarLiteral(rest)
		}
		node.Items = append(node.Items, item)
	}
	return node, nil
}

// startsMapping reports whether a sequence-item remainder is an inline
// "key: value" pair rather than a plain scalar.
func startsMapping(rest string) bool {
	_, _, ok := splitKey(rest)
	return ok
}

// splitKey splits a "key: value" line into the key and the raw remainder.
// The separator is a colon at end of line or followed by whitespace; quoted
// keys may contain colons. Inline collections and quoted scalars are not
// key lines.
func splitKey(s string) (key, rest string, ok bool) {
	if s == "" || s[0] == '[' || s[0] == '{' {
		return "", "", false
	}
	if s[0] == '"' || s[0] == '\'' {
		end := strings.IndexByte(s[1:], s[0])
		if end < 0 {
			return "", "", false
		}
		end++
		tail := strings.TrimLeft(s[end+1:], " \t")
		if !strings.HasPrefix(tail, ":") {
			return "", "", false
		}
		after := tail[1:]
		if after != "" && after[0] != ' ' && after[0] != '\t' {
			return "", "", false
		}
		return s[1:end], strings.TrimSpace(after), true
	}
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			if i+1 == len(s) || s[i+1] == ' ' || s[i+1] == '\t' {
				return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
			}
		}
	}
	return "", "", false
}

// parseScalarLiteral resolves a value remainder into a scalar, inline
// sequence or inline mapping node.
func parseScalarLiteral(s string) *Node {
	s = strings.TrimSpace(stripInlineComment(s))
	switch s {
	case "", "null", "~":
		return nullNode()
	case "true":
		return &Node{Kind: KindBool, Value: true}
	case "false":
		return &Node{Kind: KindBool, Value: false}
	}
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return &Node{Kind: KindString, Value: s[1 : len(s)-1]}
		}
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		seq := &Node{Kind: KindSequence}
		for _, part := range splitTopLevel(s[1 : len(s)-1]) {
			seq.Items = append(seq.Items, parseScalarLiteral(part))
		}
		return seq
	}
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		m := &Node{Kind: KindMapping}
		for _, part := range splitTopLevel(s[1 : len(s)-1]) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if key, rest, ok := splitKey(part); ok {
				m.setPair(key, parseScalarLiteral(rest))
			}
		}
		return m
	}
	if numberPattern.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return &Node{Kind: KindNumber, Value: f}
		}
	}
	return &Node{Kind: KindString, Value: s}
}

// stripInlineComment removes a trailing " #comment" outside of quotes. A
// value consisting solely of a comment resolves to the empty remainder.
func stripInlineComment(s string) string {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '#':
			if i == 0 || s[i-1] == ' ' || s[i-1] == '\t' {
				return s[:i]
			}
		}
	}
	return s
}

// splitTopLevel splits on commas that are not nested inside quotes,
// brackets or braces.
func splitTopLevel(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var parts []string
	var quote byte
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '[', '{':
			depth++
		case ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
