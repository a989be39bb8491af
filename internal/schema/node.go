// Package schema validates untrusted nested payloads against a declarative
// tree of validator nodes.
//
// A Node is either a scalar (a string run through an ordered list of
// Rules) or a composite (a fixed list of named child nodes). Validation
// walks the whole tree and collects every failure; inside a single scalar
// the first failing rule wins. Keys the tree does not name are ignored.
package schema

import (
	"fmt"
	"strings"
)

// Kind discriminates the two node variants.
type Kind uint8

const (
	KindScalar Kind = iota + 1
	KindComposite
)

// Node is one element of a schema tree.
type Node struct {
	Kind Kind

	// Rules run in order on scalars. Put Required first: an absent value
	// cannot be format-checked.
	Rules []Rule
	// Default is used when a scalar is absent from the payload.
	Default string

	// Fields lists the children of a composite, in reporting order.
	Fields []Field

	// Optional nodes that are absent (or blank scalars) are left out of
	// the normalized output instead of being reported.
	Optional bool

	// Messages overrides the reported message per failure code. "{value}"
	// is replaced with the offending value.
	Messages map[Code]string
}

// Field names a child node inside a composite.
type Field struct {
	Name string
	Node Node
}

// Scalar builds a string node checked by rules.
func Scalar(rules ...Rule) Node {
	return Node{Kind: KindScalar, Rules: rules}
}

// Composite builds an object node made of fields.
func Composite(fields ...Field) Node {
	return Node{Kind: KindComposite, Fields: fields}
}

// F pairs a field name with its node.
func F(name string, n Node) Field {
	return Field{Name: name, Node: n}
}

// WithDefault returns a copy of n that falls back to v when absent.
func (n Node) WithDefault(v string) Node {
	n.Default = v
	return n
}

// AsOptional returns a copy of n that may be absent.
func (n Node) AsOptional() Node {
	n.Optional = true
	return n
}

// WithMessages returns a copy of n with per-code message overrides.
func (n Node) WithMessages(m map[Code]string) Node {
	n.Messages = m
	return n
}

// Validate checks raw against n. It returns the normalized value (a
// map[string]any for composites, a trimmed string for scalars) or the
// ordered list of failures. A nil raw value counts as absent.
func (n Node) Validate(raw any) (any, Errors) {
	var errs Errors
	out, _ := n.walk("", raw, raw != nil, &errs)
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (n Node) walk(path string, raw any, present bool, errs *Errors) (any, bool) {
	if raw == nil {
		present = false
	}
	switch n.Kind {
	case KindScalar:
		return n.walkScalar(path, raw, present, errs)
	case KindComposite:
		return n.walkComposite(path, raw, present, errs)
	}
	return nil, false
}

func (n Node) walkScalar(path string, raw any, present bool, errs *Errors) (any, bool) {
	var value string
	if present {
		s, ok := raw.(string)
		if !ok {
			n.report(errs, path, &Violation{Code: InvalidFormat, Message: "must be a string"}, fmt.Sprint(raw))
			return nil, false
		}
		value = strings.TrimSpace(s)
	} else if n.Default != "" {
		value = n.Default
	}

	if value == "" && n.Optional {
		return nil, false
	}
	for _, rule := range n.Rules {
		next, v := rule(value)
		if v != nil {
			n.report(errs, path, v, value)
			return nil, false
		}
		value = next
	}
	return value, true
}

func (n Node) walkComposite(path string, raw any, present bool, errs *Errors) (any, bool) {
	if !present {
		if n.Optional {
			return nil, false
		}
		n.report(errs, path, &Violation{Code: MissingField, Message: "is required"}, "")
		return nil, false
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		n.report(errs, path, &Violation{Code: InvalidFormat, Message: "must be an object"}, "")
		return nil, false
	}

	out := make(map[string]any, len(n.Fields))
	for _, f := range n.Fields {
		child, has := obj[f.Name]
		if v, keep := f.Node.walk(join(path, f.Name), child, has, errs); keep {
			out[f.Name] = v
		}
	}
	return out, true
}

func (n Node) report(errs *Errors, path string, v *Violation, value string) {
	msg, ok := n.Messages[v.Code]
	if ok {
		msg = strings.ReplaceAll(msg, "{value}", value)
	} else {
		label := path
		if label == "" {
			label = "payload"
		}
		msg = label + " " + v.Message
	}
	*errs = append(*errs, FieldError{Path: path, Code: v.Code, Message: msg})
}

func join(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
