package ast

import "strings"

// Format renders a rule chain as CSS text, one rule per block.
func Format(rule *Rule) string {
	var b strings.Builder
	for r := range rule.All() {
		writeRule(&b, r)
	}
	return b.String()
}

// FormatDeclarations renders a declaration list the way it would appear in
// a style attribute.
func FormatDeclarations(prop *Property) string {
	var b strings.Builder
	for p := range prop.All() {
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		writeProperty(&b, p)
	}
	return b.String()
}

func (r *Rule) String() string {
	var b strings.Builder
	writeRule(&b, r)
	return b.String()
}

// String renders s and, for top level selectors, the alternatives after it.
func (s *Selector) String() string {
	var b strings.Builder
	for alt := range s.Alternatives() {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		writeSelector(&b, alt)
	}
	return b.String()
}

func (c *Condition) String() string {
	var b strings.Builder
	writeCondition(&b, c)
	return b.String()
}

func (p *Property) String() string {
	var b strings.Builder
	writeProperty(&b, p)
	return b.String()
}

// String renders v and the values following it.
func (v *Value) String() string {
	var b strings.Builder
	writeValues(&b, v)
	return b.String()
}

// FormatValue renders v alone, without the values following it.
func FormatValue(v *Value) string {
	if v == nil {
		return ""
	}
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeRule(b *strings.Builder, r *Rule) {
	b.WriteString(r.Selector.String())
	b.WriteString(" {\n")
	for p := range r.Declarations.All() {
		b.WriteString("  ")
		writeProperty(b, p)
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
}

func writeSelector(b *strings.Builder, s *Selector) {
	if s.IsCombinator() {
		writeSelector(b, s.Left)
		if s.Combinator == CombineDescendant {
			b.WriteByte(' ')
		} else {
			b.WriteByte(' ')
			b.WriteRune(s.Combinator.Rune())
			b.WriteByte(' ')
		}
		writeSelector(b, s.Right)
		return
	}
	switch {
	case s.Name != "":
		b.WriteString(s.Name)
	case s.Conditions == nil:
		b.WriteByte('*')
	}
	for c := range s.Conditions.All() {
		writeCondition(b, c)
	}
}

func writeCondition(b *strings.Builder, c *Condition) {
	switch c.Kind {
	case ConditionPseudo, ConditionClass, ConditionID:
		b.WriteRune(c.Kind.Rune())
		b.WriteString(c.Value)
		return
	}
	b.WriteByte('[')
	b.WriteString(c.Key)
	switch c.Kind {
	case ConditionAttributeEquals:
		b.WriteByte('=')
	case ConditionAttributeDashMatch, ConditionAttributeIncludes:
		b.WriteRune(c.Kind.Rune())
		b.WriteByte('=')
	}
	if c.Kind != ConditionAttribute {
		writeQuoted(b, c.Value)
	}
	b.WriteByte(']')
}

func writeProperty(b *strings.Builder, p *Property) {
	b.WriteString(p.Name)
	b.WriteString(": ")
	writeValues(b, p.Value)
}

func writeValues(b *strings.Builder, v *Value) {
	first := true
	for n := range v.All() {
		if !first && n.Kind != ValueComma {
			b.WriteByte(' ')
		}
		first = false
		writeValue(b, n)
	}
}

func writeValue(b *strings.Builder, v *Value) {
	switch v.Kind {
	case ValueString:
		writeQuoted(b, v.Text)
	case ValueColor:
		b.WriteByte('#')
		b.WriteString(v.Text)
	case ValueURI:
		b.WriteString("url()")
	case ValueFunction:
		b.WriteString(v.Text)
		b.WriteByte('(')
		writeValues(b, v.Args)
		b.WriteByte(')')
	default:
		b.WriteString(v.Text)
	}
}

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\f", `\f`,
)

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	quoteReplacer.WriteString(b, s)
	b.WriteByte('"')
}
