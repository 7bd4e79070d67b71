// Package ast defines the rule tree produced by the CSS parser.
//
// Every node is owned by exactly one parent or predecessor. Lists are
// singly linked through Next fields in source order.
package ast

import "iter"

// Combinator joins two selectors.
type Combinator uint8

const (
	// CombineNone marks a simple selector.
	CombineNone Combinator = iota
	// CombineDescendant is written as whitespace.
	CombineDescendant
	// CombineChild is written '>'.
	CombineChild
	// CombineAdjacent is written '+'.
	CombineAdjacent
)

// Rune returns the character the combinator is written with, or 0 for
// CombineNone.
func (c Combinator) Rune() rune {
	switch c {
	case CombineDescendant:
		return ' '
	case CombineChild:
		return '>'
	case CombineAdjacent:
		return '+'
	}
	return 0
}

func (c Combinator) String() string {
	switch c {
	case CombineDescendant:
		return "descendant"
	case CombineChild:
		return "child"
	case CombineAdjacent:
		return "adjacent"
	}
	return "none"
}

func (c Combinator) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ConditionKind identifies the test a Condition applies to an element.
type ConditionKind uint8

const (
	ConditionPseudo ConditionKind = iota
	ConditionClass
	ConditionID
	// ConditionAttribute tests for presence of an attribute.
	ConditionAttribute
	ConditionAttributeEquals
	// ConditionAttributeDashMatch is the '|=' test: equal to the value or
	// starting with the value followed by '-'.
	ConditionAttributeDashMatch
	// ConditionAttributeIncludes is the '~=' test: the value is one of the
	// whitespace separated words.
	ConditionAttributeIncludes
)

// Keys used by the non-attribute conditions.
const (
	KeyPseudo = "pseudo"
	KeyClass  = "class"
	KeyID     = "id"
)

// Rune returns the character that introduces or identifies the condition.
func (k ConditionKind) Rune() rune {
	switch k {
	case ConditionPseudo:
		return ':'
	case ConditionClass:
		return '.'
	case ConditionID:
		return '#'
	case ConditionAttribute:
		return '['
	case ConditionAttributeEquals:
		return '='
	case ConditionAttributeDashMatch:
		return '|'
	case ConditionAttributeIncludes:
		return '~'
	}
	return 0
}

func (k ConditionKind) String() string {
	switch k {
	case ConditionPseudo:
		return "pseudo"
	case ConditionClass:
		return "class"
	case ConditionID:
		return "id"
	case ConditionAttribute:
		return "attribute"
	case ConditionAttributeEquals:
		return "attribute-equals"
	case ConditionAttributeDashMatch:
		return "attribute-dash-match"
	case ConditionAttributeIncludes:
		return "attribute-includes"
	}
	return "unknown"
}

func (k ConditionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsAttribute reports whether k is one of the bracketed attribute tests.
func (k ConditionKind) IsAttribute() bool {
	return k >= ConditionAttribute
}

// ValueKind identifies the type of a declaration value.
type ValueKind uint8

const (
	ValueKeyword ValueKind = iota
	ValueNumber
	ValueLength
	ValuePercent
	ValueString
	ValueColor
	ValueURI
	ValueFunction
	ValueComma
	ValueSlash
)

var valueKindNames = [...]string{
	ValueKeyword:  "keyword",
	ValueNumber:   "number",
	ValueLength:   "length",
	ValuePercent:  "percent",
	ValueString:   "string",
	ValueColor:    "color",
	ValueURI:      "uri",
	ValueFunction: "function",
	ValueComma:    "comma",
	ValueSlash:    "slash",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return "unknown"
}

func (k ValueKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Rule pairs a selector expression with its declarations.
type Rule struct {
	Selector     *Selector
	Declarations *Property

	// Garbage is reserved for consumers that need a second declaration
	// list per rule. The parser never fills it.
	Garbage *Property

	Next *Rule
}

// Selector is either a simple selector (Combinator is CombineNone) with an
// optional type name and conditions, or a combinator node joining Left and
// Right. Next links the comma separated alternatives of a rule and is only
// set on top level selectors.
type Selector struct {
	Name       string
	Combinator Combinator
	Left       *Selector
	Right      *Selector
	Conditions *Condition
	Next       *Selector
}

// Condition is a pseudo-class, class, id or attribute test.
type Condition struct {
	Kind  ConditionKind
	Key   string
	Value string
	Next  *Condition
}

// Property is a single declaration.
type Property struct {
	Name  string
	Value *Value

	// Specificity is reserved for cascade implementations and stays 0.
	Specificity int

	Next *Property
}

// Value is one component of a declaration value. Function values carry the
// function name in Text and their arguments in Args. Separators carry their
// character.
type Value struct {
	Kind ValueKind
	Text string
	Args *Value
	Next *Value
}

// IsUniversal reports whether s is a simple selector with no type name.
func (s *Selector) IsUniversal() bool {
	return s.Combinator == CombineNone && s.Name == ""
}

// IsCombinator reports whether s joins two selectors.
func (s *Selector) IsCombinator() bool {
	return s.Combinator != CombineNone
}

// All iterates over r and the rules following it.
func (r *Rule) All() iter.Seq[*Rule] {
	return func(yield func(*Rule) bool) {
		for n := r; n != nil; n = n.Next {
			if !yield(n) {
				return
			}
		}
	}
}

// Len returns the number of rules in the chain starting at r.
func (r *Rule) Len() int {
	n := 0
	for range r.All() {
		n++
	}
	return n
}

// Alternatives iterates over s and the comma separated selectors after it.
func (s *Selector) Alternatives() iter.Seq[*Selector] {
	return func(yield func(*Selector) bool) {
		for n := s; n != nil; n = n.Next {
			if !yield(n) {
				return
			}
		}
	}
}

// Len returns the number of alternatives starting at s.
func (s *Selector) Len() int {
	n := 0
	for range s.Alternatives() {
		n++
	}
	return n
}

// All iterates over c and the conditions following it.
func (c *Condition) All() iter.Seq[*Condition] {
	return func(yield func(*Condition) bool) {
		for n := c; n != nil; n = n.Next {
			if !yield(n) {
				return
			}
		}
	}
}

// Len returns the number of conditions starting at c.
func (c *Condition) Len() int {
	n := 0
	for range c.All() {
		n++
	}
	return n
}

// All iterates over p and the declarations following it.
func (p *Property) All() iter.Seq[*Property] {
	return func(yield func(*Property) bool) {
		for n := p; n != nil; n = n.Next {
			if !yield(n) {
				return
			}
		}
	}
}

// Len returns the number of declarations starting at p.
func (p *Property) Len() int {
	n := 0
	for range p.All() {
		n++
	}
	return n
}

// All iterates over v and the values following it. Function arguments are
// not visited; use Walk for that.
func (v *Value) All() iter.Seq[*Value] {
	return func(yield func(*Value) bool) {
		for n := v; n != nil; n = n.Next {
			if !yield(n) {
				return
			}
		}
	}
}

// Len returns the number of values starting at v.
func (v *Value) Len() int {
	n := 0
	for range v.All() {
		n++
	}
	return n
}

// Walk iterates depth first over v, its followers and every function
// argument, in source order.
func (v *Value) Walk() iter.Seq[*Value] {
	return func(yield func(*Value) bool) {
		walkValues(v, yield)
	}
}

func walkValues(v *Value, yield func(*Value) bool) bool {
	for ; v != nil; v = v.Next {
		if !yield(v) {
			return false
		}
		if !walkValues(v.Args, yield) {
			return false
		}
	}
	return true
}

// Append links tail after the last rule of chain and returns the head of
// the combined chain.
func Append(chain, tail *Rule) *Rule {
	if chain == nil {
		return tail
	}
	last := chain
	for last.Next != nil {
		last = last.Next
	}
	last.Next = tail
	return chain
}
