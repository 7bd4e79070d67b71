package ast

// Builder constructs nodes and counts them. A nil *Builder constructs
// without counting.
type Builder struct {
	allocated int
}

// NewBuilder creates a new Builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Allocated returns the number of nodes constructed so far.
func (b *Builder) Allocated() int {
	if b == nil {
		return 0
	}
	return b.allocated
}

// Reset zeroes the allocation count.
func (b *Builder) Reset() {
	if b != nil {
		b.allocated = 0
	}
}

func (b *Builder) count() {
	if b != nil {
		b.allocated++
	}
}

// Rule constructs a rule owning sel and decls.
func (b *Builder) Rule(sel *Selector, decls *Property) *Rule {
	b.count()
	return &Rule{Selector: sel, Declarations: decls}
}

// Selector constructs a simple selector. An empty name is universal.
func (b *Builder) Selector(name string) *Selector {
	b.count()
	return &Selector{Name: name}
}

// Combine constructs a combinator node owning left and right.
func (b *Builder) Combine(c Combinator, left, right *Selector) *Selector {
	b.count()
	return &Selector{Combinator: c, Left: left, Right: right}
}

// Condition constructs a condition.
func (b *Builder) Condition(kind ConditionKind, key, value string) *Condition {
	b.count()
	return &Condition{Kind: kind, Key: key, Value: value}
}

// Property constructs a declaration owning value.
func (b *Builder) Property(name string, value *Value) *Property {
	b.count()
	return &Property{Name: name, Value: value}
}

// Value constructs a value.
func (b *Builder) Value(kind ValueKind, text string) *Value {
	b.count()
	return &Value{Kind: kind, Text: text}
}
