package ast

// Drop releases a rule chain and everything it owns, severing every link so
// that nothing reachable from a retained node keeps the tree alive. It
// returns the number of nodes released. Drop(nil) returns 0.
func Drop(rule *Rule) int {
	n := 0
	for rule != nil {
		next := rule.Next
		n += 1 + DropSelectors(rule.Selector) +
			DropProperties(rule.Declarations) +
			DropProperties(rule.Garbage)
		*rule = Rule{}
		rule = next
	}
	return n
}

// DropSelectors releases a selector list, including combinator operands and
// conditions.
func DropSelectors(sel *Selector) int {
	n := 0
	for sel != nil {
		next := sel.Next
		n += 1 + DropSelectors(sel.Left) +
			DropSelectors(sel.Right) +
			DropConditions(sel.Conditions)
		*sel = Selector{}
		sel = next
	}
	return n
}

// DropConditions releases a condition list.
func DropConditions(cond *Condition) int {
	n := 0
	for cond != nil {
		next := cond.Next
		n++
		*cond = Condition{}
		cond = next
	}
	return n
}

// DropProperties releases a declaration list and its values.
func DropProperties(prop *Property) int {
	n := 0
	for prop != nil {
		next := prop.Next
		n += 1 + DropValues(prop.Value)
		*prop = Property{}
		prop = next
	}
	return n
}

// DropValues releases a value list, including function arguments.
func DropValues(val *Value) int {
	n := 0
	for val != nil {
		next := val.Next
		n += 1 + DropValues(val.Args)
		*val = Value{}
		val = next
	}
	return n
}
