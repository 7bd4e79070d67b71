package color

import (
	"bennypowers.dev/csstree/css/ast"
	"github.com/mazznoer/csscolorparser"
)

// Declared is a color used in a declaration value
type Declared struct {
	Selector string
	Property string
	// Value is the value as it prints in CSS
	Value string
	Color csscolorparser.Color
}

// Collect returns the colors used by the declarations of rules, in
// source order. Values nested in functions such as gradients are included.
func Collect(rules *ast.Rule) []Declared {
	var found []Declared
	for rule := range rules.All() {
		selector := rule.Selector.String()
		for prop := range rule.Declarations.All() {
			for v := range prop.Value.Walk() {
				c, ok := FromValue(v)
				if !ok {
					continue
				}
				found = append(found, Declared{
					Selector: selector,
					Property: prop.Name,
					Value:    ast.FormatValue(v),
					Color:    c,
				})
			}
		}
	}
	return found
}
