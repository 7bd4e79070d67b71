package main

import (
	"encoding/json"
	"fmt"
	"io"

	"bennypowers.dev/csstree/css/ast"
	"bennypowers.dev/csstree/internal/config"
	"gopkg.in/yaml.v3"
)

// The dump types flatten the linked rule tree into lists for YAML and JSON

type stylesheetDump struct {
	Files []string   `yaml:"files" json:"files"`
	Rules []ruleDump `yaml:"rules" json:"rules"`
}

type ruleDump struct {
	Selector     string         `yaml:"selector" json:"selector"`
	Selectors    []selectorDump `yaml:"selectors" json:"selectors"`
	Declarations []propertyDump `yaml:"declarations,omitempty" json:"declarations,omitempty"`
}

type selectorDump struct {
	Name       string          `yaml:"name,omitempty" json:"name,omitempty"`
	Combinator ast.Combinator  `yaml:"combinator,omitempty" json:"combinator,omitempty"`
	Left       *selectorDump   `yaml:"left,omitempty" json:"left,omitempty"`
	Right      *selectorDump   `yaml:"right,omitempty" json:"right,omitempty"`
	Conditions []conditionDump `yaml:"conditions,omitempty" json:"conditions,omitempty"`
}

type conditionDump struct {
	Kind  ast.ConditionKind `yaml:"kind" json:"kind"`
	Key   string            `yaml:"key" json:"key"`
	Value string            `yaml:"value,omitempty" json:"value,omitempty"`
}

type propertyDump struct {
	Name   string      `yaml:"name" json:"name"`
	Values []valueDump `yaml:"values" json:"values"`
}

type valueDump struct {
	Kind ast.ValueKind `yaml:"kind" json:"kind"`
	Text string        `yaml:"text,omitempty" json:"text,omitempty"`
	Args []valueDump   `yaml:"args,omitempty" json:"args,omitempty"`
}

func dumpRules(chain *ast.Rule) []ruleDump {
	rules := []ruleDump{}
	for r := range chain.All() {
		rule := ruleDump{Selector: r.Selector.String()}
		for sel := range r.Selector.Alternatives() {
			rule.Selectors = append(rule.Selectors, *dumpSelector(sel))
		}
		for prop := range r.Declarations.All() {
			rule.Declarations = append(rule.Declarations, propertyDump{
				Name:   prop.Name,
				Values: dumpValues(prop.Value),
			})
		}
		rules = append(rules, rule)
	}
	return rules
}

func dumpSelector(sel *ast.Selector) *selectorDump {
	if sel == nil {
		return nil
	}
	if sel.IsCombinator() {
		return &selectorDump{
			Combinator: sel.Combinator,
			Left:       dumpSelector(sel.Left),
			Right:      dumpSelector(sel.Right),
		}
	}
	d := &selectorDump{Name: sel.Name}
	for c := range sel.Conditions.All() {
		d.Conditions = append(d.Conditions, conditionDump{Kind: c.Kind, Key: c.Key, Value: c.Value})
	}
	return d
}

func dumpValues(v *ast.Value) []valueDump {
	var values []valueDump
	for val := range v.All() {
		values = append(values, valueDump{
			Kind: val.Kind,
			Text: val.Text,
			Args: dumpValues(val.Args),
		})
	}
	return values
}

func writeDump(w io.Writer, format string, dump any) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dump)
	case config.FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dump); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
