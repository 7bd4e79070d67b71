package parser

import (
	"bennypowers.dev/csstree/css/ast"
	"bennypowers.dev/csstree/css/lexer"
)

// Combinators are right associative and bind, from tightest to loosest:
// adjacent '+', child '>', descendant (whitespace). "a > b + c d" parses as
// descendant(child(a, adjacent(b, c)), d).

func (p *Parser) parseSelectorList() (*ast.Selector, error) {
	head, err := p.parseDescendant()
	if err != nil {
		return nil, err
	}
	tail := head
	for p.tok.Kind == lexer.Comma {
		if err := p.next(); err != nil {
			return nil, err
		}
		sel, err := p.parseDescendant()
		if err != nil {
			return nil, err
		}
		tail.Next = sel
		tail = sel
	}
	return head, nil
}

func (p *Parser) parseDescendant() (*ast.Selector, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseChild()
	if err != nil {
		return nil, err
	}
	switch p.tok.Kind {
	case lexer.Comma, lexer.LeftBrace, lexer.EOF:
		return left, nil
	}
	right, err := p.parseDescendant()
	if err != nil {
		return nil, err
	}
	return p.build.Combine(ast.CombineDescendant, left, right), nil
}

func (p *Parser) parseChild() (*ast.Selector, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseAdjacent()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.Greater {
		return left, nil
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	right, err := p.parseChild()
	if err != nil {
		return nil, err
	}
	return p.build.Combine(ast.CombineChild, left, right), nil
}

func (p *Parser) parseAdjacent() (*ast.Selector, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseSimple()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.Plus {
		return left, nil
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	right, err := p.parseAdjacent()
	if err != nil {
		return nil, err
	}
	return p.build.Combine(ast.CombineAdjacent, left, right), nil
}

func startsCondition(kind lexer.Kind) bool {
	switch kind {
	case lexer.Colon, lexer.Period, lexer.Hash, lexer.LeftBracket:
		return true
	}
	return false
}

func (p *Parser) parseSimple() (*ast.Selector, error) {
	var sel *ast.Selector
	switch {
	case p.tok.Kind == lexer.Asterisk:
		sel = p.build.Selector("")
		if err := p.next(); err != nil {
			return nil, err
		}
	case p.tok.Kind == lexer.Keyword:
		sel = p.build.Selector(p.tok.Text)
		if err := p.next(); err != nil {
			return nil, err
		}
	case startsCondition(p.tok.Kind):
		sel = p.build.Selector("")
	default:
		return nil, p.errorf("expected selector")
	}

	if startsCondition(p.tok.Kind) {
		conds, err := p.parseConditionList()
		if err != nil {
			return nil, err
		}
		sel.Conditions = conds
	}
	return sel, nil
}

func (p *Parser) parseConditionList() (*ast.Condition, error) {
	head, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	tail := head
	for startsCondition(p.tok.Kind) {
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		tail.Next = cond
		tail = cond
	}
	return head, nil
}

func (p *Parser) parseCondition() (*ast.Condition, error) {
	var kind ast.ConditionKind
	var key string
	switch p.tok.Kind {
	case lexer.Colon:
		kind, key = ast.ConditionPseudo, ast.KeyPseudo
	case lexer.Period:
		kind, key = ast.ConditionClass, ast.KeyClass
	case lexer.Hash:
		kind, key = ast.ConditionID, ast.KeyID
	case lexer.LeftBracket:
		return p.parseAttribute()
	default:
		return nil, p.errorf("expected condition")
	}

	marker := p.tok.Text
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.Keyword {
		return nil, p.errorf("expected keyword after '%s'", marker)
	}
	cond := p.build.Condition(kind, key, p.tok.Text)
	if err := p.next(); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseAttribute() (*ast.Condition, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.Keyword {
		return nil, p.errorf("expected keyword after '['")
	}
	cond := p.build.Condition(ast.ConditionAttribute, p.tok.Text, "")
	if err := p.next(); err != nil {
		return nil, err
	}

	switch p.tok.Kind {
	case lexer.Equals:
		cond.Kind = ast.ConditionAttributeEquals
	case lexer.Bar:
		cond.Kind = ast.ConditionAttributeDashMatch
	case lexer.Tilde:
		cond.Kind = ast.ConditionAttributeIncludes
	}
	if cond.Kind != ast.ConditionAttribute {
		if cond.Kind != ast.ConditionAttributeEquals {
			if err := p.next(); err != nil {
				return nil, err
			}
			if p.tok.Kind != lexer.Equals {
				return nil, p.errorf("expected '=' in attribute selector")
			}
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.Kind != lexer.Keyword && p.tok.Kind != lexer.String {
			return nil, p.errorf("expected attribute value")
		}
		cond.Value = p.tok.Text
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	if err := p.expect(lexer.RightBracket); err != nil {
		return nil, err
	}
	return cond, nil
}
