package parser

import (
	"bennypowers.dev/csstree/css/ast"
	"bennypowers.dev/csstree/css/lexer"
)

var valueKinds = map[lexer.Kind]ast.ValueKind{
	lexer.Number:  ast.ValueNumber,
	lexer.Length:  ast.ValueLength,
	lexer.Percent: ast.ValuePercent,
	lexer.String:  ast.ValueString,
	lexer.Color:   ast.ValueColor,
	lexer.URI:     ast.ValueURI,
	lexer.Comma:   ast.ValueComma,
	lexer.Slash:   ast.ValueSlash,
}

// parseDeclarationList parses semicolon separated declarations. Empty
// slots between semicolons are skipped.
func (p *Parser) parseDeclarationList() (*ast.Property, error) {
	if p.tok.Kind == lexer.RightBrace || p.tok.Kind == lexer.EOF {
		return nil, nil
	}
	head, err := p.parseDeclaration()
	if err != nil {
		return nil, err
	}
	tail := head
	for p.tok.Kind == lexer.Semicolon {
		if err := p.next(); err != nil {
			return nil, err
		}
		switch p.tok.Kind {
		case lexer.RightBrace, lexer.Semicolon, lexer.EOF:
			continue
		}
		prop, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		tail.Next = prop
		tail = prop
	}
	return head, nil
}

func (p *Parser) parseDeclaration() (*ast.Property, error) {
	if p.tok.Kind != lexer.Keyword {
		return nil, p.errorf("expected keyword in property")
	}
	name := p.tok.Text
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}

	values, err := p.parseValueList()
	if err != nil {
		return nil, err
	}
	if values == nil {
		return nil, p.errorf("expected value")
	}

	// "!important" and friends are accepted and dropped
	if p.tok.Kind == lexer.Bang {
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.Kind != lexer.Keyword {
			return nil, p.errorf("expected keyword after '!'")
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return p.build.Property(name, values), nil
}

func endsValueList(kind lexer.Kind) bool {
	switch kind {
	case lexer.RightBrace, lexer.Semicolon, lexer.Bang, lexer.RightParen, lexer.EOF:
		return true
	}
	return false
}

func (p *Parser) parseValueList() (*ast.Value, error) {
	var head, tail *ast.Value
	for !endsValueList(p.tok.Kind) {
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if head == nil {
			head = val
		} else {
			tail.Next = val
		}
		tail = val
	}
	return head, nil
}

func (p *Parser) parseValue() (*ast.Value, error) {
	if p.tok.Kind == lexer.Keyword {
		return p.parseKeywordOrFunction()
	}
	kind, ok := valueKinds[p.tok.Kind]
	if !ok {
		return nil, p.errorf("expected value, found %s", p.tok)
	}
	val := p.build.Value(kind, p.tok.Text)
	if err := p.next(); err != nil {
		return nil, err
	}
	return val, nil
}

func (p *Parser) parseKeywordOrFunction() (*ast.Value, error) {
	val := p.build.Value(ast.ValueKeyword, p.tok.Text)
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.LeftParen {
		return val, nil
	}

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if err := p.next(); err != nil {
		return nil, err
	}
	val.Kind = ast.ValueFunction
	args, err := p.parseValueList()
	if err != nil {
		return nil, err
	}
	val.Args = args
	if err := p.expect(lexer.RightParen); err != nil {
		return nil, err
	}
	return val, nil
}
