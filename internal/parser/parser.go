// Package parser implements a hand-written Pratt/precedence-climbing
// parser over internal/lexer's token stream, producing the immutable
// internal/ast tree the evaluator walks.
package parser

import (
	"strconv"

	"github.com/oxhq/veneer/internal/ast"
	"github.com/oxhq/veneer/internal/lexer"
	"github.com/oxhq/veneer/internal/object"
	"github.com/oxhq/veneer/internal/symbol"
)

// Parser holds parse-time state: the token stream and the lexical
// LocalVarNames set threaded through descent so bare identifiers resolve
// as variables, global functions, or self-method calls exactly once,
// here, rather than being re-disambiguated at eval time.
type Parser struct {
	lex     *lexer.Lexer
	locals  map[symbol.Symbol]bool
	globals map[symbol.Symbol]bool
	cur     lexer.Token
	err     error
}

// New constructs a Parser over src. locals and globals name (respectively)
// symbols already known to be local variables and the global function
// registry; both may be nil.
func New(src string, locals, globals map[symbol.Symbol]bool) *Parser {
	if locals == nil {
		locals = make(map[symbol.Symbol]bool)
	}
	if globals == nil {
		globals = make(map[symbol.Symbol]bool)
	}
	p := &Parser{lex: lexer.New(src), locals: locals, globals: globals}
	p.advance()
	return p
}

// Parse parses src as a single full_expression and fails with a
// parse-error (or lex-error, propagated from the lexer) on malformed
// input or unconsumed trailing tokens.
func Parse(src string, locals, globals map[symbol.Symbol]bool) (ast.Node, error) {
	p := New(src, locals, globals)
	node, err := p.ParseFullExpression()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if p.cur.Kind != lexer.EOF {
		return nil, p.errorf("unexpected trailing token %s", p.cur)
	}
	return node, nil
}

func (p *Parser) advance() {
	if p.err != nil {
		return
	}
	p.cur, p.err = p.lex.Next()
}

func (p *Parser) errorf(format string, args ...any) *object.ScriptError {
	return object.NewParseError(format, args...)
}

func (p *Parser) fail() (ast.Node, error) {
	return nil, p.err
}

func (p *Parser) skipNewlines() {
	for p.cur.Kind == lexer.NEWLINE {
		p.advance()
	}
}

func (p *Parser) expect(kind lexer.Kind) error {
	if p.cur.Kind != kind {
		return p.errorf("expected %s, got %s", kind, p.cur)
	}
	return nil
}

// ParseFullExpression is the expression-parser entry point: an optional
// `name = expr` assignment, otherwise `cond ? a : b` at the top, descending
// through every precedence level to postfix calls.
func (p *Parser) ParseFullExpression() (ast.Node, error) {
	if p.err != nil {
		return p.fail()
	}
	return p.parseAssignmentOrExpr()
}

func (p *Parser) parseTernary() (ast.Node, error) {
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != lexer.QUESTION {
		return cond, nil
	}
	p.advance()
	then, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	p.advance()
	els, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return &ast.Conditional{Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) parseOr() (ast.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.OR {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: "||", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Node, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.AND {
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: "&&", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.EQ || p.cur.Kind == lexer.NEQ || p.cur.Kind == lexer.MATCH {
		op := string(p.cur.Kind)
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Node, error) {
	left, err := p.parseRange()
	if err != nil {
		return nil, err
	}
	for isComparisonOp(p.cur.Kind) {
		op := string(p.cur.Kind)
		p.advance()
		right, err := p.parseRange()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func isComparisonOp(k lexer.Kind) bool {
	switch k {
	case lexer.LT, lexer.LE, lexer.GT, lexer.GE, lexer.CMP:
		return true
	}
	return false
}

func (p *Parser) parseRange() (ast.Node, error) {
	left, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind == lexer.DOTDOT || p.cur.Kind == lexer.DOTDOTDOT {
		exclusive := p.cur.Kind == lexer.DOTDOTDOT
		p.advance()
		right, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		return &ast.RangeOp{Lhs: left, Rhs: right, Exclusive: exclusive}, nil
	}
	return left, nil
}

func (p *Parser) parseBitOr() (ast.Node, error) {
	left, err := p.parseBitAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.PIPE || p.cur.Kind == lexer.CARET {
		op := string(p.cur.Kind)
		p.advance()
		right, err := p.parseBitAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseBitAnd() (ast.Node, error) {
	left, err := p.parseShift()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.AMP {
		p.advance()
		right, err := p.parseShift()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: "&", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseShift() (ast.Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.SHL || p.cur.Kind == lexer.SHR {
		op := string(p.cur.Kind)
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.PLUS || p.cur.Kind == lexer.MINUS {
		op := string(p.cur.Kind)
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.STAR || p.cur.Kind == lexer.SLASH || p.cur.Kind == lexer.PERCENT {
		op := string(p.cur.Kind)
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Node, error) {
	switch p.cur.Kind {
	case lexer.PLUS, lexer.MINUS, lexer.BANG:
		op := string(p.cur.Kind)
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: op, Operand: operand}, nil
	}
	return p.parsePower()
}

func (p *Parser) parsePower() (ast.Node, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind == lexer.POW {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Op: "**", Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *Parser) parsePostfix() (ast.Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Kind {
		case lexer.DOT:
			p.advance()
			if p.cur.Kind != lexer.IDENT && !isKeywordIdent(p.cur.Kind) {
				return nil, p.errorf("expected method name after '.', got %s", p.cur)
			}
			name := symbol.Intern(p.cur.Literal)
			p.advance()
			args, block, err := p.parseCallArgsAndBlock()
			if err != nil {
				return nil, err
			}
			node = &ast.MemberFuncCall{Lhs: node, Name: name, Args: args, Block: block}
		case lexer.SAFENAV:
			p.advance()
			if p.cur.Kind != lexer.IDENT {
				return nil, p.errorf("expected method name after '&.', got %s", p.cur)
			}
			name := symbol.Intern(p.cur.Literal)
			p.advance()
			args, block, err := p.parseCallArgsAndBlock()
			if err != nil {
				return nil, err
			}
			node = &ast.SafeNavMemberFuncCall{Lhs: node, Name: name, Args: args, Block: block}
		case lexer.COLONCOLON:
			p.advance()
			if err := p.expect(lexer.CONSTANT); err != nil {
				return nil, err
			}
			name := symbol.Intern(p.cur.Literal)
			p.advance()
			node = &ast.ConstantNav{Lhs: node, Name: name}
		case lexer.LBRACKET:
			p.advance()
			args, err := p.parseArgList(lexer.RBRACKET)
			if err != nil {
				return nil, err
			}
			if err := p.expect(lexer.RBRACKET); err != nil {
				return nil, err
			}
			p.advance()
			node = &ast.ElementRefOp{Lhs: node, Args: args}
		default:
			return node, nil
		}
	}
}

// isKeywordIdent allows true/false/nil/do/end to be used as method names
// after a dot (`x.nil?` conflicts are avoided since nil? lexes as IDENT;
// this only covers bare `x.nil`/`x.end`-shaped calls some hosts define).
func isKeywordIdent(k lexer.Kind) bool {
	switch k {
	case lexer.KW_TRUE, lexer.KW_FALSE, lexer.KW_NIL, lexer.KW_DO, lexer.KW_END:
		return true
	}
	return false
}

func (p *Parser) parseArgList(closing lexer.Kind) ([]ast.Node, error) {
	var args []ast.Node
	if p.cur.Kind == closing {
		return args, nil
	}
	for {
		arg, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur.Kind != lexer.COMMA {
			break
		}
		p.advance()
	}
	return args, nil
}

// canStartJuxtaposedArg reports whether the current token can begin a
// parenthesis-free call argument (`a.b 1, 2`). Operators that could
// equally continue an enclosing infix expression (`+`, `-`, `(`) are
// deliberately excluded to avoid misparsing `foo + 1` as `foo(+1)`.
func (p *Parser) canStartJuxtaposedArg() bool {
	switch p.cur.Kind {
	case lexer.IDENT, lexer.ATTR, lexer.CONSTANT, lexer.INT, lexer.FLOAT,
		lexer.STRING, lexer.STRING_BEGIN, lexer.SYMBOL, lexer.REGEX,
		lexer.KW_TRUE, lexer.KW_FALSE, lexer.KW_NIL, lexer.LBRACKET:
		return true
	}
	return false
}

func (p *Parser) parseCallArgsAndBlock() ([]ast.Node, *ast.Block, error) {
	var args []ast.Node
	var err error
	if p.cur.Kind == lexer.LPAREN {
		p.advance()
		args, err = p.parseArgList(lexer.RPAREN)
		if err != nil {
			return nil, nil, err
		}
		if err := p.expect(lexer.RPAREN); err != nil {
			return nil, nil, err
		}
		p.advance()
	} else if p.canStartJuxtaposedArg() {
		for {
			arg, err := p.parseTernary()
			if err != nil {
				return nil, nil, err
			}
			args = append(args, arg)
			if p.cur.Kind != lexer.COMMA {
				break
			}
			p.advance()
		}
	}
	block, err := p.parseOptionalBlock()
	if err != nil {
		return nil, nil, err
	}
	return args, block, nil
}

func (p *Parser) parseOptionalBlock() (*ast.Block, error) {
	switch p.cur.Kind {
	case lexer.LBRACE:
		return p.parseBlock(lexer.RBRACE)
	case lexer.KW_DO:
		return p.parseBlock(lexer.KW_END)
	}
	return nil, nil
}

func (p *Parser) parseBlock(closing lexer.Kind) (*ast.Block, error) {
	p.advance() // consume '{' or 'do'
	p.skipNewlines()
	var params []symbol.Symbol
	added := map[symbol.Symbol]bool{}
	if p.cur.Kind == lexer.PIPE {
		p.advance()
		for p.cur.Kind != lexer.PIPE {
			if err := p.expect(lexer.IDENT); err != nil {
				return nil, err
			}
			sym := symbol.Intern(p.cur.Literal)
			params = append(params, sym)
			if !p.locals[sym] {
				p.locals[sym] = true
				added[sym] = true
			}
			p.advance()
			if p.cur.Kind == lexer.COMMA {
				p.advance()
				continue
			}
			break
		}
		if err := p.expect(lexer.PIPE); err != nil {
			return nil, err
		}
		p.advance()
	}
	body, err := p.parseStatementSequence(closing)
	for sym := range added {
		delete(p.locals, sym)
	}
	if err != nil {
		return nil, err
	}
	if err := p.expect(closing); err != nil {
		return nil, err
	}
	p.advance()
	return &ast.Block{Params: params, Body: body}, nil
}

func (p *Parser) parseStatementSequence(closing lexer.Kind) (ast.Node, error) {
	p.skipNewlines()
	var exprs []ast.Node
	for p.cur.Kind != closing && p.cur.Kind != lexer.EOF {
		expr, err := p.parseAssignmentOrExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		for p.cur.Kind == lexer.SEMI || p.cur.Kind == lexer.NEWLINE {
			p.advance()
		}
	}
	if len(exprs) == 0 {
		return &ast.Literal{Value: object.Nil}, nil
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return &ast.Sequence{Exprs: exprs}, nil
}

// parseAssignmentOrExpr handles `name = expr`: an assignment is only
// recognized at this level (not inside arbitrary subexpressions), and
// marks name as a known local for the rest of this parse.
func (p *Parser) parseAssignmentOrExpr() (ast.Node, error) {
	if p.cur.Kind == lexer.IDENT {
		save := p.cur
		// Speculatively consume the IDENT and check for `=` (not `==`,
		// already a distinct token); otherwise continueFromIdent resumes.
		nameSym := symbol.Intern(save.Literal)
		p.advance()
		if p.cur.Kind == lexer.ASSIGN {
			p.advance()
			value, err := p.parseAssignmentOrExpr()
			if err != nil {
				return nil, err
			}
			p.locals[nameSym] = true
			return &ast.Assignment{Name: nameSym, Expr: value}, nil
		}
		return p.continueFromIdent(save, nameSym)
	}
	return p.parseTernary()
}

// continueFromIdent resumes postfix/infix parsing after an IDENT has
// already been consumed speculatively by parseAssignmentOrExpr and turned
// out not to start an assignment.
func (p *Parser) continueFromIdent(tok lexer.Token, sym symbol.Symbol) (ast.Node, error) {
	node, err := p.identNode(tok, sym)
	if err != nil {
		return nil, err
	}
	node, err = p.continuePostfix(node)
	if err != nil {
		return nil, err
	}
	return p.continueFromTernaryOperand(node)
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	tok := p.cur
	switch tok.Kind {
	case lexer.INT:
		p.advance()
		n, err := parseIntLiteral(tok.Literal)
		if err != nil {
			return nil, p.errorf("invalid integer literal %q", tok.Literal)
		}
		return &ast.Literal{Value: object.NewNumber(n)}, nil
	case lexer.FLOAT:
		p.advance()
		n, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.errorf("invalid float literal %q", tok.Literal)
		}
		return &ast.Literal{Value: object.NewNumber(n)}, nil
	case lexer.KW_TRUE:
		p.advance()
		return &ast.Literal{Value: object.Bool(true)}, nil
	case lexer.KW_FALSE:
		p.advance()
		return &ast.Literal{Value: object.Bool(false)}, nil
	case lexer.KW_NIL:
		p.advance()
		return &ast.Literal{Value: object.Nil}, nil
	case lexer.STRING:
		p.advance()
		return &ast.Literal{Value: object.NewString(tok.Literal)}, nil
	case lexer.SYMBOL:
		p.advance()
		return &ast.Literal{Value: object.NewSymbol(symbol.Intern(tok.Literal))}, nil
	case lexer.REGEX:
		p.advance()
		return &ast.Literal{Value: object.NewRegex(tok.Literal, tok.Aux)}, nil
	case lexer.STRING_BEGIN:
		return p.parseInterpolatedString()
	case lexer.ATTR:
		p.advance()
		return &ast.Attribute{Name: symbol.Intern(tok.Literal)}, nil
	case lexer.CONSTANT:
		p.advance()
		return &ast.GlobalConstant{Name: symbol.Intern(tok.Literal)}, nil
	case lexer.IDENT:
		p.advance()
		return p.identNode(tok, symbol.Intern(tok.Literal))
	case lexer.LPAREN:
		p.advance()
		node, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		p.advance()
		return node, nil
	case lexer.LBRACKET:
		p.advance()
		elems, err := p.parseArgList(lexer.RBRACKET)
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RBRACKET); err != nil {
			return nil, err
		}
		p.advance()
		return &ast.ArrayLiteral{Elems: elems}, nil
	case lexer.LBRACE:
		return p.parseHashLiteral()
	}
	return nil, p.errorf("unexpected token %s", tok)
}

// identNode resolves an already-consumed IDENT token per spec.md's rule:
// a known local is a Variable; otherwise a call (global function or
// self-dispatch, disambiguated at eval time via IsGlobal).
func (p *Parser) identNode(tok lexer.Token, sym symbol.Symbol) (ast.Node, error) {
	if p.locals[sym] {
		return &ast.Variable{Name: sym}, nil
	}
	args, block, err := p.parseCallArgsAndBlock()
	if err != nil {
		return nil, err
	}
	return &ast.GlobalFuncCall{Name: sym, Args: args, Block: block, IsGlobal: p.globals[sym]}, nil
}

// continuePostfix applies parsePostfix's trailing-call/index chain to a
// node that was produced outside of parsePostfix's own entry point (the
// assignment-speculation path in parseAssignmentOrExpr).
func (p *Parser) continuePostfix(node ast.Node) (ast.Node, error) {
	for {
		switch p.cur.Kind {
		case lexer.DOT, lexer.SAFENAV, lexer.COLONCOLON, lexer.LBRACKET:
			wrapped, err := p.postfixStep(node)
			if err != nil {
				return nil, err
			}
			node = wrapped
		default:
			return node, nil
		}
	}
}

func (p *Parser) postfixStep(node ast.Node) (ast.Node, error) {
	switch p.cur.Kind {
	case lexer.DOT:
		p.advance()
		if p.cur.Kind != lexer.IDENT && !isKeywordIdent(p.cur.Kind) {
			return nil, p.errorf("expected method name after '.', got %s", p.cur)
		}
		name := symbol.Intern(p.cur.Literal)
		p.advance()
		args, block, err := p.parseCallArgsAndBlock()
		if err != nil {
			return nil, err
		}
		return &ast.MemberFuncCall{Lhs: node, Name: name, Args: args, Block: block}, nil
	case lexer.SAFENAV:
		p.advance()
		if err := p.expect(lexer.IDENT); err != nil {
			return nil, err
		}
		name := symbol.Intern(p.cur.Literal)
		p.advance()
		args, block, err := p.parseCallArgsAndBlock()
		if err != nil {
			return nil, err
		}
		return &ast.SafeNavMemberFuncCall{Lhs: node, Name: name, Args: args, Block: block}, nil
	case lexer.COLONCOLON:
		p.advance()
		if err := p.expect(lexer.CONSTANT); err != nil {
			return nil, err
		}
		name := symbol.Intern(p.cur.Literal)
		p.advance()
		return &ast.ConstantNav{Lhs: node, Name: name}, nil
	default: // LBRACKET
		p.advance()
		args, err := p.parseArgList(lexer.RBRACKET)
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RBRACKET); err != nil {
			return nil, err
		}
		p.advance()
		return &ast.ElementRefOp{Lhs: node, Args: args}, nil
	}
}

// continueFromTernaryOperand climbs back up every precedence level above
// postfix for a node already fully resolved through postfix, mirroring
// parsePower..parseTernary without re-walking parsePrimary.
func (p *Parser) continueFromTernaryOperand(node ast.Node) (ast.Node, error) {
	node, err := p.continueFromPower(node)
	if err != nil {
		return nil, err
	}
	node, err = p.continueFromMultiplicative(node)
	if err != nil {
		return nil, err
	}
	node, err = p.continueFromAdditive(node)
	if err != nil {
		return nil, err
	}
	node, err = p.continueFromShift(node)
	if err != nil {
		return nil, err
	}
	node, err = p.continueFromBitAnd(node)
	if err != nil {
		return nil, err
	}
	node, err = p.continueFromBitOr(node)
	if err != nil {
		return nil, err
	}
	node, err = p.continueFromRange(node)
	if err != nil {
		return nil, err
	}
	node, err = p.continueFromComparison(node)
	if err != nil {
		return nil, err
	}
	node, err = p.continueFromEquality(node)
	if err != nil {
		return nil, err
	}
	node, err = p.continueFromAnd(node)
	if err != nil {
		return nil, err
	}
	node, err = p.continueFromOr(node)
	if err != nil {
		return nil, err
	}
	return p.continueFromTernary(node)
}

func (p *Parser) continueFromPower(left ast.Node) (ast.Node, error) {
	if p.cur.Kind == lexer.POW {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Op: "**", Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *Parser) continueFromMultiplicative(left ast.Node) (ast.Node, error) {
	for p.cur.Kind == lexer.STAR || p.cur.Kind == lexer.SLASH || p.cur.Kind == lexer.PERCENT {
		op := string(p.cur.Kind)
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) continueFromAdditive(left ast.Node) (ast.Node, error) {
	for p.cur.Kind == lexer.PLUS || p.cur.Kind == lexer.MINUS {
		op := string(p.cur.Kind)
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) continueFromShift(left ast.Node) (ast.Node, error) {
	for p.cur.Kind == lexer.SHL || p.cur.Kind == lexer.SHR {
		op := string(p.cur.Kind)
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) continueFromBitAnd(left ast.Node) (ast.Node, error) {
	for p.cur.Kind == lexer.AMP {
		p.advance()
		right, err := p.parseShift()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: "&", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) continueFromBitOr(left ast.Node) (ast.Node, error) {
	for p.cur.Kind == lexer.PIPE || p.cur.Kind == lexer.CARET {
		op := string(p.cur.Kind)
		p.advance()
		right, err := p.parseBitAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) continueFromRange(left ast.Node) (ast.Node, error) {
	if p.cur.Kind == lexer.DOTDOT || p.cur.Kind == lexer.DOTDOTDOT {
		exclusive := p.cur.Kind == lexer.DOTDOTDOT
		p.advance()
		right, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		return &ast.RangeOp{Lhs: left, Rhs: right, Exclusive: exclusive}, nil
	}
	return left, nil
}

func (p *Parser) continueFromComparison(left ast.Node) (ast.Node, error) {
	for isComparisonOp(p.cur.Kind) {
		op := string(p.cur.Kind)
		p.advance()
		right, err := p.parseRange()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) continueFromEquality(left ast.Node) (ast.Node, error) {
	for p.cur.Kind == lexer.EQ || p.cur.Kind == lexer.NEQ || p.cur.Kind == lexer.MATCH {
		op := string(p.cur.Kind)
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) continueFromAnd(left ast.Node) (ast.Node, error) {
	for p.cur.Kind == lexer.AND {
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: "&&", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) continueFromOr(left ast.Node) (ast.Node, error) {
	for p.cur.Kind == lexer.OR {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: "||", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) continueFromTernary(cond ast.Node) (ast.Node, error) {
	if p.cur.Kind != lexer.QUESTION {
		return cond, nil
	}
	p.advance()
	then, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	p.advance()
	els, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return &ast.Conditional{Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) parseInterpolatedString() (ast.Node, error) {
	p.advance() // consume STRING_BEGIN
	var parts []ast.StringPart
	for {
		switch p.cur.Kind {
		case lexer.STRING_PART:
			parts = append(parts, ast.StringPart{Text: p.cur.Literal})
			p.advance()
		case lexer.INTERP_BEGIN:
			p.advance()
			expr, err := p.parseTernary()
			if err != nil {
				return nil, err
			}
			if err := p.expect(lexer.INTERP_END); err != nil {
				return nil, err
			}
			p.advance()
			parts = append(parts, ast.StringPart{Expr: expr})
		case lexer.STRING_END:
			p.advance()
			return &ast.InterpolatedString{Parts: parts}, nil
		default:
			return nil, p.errorf("unterminated interpolated string")
		}
	}
}

func (p *Parser) parseHashLiteral() (ast.Node, error) {
	p.advance() // consume '{'
	p.skipNewlines()
	var pairs []ast.HashPair
	for p.cur.Kind != lexer.RBRACE {
		var key ast.Node
		var err error
		if p.cur.Kind == lexer.IDENT && p.peekIsColon() {
			key = &ast.Literal{Value: object.NewSymbol(symbol.Intern(p.cur.Literal))}
			p.advance() // ident
			p.advance() // ':'
		} else {
			key, err = p.parseTernary()
			if err != nil {
				return nil, err
			}
			if p.cur.Kind == lexer.COLON {
				p.advance()
			} else {
				return nil, p.errorf("expected ':' after hash key, got %s", p.cur)
			}
		}
		value, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ast.HashPair{Key: key, Value: value})
		p.skipNewlines()
		if p.cur.Kind == lexer.COMMA {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	if err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	p.advance()
	return &ast.HashLiteral{Pairs: pairs}, nil
}

// peekIsColon reports whether the token after the current IDENT is a bare
// ':' (the `key: value` shorthand), without permanently consuming either
// token.
func (p *Parser) peekIsColon() bool {
	// The current token is IDENT; Peek returns the token after it without
	// consuming it. `ident:` in a hash context always means the shorthand;
	// any other key goes through the general `expr : expr` path (there is
	// no `=>` token).
	next, err := p.lex.Peek()
	return err == nil && next.Kind == lexer.COLON
}

func parseIntLiteral(lit string) (float64, error) {
	if len(lit) > 2 && lit[0] == '0' && (lit[1] == 'x' || lit[1] == 'X') {
		n, err := strconv.ParseInt(lit[2:], 16, 64)
		return float64(n), err
	}
	if len(lit) > 2 && lit[0] == '0' && (lit[1] == 'b' || lit[1] == 'B') {
		n, err := strconv.ParseInt(lit[2:], 2, 64)
		return float64(n), err
	}
	n, err := strconv.ParseInt(lit, 10, 64)
	return float64(n), err
}
