package lox

// parseError unwinds the current declaration only; it is caught by
// synchronize via panic/recover scoped to a single declaration, the
// idiomatic Go substitute for the book's exception-based control flow.
type parseError struct{}

func (parseError) Error() string { return "parse error" }

const maxArgs = 255

// Parser is a recursive-descent parser over a pre-scanned token slice.
type Parser struct {
	tokens   []Token
	current  int
	reporter Reporter
}

// NewParser returns a Parser over tokens, reporting through reporter.
func NewParser(tokens []Token, reporter Reporter) *Parser {
	return &Parser{tokens: tokens, reporter: reporter}
}

// Parse returns the top-level statement list.
func (p *Parser) Parse() []Stmt {
	var stmts []Stmt
	for !p.atEnd() {
		if d := p.declaration(); d != nil {
			stmts = append(stmts, d)
		}
	}
	return stmts
}

// ParseExpression parses a single expression, returning a parse error
// instead of panicking.
func (p *Parser) ParseExpression() (expr Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				err = parseError{}
				return
			}
			panic(r)
		}
	}()
	return p.expression(), nil
}

func (p *Parser) declaration() (stmt Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.match(Class):
		return p.classDecl()
	case p.match(Fun):
		return p.funDecl("function")
	case p.match(Var):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) classDecl() Stmt {
	name := p.consume(Identifier, "Expect class name.")

	var superclass *Variable
	if p.match(Less) {
		p.consume(Identifier, "Expect superclass name.")
		superclass = &Variable{Name: p.previous()}
	}

	p.consume(LeftBrace, "Expect '{' before class body.")

	var methods, classMethods []*FunctionStmt
	for !p.check(RightBrace) && !p.atEnd() {
		if p.match(Class) {
			classMethods = append(classMethods, p.function("method"))
		} else {
			methods = append(methods, p.function("method"))
		}
	}

	p.consume(RightBrace, "Expect '}' after class body.")

	return &ClassStmt{Name: name, Superclass: superclass, Methods: methods, ClassMethods: classMethods}
}

func (p *Parser) funDecl(kind string) Stmt {
	return p.function(kind)
}

// function parses the shared `function(kind)` production. A method with no
// parameter list (bare `name { ... }`) is a getter.
func (p *Parser) function(kind string) *FunctionStmt {
	name := p.consume(Identifier, "Expect "+kind+" name.")

	isGetter := kind == "method" && !p.check(LeftParen)

	var params []Token
	if !isGetter {
		p.consume(LeftParen, "Expect '(' after "+kind+" name.")
		if !p.check(RightParen) {
			for {
				if len(params) >= maxArgs {
					p.errorAt(p.peek(), "Can't have more than 255 parameters.")
				}
				params = append(params, p.consume(Identifier, "Expect parameter name."))
				if !p.match(Comma) {
					break
				}
			}
		}
		p.consume(RightParen, "Expect ')' after parameters.")
	}

	p.consume(LeftBrace, "Expect '{' before "+kind+" body.")
	body := p.blockStmts()

	return &FunctionStmt{Name: name, Params: params, Body: body, IsGetter: isGetter}
}

func (p *Parser) varDecl() Stmt {
	name := p.consume(Identifier, "Expect variable name.")

	var initializer Expr
	if p.match(Equal) {
		initializer = p.expression()
	}
	p.consume(Semicolon, "Expect ';' after variable declaration.")

	return &VarStmt{Name: name, Initializer: initializer}
}

func (p *Parser) statement() Stmt {
	switch {
	case p.match(For):
		return p.forStmt()
	case p.match(If):
		return p.ifStmt()
	case p.match(Print):
		return p.printStmt()
	case p.match(Return):
		return p.returnStmt()
	case p.match(While):
		return p.whileStmt()
	case p.match(Break):
		return p.breakStmt()
	case p.match(LeftBrace):
		return &Block{Stmts: p.blockStmts()}
	default:
		return p.exprStmt()
	}
}

func (p *Parser) exprStmt() Stmt {
	expr := p.expression()
	p.consume(Semicolon, "Expect ';' after expression.")
	return &ExpressionStmt{Expr: expr}
}

func (p *Parser) printStmt() Stmt {
	expr := p.expression()
	p.consume(Semicolon, "Expect ';' after value.")
	return &PrintStmt{Expr: expr}
}

func (p *Parser) returnStmt() Stmt {
	keyword := p.previous()
	var value Expr
	if !p.check(Semicolon) {
		value = p.expression()
	}
	p.consume(Semicolon, "Expect ';' after return value.")
	return &ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) breakStmt() Stmt {
	keyword := p.previous()
	p.consume(Semicolon, "Expect ';' after 'break'.")
	return &BreakStmt{Keyword: keyword}
}

func (p *Parser) ifStmt() Stmt {
	p.consume(LeftParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(RightParen, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch Stmt
	if p.match(Else) {
		elseBranch = p.statement()
	}
	return &IfStmt{Cond: cond, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) whileStmt() Stmt {
	p.consume(LeftParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(RightParen, "Expect ')' after condition.")
	body := p.statement()
	return &WhileStmt{Cond: cond, Body: body}
}

// forStmt desugars `for` into a while loop at parse time.
func (p *Parser) forStmt() Stmt {
	p.consume(LeftParen, "Expect '(' after 'for'.")

	var initializer Stmt
	switch {
	case p.match(Semicolon):
		initializer = nil
	case p.match(Var):
		initializer = p.varDecl()
	default:
		initializer = p.exprStmt()
	}

	var cond Expr
	if !p.check(Semicolon) {
		cond = p.expression()
	}
	p.consume(Semicolon, "Expect ';' after loop condition.")

	var increment Expr
	if !p.check(RightParen) {
		increment = p.expression()
	}
	p.consume(RightParen, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &Block{Stmts: []Stmt{body, &ExpressionStmt{Expr: increment}}}
	}

	if cond == nil {
		cond = &LiteralExpr{Value: NewBool(true)}
	}
	body = &WhileStmt{Cond: cond, Body: body}

	if initializer != nil {
		body = &Block{Stmts: []Stmt{initializer, body}}
	}

	return body
}

func (p *Parser) blockStmts() []Stmt {
	var stmts []Stmt
	for !p.check(RightBrace) && !p.atEnd() {
		if d := p.declaration(); d != nil {
			stmts = append(stmts, d)
		}
	}
	p.consume(RightBrace, "Expect '}' after block.")
	return stmts
}

// --------------- expressions --------------- //

func (p *Parser) expression() Expr {
	return p.commaExpr()
}

func (p *Parser) commaExpr() Expr {
	expr := p.assignment()
	if !p.check(Comma) {
		return expr
	}

	list := []Expr{expr}
	for p.match(Comma) {
		list = append(list, p.assignment())
	}
	return &Comma{List: list}
}

// assignment is not LL(1): parse the left side as a ternary, then if a `=`
// follows, require the left side to already be a Variable or Get.
func (p *Parser) assignment() Expr {
	expr := p.ternary()

	if p.match(Equal) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *Variable:
			return &Assign{Name: target.Name, Value: value}
		case *Get:
			return &Set{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.reportAt(equals, "Invalid assignment target")
			return expr
		}
	}

	return expr
}

func (p *Parser) ternary() Expr {
	expr := p.logicOr()

	if p.match(QuestionMark) {
		then := p.ternary()
		p.consume(Colon, "Expect ':' after '?' branch.")
		els := p.ternary()
		return &Ternary{Cond: expr, Then: then, Else: els}
	}

	return expr
}

func (p *Parser) logicOr() Expr {
	expr := p.logicAnd()
	for p.match(Or) {
		op := p.previous()
		right := p.logicAnd()
		expr = &Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) logicAnd() Expr {
	expr := p.equality()
	for p.match(And) {
		op := p.previous()
		right := p.equality()
		expr = &Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() Expr {
	expr := p.binaryErrorGuard(p.comparison, EqualEqual, BangEqual)
	for p.match(EqualEqual, BangEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() Expr {
	expr := p.binaryErrorGuard(p.term, Greater, GreaterEqual, Less, LessEqual)
	for p.match(Greater, GreaterEqual, Less, LessEqual) {
		op := p.previous()
		right := p.term()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() Expr {
	expr := p.binaryErrorGuard(p.factor, Plus)
	for p.match(Plus, Minus) {
		op := p.previous()
		right := p.factor()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() Expr {
	expr := p.unary()
	for p.match(Star, Slash) {
		op := p.previous()
		right := p.unary()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// binaryErrorGuard catches a binary operator with no left operand yet
// parsed (e.g. a line starting with `== a`): it consumes the right-hand
// side and reports, without aborting the parse.
func (p *Parser) binaryErrorGuard(next func() Expr, ops ...TokenType) Expr {
	if p.check(ops[0]) || matchesAny(p.peek().Type, ops[1:]) {
		op := p.advance()
		right := next()
		p.reportAt(op, "Expect left hand operand for "+op.Lexeme)
		return right
	}
	return next()
}

func matchesAny(t TokenType, ops []TokenType) bool {
	for _, o := range ops {
		if t == o {
			return true
		}
	}
	return false
}

func (p *Parser) unary() Expr {
	if p.match(Bang, Minus) {
		op := p.previous()
		right := p.unary()
		return &Unary{Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(LeftParen):
			expr = p.finishCall(expr)
		case p.match(Dot):
			name := p.consume(Identifier, "Expect property name after '.'.")
			expr = &Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee Expr) Expr {
	var args []Expr
	if !p.check(RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.assignment())
			if !p.match(Comma) {
				break
			}
		}
	}
	paren := p.consume(RightParen, "Expect ')' after arguments.")
	return &Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() Expr {
	switch {
	case p.match(True):
		return &LiteralExpr{Value: NewBool(true)}
	case p.match(False):
		return &LiteralExpr{Value: NewBool(false)}
	case p.match(Nil):
		return &LiteralExpr{Value: NewNil()}
	case p.match(Number):
		return &LiteralExpr{Value: NewNumber(p.previous().Literal.(float64))}
	case p.match(String):
		return &LiteralExpr{Value: NewString(p.previous().Literal.(string))}
	case p.match(This):
		return &This{Keyword: p.previous()}
	case p.match(Super):
		keyword := p.previous()
		p.consume(Dot, "Expect '.' after 'super'.")
		method := p.consume(Identifier, "Expect superclass method name.")
		return &Super{Keyword: keyword, Method: method}
	case p.match(Identifier):
		return &Variable{Name: p.previous()}
	case p.match(Fun):
		return p.functionExpr()
	case p.match(LeftParen):
		return p.groupOrComma()
	default:
		p.errorAt(p.peek(), "Expect expression.")
		panic(parseError{})
	}
}

func (p *Parser) functionExpr() Expr {
	p.consume(LeftParen, "Expect '(' after 'fun'.")

	var params []Token
	if !p.check(RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(Identifier, "Expect parameter name."))
			if !p.match(Comma) {
				break
			}
		}
	}
	p.consume(RightParen, "Expect ')' after parameters.")
	p.consume(LeftBrace, "Expect '{' before function body.")
	body := p.blockStmts()

	return &FunctionExpr{Params: params, Body: body}
}

// groupOrComma treats a parenthesized expression with one element as a
// Grouping, and two or more (comma-separated) as a Comma.
func (p *Parser) groupOrComma() Expr {
	first := p.expression()
	if !p.match(Comma) {
		p.consume(RightParen, "Expect ')' after expression.")
		if comma, ok := first.(*Comma); ok {
			return comma
		}
		return &Grouping{Inner: first}
	}

	list := []Expr{first}
	for {
		list = append(list, p.expression())
		if !p.match(Comma) {
			break
		}
	}
	p.consume(RightParen, "Expect ')' after expression.")
	return &Comma{List: list}
}

// --------------- token stream helpers --------------- //

func (p *Parser) match(types ...TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t TokenType) bool {
	return !p.atEnd() && p.peek().Type == t
}

func (p *Parser) advance() Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(t TokenType, message string) Token {
	if p.check(t) {
		return p.advance()
	}
	p.errorAt(p.peek(), message)
	panic(parseError{})
}

// reportAt reports an error without aborting the current production.
func (p *Parser) reportAt(tok Token, message string) {
	if tok.Type == EOF {
		p.reporter.CompileError(tok.Line, " at end", message)
	} else {
		p.reporter.CompileError(tok.Line, " at '"+tok.Lexeme+"'", message)
	}
}

// errorAt reports and is always followed by a panic(parseError{}) at the
// call site (or, for capped lists, simply continues parsing).
func (p *Parser) errorAt(tok Token, message string) {
	p.reportAt(tok, message)
}

func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Type == Semicolon {
			return
		}
		switch p.peek().Type {
		case Class, Fun, Var, For, If, While, Print, Return:
			return
		}
		p.advance()
	}
}
