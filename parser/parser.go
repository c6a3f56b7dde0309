package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/dhamidi/paskal/lexer"
)

// Parser is a recursive-descent parser over a complete token sequence.
// It looks at most two tokens ahead and stops at the first syntax error.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New prepares a parser for tokens. Comment tokens are dropped.
func New(tokens []lexer.Token) *Parser {
	p := &Parser{tokens: make([]lexer.Token, 0, len(tokens))}
	for _, tok := range tokens {
		if tok.Kind == lexer.KindComment {
			continue
		}
		p.tokens = append(p.tokens, tok)
	}
	return p
}

// Parse parses a whole program.
func Parse(tokens []lexer.Token) (*Interior, error) {
	return New(tokens).Parse()
}

// Parse parses a whole program. The returned tree is nil on error.
func (p *Parser) Parse() (tree *Interior, err error) {
	defer p.recover(&err)
	program := p.parseProgram()
	if !p.atEnd() {
		p.fail("end of input")
	}
	log.Debugf("parsed %d tokens", len(p.tokens))
	return program, nil
}

// ParseExpression parses a single expression covering all of tokens.
func ParseExpression(tokens []lexer.Token) (expr *Interior, err error) {
	p := New(tokens)
	defer p.recover(&err)
	e := p.parseExpression()
	if !p.atEnd() {
		p.fail("end of input")
	}
	return e, nil
}

func (p *Parser) recover(errp *error) {
	if r := recover(); r != nil {
		perr, ok := r.(*Error)
		if !ok {
			panic(r)
		}
		*errp = perr
	}
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

// peek returns the current token; ok is false at end of input.
func (p *Parser) peek() (lexer.Token, bool) {
	return p.peekN(0)
}

// peekAhead returns the token after the current one.
func (p *Parser) peekAhead() (lexer.Token, bool) {
	return p.peekN(1)
}

func (p *Parser) peekN(n int) (lexer.Token, bool) {
	if p.pos+n >= len(p.tokens) {
		return lexer.Token{}, false
	}
	return p.tokens[p.pos+n], true
}

func (p *Parser) check(kind lexer.Kind) bool {
	tok, ok := p.peek()
	return ok && tok.Kind == kind
}

func (p *Parser) checkKeyword(words ...string) bool {
	tok, ok := p.peek()
	if !ok {
		return false
	}
	for _, w := range words {
		if tok.Is(lexer.KindKeyword, w) {
			return true
		}
	}
	return false
}

func (p *Parser) advance() *Leaf {
	tok := p.tokens[p.pos]
	p.pos++
	return &Leaf{Token: tok}
}

func (p *Parser) expect(kind lexer.Kind) *Leaf {
	if !p.check(kind) {
		p.fail(string(kind))
	}
	return p.advance()
}

func (p *Parser) expectKeyword(word string) *Leaf {
	if !p.checkKeyword(word) {
		p.fail(fmt.Sprintf("%s '%s'", lexer.KindKeyword, word))
	}
	return p.advance()
}

// fail aborts the parse, reporting what was expected at the current token.
func (p *Parser) fail(expected string) {
	err := &Error{Expected: expected}
	if tok, ok := p.peek(); ok {
		err.Found = &tok
		err.Pos = tok.Pos
	} else {
		err.Pos = endPosition(p.tokens)
	}
	panic(err)
}

// endPosition is the position just past the last token.
func endPosition(tokens []lexer.Token) lexer.Position {
	if len(tokens) == 0 {
		return lexer.Position{Line: 1, Column: 1}
	}
	last := tokens[len(tokens)-1]
	pos := last.Pos
	pos.Column += utf8.RuneCountInString(last.Text)
	pos.Offset += utf8.RuneCountInString(last.Text)
	return pos
}

// program := program_header declaration_part compound_statement '.'
func (p *Parser) parseProgram() *Interior {
	node := NewInterior(SymProgram)
	node.Add(p.parseProgramHeader())
	node.Add(p.parseDeclarationPart())
	node.Add(p.parseCompoundStatement())
	p.expect(lexer.KindDot)
	return node
}

// program_header := 'program' IDENTIFIER ';'
func (p *Parser) parseProgramHeader() *Interior {
	return NewInterior(SymProgramHeader,
		p.expectKeyword("program"),
		p.expect(lexer.KindIdentifier),
		p.expect(lexer.KindSemicolon),
	)
}

// declaration_part := const_decl* type_decl* var_decl* subprogram_decl*
func (p *Parser) parseDeclarationPart() *Interior {
	node := NewInterior(SymDeclarationPart)
	for p.checkKeyword("konstanta") {
		node.Add(p.parseConstDeclaration())
	}
	for p.checkKeyword("tipe") {
		node.Add(p.parseTypeDeclaration())
	}
	for p.checkKeyword("variabel") {
		node.Add(p.parseVarDeclaration())
	}
	for p.checkKeyword("prosedur", "fungsi") {
		node.Add(p.parseSubprogramDeclaration())
	}
	return node
}

func (p *Parser) startsDeclaration() bool {
	return p.checkKeyword("konstanta", "tipe", "variabel", "prosedur", "fungsi")
}

// const_decl := 'konstanta' (IDENTIFIER '=' constant ';')+
func (p *Parser) parseConstDeclaration() *Interior {
	node := NewInterior(SymConstDeclaration, p.expectKeyword("konstanta"))
	for {
		node.Add(p.expect(lexer.KindIdentifier))
		node.Add(p.expect(lexer.KindEqual))
		node.Add(p.parseConstant())
		node.Add(p.expect(lexer.KindSemicolon))
		if !p.check(lexer.KindIdentifier) {
			return node
		}
	}
}

// constant := ('+'|'-')? NUMBER | STRING_LIT | CHAR_LIT | 'true' | 'false'
func (p *Parser) parseConstant() *Interior {
	node := NewInterior(SymConstant)
	switch {
	case p.check(lexer.KindPlus), p.check(lexer.KindMinus):
		node.Add(p.advance())
		node.Add(p.expect(lexer.KindNumber))
	case p.check(lexer.KindNumber), p.check(lexer.KindString), p.check(lexer.KindChar):
		node.Add(p.advance())
	case p.checkKeyword("true", "false"):
		node.Add(p.advance())
	default:
		p.fail("constant")
	}
	return node
}

// type_decl := 'tipe' (IDENTIFIER '=' type_definition ';')+
func (p *Parser) parseTypeDeclaration() *Interior {
	node := NewInterior(SymTypeDeclaration, p.expectKeyword("tipe"))
	for {
		node.Add(p.expect(lexer.KindIdentifier))
		node.Add(p.expect(lexer.KindEqual))
		node.Add(p.parseTypeDefinition())
		node.Add(p.expect(lexer.KindSemicolon))
		if !p.check(lexer.KindIdentifier) {
			return node
		}
	}
}

// type_definition := type | record_type
func (p *Parser) parseTypeDefinition() *Interior {
	if p.checkKeyword("rekaman") {
		return NewInterior(SymTypeDefinition, p.parseRecordType())
	}
	return NewInterior(SymTypeDefinition, p.parseType())
}

// var_decl := 'variabel' (identifier_list ':' type ';')+
func (p *Parser) parseVarDeclaration() *Interior {
	node := NewInterior(SymVarDeclaration, p.expectKeyword("variabel"))
	for {
		node.Add(p.parseIdentifierList())
		node.Add(p.expect(lexer.KindColon))
		node.Add(p.parseType())
		node.Add(p.expect(lexer.KindSemicolon))
		if !p.check(lexer.KindIdentifier) {
			return node
		}
	}
}

// identifier_list := IDENTIFIER (',' IDENTIFIER)*
func (p *Parser) parseIdentifierList() *Interior {
	node := NewInterior(SymIdentifierList, p.expect(lexer.KindIdentifier))
	for p.check(lexer.KindComma) {
		node.Add(p.advance())
		node.Add(p.expect(lexer.KindIdentifier))
	}
	return node
}

var scalarTypes = []string{"integer", "boolean", "char", "real", "string"}

// type := array_type | scalar_keyword | IDENTIFIER
func (p *Parser) parseType() *Interior {
	switch {
	case p.checkKeyword("larik"):
		return NewInterior(SymType, p.parseArrayType())
	case p.checkKeyword(scalarTypes...):
		return NewInterior(SymType, p.advance())
	case p.check(lexer.KindIdentifier):
		return NewInterior(SymType, p.advance())
	}
	p.fail("type")
	return nil
}

// array_type := 'larik' '[' range ']' 'dari' type
func (p *Parser) parseArrayType() *Interior {
	return NewInterior(SymArrayType,
		p.expectKeyword("larik"),
		p.expect(lexer.KindLBracket),
		p.parseRange(),
		p.expect(lexer.KindRBracket),
		p.expectKeyword("dari"),
		p.parseType(),
	)
}

// record_type := 'rekaman' (identifier_list ':' type ';')+ 'selesai'
func (p *Parser) parseRecordType() *Interior {
	node := NewInterior(SymRecordType, p.expectKeyword("rekaman"))
	for {
		node.Add(p.parseIdentifierList())
		node.Add(p.expect(lexer.KindColon))
		node.Add(p.parseType())
		node.Add(p.expect(lexer.KindSemicolon))
		if !p.check(lexer.KindIdentifier) {
			break
		}
	}
	node.Add(p.expectKeyword("selesai"))
	return node
}

// range := expression '..' expression
func (p *Parser) parseRange() *Interior {
	return NewInterior(SymRange,
		p.parseExpression(),
		p.expect(lexer.KindRange),
		p.parseExpression(),
	)
}

// subprogram_decl := procedure_decl | function_decl
func (p *Parser) parseSubprogramDeclaration() *Interior {
	if p.checkKeyword("fungsi") {
		return NewInterior(SymSubprogram, p.parseFunctionDeclaration())
	}
	return NewInterior(SymSubprogram, p.parseProcedureDeclaration())
}

// procedure_decl := 'prosedur' IDENTIFIER formal_params? ';' block ';'
func (p *Parser) parseProcedureDeclaration() *Interior {
	node := NewInterior(SymProcedure,
		p.expectKeyword("prosedur"),
		p.expect(lexer.KindIdentifier),
	)
	if p.check(lexer.KindLParen) {
		node.Add(p.parseFormalParameters())
	}
	node.Add(p.expect(lexer.KindSemicolon))
	node.Add(p.parseBlock())
	node.Add(p.expect(lexer.KindSemicolon))
	return node
}

// function_decl := 'fungsi' IDENTIFIER formal_params? ':' type ';' block ';'
func (p *Parser) parseFunctionDeclaration() *Interior {
	node := NewInterior(SymFunction,
		p.expectKeyword("fungsi"),
		p.expect(lexer.KindIdentifier),
	)
	if p.check(lexer.KindLParen) {
		node.Add(p.parseFormalParameters())
	}
	node.Add(p.expect(lexer.KindColon))
	node.Add(p.parseType())
	node.Add(p.expect(lexer.KindSemicolon))
	node.Add(p.parseBlock())
	node.Add(p.expect(lexer.KindSemicolon))
	return node
}

// block := declaration_part? compound_statement
func (p *Parser) parseBlock() *Interior {
	node := NewInterior(SymBlock)
	if p.startsDeclaration() {
		node.Add(p.parseDeclarationPart())
	}
	node.Add(p.parseCompoundStatement())
	return node
}

// formal_params := '(' param_group (';' param_group)* ')'
func (p *Parser) parseFormalParameters() *Interior {
	node := NewInterior(SymFormalParameters,
		p.expect(lexer.KindLParen),
		p.parseParameterGroup(),
	)
	for p.check(lexer.KindSemicolon) {
		node.Add(p.advance())
		node.Add(p.parseParameterGroup())
	}
	node.Add(p.expect(lexer.KindRParen))
	return node
}

// param_group := identifier_list ':' type
func (p *Parser) parseParameterGroup() *Interior {
	return NewInterior(SymParameterGroup,
		p.parseIdentifierList(),
		p.expect(lexer.KindColon),
		p.parseType(),
	)
}

// compound_statement := 'mulai' statement_list 'selesai'
func (p *Parser) parseCompoundStatement() *Interior {
	return NewInterior(SymCompoundStatement,
		p.expectKeyword("mulai"),
		p.parseStatementList(),
		p.expectKeyword("selesai"),
	)
}

// statement_list := statement (';' statement)*
//
// A statement may be empty directly before 'selesai'.
func (p *Parser) parseStatementList() *Interior {
	node := NewInterior(SymStatementList)
	if p.checkKeyword("selesai") {
		return node
	}
	node.Add(p.parseStatement())
	for p.check(lexer.KindSemicolon) {
		node.Add(p.advance())
		if p.checkKeyword("selesai") {
			break
		}
		node.Add(p.parseStatement())
	}
	return node
}

// statement := compound_statement | if_stmt | while_stmt | for_stmt
//
//	| assignment | call
func (p *Parser) parseStatement() *Interior {
	switch {
	case p.checkKeyword("mulai"):
		return NewInterior(SymStatement, p.parseCompoundStatement())
	case p.checkKeyword("jika"):
		return NewInterior(SymStatement, p.parseIf())
	case p.checkKeyword("selama"):
		return NewInterior(SymStatement, p.parseWhile())
	case p.checkKeyword("untuk"):
		return NewInterior(SymStatement, p.parseFor())
	case p.check(lexer.KindIdentifier):
		next, _ := p.peekAhead()
		if next.Kind == lexer.KindAssign || next.Kind == lexer.KindLBracket {
			return NewInterior(SymStatement, p.parseAssignment())
		}
		return NewInterior(SymStatement, p.parseCall())
	}
	p.fail("statement")
	return nil
}

// assignment := IDENTIFIER ('[' expression ']')? ':=' expression
func (p *Parser) parseAssignment() *Interior {
	node := NewInterior(SymAssignment, p.expect(lexer.KindIdentifier))
	if p.check(lexer.KindLBracket) {
		node.Add(p.parseArrayIndex())
	}
	node.Add(p.expect(lexer.KindAssign))
	node.Add(p.parseExpression())
	return node
}

// array_index := '[' expression ']'
func (p *Parser) parseArrayIndex() *Interior {
	return NewInterior(SymArrayIndex,
		p.expect(lexer.KindLBracket),
		p.parseExpression(),
		p.expect(lexer.KindRBracket),
	)
}

// if_stmt := 'jika' expression 'maka' statement ('selain_itu' statement)?
func (p *Parser) parseIf() *Interior {
	node := NewInterior(SymIf,
		p.expectKeyword("jika"),
		p.parseExpression(),
		p.expectKeyword("maka"),
		p.parseStatement(),
	)
	if p.checkKeyword("selain_itu") {
		node.Add(p.advance())
		node.Add(p.parseStatement())
	}
	return node
}

// while_stmt := 'selama' expression 'lakukan' statement
func (p *Parser) parseWhile() *Interior {
	return NewInterior(SymWhile,
		p.expectKeyword("selama"),
		p.parseExpression(),
		p.expectKeyword("lakukan"),
		p.parseStatement(),
	)
}

// for_stmt := 'untuk' IDENTIFIER ':=' expression ('ke'|'turun_ke')
//
//	expression 'lakukan' statement
func (p *Parser) parseFor() *Interior {
	node := NewInterior(SymFor,
		p.expectKeyword("untuk"),
		p.expect(lexer.KindIdentifier),
		p.expect(lexer.KindAssign),
		p.parseExpression(),
	)
	if !p.checkKeyword("ke", "turun_ke") {
		p.fail("KEYWORD 'ke' or 'turun_ke'")
	}
	node.Add(p.advance())
	node.Add(p.parseExpression())
	node.Add(p.expectKeyword("lakukan"))
	node.Add(p.parseStatement())
	return node
}

// call := IDENTIFIER ('(' param_list? ')')?
func (p *Parser) parseCall() *Interior {
	node := NewInterior(SymCall, p.expect(lexer.KindIdentifier))
	if !p.check(lexer.KindLParen) {
		return node
	}
	node.Add(p.advance())
	if !p.check(lexer.KindRParen) {
		node.Add(p.parseParameterList())
	}
	node.Add(p.expect(lexer.KindRParen))
	return node
}

// param_list := expression (',' expression)*
func (p *Parser) parseParameterList() *Interior {
	node := NewInterior(SymParameterList, p.parseExpression())
	for p.check(lexer.KindComma) {
		node.Add(p.advance())
		node.Add(p.parseExpression())
	}
	return node
}

var relationalOperators = []lexer.Kind{
	lexer.KindEqual, lexer.KindNotEqual,
	lexer.KindLess, lexer.KindLessEqual,
	lexer.KindGreater, lexer.KindGreaterEqual,
}

func (p *Parser) checkAny(kinds []lexer.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// expression := simple_expr (relop simple_expr)?
func (p *Parser) parseExpression() *Interior {
	node := NewInterior(SymExpression, p.parseSimpleExpression())
	if p.checkAny(relationalOperators) {
		node.Add(NewInterior(SymRelationalOperator, p.advance()))
		node.Add(p.parseSimpleExpression())
	}
	return node
}

func (p *Parser) checkAddOperator() bool {
	return p.check(lexer.KindPlus) || p.check(lexer.KindMinus) || p.checkKeyword("atau")
}

func (p *Parser) checkMulOperator() bool {
	return p.check(lexer.KindStar) || p.check(lexer.KindSlash) || p.checkKeyword("bagi", "mod", "dan")
}

// simple_expr := ('+'|'-')? term (addop term)*
func (p *Parser) parseSimpleExpression() *Interior {
	node := NewInterior(SymSimpleExpression)
	if p.check(lexer.KindPlus) || p.check(lexer.KindMinus) {
		node.Add(p.advance())
	}
	node.Add(p.parseTerm())
	for p.checkAddOperator() {
		node.Add(NewInterior(SymAdditiveOperator, p.advance()))
		node.Add(p.parseTerm())
	}
	return node
}

// term := factor (mulop factor)*
func (p *Parser) parseTerm() *Interior {
	node := NewInterior(SymTerm, p.parseFactor())
	for p.checkMulOperator() {
		node.Add(NewInterior(SymMultiplicativeOp, p.advance()))
		node.Add(p.parseFactor())
	}
	return node
}

// factor := IDENTIFIER ('[' expression ']' | call_tail)? | NUMBER | CHAR_LIT
//
//	| STRING_LIT | '(' expression ')' | 'tidak' factor | 'true' | 'false'
func (p *Parser) parseFactor() *Interior {
	switch {
	case p.check(lexer.KindIdentifier):
		next, _ := p.peekAhead()
		switch next.Kind {
		case lexer.KindLParen:
			return NewInterior(SymFactor, p.parseCall())
		case lexer.KindLBracket:
			return NewInterior(SymFactor, p.advance(), p.parseArrayIndex())
		}
		return NewInterior(SymFactor, p.advance())
	case p.check(lexer.KindNumber), p.check(lexer.KindChar), p.check(lexer.KindString):
		return NewInterior(SymFactor, p.advance())
	case p.check(lexer.KindLParen):
		return NewInterior(SymFactor,
			p.advance(),
			p.parseExpression(),
			p.expect(lexer.KindRParen),
		)
	case p.checkKeyword("tidak"):
		return NewInterior(SymFactor, p.advance(), p.parseFactor())
	case p.checkKeyword("true", "false"):
		return NewInterior(SymFactor, p.advance())
	}
	p.fail("factor")
	return nil
}
