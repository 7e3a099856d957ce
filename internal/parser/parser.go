package parser

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/lexer"
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Tree   *ast.Tree
	Errors uint
}

// parseCtx: флаги грамматики, зависящие от окружения.
type parseCtx struct {
	inFunction  bool
	inAsync     bool
	inGenerator bool
	noIn        bool // заголовок for: `in` не бинарный оператор
	// в ветке consequent тернарника `a ? (b) : c => d` не стрелка с типом
	noArrowReturnType bool
	// тип возврата стрелки: `T => U` внутри него не функциональный тип
	noAnonFunctionType bool
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx   *lexer.Lexer
	tree *ast.Tree
	file *source.File
	opts Options

	tok     token.Token // текущий, ещё не съеденный токен
	prevEnd uint32      // конец последнего съеденного токена
	ctx     parseCtx

	spec       int  // глубина спекулятивного разбора
	specFailed bool // в спекулятивном разборе была ошибка
	pending    []diag.Diagnostic
}

// ParseFile: входная точка для разбора одного файла.
func ParseFile(file *source.File, opts Options) Result {
	p := &Parser{
		tree: ast.NewTree(file, uint(len(file.Content)/4)),
		file: file,
		opts: opts,
	}
	p.lx = lexer.New(file, lexer.Options{Reporter: lexReporter{p}})
	p.tok = p.lx.Next()
	p.parseProgram()
	return Result{Tree: p.tree, Errors: p.opts.CurrentErrors}
}

func (p *Parser) parseProgram() {
	root := p.tree.NewNode(ast.Program, source.Span{File: p.file.ID, Start: 0, End: uint32(len(p.file.Content))}) //nolint:gosec // checked by lexer cursor
	p.tree.Root = root
	p.parseStatementList(root, ast.FieldBody, token.EOF, true)
}

// parseStatementList разбирает операторы до терминатора (EOF или '}'),
// включая директивы пролога, если allowDirectives.
func (p *Parser) parseStatementList(owner ast.NodeID, field ast.Field, end token.Kind, allowDirectives bool) {
	prologue := allowDirectives
	for !p.at(end) && !p.at(token.EOF) {
		start := p.tok.Span.Start
		stmt, ok := p.parseStatementListItem()
		if !ok {
			p.resync(start)
			continue
		}
		if prologue {
			prologue = p.markDirective(stmt)
		}
		p.tree.Link(owner, field, stmt)
	}
}

// markDirective помечает "use strict"; и подобные; возвращает, продолжается ли пролог.
func (p *Parser) markDirective(stmt ast.NodeID) bool {
	if !p.tree.Is(stmt, ast.ExpressionStatement) {
		return false
	}
	expr := p.tree.Child(stmt, ast.FieldExpression)
	if !p.tree.Is(expr, ast.StringLiteral) {
		return false
	}
	p.tree.Node(stmt).Flags |= ast.FlagDirective
	return true
}

// ===== токены =====

func (p *Parser) at(k token.Kind) bool {
	return p.tok.Kind == k
}

// atWord проверяет контекстное слово (async, of, type, ...).
func (p *Parser) atWord(w string) bool {
	return p.tok.Is(w)
}

// advance: съедает текущий токен и читает следующий в обычном режиме
func (p *Parser) advance() token.Token {
	tok := p.tok
	p.prevEnd = tok.Span.End
	p.tok = p.lx.Next()
	return tok
}

// advanceJSXTag съедает текущий токен и читает следующий внутри JSX-тега.
func (p *Parser) advanceJSXTag() token.Token {
	tok := p.tok
	p.prevEnd = tok.Span.End
	p.tok = p.lx.NextJSXTag()
	return tok
}

// advanceJSXChild съедает текущий токен и читает следующий между JSX-тегами.
func (p *Parser) advanceJSXChild() token.Token {
	tok := p.tok
	p.prevEnd = tok.Span.End
	p.tok = p.lx.NextJSXChild()
	return tok
}

// peek возвращает токен после текущего.
func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем false.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.tok.Span}, false
}

// consumeSemicolon реализует автоматическую вставку ';'.
func (p *Parser) consumeSemicolon() bool {
	if p.eat(token.Semicolon) {
		return true
	}
	if p.at(token.RBrace) || p.at(token.EOF) || p.tok.NewlineBefore {
		return true
	}
	p.err(diag.SynExpectSemicolon, "missing semicolon before "+describe(p.tok))
	return false
}

// resync: восстановление после ошибки: съедаем хотя бы один токен и
// прокручиваем до конца строки, ';' или '}'.
func (p *Parser) resync(start uint32) {
	if p.tok.Span.Start == start && !p.at(token.EOF) {
		p.advance()
	}
	for !p.at(token.EOF) && !p.at(token.RBrace) && !p.tok.NewlineBefore {
		if p.eat(token.Semicolon) {
			return
		}
		p.advance()
	}
}

func describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of file"
	}
	return "'" + tok.Text + "'"
}

// ===== диагностика =====

func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.tok.Span, msg)
}

func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) bool {
	return p.report(code, diag.SevError, sp, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.spec > 0 {
		// ошибка проваливает попытку; остальное ждёт её исхода
		if sev == diag.SevError {
			p.specFailed = true
		} else {
			p.pending = append(p.pending, diag.New(sev, code, sp, msg))
		}
		return false
	}
	enough := p.opts.Enough()
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter != nil && !enough {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
		return true
	}
	return false
}

// lexReporter направляет диагностики лексера через парсер, чтобы
// откат спекулятивного разбора откатывал и их.
type lexReporter struct{ p *Parser }

func (r lexReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, _ []diag.Note) {
	r.p.report(code, sev, primary, msg)
}

// unexpected репортит текущий токен как неожиданный.
func (p *Parser) unexpected(where string) {
	p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.tok)+" "+where)
}

// ===== спекулятивный разбор =====

type snapshot struct {
	lx      lexer.State
	tok     token.Token
	prevEnd uint32
	ctx     parseCtx
}

func (p *Parser) save() snapshot {
	return snapshot{lx: p.lx.Save(), tok: p.tok, prevEnd: p.prevEnd, ctx: p.ctx}
}

func (p *Parser) restore(s snapshot) {
	p.lx.Restore(s.lx)
	p.tok, p.prevEnd, p.ctx = s.tok, s.prevEnd, s.ctx
}

// try выполняет fn спекулятивно: при любой ошибке состояние откатывается
// и диагностики отбрасываются. Узлы, созданные неудачной попыткой, остаются
// в арене, но не достижимы из корня.
func (p *Parser) try(fn func() (ast.NodeID, bool)) (ast.NodeID, bool) {
	snap := p.save()
	mark := len(p.pending)
	outer := p.specFailed
	p.spec++
	p.specFailed = false
	id, ok := fn()
	failed := p.specFailed || !ok
	p.spec--
	p.specFailed = outer
	if failed {
		p.restore(snap)
		p.pending = p.pending[:mark]
		return ast.NoNodeID, false
	}
	if p.spec == 0 {
		pending := p.pending
		p.pending = nil
		for _, d := range pending {
			p.report(d.Code, d.Severity, d.Primary, d.Message)
		}
	}
	return id, true
}

// ===== узлы =====

func (p *Parser) node(kind ast.Kind, start uint32) ast.NodeID {
	return p.tree.NewNode(kind, source.Span{File: p.file.ID, Start: start, End: start})
}

// finish закрывает span узла концом последнего съеденного токена.
func (p *Parser) finish(id ast.NodeID) ast.NodeID {
	p.tree.Node(id).Span.End = p.prevEnd
	return id
}

func (p *Parser) startOf(id ast.NodeID) uint32 {
	return p.tree.Node(id).Span.Start
}

// leaf создаёт узел из текущего токена и съедает его.
func (p *Parser) leaf(kind ast.Kind) ast.NodeID {
	id := p.node(kind, p.tok.Span.Start)
	p.tree.Node(id).Text = p.tok.Text
	p.advance()
	return p.finish(id)
}

func (p *Parser) link(parent ast.NodeID, f ast.Field, child ast.NodeID) {
	p.tree.Link(parent, f, child)
}
