package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	path, gutter    *color.Color
	caret, note     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgMagenta),
	}
	// глобальный color.NoColor смотрит на stdout, а пишем мы в произвольный w
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pp := prettyPrinter{w: w, fs: fs, opts: opts, pal: newPalette(opts.Color)}
	for _, d := range bag.Items() {
		pp.diagnostic(d)
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "... %d more diagnostics not shown\n", dropped)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
	pal  palette
}

func (pp *prettyPrinter) diagnostic(d diag.Diagnostic) {
	sev := pp.pal.severity(d.Severity)
	fmt.Fprintf(pp.w, "%s: %s %s: %s\n",
		pp.pal.path.Sprint(pp.location(d.Primary)),
		sev.Sprint(d.Severity.String()),
		sev.Sprint(d.Code.ID()),
		d.Message,
	)
	pp.excerpt(d.Primary, pp.pal.caret)
	if !pp.opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		fmt.Fprintf(pp.w, "  %s %s: %s\n", pp.pal.note.Sprint("note:"), pp.location(n.Span), n.Msg)
		pp.excerpt(n.Span, pp.pal.note)
	}
}

func (pp *prettyPrinter) location(sp source.Span) string {
	f := pp.fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	pos := f.Position(sp.Start)
	return fmt.Sprintf("%s:%d:%d", displayPath(f, pp.fs, pp.opts.PathMode), pos.Line, pos.Col)
}

// excerpt печатает строку span'а с контекстом и подчёркиванием.
func (pp *prettyPrinter) excerpt(sp source.Span, mark *color.Color) {
	f := pp.fs.Get(sp.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start, end := f.Position(sp.Start), f.Position(sp.End)
	ctx := uint32(max(pp.opts.Context, 0))
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := min(start.Line+ctx, uint32(len(f.LineIdx)+1))
	gw := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		line := f.GetLine(ln)
		fmt.Fprintf(pp.w, " %s %s\n", pp.pal.gutter.Sprintf("%*d |", gw, ln), pp.clip(line))
		if ln != start.Line {
			continue
		}
		from := int(start.Col) - 1
		to := len(line)
		if end.Line == start.Line {
			to = int(end.Col) - 1
		}
		from, to = min(from, len(line)), min(max(to, from), len(line))
		fmt.Fprintf(pp.w, " %s %s%s\n",
			pp.pal.gutter.Sprintf("%*s |", gw, ""),
			indentLike(line[:from]),
			mark.Sprint(underline(line[from:to])),
		)
	}
}

func (pp *prettyPrinter) clip(line string) string {
	if pp.opts.Width == 0 || runewidth.StringWidth(line) <= int(pp.opts.Width) {
		return line
	}
	return runewidth.Truncate(line, int(pp.opts.Width), "…")
}

// indentLike строит отступ той же видимой ширины, что и prefix; табы сохраняются.
func indentLike(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func underline(text string) string {
	n := runewidth.StringWidth(text)
	if n <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", n-1)
}

func displayPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeRelative:
		return f.DisplayPath("relative", fs.BaseDir())
	default:
		return f.DisplayPath(mode.String(), "")
	}
}
