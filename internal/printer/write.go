package printer

import (
	"bytes"

	"fortio.org/safecast"

	"github.com/qza7849467chensh5/reflective-bind/internal/source"
)

// Writer accumulates output and provides helpers for copying source
// fragments and emitting indented synthetic code.
type Writer struct {
	sf          *source.File
	opt         Options
	buf         []byte
	indentLevel int
	atLineStart bool

	// сдвиг для перенесённого кода: сколько пробелов срезать после \n
	shift    int
	literals []source.Span
	trim     int
}

// NewWriter creates a new writer over the source file.
func NewWriter(sf *source.File, opt Options) *Writer {
	return &Writer{
		sf:  sf,
		opt: opt.withDefaults(),
		// переписанный файл обычно чуть длиннее исходного
		buf: make([]byte, 0, len(sf.Content)+len(sf.Content)/8),
	}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	if w.opt.UseTabs {
		for range w.indentLevel {
			w.buf = append(w.buf, '\t')
		}
	} else {
		for range w.indentLevel * w.opt.IndentWidth {
			w.buf = append(w.buf, ' ')
		}
	}
	w.atLineStart = false
}

// WriteString writes a string to the output, handling indentation.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.updateLineState(s[len(s)-1])
	w.trim = 0
}

func (w *Writer) updateLineState(last byte) {
	w.atLineStart = last == '\n'
}

// Newline writes the file's line terminator unless the output already
// ends a line.
func (w *Writer) Newline() {
	if len(w.buf) == 0 || w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, w.sf.Newline()...)
	}
	w.atLineStart = true
	w.trim = w.shift
}

// Shift makes the following copies drop up to width bytes of leading
// whitespace from every source line, except for line breaks inside the
// literals spans. The returned func restores the previous state.
func (w *Writer) Shift(width int, literals []source.Span) func() {
	prevShift, prevLits := w.shift, w.literals
	w.shift, w.literals, w.trim = width, literals, 0
	return func() {
		w.shift, w.literals, w.trim = prevShift, prevLits, 0
	}
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// offset converts a span offset to an index into the content, clamped.
func (w *Writer) offset(off uint32) int {
	i, err := safecast.Conv[int](off)
	if err != nil || i > len(w.sf.Content) {
		return len(w.sf.Content)
	}
	return i
}

// CopySpan copies a span from the source file to the output.
func (w *Writer) CopySpan(sp source.Span) {
	if sp.File != w.sf.ID {
		return
	}
	w.CopyRange(w.offset(sp.Start), w.offset(sp.End))
}

// CopyRange copies a range of bytes from the source file to the output.
func (w *Writer) CopyRange(start, end int) {
	start = max(start, 0)
	end = min(end, len(w.sf.Content))
	if start >= end {
		return
	}
	if w.shift > 0 {
		w.copyShifted(start, end)
		return
	}
	w.write(w.sf.Content[start:end])
}

func (w *Writer) write(chunk []byte) {
	if chunk[0] != '\n' && chunk[0] != '\r' {
		w.writeIndent()
	}
	w.buf = append(w.buf, chunk...)
	w.updateLineState(chunk[len(chunk)-1])
}

func (w *Writer) copyShifted(start, end int) {
	content := w.sf.Content
	for start < end {
		for w.trim > 0 && start < end && (content[start] == ' ' || content[start] == '\t') {
			start++
			w.trim--
		}
		if start >= end {
			return
		}
		w.trim = 0
		nl := bytes.IndexByte(content[start:end], '\n')
		if nl < 0 {
			w.write(content[start:end])
			return
		}
		cut := start + nl + 1
		w.write(content[start:cut])
		if !w.inLiteral(cut - 1) {
			w.trim = w.shift
		}
		start = cut
	}
}

func (w *Writer) inLiteral(off int) bool {
	for _, sp := range w.literals {
		if w.offset(sp.Start) <= off && off < w.offset(sp.End) {
			return true
		}
	}
	return false
}

// lineIndent returns the width of the whitespace that starts the line
// holding off.
func lineIndent(content []byte, off int) int {
	off = min(off, len(content))
	ls := bytes.LastIndexByte(content[:off], '\n') + 1
	n := 0
	for ls+n < off && (content[ls+n] == ' ' || content[ls+n] == '\t') {
		n++
	}
	return n
}
