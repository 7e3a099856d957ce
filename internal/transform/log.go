package transform

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
	"github.com/qza7849467chensh5/reflective-bind/internal/trace"
)

// logAt writes msg positioned at id. Columns are 0-based in the log.
func (u *unit) logAt(level trace.Level, id ast.NodeID, msg string) {
	if !u.opts.LogLevel.ShouldEmit(level) || !u.log.Enabled(level) {
		return
	}
	pos := u.tree.Position(id)
	col := int(pos.Col)
	if col > 0 {
		col--
	}
	trace.LogAt(u.log, level, u.tree.File.Path, int(pos.Line), col, msg)
}

func (u *unit) debug(id ast.NodeID, msg string) { u.logAt(trace.LevelDebug, id, msg) }
func (u *unit) info(id ast.NodeID, msg string)  { u.logAt(trace.LevelInfo, id, msg) }
func (u *unit) warn(id ast.NodeID, msg string)  { u.logAt(trace.LevelWarn, id, msg) }

// span returns the source position of id for diagnostics.
func (u *unit) span(id ast.NodeID) source.Span {
	sp, _ := u.tree.Pos(id)
	return sp
}
