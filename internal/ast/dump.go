package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

var flagNames = []struct {
	f    Flags
	name string
}{
	{FlagComputed, "computed"}, {FlagOptional, "optional"}, {FlagShorthand, "shorthand"},
	{FlagAsync, "async"}, {FlagGenerator, "generator"}, {FlagStatic, "static"},
	{FlagPrefix, "prefix"}, {FlagDelegate, "delegate"}, {FlagSelfClosing, "self-closing"},
	{FlagTypeOnly, "type-only"}, {FlagDirective, "directive"}, {FlagDirty, "dirty"},
	{FlagSynthetic, "synthetic"}, {FlagReplacement, "replacement"}, {FlagDetached, "detached"},
}

// Dump writes an indented listing of the subtree rooted at id:
//
//	CallExpression [10:24]
//	  callee: MemberExpression [10:18]
func Dump(w io.Writer, t *Tree, id NodeID) error {
	return dump(w, t, id, "", 0)
}

func dump(w io.Writer, t *Tree, id NodeID, label string, depth int) error {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", depth))
	if label != "" {
		sb.WriteString(label)
		sb.WriteString(": ")
	}
	sb.WriteString(n.Kind.String())
	if sp, ok := t.Pos(id); ok {
		fmt.Fprintf(&sb, " [%d:%d]", sp.Start, sp.End)
	}
	if n.Text != "" {
		sb.WriteString(" ")
		sb.WriteString(strconv.Quote(n.Text))
	}
	if n.Op != 0 {
		sb.WriteString(" op=")
		sb.WriteString(n.Op.String())
	}
	for _, fl := range flagNames {
		if n.Flags.Has(fl.f) {
			sb.WriteString(" ")
			sb.WriteString(fl.name)
		}
	}
	sb.WriteString("\n")
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}

	for i, spec := range VisitorKeys(n.Kind) {
		for j, kid := range n.kids[i] {
			lbl := spec.Field.String()
			if spec.List {
				lbl = fmt.Sprintf("%s[%d]", lbl, j)
			}
			if !kid.IsValid() {
				if _, err := fmt.Fprintf(w, "%s  %s: <hole>\n", strings.Repeat("  ", depth), lbl); err != nil {
					return err
				}
				continue
			}
			if err := dump(w, t, kid, lbl, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// Shape renders the subtree as a compact one-line form used by tests:
// Kind(child child ...). Identifiers and literals carry their text after
// a colon, e.g. CallExpression(Identifier:f NumericLiteral:1).
func Shape(t *Tree, id NodeID) string {
	var sb strings.Builder
	shape(&sb, t, id)
	return sb.String()
}

func shape(sb *strings.Builder, t *Tree, id NodeID) {
	n := t.Node(id)
	sb.WriteString(n.Kind.String())
	switch {
	case n.Kind == Identifier, n.Kind == JSXIdentifier, n.Kind == PrivateName, n.Kind.IsLiteral():
		sb.WriteString(":")
		sb.WriteString(n.Text)
	}
	kids := t.Children(id)
	if len(kids) == 0 {
		return
	}
	sb.WriteString("(")
	for i, k := range kids {
		if i > 0 {
			sb.WriteString(" ")
		}
		shape(sb, t, k)
	}
	sb.WriteString(")")
}
