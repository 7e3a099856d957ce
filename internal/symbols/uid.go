package symbols

import (
	"strconv"
	"strings"
	"unicode"
)

// GenerateUID returns a fresh identifier derived from name: _name, _name2,
// _name3 and so on. Leading underscores and trailing digits of name are
// dropped first. The result collides with no binding, reference, label or
// previously generated name of the file.
func (t *Table) GenerateUID(name string) string {
	base := strings.TrimRightFunc(strings.TrimLeft(toIdentifier(name), "_"), unicode.IsDigit)
	if base == "" {
		base = "temp"
	}
	for i := 1; ; i++ {
		uid := "_" + base
		if i > 1 {
			uid += strconv.Itoa(i)
		}
		if t.taken(uid) {
			continue
		}
		t.uids[uid] = struct{}{}
		return uid
	}
}

func (t *Table) taken(name string) bool {
	if _, ok := t.names[name]; ok {
		return true
	}
	_, ok := t.uids[name]
	return ok
}

// toIdentifier turns arbitrary text into an identifier: invalid characters
// split words, the word after a split is capitalised (foo-bar → fooBar).
func toIdentifier(name string) string {
	var sb strings.Builder
	upper := false
	for _, r := range name {
		valid := r == '$' || r == '_' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
		switch {
		case !valid:
			upper = sb.Len() > 0
		case sb.Len() == 0 && unicode.IsDigit(r):
			// identifier cannot start with a digit
		case upper:
			sb.WriteRune(unicode.ToUpper(r))
			upper = false
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
