package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
)

func singleBag(fileID source.FileID, start, end uint32, sev diag.Severity, code diag.Code, msg string) *diag.Bag {
	bag := diag.NewBag(10)
	bag.Add(diag.New(sev, code, source.Span{File: fileID, Start: start, End: end}, msg))
	return bag
}

func render(bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) string {
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, opts)
	return buf.String()
}

// TestPrettyLayout проверяет заголовок, строку исходника и подчёркивание
func TestPrettyLayout(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		start uint32
		end   uint32
		want  string
	}{
		{
			name:  "ascii",
			src:   "const a = 1;\nfoo.bind(this);\n",
			start: 13, end: 21,
			want: "test.jsx:2:1: INFO TRN3005: msg\n" +
				" 2 | foo.bind(this);\n" +
				"   | ^" + strings.Repeat("~", 7) + "\n",
		},
		{
			name:  "wide runes before span",
			src:   "x = \"日本\" + f.bind(this);",
			start: 15, end: 21,
			want: "test.jsx:1:16: INFO TRN3005: msg\n" +
				" 1 | x = \"日本\" + f.bind(this);\n" +
				"   | " + strings.Repeat(" ", 13) + "^" + strings.Repeat("~", 5) + "\n",
		},
		{
			name:  "tabs kept in indent",
			src:   "\tfoo.bind(this)",
			start: 1, end: 9,
			want: "test.jsx:1:2: INFO TRN3005: msg\n" +
				" 1 | \tfoo.bind(this)\n" +
				"   | \t^" + strings.Repeat("~", 7) + "\n",
		},
		{
			name:  "empty span",
			src:   "foo",
			start: 3, end: 3,
			want: "test.jsx:1:4: INFO TRN3005: msg\n" +
				" 1 | foo\n" +
				"   |    ^\n",
		},
		{
			name:  "multiline span underlines to end of line",
			src:   "a(() => {\n});",
			start: 2, end: 11,
			want: "test.jsx:1:3: INFO TRN3005: msg\n" +
				" 1 | a(() => {\n" +
				"   |   ^" + strings.Repeat("~", 6) + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			id := fs.AddVirtual("test.jsx", []byte(tt.src))
			bag := singleBag(id, tt.start, tt.end, diag.SevInfo, diag.TrnBindRewritten, "msg")
			got := render(bag, fs, PrettyOpts{PathMode: PathModeBasename})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Pretty mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/app.jsx", []byte("x.bind(this)\n"))
	bag := singleBag(fileID, 0, 6, diag.SevError, diag.TrnInternal, "boom")

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/app.jsx:1:1"},
		{"Relative path", PathModeRelative, "src/app.jsx:1:1"},
		{"Basename only", PathModeBasename, "app.jsx:1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := render(bag, fs, PrettyOpts{PathMode: tt.mode})
			if !strings.HasPrefix(output, tt.contains) {
				t.Errorf("Expected output to start with %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR TRN3001: boom") {
				t.Errorf("Expected severity and code in output, got:\n%s", output)
			}
		})
	}
}

func TestPrettyNotesAndContext(t *testing.T) {
	fs := source.NewFileSet()
	src := "class A {\n  render() {\n    return <B onClick={() => x++} />;\n  }\n}\n"
	id := fs.AddVirtual("test.jsx", []byte(src))
	arrow := uint32(strings.Index(src, "() =>"))
	bag := diag.NewBag(10)
	d := diag.New(diag.SevWarning, diag.TrnHoistDeclined,
		source.Span{File: id, Start: arrow + 6, End: arrow + 9}, "cannot hoist")
	bag.Add(d.WithNote(source.Span{File: id, Start: arrow, End: arrow + 5}, "arrow function defined here"))

	out := render(bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1})
	for _, want := range []string{
		"test.jsx:3:30: WARNING TRN3002: cannot hoist",
		" 2 |   render() {",
		" 3 |     return <B onClick={() => x++} />;",
		" 4 |   }",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "note:") {
		t.Errorf("notes printed without ShowNotes:\n%s", out)
	}

	out = render(bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	if !strings.Contains(out, "  note: test.jsx:3:24: arrow function defined here") {
		t.Errorf("note missing:\n%s", out)
	}
}

func TestPrettyColorAndWidth(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.jsx", []byte("someVeryLongCallee.bind(this, alpha, beta, gamma)"))
	bag := singleBag(id, 0, 23, diag.SevError, diag.TrnInternal, "boom")

	plain := render(bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(plain, "\x1b[") {
		t.Errorf("escape codes without Color:\n%q", plain)
	}
	colored := render(bag, fs, PrettyOpts{PathMode: PathModeBasename, Color: true})
	if !strings.Contains(colored, "\x1b[") {
		t.Errorf("no escape codes with Color:\n%q", colored)
	}

	clipped := render(bag, fs, PrettyOpts{PathMode: PathModeBasename, Width: 20})
	if !strings.Contains(clipped, "…") || strings.Contains(clipped, "gamma") {
		t.Errorf("line not clipped:\n%s", clipped)
	}
}

func TestPrettyUnknownFile(t *testing.T) {
	fs := source.NewFileSet()
	bag := singleBag(42, 0, 1, diag.SevError, diag.IOLoadFileError, "cannot read")
	got := render(bag, fs, PrettyOpts{})
	if diff := cmp.Diff("<unknown>: ERROR IO4001: cannot read\n", got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
