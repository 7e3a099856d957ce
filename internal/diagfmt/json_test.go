package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("class A {\n  f() { return <B onClick={() => this.x = 1} />; }\n}")
	fileID := fs.AddVirtual("app.jsx", content)

	bag := diag.NewBag(10)
	d := diag.New(
		diag.SevWarning,
		diag.TrnHoistDeclined,
		source.Span{File: fileID, Start: 43, End: 49},
		"cannot hoist",
	)
	bag.Add(d.WithNote(source.Span{File: fileID, Start: 37, End: 42}, "arrow function defined here"))

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
	})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	// Парсим JSON чтобы убедиться что он валидный
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}

	want := DiagnosticsOutput{
		Count: 1,
		Diagnostics: []DiagnosticJSON{{
			Severity: "WARNING",
			Code:     "TRN3002",
			Title:    "Arrow function not hoisted",
			Message:  "cannot hoist",
			Location: LocationJSON{
				File: "app.jsx", StartByte: 43, EndByte: 49,
				StartLine: 2, StartCol: 34, EndLine: 2, EndCol: 40,
			},
			Notes: []NoteJSON{{
				Message: "arrow function defined here",
				Location: LocationJSON{
					File: "app.jsx", StartByte: 37, EndByte: 42,
					StartLine: 2, StartCol: 28, EndLine: 2, EndCol: 33,
				},
			}},
		}},
	}
	if diff := cmp.Diff(want, output); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}

// TestJSONMaxAndNotes проверяет обрезку вывода и скрытие заметок
func TestJSONMaxAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("app.jsx", []byte("a.bind(this); b.bind(this); c.bind(this);"))

	bag := diag.NewBag(2)
	for i := range uint32(3) {
		sp := source.Span{File: fileID, Start: i * 14, End: i*14 + 6}
		bag.Add(diag.New(diag.SevInfo, diag.TrnBindRewritten, sp, "Transformed call to 'bind'").
			WithNote(sp, "here"))
	}

	output := BuildDiagnosticsOutput(bag, fs, JSONOpts{PathMode: PathModeBasename, Max: 1})
	if output.Count != 1 {
		t.Fatalf("Expected count=1, got %d", output.Count)
	}
	// один отброшен Bag'ом, один обрезан Max
	if output.Dropped != 2 {
		t.Errorf("Expected dropped=2, got %d", output.Dropped)
	}
	got := output.Diagnostics[0]
	if got.Notes != nil {
		t.Errorf("notes included without IncludeNotes: %+v", got.Notes)
	}
	if got.Location.StartLine != 0 {
		t.Errorf("positions included without IncludePositions: %+v", got.Location)
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.js", []byte("f.bind"))
	toks := []token.Token{
		{Kind: token.Ident, Text: "f", Span: source.Span{File: id, Start: 0, End: 1}},
		{Kind: token.Dot, Span: source.Span{File: id, Start: 1, End: 2}},
		{Kind: token.Ident, Text: "bind", Span: source.Span{File: id, Start: 2, End: 6},
			Leading: []token.Trivia{{Kind: token.TriviaSpace}}},
		{Kind: token.EOF, Span: source.Span{File: id, Start: 6, End: 6}},
		{Kind: token.Ident, Text: "after-eof"},
	}

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	want := "  1: identifier      \"f\" at 1:1-1:2\n" +
		"  2: .               at 1:2-1:3\n" +
		"  3: identifier      \"bind\" at 1:3-1:7 (leading: space)\n" +
		"  4: EOF             at 1:7-1:7\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("pretty tokens mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if len(out) != 4 || out[2].Leading[0] != "space" {
		t.Errorf("unexpected tokens: %+v", out)
	}
}
