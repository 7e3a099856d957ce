package fuzztests

import (
	"context"
	"testing"

	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/parser"
	"github.com/qza7849467chensh5/reflective-bind/internal/printer"
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
	"github.com/qza7849467chensh5/reflective-bind/internal/testkit"
	"github.com/qza7849467chensh5/reflective-bind/internal/transform"
)

// FuzzTransformReparses checks that the printed result of a cleanly parsed
// input parses again without errors.
func FuzzTransformReparses(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.js", input))
		bag := diag.NewBag(64)
		parsed := parser.ParseFile(file, parser.Options{Reporter: &diag.BagReporter{Bag: bag}, MaxErrors: 64})
		if bag.HasErrors() {
			return
		}
		opts := transform.DefaultOptions()
		opts.Reporter = &diag.BagReporter{Bag: bag}
		if _, err := transform.Unit(context.Background(), parsed.Tree, opts); err != nil {
			return
		}
		out, err := printer.Print(parsed.Tree, printer.Options{})
		if err != nil {
			return
		}

		again := diag.NewBag(64)
		reparsed := fs.Get(fs.AddVirtual("fuzz.out.js", out))
		parser.ParseFile(reparsed, parser.Options{Reporter: &diag.BagReporter{Bag: again}, MaxErrors: 64})
		if again.HasErrors() {
			t.Fatalf("output does not parse:\n%s\ninput: %q\noutput:\n%s", testkit.Summary(again), input, out)
		}
	})
}
