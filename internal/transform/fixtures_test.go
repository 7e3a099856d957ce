package transform_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/transform"
)

func TestFixtures(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		opts     transform.Options
		rewrites int
		hoisted  []string
		helper   string
		contains []string
		absent   []string
	}{
		{
			name: "helper name avoids an existing import",
			src: `import {babelBind as _testBind} from "../../src";
(function() {
  const hoistable = a => a;
  <React.Component onClick={hoistable} />;
  return _testBind(hoistable, null, 1)();
})();
`,
			opts:     transform.Options{HelperName: "testBind", HoistedPrefix: "testBBHoisted", HelperModule: "../../src"},
			rewrites: 1,
			hoisted:  []string{"_testBBHoisted"},
			helper:   "_testBind2",
			contains: []string{
				`import { babelBind as _testBind2 } from "../../src";`,
				"const hoistable = _testBind2(_testBBHoisted, this);",
				"function _testBBHoisted(a) {\n  return a;\n}",
			},
		},
		{
			name: "ternary branches",
			src: `function foo() {}
(function() {
  const condition = true;
  const fn = condition ? foo.bind(null) : () => 1;
  <React.Component onClick={fn} />;
})();
`,
			rewrites: 2,
			hoisted:  []string{"_rbHoisted"},
			helper:   "_rbBabelBind",
			contains: []string{"condition ? _rbBabelBind(foo, null) : _rbBabelBind(_rbHoisted, this)"},
		},
		{
			name: "every assignment of a container identifier",
			src: `function foo() {}
(function() {
  let fn;
  fn = () => 1;
  fn = foo.bind(null);
  let a = 1;
  a = 2;
  fn = () => a;
  <React.Component onClick={fn} />;
})();
`,
			rewrites: 3,
			hoisted:  []string{"_rbHoisted", "_rbHoisted2"},
			helper:   "_rbBabelBind",
			contains: []string{
				"fn = _rbBabelBind(_rbHoisted, this);",
				"fn = _rbBabelBind(foo, null);",
				"fn = _rbBabelBind(_rbHoisted2, this, a);",
			},
		},
		{
			name: "ref callbacks stay",
			src: `(function() {
  const shouldNotHoist = e => {};
  <React.Component ref={shouldNotHoist} />;
})();
`,
		},
		{
			name: "host elements stay",
			src: `(function() {
  const shouldNotHoist = () => {
    return 1;
  };
  <div onClick={shouldNotHoist} />;
})();
`,
		},
		{
			name: "host element children are still visited",
			src: `(function(a) {
  <div onClick={() => a}><Item onSelect={() => a} /></div>;
})();
`,
			rewrites: 1,
			hoisted:  []string{"_rbHoisted"},
			helper:   "_rbBabelBind",
			contains: []string{"<div onClick={() => a}><Item onSelect={_rbBabelBind(_rbHoisted, this, a)} /></div>"},
		},
		{
			name: "prop name filter",
			src: `(function() {
  let a = 1;
  const shouldNotHoist = () => a;
  <React.Component render={shouldNotHoist} />;
  const hoistable = () => a;
  <React.Component onClick={hoistable} />;
})();
`,
			opts:     transform.Options{PropNameRegex: `^on[A-Z][A-Za-z]+$`},
			rewrites: 1,
			hoisted:  []string{"_rbHoisted"},
			helper:   "_rbBabelBind",
			contains: []string{"const shouldNotHoist = () => a;", "const hoistable = _rbBabelBind(_rbHoisted, this, a);"},
		},
		{
			name: "redeclared local is not captured",
			src: `(function() {
  let a = 1;
  const hoistable = () => {
    let a = 2;
    return a;
  };
  <React.Component onClick={hoistable} />;
  return hoistable();
})();
`,
			rewrites: 1,
			hoisted:  []string{"_rbHoisted"},
			helper:   "_rbBabelBind",
			contains: []string{"function _rbHoisted() {", "const hoistable = _rbBabelBind(_rbHoisted, this);"},
		},
		{
			name: "computed bind is not a bind call",
			src: `(function() {
  function test(a, b) {
    return a + b;
  }
  const bind = "bind";
  const shouldNotTransform = test[bind](null, 1, 2);
  <React.Component onClick={shouldNotTransform} />;
})();
`,
		},
		{
			name: "outermost scope arrow",
			src: `const f = () => 1;
<Button onClick={f} />;
`,
		},
		{
			name: "nested closures hoist outer to inner",
			src: `function render(a) {
  return <A onClick={() => <B onClick={() => a} />} />;
}
`,
			rewrites: 2,
			hoisted:  []string{"_rbHoisted", "_rbHoisted2"},
			helper:   "_rbBabelBind",
			contains: []string{
				"import { babelBind as _rbBabelBind } from \"reflective-bind\";\nfunction _rbHoisted2(a) {",
				"function _rbHoisted(a) {\n  return <B onClick={_rbBabelBind(_rbHoisted2, this, a)} />;\n}",
				"return <A onClick={_rbBabelBind(_rbHoisted, this, a)} />;",
			},
		},
		{
			name: "async arrows stay",
			src: `function render(a) {
  return <A onClick={async () => a} />;
}
`,
		},
		{
			name: "this outside the whitelist stays in the body",
			src: `class C {
  render() {
    return <A onClick={() => this.handle(this.state.x)} />;
  }
}
`,
			rewrites: 1,
			hoisted:  []string{"_rbHoisted"},
			helper:   "_rbBabelBind",
			contains: []string{
				"function _rbHoisted(_temp) {\n  return this.handle(_temp);\n}",
				"_rbBabelBind(_rbHoisted, this, this.state.x)",
			},
		},
		{
			name: "computed key from a parameter stays in the body",
			src: `class C {
  render() {
    return <Button onClick={(k) => this.props[k]} />;
  }
}
`,
			rewrites: 1,
			hoisted:  []string{"_rbHoisted"},
			helper:   "_rbBabelBind",
			contains: []string{
				"function _rbHoisted(_temp, k) {\n  return _temp[k];\n}",
				"_rbBabelBind(_rbHoisted, this, this.props)",
			},
			absent: []string{"this.props[k])"},
		},
		{
			name: "computed key from a body constant stays in the body",
			src: `class C {
  render() {
    return <Button onClick={() => {
      const k = 1;
      return this.props.items[k];
    }} />;
  }
}
`,
			rewrites: 1,
			hoisted:  []string{"_rbHoisted"},
			helper:   "_rbBabelBind",
			contains: []string{
				"function _rbHoisted(_temp) {\n  const k = 1;\n  return _temp[k];\n}",
				"_rbBabelBind(_rbHoisted, this, this.props.items)",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := run(t, tt.src, tt.opts)
			want := transform.Result{Rewrites: tt.rewrites, Hoisted: tt.hoisted, Helper: tt.helper}
			if diff := cmp.Diff(want, o.res); diff != "" {
				t.Fatalf("result mismatch (-want +got):\n%s\noutput:\n%s", diff, o.out)
			}
			if tt.rewrites == 0 && o.out != tt.src {
				t.Fatalf("file without rewrites changed:\n%s", cmp.Diff(tt.src, o.out))
			}
			for _, s := range tt.contains {
				if !strings.Contains(o.out, s) {
					t.Errorf("output lacks %q:\n%s", s, o.out)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(o.out, s) {
					t.Errorf("output unexpectedly has %q:\n%s", s, o.out)
				}
			}
		})
	}
}

func TestDeclinedClosureWarnsOnce(t *testing.T) {
	src := `function render() {
  let a = 1;
  const f = () => a;
  a = 2;
  return <div><A onClick={f} /><B onClick={f} /></div>;
}
`
	o := run(t, src, transform.Options{})
	if got := o.bag.Count(diag.SevWarning); got != 1 {
		t.Fatalf("expected a single warning, got %d: %q", got, o.logs)
	}
}

func TestTopLevelArrowIsLogged(t *testing.T) {
	o := run(t, "const f = () => 1;\n<Button onClick={f} />;\n", transform.Options{})
	want := []string{"debug/reflective-bind: Skipping arrow function defined in the outermost scope (test.jsx 1:10)"}
	if diff := cmp.Diff(want, o.logs); diff != "" {
		t.Fatalf("log mismatch (-want +got):\n%s", diff)
	}
}
