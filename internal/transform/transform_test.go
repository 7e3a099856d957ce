package transform_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/printer"
	"github.com/qza7849467chensh5/reflective-bind/internal/testkit"
	"github.com/qza7849467chensh5/reflective-bind/internal/trace"
	"github.com/qza7849467chensh5/reflective-bind/internal/transform"
)

type outcome struct {
	out  string
	res  transform.Result
	logs []string
	bag  *diag.Bag
}

func run(t *testing.T, src string, opts transform.Options) outcome {
	t.Helper()
	if opts.LogLevel == 0 {
		opts.LogLevel = trace.LevelDebug
	}
	bag := diag.NewBag(0)
	opts.Reporter = &diag.BagReporter{Bag: bag}
	ring := trace.NewRingLogger(64, trace.LevelDebug)
	ctx := trace.WithLogger(context.Background(), ring)

	tree := testkit.Parse(t, src)
	res, err := transform.Unit(ctx, tree, opts)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if err := testkit.CheckLinks(tree); err != nil {
		t.Fatalf("links after transform: %v", err)
	}
	out, err := printer.Print(tree, printer.Options{})
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	return outcome{out: string(out), res: res, logs: ring.Messages(), bag: bag}
}

func TestScenarioHoistsCapturedConstant(t *testing.T) {
	src := `function render() {
  const a = 1;
  return <Button onClick={(c, d) => {
    let b = 2;
    return a + b + c + d;
  }} />;
}
`
	want := `import { babelBind as _rbBabelBind } from "reflective-bind";
function _rbHoisted(a, c, d) {
  let b = 2;
  return a + b + c + d;
}
function render() {
  const a = 1;
  return <Button onClick={_rbBabelBind(_rbHoisted, this, a)} />;
}
`
	o := run(t, src, transform.Options{})
	if diff := cmp.Diff(want, o.out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	wantRes := transform.Result{Rewrites: 1, Hoisted: []string{"_rbHoisted"}, Helper: "_rbBabelBind"}
	if diff := cmp.Diff(wantRes, o.res); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if len(o.logs) != 2 {
		t.Fatalf("expected two log lines, got %q", o.logs)
	}
	if o.logs[0] != "debug/reflective-bind: Transformed arrow function (test.jsx 3:26)" {
		t.Fatalf("unexpected first log line %q", o.logs[0])
	}
	wantTotal := fmt.Sprintf("debug/reflective-bind: Total inline functions transformed: %d", transform.TotalRewrites())
	if o.logs[1] != wantTotal {
		t.Fatalf("total line = %q, want %q", o.logs[1], wantTotal)
	}
}

func TestScenarioLateAssignmentDeclines(t *testing.T) {
	src := `function render() {
  let a = 1;
  const f = () => a;
  a = 2;
  return <Button onClick={f} />;
}
`
	o := run(t, src, transform.Options{})
	if o.out != src {
		t.Fatalf("declined closure changed the file:\n%s", cmp.Diff(src, o.out))
	}
	if o.res.Rewrites != 0 || o.res.Helper != "" {
		t.Fatalf("unexpected result %+v", o.res)
	}
	want := []string{
		"warn/reflective-bind: Cannot transform arrow function because the variable 'a' is assigned to after the arrow function definition. (test.jsx 3:18)",
	}
	if diff := cmp.Diff(want, o.logs); diff != "" {
		t.Fatalf("log mismatch (-want +got):\n%s", diff)
	}
	if o.bag.Count(diag.SevWarning) != 1 || o.bag.Items()[0].Code != diag.TrnHoistDeclined {
		t.Fatalf("expected one TRN declined warning, got %s", testkit.Summary(o.bag))
	}
}

func TestScenarioEarlierAssignmentHoists(t *testing.T) {
	src := `function render() {
  let a = 1;
  a = 2;
  const f = () => a;
  return <Button onClick={f} />;
}
`
	want := `import { babelBind as _rbBabelBind } from "reflective-bind";
function _rbHoisted(a) {
  return a;
}
function render() {
  let a = 1;
  a = 2;
  const f = _rbBabelBind(_rbHoisted, this, a);
  return <Button onClick={f} />;
}
`
	o := run(t, src, transform.Options{})
	if diff := cmp.Diff(want, o.out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestScenarioBindAnywhere(t *testing.T) {
	src := `// @flow
const g = expr.bind(ctx, 1, 2);
<div ref={h.bind(null)} />;
`
	want := `// @flow
import { babelBind as _rbBabelBind } from "reflective-bind";
const g = _rbBabelBind(expr, ctx, 1, 2);
<div ref={_rbBabelBind(h, null)} />;
`
	o := run(t, src, transform.Options{})
	if diff := cmp.Diff(want, o.out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if o.res.Rewrites != 2 || len(o.res.Hoisted) != 0 {
		t.Fatalf("unexpected result %+v", o.res)
	}
	if o.logs[0] != "debug/reflective-bind: Transformed call to 'bind' (test.jsx 2:10)" {
		t.Fatalf("unexpected log %q", o.logs[0])
	}
}

func TestScenarioNestedContextAccess(t *testing.T) {
	src := `class C extends React.Component {
  render() {
    return <Button onClick={() => this.props.nested.value} />;
  }
}
`
	want := `import { babelBind as _rbBabelBind } from "reflective-bind";
function _rbHoisted(_temp) {
  return _temp.value;
}
class C extends React.Component {
  render() {
    return <Button onClick={_rbBabelBind(_rbHoisted, this, this.props.nested)} />;
  }
}
`
	o := run(t, src, transform.Options{})
	if diff := cmp.Diff(want, o.out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	advice := "info/reflective-bind: Accessing nested property 'this.props.nested.value'."
	if len(o.logs) == 0 || !strings.HasPrefix(o.logs[0], advice) {
		t.Fatalf("expected nested property advice first, got %q", o.logs)
	}
}

func TestScenarioOptOut(t *testing.T) {
	src := `// @no-reflective-bind-babel
function render(a) {
  const g = f.bind(this);
  return <Button onClick={() => a} />;
}
`
	o := run(t, src, transform.Options{})
	if o.out != src || !o.res.Skipped || o.res.Rewrites != 0 {
		t.Fatalf("opted-out file was rewritten: %+v\n%s", o.res, o.out)
	}
	if len(o.logs) != 0 {
		t.Fatalf("opted-out file logged %q", o.logs)
	}
}

func TestOptOutNeedsWholeLine(t *testing.T) {
	src := "function r(a) { return <B on={() => a} />; } // @no-reflective-bind-babel\n"
	o := run(t, src, transform.Options{})
	if o.res.Skipped || o.res.Rewrites != 1 {
		t.Fatalf("marker after code must not opt out: %+v", o.res)
	}
}

func TestLogLevelFilters(t *testing.T) {
	src := `function render() {
  let a = 1;
  const f = () => a;
  a = 2;
  return <Button onClick={f} onHover={g.bind(this)} />;
}
`
	tests := []struct {
		level trace.Level
		want  int
	}{
		{trace.LevelDebug, 3},
		{trace.LevelInfo, 1},
		{trace.LevelWarn, 1},
		{trace.LevelOff, 0},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			o := run(t, src, transform.Options{LogLevel: tt.level})
			if len(o.logs) != tt.want {
				t.Fatalf("level %s: got %d lines %q, want %d", tt.level, len(o.logs), o.logs, tt.want)
			}
		})
	}
}

func TestInvalidPropNameRegex(t *testing.T) {
	opts := transform.Options{PropNameRegex: "on[A-Z"}
	if err := opts.Validate(); err == nil {
		t.Fatalf("expected an error for an invalid regex")
	}
	tree := testkit.Parse(t, "a;\n")
	if _, err := transform.Unit(context.Background(), tree, opts); err == nil {
		t.Fatalf("Unit accepted an invalid regex")
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tree := testkit.Parse(t, "function r(a) { return <B on={() => a} />; }\n")
	_, err := transform.Unit(ctx, tree, transform.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
