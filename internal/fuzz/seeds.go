package fuzztests

import "testing"

const maxFuzzInput = 1 << 16 // 64 KiB

var seeds = []string{
	"",
	"const g = f.bind(this, 1, 2);\n",
	"x = a ? b.bind(null) : () => 1;\n",
	`class A extends React.Component {
  render() {
    const { id } = this.props;
    return <Button onClick={() => this.props.select(id)} label="x" />;
  }
}
`,
	`function List({ items }) {
  return <ul>{items.map(item => <Item key={item.id} onPick={() => pick(item)} />)}</ul>;
}
`,
	"// @no-reflective-bind-babel\nconst g = f.bind(this);\n",
	"let re = /a[/]b/g, t = `a${b}c`;\n",
	"<div ref={el => (this.el = el)} />;\n",
	"async function* gen() { for await (const x of y) yield x; }\n",
	"label: for (;;) { break label; }\n",
}

func addSeeds(f *testing.F) {
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
