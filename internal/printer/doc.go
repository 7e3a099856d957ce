// Package printer turns a rewritten tree back into source text.
//
// Untouched subtrees are copied byte for byte from the original file, so
// formatting and comments outside rewritten regions survive. A subtree
// marked dirty is spliced: the gaps between its children are copied and
// each child is printed recursively. Synthetic nodes have no source text
// and are printed structurally.
//
// Назначение: вывод результата трансформации.
// Не делает: форматирования исходного кода, генерации source map.
// Зависимости: internal/ast, internal/source.
package printer
