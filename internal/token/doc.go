// Package token defines lexical token kinds and trivia for JavaScript, JSX and
// the Flow annotation subset understood by rbind.
// Invariants:
//   - Token.Text is a slice of the original source (no copies, no unescaping).
//   - Token.Span matches Text exactly (Start..End).
//   - Contextual words (let, async, of, get, set, type, from, as, ...) are
//     lexed as Ident; the parser decides their role.
//   - Comments and whitespace never appear in the token stream; they travel
//     as Leading trivia of the next significant token.
package token
