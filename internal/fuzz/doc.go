// Package fuzztests houses Go fuzz harnesses for the front end and the
// transform (source -> lexer -> parser -> transform -> printer). They guard
// against panics, hangs and unparsable output on arbitrary inputs.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
