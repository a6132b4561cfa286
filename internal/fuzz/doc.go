// Package fuzztests houses Go fuzz harnesses that exercise the compilation
// pipeline (source -> lexer -> parser -> symbols -> codegen). Its goal is to
// smoke test robustness and guard against panics, hangs or malformed IR on
// arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер, парсер и генератор MIR.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/ast, internal/driver, internal/testkit.
package fuzztests
