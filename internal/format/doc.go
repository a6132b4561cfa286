// Package format prints a parsed unit back in canonical form.
//
// Назначение: стабильный текст для `yulc fmt` и проверки round-trip.
// Не делает: сохранения комментариев и исходной расстановки пробелов.
// Зависимости: internal/ast, internal/parser (только CheckRoundTrip).
package format
