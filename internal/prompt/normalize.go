// Package prompt содержит детерминированные стадии сборки описания сцены:
// нормализацию, словарь, слияние контекста, шаблоны, ограничение длины и защитную фразу.
package prompt

import (
	"strings"
	"unicode"
)

// isInvisible - неразрывный пробел, пробелы нулевой ширины, разделители строк/абзацев, BOM.
func isInvisible(r rune) bool {
	switch {
	case r == '\u00a0', r == '\u2028', r == '\u2029', r == '\ufeff':
		return true
	case r >= '\u2000' && r <= '\u200b':
		return true
	}
	return false
}

// NormalizeTitle удаляет все пробельные и невидимые символы. Для пустого ввода возвращает "".
func NormalizeTitle(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || isInvisible(r) {
			return -1
		}
		return r
	}, raw)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// firstNonBlank возвращает первое непустое значение.
func firstNonBlank(values ...string) string {
	for _, v := range values {
		if !isBlank(v) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
