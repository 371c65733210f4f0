package prompt

import "strings"

// SafetyClause - запрет на текст в изображении. Добавляется ровно один раз.
const SafetyClause = "No captions, no letters, no words, no logos, no watermarks."

// HasSafetyClause проверяет наличие полной фразы.
func HasSafetyClause(text string) bool {
	return strings.Contains(text, SafetyClause)
}

// InjectSafetyClause добавляет SafetyClause через пробел, если ее еще нет. Идемпотентна.
func InjectSafetyClause(text string) string {
	t := strings.TrimSpace(text)
	if HasSafetyClause(t) {
		return t
	}
	if t == "" {
		return SafetyClause
	}
	return t + " " + SafetyClause
}

// SafetyReserve - сколько символов нужно оставить под фразу при ограничении длины.
func SafetyReserve(text string) int {
	if HasSafetyClause(text) {
		return 0
	}
	return len([]rune(SafetyClause)) + 1
}

// StripSafetyClause убирает все вхождения SafetyClause, чтобы фразу можно было добавить заново ровно один раз.
func StripSafetyClause(text string) string {
	if !HasSafetyClause(text) {
		return text
	}
	return collapseSpaces(strings.ReplaceAll(text, SafetyClause, " "))
}

// FitWithSafetyClause укладывает текст вместе с SafetyClause в budget рун.
// Лишние предложения отбрасываются с конца, фраза добавляется последней.
func FitWithSafetyClause(text string, budget int) string {
	body := ClampBySentence(StripSafetyClause(text), budget-SafetyReserve(""))
	return InjectSafetyClause(body)
}
