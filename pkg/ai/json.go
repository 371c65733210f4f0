package ai

import "strings"

// ExtractJSONObject вырезает фрагмент от первой '{' до последней '}'.
// Модели часто оборачивают JSON в текст или ```json блоки.
func ExtractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
