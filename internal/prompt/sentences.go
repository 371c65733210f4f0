package prompt

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
)

// DefaultCharBudget - предел длины итогового описания в символах (рунах).
const DefaultCharBudget = 900

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// SplitSentences делит текст по [.!?], за которым следует пробельный символ.
// Знак остается в предложении, пустые куски отбрасываются.
func SplitSentences(text string) []string {
	var out []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes)-1; i++ {
		if isTerminal(runes[i]) && unicode.IsSpace(runes[i+1]) {
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, s)
	}
	return out
}

// ClampBySentence ограничивает текст budget рунами, отбрасывая целые предложения с конца.
// Если и первое предложение не помещается, текст обрезается по границе символа.
func ClampBySentence(text string, budget int) string {
	if utf8.RuneCountInString(text) <= budget {
		return text
	}
	if budget <= 0 {
		return ""
	}

	var b strings.Builder
	total := 0
	for _, s := range SplitSentences(text) {
		n := utf8.RuneCountInString(s)
		if total > 0 {
			n++
		}
		if total+n > budget {
			break
		}
		if total > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s)
		total += n
	}
	if total == 0 {
		return TruncateRunes(text, budget)
	}
	return b.String()
}

// EnforceSentenceRange схлопывает переносы строк и сливает предложения сверх r.Max в последнее допустимое.
// Текст короче r.Min не дополняется.
func EnforceSentenceRange(text string, r domain.SentenceRange) string {
	sentences := SplitSentences(collapseSpaces(text))
	if r.Max <= 0 || len(sentences) <= r.Max {
		return strings.Join(sentences, " ")
	}

	tail := make([]string, 0, len(sentences)-r.Max+1)
	for _, s := range sentences[r.Max-1:] {
		if s = strings.TrimRightFunc(s, isTerminal); s != "" {
			tail = append(tail, s)
		}
	}
	out := append([]string{}, sentences[:r.Max-1]...)
	out = append(out, strings.Join(tail, "; ")+".")
	return strings.Join(out, " ")
}

// CountSentences - число предложений по правилам SplitSentences.
func CountSentences(text string) int {
	return len(SplitSentences(text))
}

// TruncateRunes обрезает строку до limit рун.
func TruncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == limit {
			return s[:pos]
		}
		i++
	}
	return s
}
