package prompt

import (
	"regexp"
	"strings"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
)

// Модель иногда возвращает персонажа как Map.toString(): {name=Hamlet, description=prince}.
var (
	pseudoNameRe = regexp.MustCompile(`name\s*=\s*([^,}]+)`)
	pseudoDescRe = regexp.MustCompile(`description\s*=\s*([^,}]+)`)
)

// CleanCharacterDescription превращает "{name=X, description=Y}" в "X (Y)". Остальное возвращает обрезанным.
func CleanCharacterDescription(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "{") || !strings.Contains(s, "name=") {
		return s
	}
	name := ""
	if m := pseudoNameRe.FindStringSubmatch(s); m != nil {
		name = strings.TrimSpace(m[1])
	}
	desc := ""
	if m := pseudoDescRe.FindStringSubmatch(s); m != nil {
		desc = strings.TrimSpace(m[1])
	}
	switch {
	case name != "" && desc != "":
		return name + " (" + desc + ")"
	case name != "":
		return name
	default:
		return desc
	}
}

// JoinEnglishList: "A", "A and B", "A, B, and C".
func JoinEnglishList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}

// unnamedCharacter подставляется, когда имя после нормализации пусто.
const unnamedCharacter = "a character"

// RenderCharacter: "name (age, gender, occupation, description)" без пустых полей, через словарь.
func RenderCharacter(c domain.Character, vocab *Vocabulary) string {
	name := vocab.NormalizeOptional(c.Name)
	if name == "" {
		name = unnamedCharacter
	}
	return describe(name,
		vocab.NormalizeOptional(c.Age),
		vocab.NormalizeOptional(c.Gender),
		vocab.NormalizeOptional(c.Occupation),
		vocab.NormalizeOptional(c.Description),
	)
}

// DescribeCharacter - то же без перевода, для корейского текста.
func DescribeCharacter(c domain.Character) string {
	return describe(strings.TrimSpace(c.Name), c.Age, c.Gender, c.Occupation, c.Description)
}

func describe(name string, attrs ...string) string {
	var kept []string
	for _, a := range attrs {
		if a = strings.TrimSpace(a); a != "" {
			kept = append(kept, a)
		}
	}
	if len(kept) == 0 {
		return name
	}
	return name + " (" + strings.Join(kept, ", ") + ")"
}
