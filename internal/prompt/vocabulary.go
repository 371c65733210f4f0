package prompt

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Unknown подставляется вместо пустого значения.
const Unknown = "unknown"

// Term - пара "исходный термин -> замена".
type Term struct {
	From string
	To   string
}

// DefaultTerms - словарь корейской лексики отзывов и справочника.
var DefaultTerms = []Term{
	// эмоции
	{"아쉬움", "regret"},
	{"답답함", "frustration"},
	{"분노", "anger"},
	{"만족", "satisfaction"},
	{"기쁨", "joy"},
	{"슬픔", "sadness"},
	{"사랑", "love"},
	{"증오", "hatred"},
	{"감동적", "emotional"},
	{"긴장", "tension"},
	{"갈등", "conflict"},
	{"여운", "lingering emotion"},
	{"놀람", "surprise"},
	{"아리함", "confusion"},
	{"깊은", "deep"},

	// жанр и место действия
	{"뮤지컬", "musical"},
	{"밴드", "band"},
	{"콘서트", "concert"},
	{"극장", "theater"},
	{"무대", "stage"},
	{"호텔", "hotel"},
	{"방", "room"},
	{"일제강점기", "Japanese colonial period"},
	{"의", " of"},
	{"은유", "metaphor"},
	{"창작", "creation"},
	{"추락", "fall"},
	{"현실", "reality"},
	{"허상", "illusion"},
	{"예술", "art"},
	{"본질", "essence"},
	{"인간", "human"},
	{"존엄", "dignity"},
	{"납치", "abduction"},

	// возраст и пол
	{"20대 중반", "mid-20s"},
	{"20대 초중반", "early to mid-20s"},
	{"20대 초반", "early 20s"},
	{"20대 후반", "late 20s"},
	{"30대", "30s"},
	{"40대", "40s"},
	{"50대", "50s"},
	{"남성", "male"},
	{"여성", "female"},
	{"남자", "male"},
	{"여자", "female"},

	// отношения
	{"연인", "lovers"},
	{"친구", "friends"},
	{"가족", "family"},
	{"동료", "colleagues"},

	// действия
	{"노래", "singing"},
	{"춤", "dancing"},
	{"연기", "acting"},
	{"연주", "playing"},
	{"공연", "performance"},

	// профессии
	{"시인", "poet"},
	{"건축가", "architect"},
	{"기생", "gisaeng"},
	{"배우", "actor"},
	{"가수", "singer"},
	{"댄서", "dancer"},

	// свет
	{"어둠", "darkness"},
	{"밝음", "brightness"},
	{"무대조명", "stage lighting"},
	{"스포트라이트", "spotlight"},
}

// Vocabulary заменяет термины за один проход, выбирая самое длинное совпадение в каждой позиции.
// Результат замены повторно не сканируется. Безопасен для конкурентного использования.
type Vocabulary struct {
	byFirst map[rune][]Term
}

// NewVocabulary строит словарь. При равной длине побеждает термин, стоящий раньше в списке.
func NewVocabulary(terms []Term) *Vocabulary {
	byFirst := make(map[rune][]Term)
	for _, t := range terms {
		if t.From == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(t.From)
		byFirst[r] = append(byFirst[r], t)
	}
	for r := range byFirst {
		list := byFirst[r]
		sort.SliceStable(list, func(i, j int) bool {
			return len(list[i].From) > len(list[j].From)
		})
	}
	return &Vocabulary{byFirst: byFirst}
}

// DefaultVocabulary - словарь из DefaultTerms.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(DefaultTerms)
}

// Normalize переводит текст; пустой результат заменяется на Unknown. Идемпотентна.
func (v *Vocabulary) Normalize(text string) string {
	if out := v.NormalizeOptional(text); out != "" {
		return out
	}
	return Unknown
}

// NormalizeOptional - как Normalize, но пустой результат остается пустым.
func (v *Vocabulary) NormalizeOptional(text string) string {
	if isBlank(text) {
		return ""
	}
	if !containsHangul(text) {
		return collapseSpaces(text)
	}
	replaced := v.replace(text)
	stripped := strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Hangul, r) {
			return ' '
		}
		return r
	}, replaced)
	return collapseSpaces(stripped)
}

func (v *Vocabulary) replace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if t, ok := v.match(r, s[i:]); ok {
			b.WriteString(t.To)
			i += len(t.From)
			continue
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

func (v *Vocabulary) match(first rune, rest string) (Term, bool) {
	for _, t := range v.byFirst[first] {
		if strings.HasPrefix(rest, t.From) {
			return t, true
		}
	}
	return Term{}, false
}

func containsHangul(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}
