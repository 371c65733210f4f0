package service

import (
	"fmt"
	"strings"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
)

// pair - необязательное значение с подписью. Пустые значения пропускаются.
type pair struct {
	label string
	value string
}

// labeled возвращает label+value для непустых значений в исходном порядке.
func labeled(pairs []pair) []string {
	out := []string{}
	for _, p := range pairs {
		if v := strings.TrimSpace(p.value); v != "" {
			out = append(out, p.label+v)
		}
	}
	return out
}

// writeSection пишет заголовок и строки "- ...". Секция без строк не выводится.
func writeSection(b *strings.Builder, header string, lines []string) {
	if len(lines) == 0 {
		return
	}
	b.WriteString(header)
	b.WriteByte('\n')
	for _, l := range lines {
		b.WriteString("- ")
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
}

const narrativeFallback = "공연의 인상과 감정선이 무대 구성과 연출에 조화롭게 반영되어 깊은 여운을 남겼습니다."

// BuildNarrative собирает текст отзыва: шапка, секции и заключительный абзац.
func BuildNarrative(m domain.StructuredMeta) string {
	var b strings.Builder

	if m.Title != "" || m.Genre != "" {
		b.WriteString("【" + m.Title)
		if m.Genre != "" {
			b.WriteString(" / " + m.Genre)
		}
		b.WriteString("】\n")
	}
	if m.Date != "" || m.Location != "" {
		b.WriteString(joinNonBlank(" · ", m.Date, m.Location))
		b.WriteString("\n\n")
	}

	writeSection(&b, "■ 작품/공연 요지", labeled([]pair{
		{"주제: ", m.Theme},
		{"배경: ", m.Setting},
		{"참고 메타: ", m.DBSummary},
	}))
	writeSection(&b, "■ 무드 & 연출", labeled([]pair{
		{"감정: ", m.Emotion},
		{"조명: ", m.Lighting},
		{"무대/행동: ", m.Actions},
	}))
	writeSection(&b, "■ 인물/등장 캐릭터", m.Characters)
	writeSection(&b, "■ 핵심 포인트", m.Highlights)

	b.WriteString("— 정리 후기 —\n")
	b.WriteString(strings.Join(closingLines(m), "\n"))
	return strings.TrimSpace(b.String())
}

func closingLines(m domain.StructuredMeta) []string {
	var lines []string
	if m.Theme != "" || m.Setting != "" {
		lines = append(lines, fmt.Sprintf(
			"%s 속에서 펼쳐진 이야기와 무대는 %s의 결을 따라 전개되었고, 장면 전환마다 %s이(가) 자연스럽게 스며들었습니다.",
			orDefault(m.Title, "이번 공연"), orDefault(m.Theme, "주요 주제"), orDefault(m.Setting, "공간적 배경")))
	}
	if m.Emotion != "" || m.Lighting != "" || m.Actions != "" {
		lines = append(lines, fmt.Sprintf(
			"무대는 %s 분위기 아래 %s이(가) 돋보였으며, 연출 측면에서 %s이(가) 전체 감정선을 견인했습니다.",
			orDefault(m.Emotion, "감정적인"), orDefault(m.Lighting, "조명 설계"), orDefault(m.Actions, "배우들의 동선과 장면 구성")))
	}
	if len(m.Characters) > 0 {
		lines = append(lines, "등장인물은 "+strings.Join(m.Characters, ", ")+" 등이 주축이 되어 장면의 밀도를 높였습니다.")
	}
	if m.DBSummary != "" {
		lines = append(lines, "작품의 기본 맥락은 DB 메타에서 드러난 '"+m.DBSummary+"' 특성이 후기에 자연스럽게 이어졌습니다.")
	}
	if len(lines) == 0 {
		lines = append(lines, narrativeFallback)
	}
	return lines
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
