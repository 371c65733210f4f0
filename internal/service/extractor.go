package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/pkg/ai"
)

const (
	extractorSystemPrompt = "You analyze performance reviews and reply strictly as compact JSON."

	extractorUserPrompt = `Analyze the following performance review and return ONLY JSON (no explanations, no code blocks).
Keys: emotion, theme, setting, relationship, actions, character1, character2, (character3, character4, character5 if available), lighting
IMPORTANT: Return all values in ENGLISH only. Translate Korean words/phrases to English.
Review: %s`
)

// Extractor извлекает признаки сцены из текста отзыва одним вызовом модели.
type Extractor struct {
	client ai.Client
	logger *zap.Logger
}

func NewExtractor(client ai.Client, logger *zap.Logger) *Extractor {
	return &Extractor{client: client, logger: logger.Named("Extractor")}
}

// Extract возвращает TransportError, если модель недоступна.
// Неразборчивый ответ - не ошибка: результат помечается Degraded, поля пусты.
func (e *Extractor) Extract(ctx context.Context, review string) (domain.Extraction, error) {
	start := time.Now()
	text, err := e.client.Complete(ctx, extractorSystemPrompt, fmt.Sprintf(extractorUserPrompt, review))
	pipelineStageDuration.WithLabelValues("extract").Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.Extraction{}, domain.NewTransportError("extract features", err)
	}

	features, err := ParseFeatures(text)
	if err != nil {
		e.logger.Warn("Failed to parse extractor response, continuing with blank features",
			zap.Error(err),
			zap.Int("response_len", len(text)),
		)
		return domain.Extraction{Degraded: true, Raw: text}, nil
	}
	return domain.Extraction{Features: features, Raw: text}, nil
}

// ParseFeatures разбирает фрагмент от первой '{' до последней '}'.
// Нестроковые значения приводятся к строке.
func ParseFeatures(text string) (domain.ExtractedFeatures, error) {
	var f domain.ExtractedFeatures

	obj, ok := ai.ExtractJSONObject(text)
	if !ok {
		return f, fmt.Errorf("no JSON object in response")
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return f, fmt.Errorf("invalid JSON object: %w", err)
	}

	f.Emotion = stringify(raw["emotion"])
	f.Theme = stringify(raw["theme"])
	f.Setting = stringify(raw["setting"])
	f.Relationship = stringify(raw["relationship"])
	f.Actions = stringify(raw["actions"])
	f.Lighting = stringify(raw["lighting"])
	for i := range f.Characters {
		f.Characters[i] = stringify(raw["character"+strconv.Itoa(i+1)])
	}
	return f, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		name, desc := stringify(t["name"]), stringify(t["description"])
		switch {
		case name != "" && desc != "":
			return name + " (" + desc + ")"
		case name != "":
			return name
		case desc != "":
			return desc
		}
		data, _ := json.Marshal(t)
		return string(data)
	default:
		return fmt.Sprint(t)
	}
}
