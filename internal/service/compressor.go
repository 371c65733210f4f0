package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/internal/prompt"
	"github.com/SxxMWolf/ReMadeBE/pkg/ai"
)

const compressorSystemPrompt = `You rewrite rich scene prompts for text-to-image models.
Requirements:
- Output MUST be in ENGLISH.
- Output MUST be exactly %d or %d sentences. No bullet points, no numbered lists, no line breaks.
- Preserve concrete visual details: subjects, setting, mood, composition, lighting, color cues.
- If additional style requests are given, subtly weave them into the prose.
- Include naturally that there is no visible text/logos/watermarks in the image (do not list rules).
- Avoid meta language like "the prompt is" or quotes. Write pure descriptive prose only.`

// Compressor переписывает черновик сцены в короткую прозу вторым вызовом модели.
type Compressor struct {
	client ai.Client
	logger *zap.Logger
}

func NewCompressor(client ai.Client, logger *zap.Logger) *Compressor {
	return &Compressor{client: client, logger: logger.Named("Compressor")}
}

// Compress возвращает текст, приведенный к диапазону предложений r.
func (c *Compressor) Compress(ctx context.Context, draft, style string, r domain.SentenceRange) (string, error) {
	var user strings.Builder
	user.WriteString("Base prompt:\n")
	user.WriteString(draft)
	if s := strings.TrimSpace(style); s != "" {
		user.WriteString("\n\nAdditional style requests:\n")
		user.WriteString(s)
	}

	start := time.Now()
	out, err := c.client.Complete(ctx, fmt.Sprintf(compressorSystemPrompt, r.Min, r.Max), user.String())
	pipelineStageDuration.WithLabelValues("compress").Observe(time.Since(start).Seconds())
	if err != nil {
		return "", domain.NewTransportError("compress scene", err)
	}

	out = strings.Trim(strings.TrimSpace(out), `"`)
	if out == "" {
		return "", domain.NewTransportError("compress scene", fmt.Errorf("%w: empty completion", ai.ErrGenerationFailed))
	}

	// SafetyClause из ответа модели убирается, PromptService добавляет ее один раз.
	shaped := prompt.EnforceSentenceRange(prompt.StripSafetyClause(out), r)
	if n := prompt.CountSentences(shaped); n < r.Min {
		c.logger.Debug("Compressed text is shorter than requested", zap.Int("sentences", n), zap.Int("min", r.Min))
	}
	return shaped, nil
}
