package ai

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const fallbackEncoding = "cl100k_base"

var (
	encodingsMu sync.Mutex
	encodings   = map[string]*tiktoken.Tiktoken{}
)

// EstimateTokens считает токены текста токенизатором модели.
// Для неизвестных моделей используется cl100k_base. При ошибке загрузки словаря возвращает 0.
func EstimateTokens(model string, texts ...string) int {
	enc := encodingFor(model)
	if enc == nil {
		return 0
	}
	total := 0
	for _, t := range texts {
		if t == "" {
			continue
		}
		total += len(enc.Encode(t, nil, nil))
	}
	return total
}

func encodingFor(model string) *tiktoken.Tiktoken {
	encodingsMu.Lock()
	defer encodingsMu.Unlock()

	if enc, ok := encodings[model]; ok {
		return enc
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil
		}
	}
	encodings[model] = enc
	return enc
}
