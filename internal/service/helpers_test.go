package service_test

import "strings"

func isExtractorPrompt(system string) bool {
	return strings.Contains(system, "compact JSON")
}

func isCompressorPrompt(system string) bool {
	return strings.Contains(system, "text-to-image")
}
