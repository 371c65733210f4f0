package utils

import (
	"fmt"
	"os"
	"strings"
)

// secretsDir - стандартный путь Docker Secrets. Переменная для подмены в тестах.
var secretsDir = "/run/secrets"

// ReadSecret читает секрет из файла в каталоге Docker Secrets.
func ReadSecret(secretName string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", secretsDir, secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file %s: %w", filePath, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", filePath)
	}
	return secret, nil
}

// SecretOrDefault возвращает секрет из файла, а если файла нет - fallback (обычно значение из env).
func SecretOrDefault(secretName, fallback string) string {
	if secretName == "" {
		return fallback
	}
	secret, err := ReadSecret(secretName)
	if err != nil {
		return fallback
	}
	return secret
}

// MaskSecret скрывает все, кроме последних 4 символов.
func MaskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
