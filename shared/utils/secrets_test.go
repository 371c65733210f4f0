package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withSecretsDir(t *testing.T) string {
	dir := t.TempDir()
	old := secretsDir
	secretsDir = dir
	t.Cleanup(func() { secretsDir = old })
	return dir
}

func TestReadSecret(t *testing.T) {
	dir := withSecretsDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openai_api_key"), []byte("  sk-test \n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty"), []byte("   "), 0o600))

	v, err := ReadSecret("openai_api_key")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", v)

	_, err = ReadSecret("empty")
	assert.Error(t, err)

	_, err = ReadSecret("missing")
	assert.Error(t, err)
}

func TestSecretOrDefault(t *testing.T) {
	dir := withSecretsDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "db_password"), []byte("from-file"), 0o600))

	assert.Equal(t, "from-file", SecretOrDefault("db_password", "from-env"))
	assert.Equal(t, "from-env", SecretOrDefault("missing", "from-env"))
	assert.Equal(t, "from-env", SecretOrDefault("", "from-env"))
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "***", MaskSecret("abc"))
	assert.Equal(t, "****6789", MaskSecret("12346789"))
}
