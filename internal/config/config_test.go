package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solalang/solc/internal/config"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.Config{}, cfg)
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	content := "includePaths:\n  - vendor\nmaxIncludeDepth: 8\ndefines:\n  DEBUG: \"1\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor"}, cfg.IncludePaths)
	assert.Equal(t, 8, cfg.MaxIncludeDepth)
	assert.Equal(t, "1", cfg.Defines["DEBUG"])
}

func TestLoadMalformedFileReturnsError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("not: [valid yaml"), 0644))

	_, err := config.Load(dir)
	assert.Error(t, err)
}
