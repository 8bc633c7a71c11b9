package preprocess_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solalang/solc/internal/config"
	"github.com/solalang/solc/internal/diag"
	"github.com/solalang/solc/internal/preprocess"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestIncludeSplicesContentAndTracksOrigin(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.sol", "int libValue;\n")
	root := writeFile(t, dir, "main.sol", "#include \"lib.sol\"\nint x;\n")

	sink := diag.NewSink(os.Stderr)
	pp := preprocess.New(sink, config.Config{})
	cs, err := pp.Run(root)
	require.NoError(t, err)
	require.Len(t, cs.Lines, 2)

	assert.Equal(t, "int libValue;\n", cs.Lines[0].Text)
	assert.Equal(t, filepath.Join(dir, "lib.sol"), string(cs.Lines[0].File))
	require.NotNil(t, cs.Lines[0].IncludedFrom)
	assert.Equal(t, root, string(cs.Lines[0].IncludedFrom.File))

	assert.Equal(t, "int x;\n", cs.Lines[1].Text)
	assert.Nil(t, cs.Lines[1].IncludedFrom)
}

func TestDefineExpandsSubsequentOccurrencesOnly(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "main.sol", "int WIDTH;\n#define WIDTH 32\nint x = WIDTH;\n")

	sink := diag.NewSink(os.Stderr)
	pp := preprocess.New(sink, config.Config{})
	cs, err := pp.Run(root)
	require.NoError(t, err)

	require.Len(t, cs.Lines, 2)
	assert.Equal(t, "int WIDTH;\n", cs.Lines[0].Text, "occurrence before the #define must not expand")
	assert.Equal(t, "int x = 32;\n", cs.Lines[1].Text, "occurrence after the #define must expand")
}

func TestIncludeCycleIsDetectedViaDepthLimit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.sol", "#include \"b.sol\"\n")
	writeFile(t, dir, "b.sol", "#include \"a.sol\"\n")

	sink := diag.NewSink(os.Stderr)
	pp := preprocess.New(sink, config.Config{MaxIncludeDepth: 4})
	_, err := pp.Run(filepath.Join(dir, "a.sol"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestMissingIncludeIsASoftWarningNotFatal(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "main.sol", "#include \"missing.sol\"\nint x;\n")

	sink := diag.NewSink(os.Stderr)
	pp := preprocess.New(sink, config.Config{})
	cs, err := pp.Run(root)
	require.NoError(t, err)
	assert.NotEmpty(t, sink.Warning)
	require.Len(t, cs.Lines, 1)
	assert.Equal(t, "int x;\n", cs.Lines[0].Text)
}

func TestIncludeAndMacroCombineAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.sol", "function f() returns (int) { return N; }\n")
	root := writeFile(t, dir, "a.sol", "#define N 5\n#include \"b.sol\"\n")

	sink := diag.NewSink(os.Stderr)
	pp := preprocess.New(sink, config.Config{})
	cs, err := pp.Run(root)
	require.NoError(t, err)

	require.Len(t, cs.Lines, 1)
	assert.Equal(t, "function f() returns (int) { return 5; }\n", cs.Lines[0].Text)
	assert.Equal(t, filepath.Join(dir, "b.sol"), string(cs.Lines[0].File))
	require.NotNil(t, cs.Lines[0].IncludedFrom)
	assert.Equal(t, root, string(cs.Lines[0].IncludedFrom.File))
}

func TestPredefinedConfigDefinesApplyFromTheStart(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "main.sol", "int x = VERSION;\n")

	sink := diag.NewSink(os.Stderr)
	pp := preprocess.New(sink, config.Config{Defines: map[string]string{"VERSION": "7"}})
	cs, err := pp.Run(root)
	require.NoError(t, err)
	require.Len(t, cs.Lines, 1)
	assert.Equal(t, "int x = 7;\n", cs.Lines[0].Text)
}
