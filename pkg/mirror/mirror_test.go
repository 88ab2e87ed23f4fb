package mirror

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvelo/scoreboard/infra/logger"
)

func TestRunCopiesFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "result.txt")
	dst := filepath.Join(dir, "mirror.txt")
	require.NoError(t, os.WriteFile(src, []byte("1 RIDER 21\n"), 0o644))

	m := New(Config{Argv: []string{"cp"}, Source: src, Dest: dst}, logger.NopLogger{})
	require.NoError(t, m.Run(context.Background()))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "1 RIDER 21\n", string(data))
}

func TestRunRequiresPaths(t *testing.T) {
	m := New(Config{}, logger.NopLogger{})
	assert.Error(t, m.Run(context.Background()))
}

func TestRunReportsFailure(t *testing.T) {
	m := New(Config{Argv: []string{"false"}, Source: "a", Dest: "b"}, logger.NopLogger{})
	assert.Error(t, m.Run(context.Background()))
}
