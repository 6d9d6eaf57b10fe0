package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
)

// Translator returns the single-track machine that rewrites every 'a' as 'b'
// and accepts in q1 once it reaches the blank after the input.
func Translator() *domain.Machine {
	return dsl.New("translator").
		Start("q0").
		Accept("q1").
		From("q0").Read("a").Write("b").Right().Stay().
		From("q0").Read("b").Right().Stay().
		From("q0").Read("blank").Left().Go("q1").
		MustBuild()
}

// WriteFile creates a file with the given content in a fresh temp dir.
// It returns the absolute path and fails the test immediately on error.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write %s", name)
	return path
}
