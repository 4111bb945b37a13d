package commands

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

func secretFromPipe(t *testing.T, input string) (string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	_, err = w.WriteString(input)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return readSecret(r)
}

func TestReadSecretFromPipe(t *testing.T) {
	// A pipe is not a terminal, so the fallback line read applies.
	r, _, err := os.Pipe()
	require.NoError(t, err)
	assert.False(t, term.IsTerminal(int(r.Fd())))
	require.NoError(t, r.Close())

	secret, err := secretFromPipe(t, "s3cret\n")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", secret)
}

func TestReadSecretTrimsWhitespace(t *testing.T) {
	secret, err := secretFromPipe(t, "  s3cret  \n")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", secret)
}

func TestReadSecretWithoutTrailingNewline(t *testing.T) {
	secret, err := secretFromPipe(t, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", secret)
}

func TestReadSecretEmptyInput(t *testing.T) {
	_, err := secretFromPipe(t, "")
	assert.Error(t, err)
}
