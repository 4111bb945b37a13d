package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmAnswers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		approved bool
	}{
		{name: "yes", input: "yes\n", approved: true},
		{name: "y", input: "y\n", approved: true},
		{name: "uppercase Y", input: "Y\n", approved: true},
		{name: "no", input: "no\n", approved: false},
		{name: "empty line defaults to no", input: "\n", approved: false},
		{name: "gibberish", input: "sure why not\n", approved: false},
		{name: "eof denies", input: "", approved: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewConfirmerWithStreams(false, strings.NewReader(tt.input), &out)

			approved, err := c.Confirm(context.Background(), "Push changes?")
			require.NoError(t, err)
			assert.Equal(t, tt.approved, approved)
			assert.Contains(t, out.String(), "Push changes?")
			assert.Contains(t, out.String(), "[y/N]")
		})
	}
}

func TestAssumeYesSkipsPrompt(t *testing.T) {
	var out bytes.Buffer
	c := NewConfirmerWithStreams(true, strings.NewReader(""), &out)

	approved, err := c.Confirm(context.Background(), "Push changes?")
	require.NoError(t, err)
	assert.True(t, approved)
	assert.Empty(t, out.String())
}

func TestConfirmHonorsContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// A reader that never delivers a line.
	blocked := make(chan struct{})
	t.Cleanup(func() { close(blocked) })
	c := NewConfirmerWithStreams(false, blockingReader{wait: blocked}, &bytes.Buffer{})

	approved, err := c.Confirm(ctx, "Push changes?")
	assert.False(t, approved)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type blockingReader struct {
	wait chan struct{}
}

func (r blockingReader) Read([]byte) (int, error) {
	<-r.wait
	return 0, nil
}

func TestConfirmDelete(t *testing.T) {
	var out bytes.Buffer
	c := NewConfirmerWithStreams(false, strings.NewReader("y\n"), &out)

	approved, err := c.ConfirmDelete(context.Background(), "item", 4321)
	require.NoError(t, err)
	assert.True(t, approved)
	assert.Contains(t, out.String(), "Delete item 4321?")
}
