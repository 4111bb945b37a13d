// Package ui holds the interactive prompt used before destructive
// operations.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Confirmer prompts the user before destructive operations.
type Confirmer struct {
	assumeYes bool
	in        io.Reader
	out       io.Writer
}

// NewConfirmer creates a confirmer reading from stdin. With assumeYes set
// every prompt is approved without asking, for scripted use.
func NewConfirmer(assumeYes bool) *Confirmer {
	return &Confirmer{
		assumeYes: assumeYes,
		in:        os.Stdin,
		out:       os.Stderr,
	}
}

// NewConfirmerWithStreams creates a confirmer on explicit streams.
func NewConfirmerWithStreams(assumeYes bool, in io.Reader, out io.Writer) *Confirmer {
	return &Confirmer{assumeYes: assumeYes, in: in, out: out}
}

// Confirm asks the user to approve the message. Only an explicit "y" or
// "yes" approves; anything else, including EOF, denies.
func (c *Confirmer) Confirm(ctx context.Context, message string) (bool, error) {
	if c.assumeYes {
		return true, nil
	}

	fmt.Fprintf(c.out, "%s [y/N]: ", message)

	type answer struct {
		approved bool
		err      error
	}
	ch := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(c.in).ReadString('\n')
		if err != nil && line == "" {
			ch <- answer{err: err}
			return
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			ch <- answer{approved: true}
		default:
			ch <- answer{approved: false}
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return false, ctx.Err()
	case a := <-ch:
		if a.err != nil && a.err != io.EOF {
			return false, fmt.Errorf("failed to read confirmation: %w", a.err)
		}
		return a.approved, nil
	}
}

// ConfirmDelete asks before deleting the named resource.
func (c *Confirmer) ConfirmDelete(ctx context.Context, resource string, id int64) (bool, error) {
	return c.Confirm(ctx, fmt.Sprintf("Delete %s %d? This cannot be undone.", resource, id))
}
