package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/pgseed/pkg/pgseed"
)

// InteractiveApprover asks the user to type the database name.
type InteractiveApprover struct {
	input  io.Reader
	output io.Writer
}

func NewInteractiveApprover() *InteractiveApprover {
	return &InteractiveApprover{input: os.Stdin, output: os.Stderr}
}

// RequestApproval returns true only for an exact match of dbName.
// The read happens on a goroutine so ctx cancellation is honoured.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, dbName string) (bool, error) {
	fmt.Fprintln(a.output)
	fmt.Fprintln(a.output, dangerBanner(dbName))
	fmt.Fprintf(a.output, "\nTo confirm, type the database name '%s' and press Enter: ", dbName)

	type result struct {
		line string
		err  error
	}
	read := make(chan result, 1)
	go func() {
		line, err := bufio.NewReader(a.input).ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		read <- result{strings.TrimSpace(line), err}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case r := <-read:
		if r.err != nil {
			return false, fmt.Errorf("failed to read input: %w", r.err)
		}
		if r.line != dbName {
			fmt.Fprintln(a.output, ErrorStyle.Render(fmt.Sprintf("✗ Input '%s' does not match database name '%s'. Operation cancelled.", r.line, dbName)))
			return false, nil
		}
		fmt.Fprintln(a.output, SuccessStyle.Render("✓ Confirmed. Proceeding with execution..."))
		return true, nil
	}
}

var _ pgseed.Approver = (*InteractiveApprover)(nil)
