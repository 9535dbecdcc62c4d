package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vvka-141/pgseed/pkg/pgseed"
)

// ForcedApprover approves after a countdown without reading input. It backs
// the --force flag; Ctrl+C during the countdown cancels the run.
type ForcedApprover struct {
	output    io.Writer
	countdown time.Duration
	sleepFn   func(time.Duration)
}

func NewForcedApprover() *ForcedApprover {
	return &ForcedApprover{
		output:    os.Stderr,
		countdown: pgseed.DefaultForceApprovalCountdown,
		sleepFn:   time.Sleep,
	}
}

func (a *ForcedApprover) RequestApproval(ctx context.Context, dbName string) (bool, error) {
	fmt.Fprintln(a.output)
	fmt.Fprintln(a.output, dangerBanner(dbName))
	fmt.Fprintln(a.output)

	for i := int(a.countdown.Seconds()); i > 0; i-- {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(a.output)
			return false, err
		}
		fmt.Fprintf(a.output, "\rExecuting in: %d seconds... (Press Ctrl+C to cancel)", i)
		a.sleepFn(time.Second)
	}

	fmt.Fprintf(a.output, "\r%s\n", SuccessStyle.Render("✓ Proceeding with execution against "+dbName+"...          "))
	return true, nil
}

var _ pgseed.Approver = (*ForcedApprover)(nil)
