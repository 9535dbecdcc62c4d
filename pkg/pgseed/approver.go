package pgseed

import "context"

// Approver handles user confirmation before SQL files are executed
// against a database.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type database name for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before executing against dbName.
	// Returns true if approved, false if denied.
	RequestApproval(ctx context.Context, dbName string) (bool, error)
}
