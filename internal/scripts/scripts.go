package scripts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sentra-hq/sentra-cms/internal/storage"
)

var ErrUnknownScript = errors.New("unknown script")

// Result is what a named script produced. ACL is set only by scripts
// that touch object storage.
type Result struct {
	Output string
	ACL    *storage.ACLReport
}

// Runner executes a fixed allow-list of named maintenance scripts. Any
// name outside the list is rejected before anything runs.
type Runner struct {
	store  storage.ObjectStore
	db     *sql.DB
	budget time.Duration
}

func NewRunner(store storage.ObjectStore, db *sql.DB, budget time.Duration) *Runner {
	return &Runner{store: store, db: db, budget: budget}
}

// Known reports whether name is on the allow-list.
func (r *Runner) Known(name string) bool {
	switch name {
	case "fix-file-acls", "check-db":
		return true
	}

	return false
}

// Run executes the named script under the configured time budget. A
// budget overrun surfaces as context.DeadlineExceeded.
func (r *Runner) Run(ctx context.Context, name string) (*Result, error) {
	if !r.Known(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScript, name)
	}

	ctx, cancel := context.WithTimeout(ctx, r.budget)
	defer cancel()

	switch name {
	case "fix-file-acls":
		report, err := r.store.FixAllObjectACLs(ctx)
		if err != nil {
			return nil, err
		}

		return &Result{
			Output: fmt.Sprintf("fixed %d of %d objects (%d failed)", report.Fixed, report.Total, report.Failed),
			ACL:    report,
		}, nil

	case "check-db":
		if err := r.db.PingContext(ctx); err != nil {
			return nil, err
		}

		return &Result{Output: "database reachable"}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScript, name)
}
