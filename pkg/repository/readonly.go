package repository

import (
	"context"

	"github.com/arthur-debert/gamerepo/pkg/errors"
)

// ReadOnly exposes a Repository without its mutating operations.
type ReadOnly struct {
	Repository
}

var _ Repository = (*ReadOnly)(nil)

// NewReadOnly wraps r.
func NewReadOnly(r Repository) *ReadOnly {
	return &ReadOnly{Repository: r}
}

// RenameVersion always fails with UNSUPPORTED.
func (ReadOnly) RenameVersion(_ context.Context, from, to string) error {
	return errors.Newf(errors.ErrUnsupported, "cannot rename %q: repository is read-only", from).
		WithDetail("from", from).
		WithDetail("to", to)
}
