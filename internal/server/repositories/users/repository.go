// Package users implements the credential directory: the durable
// DynamoDB tier, the in-process fallback tier, and the two-tier store
// that keeps authentication answering when the durable backend is down.
package users

import (
	"context"

	"github.com/talenthub/talenthub/internal/server/models"
)

// Repository is one directory tier holding user records keyed by
// normalized email.
type Repository interface {
	// Put inserts a new record. It fails with common.ErrAlreadyExists
	// when the email is taken; the check is atomic with respect to
	// concurrent Put calls for the same email.
	Put(ctx context.Context, user *models.User) error

	// GetByEmail returns the record for a normalized email, or
	// common.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the record for a user id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Update applies a partial profile update by user id and returns the
	// updated record, or common.ErrNotFound.
	Update(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error)
}
