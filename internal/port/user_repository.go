package port

import (
	"context"

	"github.com/google/uuid"

	"gstims/internal/domain"
)

// UserRepository provides access to IMS tool users.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
