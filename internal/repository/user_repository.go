package repository

import (
	"context"

	"github.com/spec-kit/ticket-connection/internal/domain"
	apperrors "github.com/spec-kit/ticket-connection/pkg/util/errorutil"
)

// UserRepository defines persistence access for operators.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// FindAgent returns nil when the id does not belong to an agent.
	FindAgent(ctx context.Context, id string) (*domain.User, error)
}

type userRepository struct {
	db Querier
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db Querier) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, name, email, blocked, partner_dispatcher
        FROM users WHERE id=$1`

	var user domain.User
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Blocked,
		&user.PartnerDispatcher,
	); err != nil {
		return nil, apperrors.FromNoRows(err, "User", id)
	}
	return &user, nil
}

func (r *userRepository) FindAgent(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, name, email, blocked, partner_dispatcher
        FROM users WHERE id=$1 AND is_agent`

	var user domain.User
	found, err := findOne(r.db.QueryRow(ctx, query, id),
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Blocked,
		&user.PartnerDispatcher,
	)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}
