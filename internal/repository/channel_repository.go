package repository

import (
	"context"

	"github.com/spec-kit/ticket-connection/internal/domain"
)

// ChannelRepository reads intake channels.
type ChannelRepository interface {
	Find(ctx context.Context, id string) (*domain.Channel, error)
}

type channelRepository struct {
	db Querier
}

// NewChannelRepository returns a Postgres-backed implementation.
func NewChannelRepository(db Querier) ChannelRepository {
	return &channelRepository{db: db}
}

func (r *channelRepository) Find(ctx context.Context, id string) (*domain.Channel, error) {
	const query = `SELECT id, name, blocked FROM channels WHERE id=$1`

	var channel domain.Channel
	found, err := findOne(r.db.QueryRow(ctx, query, id), &channel.ID, &channel.Name, &channel.Blocked)
	if err != nil || !found {
		return nil, err
	}
	return &channel, nil
}
