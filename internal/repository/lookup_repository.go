package repository

import (
	"context"

	"github.com/spec-kit/ticket-connection/internal/domain"
	apperrors "github.com/spec-kit/ticket-connection/pkg/util/errorutil"
)

// ProviderRepository reads network providers.
type ProviderRepository interface {
	Find(ctx context.Context, id string) (*domain.Provider, error)
}

// ReasonRepository reads contact reasons.
type ReasonRepository interface {
	Find(ctx context.Context, id string) (*domain.Reason, error)
}

// OperationTypeRepository reads operation types.
type OperationTypeRepository interface {
	Get(ctx context.Context, id string) (*domain.OperationType, error)
}

// WorkTypeRepository reads work types.
type WorkTypeRepository interface {
	Get(ctx context.Context, id string) (*domain.WorkType, error)
}

// HouseRepository reads houses.
type HouseRepository interface {
	Get(ctx context.Context, id string) (*domain.House, error)
}

type providerRepository struct{ db Querier }

// NewProviderRepository returns a Postgres-backed implementation.
func NewProviderRepository(db Querier) ProviderRepository {
	return &providerRepository{db: db}
}

func (r *providerRepository) Find(ctx context.Context, id string) (*domain.Provider, error) {
	const query = `SELECT id, name, blocked FROM providers WHERE id=$1`

	var provider domain.Provider
	found, err := findOne(r.db.QueryRow(ctx, query, id), &provider.ID, &provider.Name, &provider.Blocked)
	if err != nil || !found {
		return nil, err
	}
	return &provider, nil
}

type reasonRepository struct{ db Querier }

// NewReasonRepository returns a Postgres-backed implementation.
func NewReasonRepository(db Querier) ReasonRepository {
	return &reasonRepository{db: db}
}

func (r *reasonRepository) Find(ctx context.Context, id string) (*domain.Reason, error) {
	const query = `SELECT id, name, blocked FROM reasons WHERE id=$1`

	var reason domain.Reason
	found, err := findOne(r.db.QueryRow(ctx, query, id), &reason.ID, &reason.Name, &reason.Blocked)
	if err != nil || !found {
		return nil, err
	}
	return &reason, nil
}

type operationTypeRepository struct{ db Querier }

// NewOperationTypeRepository returns a Postgres-backed implementation.
func NewOperationTypeRepository(db Querier) OperationTypeRepository {
	return &operationTypeRepository{db: db}
}

func (r *operationTypeRepository) Get(ctx context.Context, id string) (*domain.OperationType, error) {
	const query = `SELECT id, name, blocked FROM operation_types WHERE id=$1`

	var operationType domain.OperationType
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&operationType.ID,
		&operationType.Name,
		&operationType.Blocked,
	); err != nil {
		return nil, apperrors.FromNoRows(err, "Operation type", id)
	}
	return &operationType, nil
}

type workTypeRepository struct{ db Querier }

// NewWorkTypeRepository returns a Postgres-backed implementation.
func NewWorkTypeRepository(db Querier) WorkTypeRepository {
	return &workTypeRepository{db: db}
}

func (r *workTypeRepository) Get(ctx context.Context, id string) (*domain.WorkType, error) {
	const query = `SELECT id, name, blocked FROM work_types WHERE id=$1`

	var workType domain.WorkType
	if err := r.db.QueryRow(ctx, query, id).Scan(&workType.ID, &workType.Name, &workType.Blocked); err != nil {
		return nil, apperrors.FromNoRows(err, "Work type", id)
	}
	return &workType, nil
}

type houseRepository struct{ db Querier }

// NewHouseRepository returns a Postgres-backed implementation.
func NewHouseRepository(db Querier) HouseRepository {
	return &houseRepository{db: db}
}

func (r *houseRepository) Get(ctx context.Context, id string) (*domain.House, error) {
	const query = `SELECT id, address FROM houses WHERE id=$1`

	var house domain.House
	if err := r.db.QueryRow(ctx, query, id).Scan(&house.ID, &house.Address); err != nil {
		return nil, apperrors.FromNoRows(err, "House", id)
	}
	return &house, nil
}
