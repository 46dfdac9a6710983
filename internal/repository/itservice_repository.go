package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-connection/internal/domain"
	apperrors "github.com/spec-kit/ticket-connection/pkg/util/errorutil"
)

// ITServiceRepository loads IT services together with their work-type table.
type ITServiceRepository interface {
	Get(ctx context.Context, id string) (*domain.ITService, error)
}

// ITServiceServiceTypeRepository reads service types.
type ITServiceServiceTypeRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]domain.ITServiceServiceType, error)
}

type itServiceRepository struct {
	db Querier
}

// NewITServiceRepository returns a Postgres-backed implementation.
func NewITServiceRepository(db Querier) ITServiceRepository {
	return &itServiceRepository{db: db}
}

func (r *itServiceRepository) Get(ctx context.Context, id string) (*domain.ITService, error) {
	const query = `
        SELECT id, name, blocked, service_type_reason_not_required
        FROM itservices WHERE id=$1`

	var service domain.ITService
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.Name,
		&service.Blocked,
		&service.ServiceTypeReasonNotRequired,
	); err != nil {
		return nil, apperrors.FromNoRows(err, "ITService", id)
	}

	workTypes, err := r.loadWorkTypes(ctx, service.ID)
	if err != nil {
		return nil, err
	}
	service.WorkTypes = workTypes
	return &service, nil
}

func (r *itServiceRepository) loadWorkTypes(ctx context.Context, serviceID string) ([]domain.ITServiceWorkType, error) {
	const query = `
        SELECT iwt.id, wt.id, wt.name, wt.blocked
        FROM itservice_work_types iwt
        JOIN work_types wt ON wt.id = iwt.work_type_id
        WHERE iwt.itservice_id=$1
        ORDER BY iwt.position, iwt.id`

	rows, err := r.db.Query(ctx, query, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		result []domain.ITServiceWorkType
		ids    []string
	)
	for rows.Next() {
		var item domain.ITServiceWorkType
		if err := rows.Scan(&item.ID, &item.WorkType.ID, &item.WorkType.Name, &item.WorkType.Blocked); err != nil {
			return nil, err
		}
		result = append(result, item)
		ids = append(ids, item.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return result, nil
	}

	serviceTypes, err := r.loadServiceTypes(ctx, ids)
	if err != nil {
		return nil, err
	}
	reasons, err := r.loadReasons(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].ServiceTypes = serviceTypes[result[i].ID]
		result[i].Reasons = reasons[result[i].ID]
	}
	return result, nil
}

func (r *itServiceRepository) loadServiceTypes(ctx context.Context, workTypeIDs []string) (map[string][]domain.ITServiceServiceType, error) {
	query, args, err := psql.
		Select("link.itservice_work_type_id", "st.id", "st.itservice_id", "st.name").
		From("itservice_work_type_service_types link").
		Join("itservice_service_types st ON st.id = link.service_type_id").
		Where(sq.Eq{"link.itservice_work_type_id": workTypeIDs}).
		OrderBy("st.name").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]domain.ITServiceServiceType)
	for rows.Next() {
		var (
			owner string
			st    domain.ITServiceServiceType
		)
		if err := rows.Scan(&owner, &st.ID, &st.ITServiceID, &st.Name); err != nil {
			return nil, err
		}
		result[owner] = append(result[owner], st)
	}
	return result, rows.Err()
}

func (r *itServiceRepository) loadReasons(ctx context.Context, workTypeIDs []string) (map[string][]domain.Reason, error) {
	query, args, err := psql.
		Select("link.itservice_work_type_id", "rs.id", "rs.name", "rs.blocked").
		From("itservice_work_type_reasons link").
		Join("reasons rs ON rs.id = link.reason_id").
		Where(sq.Eq{"link.itservice_work_type_id": workTypeIDs}).
		OrderBy("rs.name").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]domain.Reason)
	for rows.Next() {
		var (
			owner  string
			reason domain.Reason
		)
		if err := rows.Scan(&owner, &reason.ID, &reason.Name, &reason.Blocked); err != nil {
			return nil, err
		}
		result[owner] = append(result[owner], reason)
	}
	return result, rows.Err()
}

type itServiceServiceTypeRepository struct {
	db Querier
}

// NewITServiceServiceTypeRepository returns a Postgres-backed implementation.
func NewITServiceServiceTypeRepository(db Querier) ITServiceServiceTypeRepository {
	return &itServiceServiceTypeRepository{db: db}
}

func (r *itServiceServiceTypeRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.ITServiceServiceType, error) {
	if len(ids) == 0 {
		return []domain.ITServiceServiceType{}, nil
	}
	query, args, err := serviceTypesByIDsQuery(ids)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanServiceTypes(rows)
}

func serviceTypesByIDsQuery(ids []string) (string, []any, error) {
	return psql.
		Select("id", "itservice_id", "name").
		From("itservice_service_types").
		Where(sq.Eq{"id": ids}).
		OrderBy("name").
		ToSql()
}

func scanServiceTypes(rows pgx.Rows) ([]domain.ITServiceServiceType, error) {
	result := []domain.ITServiceServiceType{}
	for rows.Next() {
		var st domain.ITServiceServiceType
		if err := rows.Scan(&st.ID, &st.ITServiceID, &st.Name); err != nil {
			return nil, err
		}
		result = append(result, st)
	}
	return result, rows.Err()
}
