package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-connection/internal/domain"
	apperrors "github.com/spec-kit/ticket-connection/pkg/util/errorutil"
)

// ContactRepository reads private person customers.
type ContactRepository interface {
	Get(ctx context.Context, id string) (*domain.Contact, error)
	// FindByPassportNumberAndSeries matches a null series against rows
	// stored without one.
	FindByPassportNumberAndSeries(ctx context.Context, number string, series null.String) (*domain.Contact, error)
}

// AccountRepository reads company customers.
type AccountRepository interface {
	Get(ctx context.Context, id string) (*domain.Account, error)
	FindByINNKPP(ctx context.Context, inn, kpp null.String) (*domain.Account, error)
}

const contactTable = "contacts"

var contactColumns = []string{
	"id", "name", "date_of_birth", "main_phone",
	"passport_number", "passport_series", "passport_issued_by", "passport_date_of_issue", "passport_type",
	"phones", "without_passport_data", "created_at",
}

type contactRepository struct {
	db Querier
}

// NewContactRepository returns a Postgres-backed implementation.
func NewContactRepository(db Querier) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Get(ctx context.Context, id string) (*domain.Contact, error) {
	contact, err := r.findOne(ctx, sq.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperrors.FromNoRows(pgx.ErrNoRows, "Contact", id)
	}
	return contact, nil
}

func (r *contactRepository) FindByPassportNumberAndSeries(ctx context.Context, number string, series null.String) (*domain.Contact, error) {
	return r.findOne(ctx, sq.Eq{
		"passport_number": number,
		"passport_series": nullableArg(series),
	})
}

func (r *contactRepository) findOne(ctx context.Context, where sq.Eq) (*domain.Contact, error) {
	query, args, err := psql.Select(contactColumns...).From(contactTable).Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}

	var (
		contact      domain.Contact
		number       null.String
		issuedBy     null.String
		passportType null.String
		phones       []string
		dateOfIssue  *time.Time
	)
	found, err := findOne(r.db.QueryRow(ctx, query, args...),
		&contact.ID,
		&contact.Name,
		&contact.DateOfBirth,
		&contact.MainPhone,
		&number,
		&contact.Passport.Series,
		&issuedBy,
		&dateOfIssue,
		&passportType,
		&phones,
		&contact.WithoutPassportData,
		&contact.CreatedAt,
	)
	if err != nil || !found {
		return nil, err
	}
	contact.Passport.Number = number.String
	contact.Passport.IssuedBy = issuedBy.String
	contact.Passport.DateOfIssue = dateOfIssue
	contact.Passport.Type = domain.PassportType(passportType.String)
	contact.Phones = domain.NewAdditionalPhones(phones)
	return &contact, nil
}

const accountTable = "accounts"

var accountColumns = []string{
	"id", "name", "main_phone", "inn", "kpp", "description", "phones", "without_passport_data", "created_at",
}

type accountRepository struct {
	db Querier
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(db Querier) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Get(ctx context.Context, id string) (*domain.Account, error) {
	account, err := r.findOne(ctx, sq.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperrors.FromNoRows(pgx.ErrNoRows, "Account", id)
	}
	return account, nil
}

func (r *accountRepository) FindByINNKPP(ctx context.Context, inn, kpp null.String) (*domain.Account, error) {
	return r.findOne(ctx, sq.Eq{
		"inn": nullableArg(inn),
		"kpp": nullableArg(kpp),
	})
}

func (r *accountRepository) findOne(ctx context.Context, where sq.Eq) (*domain.Account, error) {
	query, args, err := psql.Select(accountColumns...).From(accountTable).Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}

	var (
		account     domain.Account
		description null.String
		phones      []string
	)
	found, err := findOne(r.db.QueryRow(ctx, query, args...),
		&account.ID,
		&account.Name,
		&account.MainPhone,
		&account.INN,
		&account.KPP,
		&description,
		&phones,
		&account.WithoutPassportData,
		&account.CreatedAt,
	)
	if err != nil || !found {
		return nil, err
	}
	account.Description = description.String
	account.Phones = domain.NewAdditionalPhones(phones)
	return &account, nil
}

// nullableArg lets squirrel render IS NULL for an invalid null.String.
func nullableArg(value null.String) any {
	if !value.Valid {
		return nil
	}
	return value.String
}
