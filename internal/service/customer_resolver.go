package service

import (
	"context"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-connection/internal/domain"
	"github.com/spec-kit/ticket-connection/internal/events"
	apperrors "github.com/spec-kit/ticket-connection/pkg/util/errorutil"
)

// CommandCustomer references an existing customer by ID or carries the
// fields of a new one. Type selects which payload is read.
type CommandCustomer struct {
	ID      string
	Type    domain.CustomerType
	Contact *CommandContact
	Account *CommandAccount
}

// CommandContact holds the submitted fields of a new contact.
type CommandContact struct {
	Name                  string
	DateOfBirth           *time.Time
	MainPhone             string
	Phones                []string
	PassportNumber        string
	PassportSeries        null.String
	PassportIssuedBy      string
	PassportDateOfIssue   *time.Time
	PassportType          domain.PassportType
	IsWithoutPassportData bool
}

// CommandAccount holds the submitted fields of a new account.
type CommandAccount struct {
	Name                  string
	MainPhone             string
	Phones                []string
	INN                   null.String
	KPP                   null.String
	Description           string
	IsWithoutPassportData bool
}

// FindCustomer loads the referenced customer or builds a new, unsaved one.
// It returns nil when the reference matches neither case.
func (f *ConnectionFetcher) FindCustomer(ctx context.Context, cmd CommandCustomer) (domain.Customer, error) {
	if cmd.ID != "" {
		switch cmd.Type {
		case domain.CustomerTypeContact:
			contact, err := f.contacts.Get(ctx, cmd.ID)
			if err != nil || contact == nil {
				return nil, err
			}
			return contact, nil
		case domain.CustomerTypeAccount:
			account, err := f.accounts.Get(ctx, cmd.ID)
			if err != nil || account == nil {
				return nil, err
			}
			return account, nil
		}
		return nil, nil
	}

	var (
		customer domain.Customer
		err      error
	)
	switch {
	case cmd.Type == domain.CustomerTypeContact && cmd.Contact != nil:
		customer, err = f.newContact(ctx, *cmd.Contact)
	case cmd.Type == domain.CustomerTypeAccount && cmd.Account != nil:
		customer, err = f.newAccount(ctx, *cmd.Account)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	f.logger.Debug("customer drafted",
		zap.String("customer_id", customer.CustomerID()),
		zap.String("customer_type", string(customer.CustomerType())))
	f.publishEvent(ctx, events.Event{
		Type: events.EventCustomerDrafted,
		Payload: events.CustomerDraftedPayload{
			CustomerID:          customer.CustomerID(),
			CustomerType:        customer.CustomerType(),
			WithoutPassportData: withoutPassportData(customer),
		},
	})
	return customer, nil
}

func (f *ConnectionFetcher) newContact(ctx context.Context, cmd CommandContact) (*domain.Contact, error) {
	series := emptyToNull(cmd.PassportSeries)
	number := strings.TrimSpace(cmd.PassportNumber)

	if !cmd.IsWithoutPassportData {
		existing, err := f.contacts.FindByPassportNumberAndSeries(ctx, number, series)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.NewDuplicateKey("Contact by passport number, series found.")
		}
	}

	passport := domain.Passport{}
	if !cmd.IsWithoutPassportData {
		passport = domain.Passport{
			Number:      number,
			Series:      series,
			IssuedBy:    strings.TrimSpace(cmd.PassportIssuedBy),
			DateOfIssue: cmd.PassportDateOfIssue,
			Type:        cmd.PassportType,
		}
	}

	return &domain.Contact{
		ID:                  newCustomerID(),
		Name:                titleCase(cmd.Name),
		DateOfBirth:         cmd.DateOfBirth,
		MainPhone:           domain.NewPhone(cmd.MainPhone),
		Passport:            passport,
		Phones:              domain.NewAdditionalPhones(cmd.Phones),
		WithoutPassportData: cmd.IsWithoutPassportData,
		CreatedAt:           f.now(),
	}, nil
}

func (f *ConnectionFetcher) newAccount(ctx context.Context, cmd CommandAccount) (*domain.Account, error) {
	inn := emptyToNull(cmd.INN)
	kpp := emptyToNull(cmd.KPP)

	if !cmd.IsWithoutPassportData {
		existing, err := f.accounts.FindByINNKPP(ctx, inn, kpp)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.NewDuplicateKey("Account by inn, kpp found.")
		}
	}

	account := &domain.Account{
		ID:                  newCustomerID(),
		Name:                titleCase(cmd.Name),
		MainPhone:           domain.NewPhone(cmd.MainPhone),
		Description:         cmd.Description,
		Phones:              domain.NewAdditionalPhones(cmd.Phones),
		WithoutPassportData: cmd.IsWithoutPassportData,
		CreatedAt:           f.now(),
	}
	if !cmd.IsWithoutPassportData {
		account.INN = inn
		account.KPP = kpp
	}
	return account, nil
}

func withoutPassportData(customer domain.Customer) bool {
	switch c := customer.(type) {
	case *domain.Contact:
		return c.WithoutPassportData
	case *domain.Account:
		return c.WithoutPassportData
	}
	return false
}
