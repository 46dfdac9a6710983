package service

import (
	"context"
	"fmt"

	"github.com/aarondl/null/v8"

	"github.com/spec-kit/ticket-connection/internal/domain"
	apperrors "github.com/spec-kit/ticket-connection/pkg/util/errorutil"
)

type fakeStore struct {
	houses         map[string]*domain.House
	users          map[string]*domain.User
	agents         map[string]bool
	channels       map[string]*domain.Channel
	contacts       map[string]*domain.Contact
	accounts       map[string]*domain.Account
	itServices     map[string]*domain.ITService
	serviceTypes   map[string]domain.ITServiceServiceType
	operationTypes map[string]*domain.OperationType
	workTypes      map[string]*domain.WorkType
	providers      map[string]*domain.Provider
	reasons        map[string]*domain.Reason

	passportLookups int
	innKPPLookups   int
	serviceTypeCall int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		houses:         map[string]*domain.House{},
		users:          map[string]*domain.User{},
		agents:         map[string]bool{},
		channels:       map[string]*domain.Channel{},
		contacts:       map[string]*domain.Contact{},
		accounts:       map[string]*domain.Account{},
		itServices:     map[string]*domain.ITService{},
		serviceTypes:   map[string]domain.ITServiceServiceType{},
		operationTypes: map[string]*domain.OperationType{},
		workTypes:      map[string]*domain.WorkType{},
		providers:      map[string]*domain.Provider{},
		reasons:        map[string]*domain.Reason{},
	}
}

func notFound(kind, id string) error {
	return apperrors.NewNotFound(fmt.Sprintf("%s %s not found", kind, id), nil)
}

type fakeHouses struct{ s *fakeStore }

func (f fakeHouses) Get(_ context.Context, id string) (*domain.House, error) {
	if h, ok := f.s.houses[id]; ok {
		return h, nil
	}
	return nil, notFound("House", id)
}

type fakeUsers struct{ s *fakeStore }

func (f fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f.s.users[id]; ok {
		return u, nil
	}
	return nil, notFound("User", id)
}

func (f fakeUsers) FindAgent(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f.s.users[id]; ok && f.s.agents[id] {
		return u, nil
	}
	return nil, nil
}

type fakeChannels struct{ s *fakeStore }

func (f fakeChannels) Find(_ context.Context, id string) (*domain.Channel, error) {
	return f.s.channels[id], nil
}

type fakeContacts struct{ s *fakeStore }

func (f fakeContacts) Get(_ context.Context, id string) (*domain.Contact, error) {
	if c, ok := f.s.contacts[id]; ok {
		return c, nil
	}
	return nil, notFound("Contact", id)
}

func (f fakeContacts) FindByPassportNumberAndSeries(_ context.Context, number string, series null.String) (*domain.Contact, error) {
	f.s.passportLookups++
	for _, c := range f.s.contacts {
		if c.Passport.Number == number && c.Passport.Series == series {
			return c, nil
		}
	}
	return nil, nil
}

type fakeAccounts struct{ s *fakeStore }

func (f fakeAccounts) Get(_ context.Context, id string) (*domain.Account, error) {
	if a, ok := f.s.accounts[id]; ok {
		return a, nil
	}
	return nil, notFound("Account", id)
}

func (f fakeAccounts) FindByINNKPP(_ context.Context, inn, kpp null.String) (*domain.Account, error) {
	f.s.innKPPLookups++
	for _, a := range f.s.accounts {
		if a.INN == inn && a.KPP == kpp {
			return a, nil
		}
	}
	return nil, nil
}

type fakeITServices struct{ s *fakeStore }

func (f fakeITServices) Get(_ context.Context, id string) (*domain.ITService, error) {
	if svc, ok := f.s.itServices[id]; ok {
		return svc, nil
	}
	return nil, notFound("ITService", id)
}

type fakeServiceTypes struct{ s *fakeStore }

func (f fakeServiceTypes) GetByIDs(_ context.Context, ids []string) ([]domain.ITServiceServiceType, error) {
	f.s.serviceTypeCall++
	result := []domain.ITServiceServiceType{}
	for _, id := range ids {
		if st, ok := f.s.serviceTypes[id]; ok {
			result = append(result, st)
		}
	}
	return result, nil
}

type fakeOperationTypes struct{ s *fakeStore }

func (f fakeOperationTypes) Get(_ context.Context, id string) (*domain.OperationType, error) {
	if o, ok := f.s.operationTypes[id]; ok {
		return o, nil
	}
	return nil, notFound("Operation type", id)
}

type fakeWorkTypes struct{ s *fakeStore }

func (f fakeWorkTypes) Get(_ context.Context, id string) (*domain.WorkType, error) {
	if w, ok := f.s.workTypes[id]; ok {
		return w, nil
	}
	return nil, notFound("Work type", id)
}

type fakeProviders struct{ s *fakeStore }

func (f fakeProviders) Find(_ context.Context, id string) (*domain.Provider, error) {
	return f.s.providers[id], nil
}

type fakeReasons struct{ s *fakeStore }

func (f fakeReasons) Find(_ context.Context, id string) (*domain.Reason, error) {
	return f.s.reasons[id], nil
}

func (s *fakeStore) dependencies() ConnectionDependencies {
	return ConnectionDependencies{
		HouseRepo:         fakeHouses{s},
		UserRepo:          fakeUsers{s},
		ChannelRepo:       fakeChannels{s},
		ContactRepo:       fakeContacts{s},
		AccountRepo:       fakeAccounts{s},
		ITServiceRepo:     fakeITServices{s},
		ServiceTypeRepo:   fakeServiceTypes{s},
		OperationTypeRepo: fakeOperationTypes{s},
		WorkTypeRepo:      fakeWorkTypes{s},
		ProviderRepo:      fakeProviders{s},
		ReasonRepo:        fakeReasons{s},
	}
}
