package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spec-kit/ticket-connection/internal/domain"
	"github.com/spec-kit/ticket-connection/internal/events"
	"github.com/spec-kit/ticket-connection/internal/repository"
	apperrors "github.com/spec-kit/ticket-connection/pkg/util/errorutil"
)

const (
	errWorkTypeNotFound         = "Не найден вид работы."
	errWorkTypeNotFoundForCombo = "Не найден вид работы соответствующий указанным тематике и виду услуги."
)

// ConnectionFetcher resolves the identifiers of a connection ticket request
// into validated domain entities.
type ConnectionFetcher struct {
	houses         repository.HouseRepository
	users          repository.UserRepository
	channels       repository.ChannelRepository
	contacts       repository.ContactRepository
	accounts       repository.AccountRepository
	itServices     repository.ITServiceRepository
	serviceTypes   repository.ITServiceServiceTypeRepository
	operationTypes repository.OperationTypeRepository
	workTypes      repository.WorkTypeRepository
	providers      repository.ProviderRepository
	reasons        repository.ReasonRepository
	dispatcher     events.Dispatcher
	logger         *zap.Logger
	now            func() time.Time
}

// ConnectionDependencies bundles repositories for the fetcher.
type ConnectionDependencies struct {
	HouseRepo         repository.HouseRepository
	UserRepo          repository.UserRepository
	ChannelRepo       repository.ChannelRepository
	ContactRepo       repository.ContactRepository
	AccountRepo       repository.AccountRepository
	ITServiceRepo     repository.ITServiceRepository
	ServiceTypeRepo   repository.ITServiceServiceTypeRepository
	OperationTypeRepo repository.OperationTypeRepository
	WorkTypeRepo      repository.WorkTypeRepository
	ProviderRepo      repository.ProviderRepository
	ReasonRepo        repository.ReasonRepository
	Dispatcher        events.Dispatcher
	Logger            *zap.Logger
}

// NewConnectionFetcher constructs the fetcher.
func NewConnectionFetcher(deps ConnectionDependencies) *ConnectionFetcher {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConnectionFetcher{
		houses:         deps.HouseRepo,
		users:          deps.UserRepo,
		channels:       deps.ChannelRepo,
		contacts:       deps.ContactRepo,
		accounts:       deps.AccountRepo,
		itServices:     deps.ITServiceRepo,
		serviceTypes:   deps.ServiceTypeRepo,
		operationTypes: deps.OperationTypeRepo,
		workTypes:      deps.WorkTypeRepo,
		providers:      deps.ProviderRepo,
		reasons:        deps.ReasonRepo,
		dispatcher:     deps.Dispatcher,
		logger:         logger,
		now:            time.Now,
	}
}

// ensureActive fails with StatusNotValid when entity is blocked.
func ensureActive[T domain.Blockable](entity T, kind string) error {
	if entity.IsBlocked() {
		return apperrors.NewStatusNotValid(fmt.Sprintf("%s %s status is not active.", kind, entity.DisplayName()))
	}
	return nil
}

// GetHouse returns the house or NotFound.
func (f *ConnectionFetcher) GetHouse(ctx context.Context, id string) (*domain.House, error) {
	return f.houses.Get(ctx, id)
}

// FindChannel returns nil for an empty id or an unknown channel.
func (f *ConnectionFetcher) FindChannel(ctx context.Context, id string) (*domain.Channel, error) {
	if id == "" {
		return nil, nil
	}
	channel, err := f.channels.Find(ctx, id)
	if err != nil || channel == nil {
		return nil, err
	}
	if err := ensureActive(channel, "Channel"); err != nil {
		return nil, err
	}
	return channel, nil
}

// FindAgent returns nil for an empty id or an unknown agent. Opportunity
// tickets may reference blocked agents.
func (f *ConnectionFetcher) FindAgent(ctx context.Context, id string, isOpportunity bool) (*domain.User, error) {
	if id == "" {
		return nil, nil
	}
	agent, err := f.users.FindAgent(ctx, id)
	if err != nil || agent == nil {
		return nil, err
	}
	if !isOpportunity {
		if err := ensureActive(agent, "Agent"); err != nil {
			return nil, err
		}
	}
	return agent, nil
}

// GetITService returns the IT service with its work-type table.
func (f *ConnectionFetcher) GetITService(ctx context.Context, id string) (*domain.ITService, error) {
	service, err := f.itServices.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ensureActive(service, "ITService"); err != nil {
		return nil, err
	}
	return service, nil
}

// FindOperationType returns nil for an empty id. A non-empty unknown id is
// NotFound.
func (f *ConnectionFetcher) FindOperationType(ctx context.Context, id string) (*domain.OperationType, error) {
	if id == "" {
		return nil, nil
	}
	operationType, err := f.operationTypes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ensureActive(operationType, "Operation type"); err != nil {
		return nil, err
	}
	return operationType, nil
}

// FindProvider returns nil for an empty id or an unknown provider.
// house is accepted for provider scoping and is not consulted yet.
func (f *ConnectionFetcher) FindProvider(ctx context.Context, id string, house *domain.House) (*domain.Provider, error) {
	if id == "" {
		return nil, nil
	}
	provider, err := f.providers.Find(ctx, id)
	if err != nil || provider == nil {
		return nil, err
	}
	if err := ensureActive(provider, "Provider"); err != nil {
		return nil, err
	}
	return provider, nil
}

// FindReason returns nil for an empty id or an unknown reason.
func (f *ConnectionFetcher) FindReason(ctx context.Context, id string) (*domain.Reason, error) {
	if id == "" {
		return nil, nil
	}
	reason, err := f.reasons.Find(ctx, id)
	if err != nil || reason == nil {
		return nil, err
	}
	if err := ensureActive(reason, "Reason"); err != nil {
		return nil, err
	}
	return reason, nil
}

// FindITServiceServiceTypes fetches service types by id.
func (f *ConnectionFetcher) FindITServiceServiceTypes(ctx context.Context, ids []string) ([]domain.ITServiceServiceType, error) {
	if len(ids) == 0 {
		return []domain.ITServiceServiceType{}, nil
	}
	return f.serviceTypes.GetByIDs(ctx, ids)
}

// GetWorkType picks the work type for the declared service types and reason.
// Partner dispatchers always get the reserved work type. Otherwise the first
// association whose service-type set equals the declared set and whose
// reasons admit the given reason wins. Without a reason only IT services
// that do not require one can match.
func (f *ConnectionFetcher) GetWorkType(
	ctx context.Context,
	itService *domain.ITService,
	reason *domain.Reason,
	serviceTypes []domain.ITServiceServiceType,
	house *domain.House,
	user *domain.User,
) (*domain.WorkType, error) {
	if user != nil && user.PartnerDispatcher {
		f.logger.Debug("partner dispatcher work type", zap.String("user_id", user.ID))
		return f.workTypes.Get(ctx, domain.WorkTypeConnectionPartnerSubscriberID)
	}

	declared := make([]string, 0, len(serviceTypes))
	for _, st := range serviceTypes {
		declared = append(declared, st.ID)
	}

	for _, candidate := range itService.WorkTypes {
		if !sameIDSet(candidate.ServiceTypeIDs(), declared) {
			continue
		}
		if reason != nil {
			if candidate.HasReason(reason.ID) {
				workType := candidate.WorkType
				return &workType, nil
			}
			continue
		}
		if itService.ServiceTypeReasonNotRequired {
			workType := candidate.WorkType
			return &workType, nil
		}
	}

	details := map[string]any{"itservice_id": itService.ID, "service_type_ids": declared}
	if !itService.ServiceTypeReasonNotRequired {
		return nil, apperrors.NewNotFound(errWorkTypeNotFound, details)
	}
	return nil, apperrors.NewNotFound(errWorkTypeNotFoundForCombo, details)
}

func sameIDSet(a, b []string) bool {
	left := make(map[string]struct{}, len(a))
	for _, id := range a {
		left[id] = struct{}{}
	}
	right := make(map[string]struct{}, len(b))
	for _, id := range b {
		if _, ok := left[id]; !ok {
			return false
		}
		right[id] = struct{}{}
	}
	return len(left) == len(right)
}

// titleCase upper-cases the first letter of every word and lower-cases the
// rest, so "иВАН пЕТРОВ" becomes "Иван Петров".
func titleCase(name string) string {
	return cases.Title(language.Russian).String(strings.TrimSpace(name))
}

func newCustomerID() string {
	return uuid.NewString()
}

func emptyToNull(value null.String) null.String {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return null.String{}
	}
	return null.StringFrom(strings.TrimSpace(value.String))
}

func (f *ConnectionFetcher) publishEvent(ctx context.Context, event events.Event) {
	if f.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = f.now()
	}
	if err := f.dispatcher.Publish(ctx, event); err != nil {
		f.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
