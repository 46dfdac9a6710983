package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-connection/internal/domain"
	apperrors "github.com/spec-kit/ticket-connection/pkg/util/errorutil"
)

var (
	stA = domain.ITServiceServiceType{ID: "A", Name: "New line"}
	stB = domain.ITServiceServiceType{ID: "B", Name: "Router"}
	stC = domain.ITServiceServiceType{ID: "C", Name: "TV box"}
	r1  = domain.Reason{ID: "R1", Name: "Connect"}
	r2  = domain.Reason{ID: "R2", Name: "Disconnect"}
)

func internetService(reasonNotRequired bool) *domain.ITService {
	return &domain.ITService{
		ID:                           "svc",
		Name:                         "Internet",
		ServiceTypeReasonNotRequired: reasonNotRequired,
		WorkTypes: []domain.ITServiceWorkType{
			{
				ID:           "iwt1",
				WorkType:     domain.WorkType{ID: "wt-connect", Name: "Connection"},
				ServiceTypes: []domain.ITServiceServiceType{stA, stB},
				Reasons:      []domain.Reason{r1},
			},
			{
				ID:           "iwt2",
				WorkType:     domain.WorkType{ID: "wt-tv", Name: "TV"},
				ServiceTypes: []domain.ITServiceServiceType{stC},
				Reasons:      []domain.Reason{r1, r2},
			},
		},
	}
}

func TestGetWorkType_MatchesServiceTypeSetAndReason(t *testing.T) {
	fetcher, _ := newTestFetcher(t)

	workType, err := fetcher.GetWorkType(context.Background(), internetService(false), &r1,
		[]domain.ITServiceServiceType{stB, stA}, &domain.House{ID: "h1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "wt-connect", workType.ID)
}

func TestGetWorkType_ReasonNotPermitted(t *testing.T) {
	fetcher, _ := newTestFetcher(t)

	_, err := fetcher.GetWorkType(context.Background(), internetService(false), &r2,
		[]domain.ITServiceServiceType{stA, stB}, &domain.House{ID: "h1"}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "Не найден вид работы.", apperrors.ToDomainError(err).Message)
}

func TestGetWorkType_SubsetDoesNotMatch(t *testing.T) {
	fetcher, _ := newTestFetcher(t)

	_, err := fetcher.GetWorkType(context.Background(), internetService(false), &r1,
		[]domain.ITServiceServiceType{stA}, nil, nil)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = fetcher.GetWorkType(context.Background(), internetService(false), &r1,
		[]domain.ITServiceServiceType{stA, stB, stC}, nil, nil)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetWorkType_DuplicateDeclaredTypesStillMatch(t *testing.T) {
	fetcher, _ := newTestFetcher(t)

	workType, err := fetcher.GetWorkType(context.Background(), internetService(false), &r1,
		[]domain.ITServiceServiceType{stA, stB, stA}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "wt-connect", workType.ID)
}

func TestGetWorkType_NoReason(t *testing.T) {
	fetcher, _ := newTestFetcher(t)
	ctx := context.Background()

	_, err := fetcher.GetWorkType(ctx, internetService(false), nil, []domain.ITServiceServiceType{stC}, nil, nil)
	require.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "Не найден вид работы.", apperrors.ToDomainError(err).Message)

	workType, err := fetcher.GetWorkType(ctx, internetService(true), nil, []domain.ITServiceServiceType{stC}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "wt-tv", workType.ID)
}

func TestGetWorkType_NoMatchWhenReasonNotRequired(t *testing.T) {
	fetcher, _ := newTestFetcher(t)

	_, err := fetcher.GetWorkType(context.Background(), internetService(true), nil,
		[]domain.ITServiceServiceType{stA}, nil, nil)
	require.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "Не найден вид работы соответствующий указанным тематике и виду услуги.",
		apperrors.ToDomainError(err).Message)
}

func TestGetWorkType_FirstMatchWins(t *testing.T) {
	fetcher, _ := newTestFetcher(t)
	service := internetService(false)
	service.WorkTypes = append([]domain.ITServiceWorkType{{
		ID:           "iwt0",
		WorkType:     domain.WorkType{ID: "wt-first"},
		ServiceTypes: []domain.ITServiceServiceType{stA, stB},
		Reasons:      []domain.Reason{r1},
	}}, service.WorkTypes...)

	workType, err := fetcher.GetWorkType(context.Background(), service, &r1,
		[]domain.ITServiceServiceType{stA, stB}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "wt-first", workType.ID)
}

func TestGetWorkType_PartnerDispatcherShortCircuits(t *testing.T) {
	fetcher, store := newTestFetcher(t)
	store.workTypes[domain.WorkTypeConnectionPartnerSubscriberID] = &domain.WorkType{
		ID:   domain.WorkTypeConnectionPartnerSubscriberID,
		Name: "Partner subscriber connection",
	}
	dispatcher := &domain.User{ID: "u1", PartnerDispatcher: true}

	workType, err := fetcher.GetWorkType(context.Background(), internetService(false), &r2,
		nil, nil, dispatcher)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkTypeConnectionPartnerSubscriberID, workType.ID)
}

func TestSameIDSet(t *testing.T) {
	assert.True(t, sameIDSet(nil, nil))
	assert.True(t, sameIDSet([]string{"a", "b"}, []string{"b", "a"}))
	assert.True(t, sameIDSet([]string{"a", "a"}, []string{"a"}))
	assert.False(t, sameIDSet([]string{"a"}, []string{"a", "b"}))
	assert.False(t, sameIDSet([]string{"a", "b"}, []string{"a"}))
	assert.False(t, sameIDSet([]string{"a"}, nil))
}
