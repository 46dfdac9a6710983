package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-connection/internal/api/http"
	"github.com/spec-kit/ticket-connection/internal/api/http/handlers"
	"github.com/spec-kit/ticket-connection/internal/auth"
	"github.com/spec-kit/ticket-connection/internal/domain"
	"github.com/spec-kit/ticket-connection/internal/service"
	apperrors "github.com/spec-kit/ticket-connection/pkg/util/errorutil"
	"github.com/spec-kit/ticket-connection/pkg/validation"
)

type stubResolver struct {
	lastCmd       service.ConnectionCommand
	lastRequester *domain.User
	assembleErr   error
	serviceTypes  []domain.ITServiceServiceType
	lastIDs       []string
}

func (s *stubResolver) Assemble(_ context.Context, cmd service.ConnectionCommand, requester *domain.User) (*service.ConnectionBundle, error) {
	s.lastCmd = cmd
	s.lastRequester = requester
	if s.assembleErr != nil {
		return nil, s.assembleErr
	}
	return &service.ConnectionBundle{
		House:     &domain.House{ID: cmd.HouseID, Address: "Lenina 1"},
		ITService: &domain.ITService{ID: cmd.ITServiceID, Name: "Internet"},
		WorkType:  &domain.WorkType{ID: "wt-1", Name: "Connection"},
		Customer: &domain.Contact{
			ID:        "c-new",
			Name:      "Ivan Petrov",
			MainPhone: domain.NewPhone("+7 912 345"),
			Phones:    domain.NewAdditionalPhones(nil),
		},
		CustomerIsNew: true,
	}, nil
}

func (s *stubResolver) GetITService(_ context.Context, id string) (*domain.ITService, error) {
	if id != "its-1" {
		return nil, apperrors.NewNotFound("ITService "+id+" not found", nil)
	}
	return &domain.ITService{ID: id, Name: "Internet"}, nil
}

func (s *stubResolver) FindITServiceServiceTypes(_ context.Context, ids []string) ([]domain.ITServiceServiceType, error) {
	s.lastIDs = ids
	return s.serviceTypes, nil
}

type stubUsers struct {
	users map[string]*domain.User
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.NewNotFound("User "+id+" not found", nil)
}

func (s *stubUsers) FindAgent(ctx context.Context, id string) (*domain.User, error) {
	return s.GetByID(ctx, id)
}

type staticChecker struct{ err error }

func (s staticChecker) Ping(context.Context) error { return s.err }

type harness struct {
	app      *fiber.App
	resolver *stubResolver
	token    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	tokens := auth.NewTokenManager("secret", "ticket-core", 5)
	users := &stubUsers{users: map[string]*domain.User{
		"agent-1":   {ID: "agent-1", Name: "Agent"},
		"blocked-1": {ID: "blocked-1", Name: "Gone", Blocked: true},
	}}
	resolver := &stubResolver{}

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), nil, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", map[string]handlers.Checker{"postgres": staticChecker{}, "redis": staticChecker{err: errors.New("connection refused")}}),
		Connections:    handlers.NewConnectionHandler(resolver, validation.New()),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, users),
	})

	token, _, err := tokens.GenerateToken("agent-1")
	require.NoError(t, err)
	return &harness{app: app, resolver: resolver, token: token}
}

func (h *harness) do(t *testing.T, method, target, body, token string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

func errorCode(payload map[string]any) any {
	errBody, _ := payload["error"].(map[string]any)
	return errBody["code"]
}

func TestPrepare_RequiresToken(t *testing.T) {
	h := newHarness(t)

	status, payload := h.do(t, http.MethodPost, "/connections/prepare", `{}`, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeUnauthorized, errorCode(payload))
}

func TestPrepare_RejectsBlockedRequester(t *testing.T) {
	h := newHarness(t)
	token, _, err := auth.NewTokenManager("secret", "ticket-core", 5).GenerateToken("blocked-1")
	require.NoError(t, err)

	status, payload := h.do(t, http.MethodPost, "/connections/prepare", `{}`, token)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, apperrors.CodeForbidden, errorCode(payload))
}

func TestPrepare_ValidationErrors(t *testing.T) {
	h := newHarness(t)

	body := `{"customer":{"type":"contact","contact":{"name":"","main_phone":"x"}}}`
	status, payload := h.do(t, http.MethodPost, "/connections/prepare", body, h.token)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apperrors.CodeDataNotValid, errorCode(payload))
	details := payload["error"].(map[string]any)["details"].(map[string]any)
	assert.Equal(t, "required", details["house_id"])
	assert.Equal(t, "required", details["itservice_id"])
	assert.Equal(t, "required", details["customer.contact.name"])
	assert.Equal(t, "phone", details["customer.contact.main_phone"])
	assert.Equal(t, "required_if", details["customer.contact.passport_number"])
}

func TestPrepare_RequiresPayloadForNewCustomer(t *testing.T) {
	h := newHarness(t)

	body := `{"house_id":"h-1","itservice_id":"its-1","customer":{"type":"account"}}`
	status, payload := h.do(t, http.MethodPost, "/connections/prepare", body, h.token)

	assert.Equal(t, http.StatusBadRequest, status)
	details := payload["error"].(map[string]any)["details"].(map[string]any)
	assert.Equal(t, "required_for_type", details["customer.account"])
}

func TestPrepare_AssemblesBundle(t *testing.T) {
	h := newHarness(t)

	body := `{
		"house_id":" h-1 ",
		"itservice_id":"its-1",
		"reason_id":"r-1",
		"service_type_ids":["st-a","st-b"],
		"customer":{"type":"contact","contact":{
			"name":"ivan petrov",
			"main_phone":"+7 912 345",
			"date_of_birth":"1990-04-12",
			"passport_number":"123456",
			"passport_series":"4510",
			"passport_date_of_issue":"2010-05-01",
			"passport_type":"internal"
		}}
	}`
	status, payload := h.do(t, http.MethodPost, "/connections/prepare", body, h.token)
	require.Equal(t, http.StatusOK, status, payload)

	cmd := h.resolver.lastCmd
	assert.Equal(t, "h-1", cmd.HouseID)
	assert.Equal(t, []string{"st-a", "st-b"}, cmd.ServiceTypeIDs)
	assert.Equal(t, domain.CustomerTypeContact, cmd.Customer.Type)
	require.NotNil(t, cmd.Customer.Contact)
	assert.Equal(t, "4510", cmd.Customer.Contact.PassportSeries.String)
	require.NotNil(t, cmd.Customer.Contact.DateOfBirth)
	assert.Equal(t, 1990, cmd.Customer.Contact.DateOfBirth.Year())
	assert.Equal(t, domain.PassportTypeInternal, cmd.Customer.Contact.PassportType)
	assert.Equal(t, "agent-1", h.resolver.lastRequester.ID)

	data := payload["data"].(map[string]any)
	assert.Equal(t, "wt-1", data["work_type"].(map[string]any)["id"])
	customer := data["customer"].(map[string]any)
	assert.Equal(t, true, customer["is_new"])
	assert.Equal(t, "+7912345", customer["main_phone"])
}

func TestPrepare_RendersDomainErrors(t *testing.T) {
	h := newHarness(t)
	h.resolver.assembleErr = apperrors.NewStatusNotValid("Channel Web status is not active.")

	body := `{"house_id":"h-1","itservice_id":"its-1"}`
	status, payload := h.do(t, http.MethodPost, "/connections/prepare", body, h.token)

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, apperrors.CodeStatusNotValid, errorCode(payload))
	assert.Equal(t, "Channel Web status is not active.", payload["error"].(map[string]any)["message"])
}

func TestServiceTypes_FiltersByITService(t *testing.T) {
	h := newHarness(t)
	h.resolver.serviceTypes = []domain.ITServiceServiceType{
		{ID: "st-a", ITServiceID: "its-1", Name: "Fiber"},
		{ID: "st-x", ITServiceID: "its-2", Name: "TV"},
	}

	status, payload := h.do(t, http.MethodGet, "/itservices/its-1/service-types?ids=st-a,%20st-x,,", "", h.token)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, []string{"st-a", "st-x"}, h.resolver.lastIDs)
	items := payload["data"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "st-a", items[0].(map[string]any)["id"])
}

func TestServiceTypes_UnknownITService(t *testing.T) {
	h := newHarness(t)

	status, payload := h.do(t, http.MethodGet, "/itservices/missing/service-types", "", h.token)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apperrors.CodeNotFound, errorCode(payload))
}

func TestHealth_Live(t *testing.T) {
	h := newHarness(t)

	status, payload := h.do(t, http.MethodGet, "/health/live", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alive", payload["status"])
}

func TestHealth_ReadyReportsFailingDependency(t *testing.T) {
	h := newHarness(t)

	status, payload := h.do(t, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	details := payload["error"].(map[string]any)["details"].(map[string]any)
	assert.Equal(t, "ok", details["postgres"])
	assert.Equal(t, "connection refused", details["redis"])
}

func TestUnknownRoute(t *testing.T) {
	h := newHarness(t)

	status, payload := h.do(t, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apperrors.CodeNotFound, errorCode(payload))
}
