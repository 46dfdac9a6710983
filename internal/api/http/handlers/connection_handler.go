package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-connection/internal/api/dto"
	"github.com/spec-kit/ticket-connection/internal/auth"
	"github.com/spec-kit/ticket-connection/internal/domain"
	"github.com/spec-kit/ticket-connection/internal/service"
	apperrors "github.com/spec-kit/ticket-connection/pkg/util/errorutil"
	"github.com/spec-kit/ticket-connection/pkg/validation"
)

// ConnectionResolver is the part of the fetcher the handler depends on.
type ConnectionResolver interface {
	Assemble(ctx context.Context, cmd service.ConnectionCommand, requester *domain.User) (*service.ConnectionBundle, error)
	GetITService(ctx context.Context, id string) (*domain.ITService, error)
	FindITServiceServiceTypes(ctx context.Context, ids []string) ([]domain.ITServiceServiceType, error)
}

// ConnectionHandler serves connection ticket preparation endpoints.
type ConnectionHandler struct {
	resolver  ConnectionResolver
	validator *validation.Validator
}

// NewConnectionHandler constructs handler.
func NewConnectionHandler(resolver ConnectionResolver, v *validation.Validator) *ConnectionHandler {
	v.RegisterStructValidation(validateCustomerRequest, dto.CustomerRequest{})
	return &ConnectionHandler{resolver: resolver, validator: v}
}

// Prepare POST /connections/prepare.
func (h *ConnectionHandler) Prepare(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.PrepareConnectionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewDataNotValid("invalid payload", nil)
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	cmd, err := connectionCommand(req)
	if err != nil {
		return err
	}
	bundle, err := h.resolver.Assemble(c.UserContext(), cmd, principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bundleResponse(bundle)})
}

// ServiceTypes GET /itservices/:id/service-types?ids=a,b.
func (h *ConnectionHandler) ServiceTypes(c *fiber.Ctx) error {
	itService, err := h.resolver.GetITService(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	types, err := h.resolver.FindITServiceServiceTypes(c.UserContext(), splitIDs(c.Query("ids")))
	if err != nil {
		return err
	}
	items := make([]dto.ServiceTypeResponse, 0, len(types))
	for _, st := range types {
		if st.ITServiceID != itService.ID {
			continue
		}
		items = append(items, dto.ServiceTypeResponse{ID: st.ID, ITServiceID: st.ITServiceID, Name: st.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}

// validateCustomerRequest requires the payload matching Type when no ID is
// given.
func validateCustomerRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.CustomerRequest)
	if req.ID != "" {
		if req.Type == "" {
			sl.ReportError(req.Type, "type", "Type", "required_with_id", "")
		}
		return
	}
	switch domain.CustomerType(req.Type) {
	case domain.CustomerTypeContact:
		if req.Contact == nil {
			sl.ReportError(req.Contact, "contact", "Contact", "required_for_type", "")
		}
	case domain.CustomerTypeAccount:
		if req.Account == nil {
			sl.ReportError(req.Account, "account", "Account", "required_for_type", "")
		}
	}
}

func connectionCommand(req dto.PrepareConnectionRequest) (service.ConnectionCommand, error) {
	customer, err := commandCustomer(req.Customer)
	if err != nil {
		return service.ConnectionCommand{}, err
	}
	return service.ConnectionCommand{
		HouseID:         strings.TrimSpace(req.HouseID),
		ChannelID:       strings.TrimSpace(req.ChannelID),
		AgentID:         strings.TrimSpace(req.AgentID),
		IsOpportunity:   req.IsOpportunity,
		Customer:        customer,
		ITServiceID:     strings.TrimSpace(req.ITServiceID),
		OperationTypeID: strings.TrimSpace(req.OperationTypeID),
		ProviderID:      strings.TrimSpace(req.ProviderID),
		ReasonID:        strings.TrimSpace(req.ReasonID),
		ServiceTypeIDs:  req.ServiceTypeIDs,
	}, nil
}

func commandCustomer(req dto.CustomerRequest) (service.CommandCustomer, error) {
	cmd := service.CommandCustomer{
		ID:   strings.TrimSpace(req.ID),
		Type: domain.CustomerType(req.Type),
	}
	if req.Contact != nil {
		dateOfBirth, err := parseDate("customer.contact.date_of_birth", req.Contact.DateOfBirth)
		if err != nil {
			return cmd, err
		}
		dateOfIssue, err := parseDate("customer.contact.passport_date_of_issue", req.Contact.PassportDateOfIssue)
		if err != nil {
			return cmd, err
		}
		cmd.Contact = &service.CommandContact{
			Name:                  req.Contact.Name,
			DateOfBirth:           dateOfBirth,
			MainPhone:             req.Contact.MainPhone,
			Phones:                req.Contact.Phones,
			PassportNumber:        req.Contact.PassportNumber,
			PassportSeries:        req.Contact.PassportSeries,
			PassportIssuedBy:      req.Contact.PassportIssuedBy,
			PassportDateOfIssue:   dateOfIssue,
			PassportType:          domain.PassportType(req.Contact.PassportType),
			IsWithoutPassportData: req.Contact.IsWithoutPassportData,
		}
	}
	if req.Account != nil {
		cmd.Account = &service.CommandAccount{
			Name:                  req.Account.Name,
			MainPhone:             req.Account.MainPhone,
			Phones:                req.Account.Phones,
			INN:                   req.Account.INN,
			KPP:                   req.Account.KPP,
			Description:           req.Account.Description,
			IsWithoutPassportData: req.Account.IsWithoutPassportData,
		}
	}
	return cmd, nil
}

func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return nil, apperrors.NewDataNotValid("invalid date", map[string]any{field: "datetime"})
	}
	return &t, nil
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

func bundleResponse(bundle *service.ConnectionBundle) dto.ConnectionBundleResponse {
	resp := dto.ConnectionBundleResponse{
		House:        dto.EntityRef{ID: bundle.House.ID, Name: bundle.House.Address},
		ITService:    dto.EntityRef{ID: bundle.ITService.ID, Name: bundle.ITService.Name},
		WorkType:     dto.EntityRef{ID: bundle.WorkType.ID, Name: bundle.WorkType.Name},
		ServiceTypes: make([]dto.EntityRef, 0, len(bundle.ServiceTypes)),
	}
	if bundle.Channel != nil {
		resp.Channel = &dto.EntityRef{ID: bundle.Channel.ID, Name: bundle.Channel.Name}
	}
	if bundle.Agent != nil {
		resp.Agent = &dto.EntityRef{ID: bundle.Agent.ID, Name: bundle.Agent.Name}
	}
	if bundle.OperationType != nil {
		resp.OperationType = &dto.EntityRef{ID: bundle.OperationType.ID, Name: bundle.OperationType.Name}
	}
	if bundle.Provider != nil {
		resp.Provider = &dto.EntityRef{ID: bundle.Provider.ID, Name: bundle.Provider.Name}
	}
	if bundle.Reason != nil {
		resp.Reason = &dto.EntityRef{ID: bundle.Reason.ID, Name: bundle.Reason.Name}
	}
	for _, st := range bundle.ServiceTypes {
		resp.ServiceTypes = append(resp.ServiceTypes, dto.EntityRef{ID: st.ID, Name: st.Name})
	}
	if bundle.Customer != nil {
		resp.Customer = customerResponse(bundle.Customer, bundle.CustomerIsNew)
	}
	return resp
}

func customerResponse(customer domain.Customer, isNew bool) *dto.CustomerResponse {
	switch c := customer.(type) {
	case *domain.Contact:
		resp := &dto.CustomerResponse{
			ID:                  c.ID,
			Type:                domain.CustomerTypeContact,
			Name:                c.Name,
			MainPhone:           c.MainPhone.String(),
			Phones:              c.Phones.Strings(),
			IsNew:               isNew,
			WithoutPassportData: c.WithoutPassportData,
			DateOfBirth:         c.DateOfBirth,
		}
		if !c.Passport.IsEmpty() {
			resp.Passport = &dto.PassportResponse{
				Number:      c.Passport.Number,
				Series:      c.Passport.Series,
				IssuedBy:    c.Passport.IssuedBy,
				DateOfIssue: c.Passport.DateOfIssue,
				Type:        string(c.Passport.Type),
			}
		}
		return resp
	case *domain.Account:
		return &dto.CustomerResponse{
			ID:                  c.ID,
			Type:                domain.CustomerTypeAccount,
			Name:                c.Name,
			MainPhone:           c.MainPhone.String(),
			Phones:              c.Phones.Strings(),
			IsNew:               isNew,
			WithoutPassportData: c.WithoutPassportData,
			INN:                 c.INN,
			KPP:                 c.KPP,
			Description:         c.Description,
		}
	}
	return nil
}
