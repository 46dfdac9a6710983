package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"github.com/spec-kit/ticket-connection/internal/domain"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// PrepareConnectionRequest payload.
type PrepareConnectionRequest struct {
	HouseID         string          `json:"house_id" validate:"required"`
	ChannelID       string          `json:"channel_id"`
	AgentID         string          `json:"agent_id"`
	IsOpportunity   bool            `json:"is_opportunity"`
	Customer        CustomerRequest `json:"customer"`
	ITServiceID     string          `json:"itservice_id" validate:"required"`
	OperationTypeID string          `json:"operation_type_id"`
	ProviderID      string          `json:"provider_id"`
	ReasonID        string          `json:"reason_id"`
	ServiceTypeIDs  []string        `json:"service_type_ids" validate:"omitempty,dive,required"`
}

// CustomerRequest references an existing customer or describes a new one.
type CustomerRequest struct {
	ID      string          `json:"id"`
	Type    string          `json:"type" validate:"omitempty,oneof=contact account"`
	Contact *ContactRequest `json:"contact" validate:"omitempty"`
	Account *AccountRequest `json:"account" validate:"omitempty"`
}

// ContactRequest describes a new private person.
type ContactRequest struct {
	Name                  string      `json:"name" validate:"required,max=255"`
	DateOfBirth           string      `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	MainPhone             string      `json:"main_phone" validate:"required,phone"`
	Phones                []string    `json:"phones" validate:"omitempty,dive,phone"`
	PassportNumber        string      `json:"passport_number" validate:"required_if=IsWithoutPassportData false"`
	PassportSeries        null.String `json:"passport_series"`
	PassportIssuedBy      string      `json:"passport_issued_by"`
	PassportDateOfIssue   string      `json:"passport_date_of_issue" validate:"omitempty,datetime=2006-01-02"`
	PassportType          string      `json:"passport_type" validate:"omitempty,oneof=internal foreign other"`
	IsWithoutPassportData bool        `json:"is_without_passport_data"`
}

// AccountRequest describes a new company.
type AccountRequest struct {
	Name                  string      `json:"name" validate:"required,max=255"`
	MainPhone             string      `json:"main_phone" validate:"required,phone"`
	Phones                []string    `json:"phones" validate:"omitempty,dive,phone"`
	INN                   null.String `json:"inn" validate:"omitempty,inn"`
	KPP                   null.String `json:"kpp" validate:"omitempty,kpp"`
	Description           string      `json:"description"`
	IsWithoutPassportData bool        `json:"is_without_passport_data"`
}

// ConnectionBundleResponse summarizes the resolved entities.
type ConnectionBundleResponse struct {
	House         EntityRef         `json:"house"`
	Channel       *EntityRef        `json:"channel"`
	Agent         *EntityRef        `json:"agent"`
	Customer      *CustomerResponse `json:"customer"`
	ITService     EntityRef         `json:"itservice"`
	OperationType *EntityRef        `json:"operation_type"`
	Provider      *EntityRef        `json:"provider"`
	Reason        *EntityRef        `json:"reason"`
	ServiceTypes  []EntityRef       `json:"service_types"`
	WorkType      EntityRef         `json:"work_type"`
}

// EntityRef is the id/name pair of a resolved entity.
type EntityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomerResponse describes a resolved or drafted customer.
type CustomerResponse struct {
	ID                  string              `json:"id"`
	Type                domain.CustomerType `json:"type"`
	Name                string              `json:"name"`
	MainPhone           string              `json:"main_phone"`
	Phones              []string            `json:"phones"`
	IsNew               bool                `json:"is_new"`
	WithoutPassportData bool                `json:"without_passport_data"`
	Passport            *PassportResponse   `json:"passport,omitempty"`
	DateOfBirth         *time.Time          `json:"date_of_birth,omitempty"`
	INN                 null.String         `json:"inn,omitempty"`
	KPP                 null.String         `json:"kpp,omitempty"`
	Description         string              `json:"description,omitempty"`
}

// PassportResponse passport data.
type PassportResponse struct {
	Number      string      `json:"number"`
	Series      null.String `json:"series"`
	IssuedBy    string      `json:"issued_by"`
	DateOfIssue *time.Time  `json:"date_of_issue"`
	Type        string      `json:"type"`
}

// ServiceTypeResponse is a service type entry.
type ServiceTypeResponse struct {
	ID          string `json:"id"`
	ITServiceID string `json:"itservice_id"`
	Name        string `json:"name"`
}
