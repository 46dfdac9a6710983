package domain

import (
	"time"

	"github.com/aarondl/null/v8"
)

// CustomerType discriminates the customer variants.
type CustomerType string

const (
	CustomerTypeContact CustomerType = "contact"
	CustomerTypeAccount CustomerType = "account"
)

// Customer is either a *Contact (private person) or an *Account (company).
type Customer interface {
	CustomerID() string
	CustomerType() CustomerType
	customer()
}

// PassportType enumerates identity document kinds.
type PassportType string

const (
	PassportTypeInternal PassportType = "internal"
	PassportTypeForeign  PassportType = "foreign"
	PassportTypeOther    PassportType = "other"
)

// Passport holds identity document data. The zero value is the placeholder
// used for contacts registered without passport data.
type Passport struct {
	Number      string
	Series      null.String
	IssuedBy    string
	DateOfIssue *time.Time
	Type        PassportType
}

// IsEmpty reports whether p is the placeholder passport.
func (p Passport) IsEmpty() bool {
	return p.Number == "" && !p.Series.Valid && p.IssuedBy == "" && p.DateOfIssue == nil && p.Type == ""
}

// Contact is a private person customer.
type Contact struct {
	ID                  string
	Name                string
	DateOfBirth         *time.Time
	MainPhone           Phone
	Passport            Passport
	Phones              AdditionalPhones
	WithoutPassportData bool
	CreatedAt           time.Time
}

func (c *Contact) CustomerID() string         { return c.ID }
func (c *Contact) CustomerType() CustomerType { return CustomerTypeContact }
func (*Contact) customer()                    {}

// Account is a company customer identified by INN and KPP.
type Account struct {
	ID                  string
	Name                string
	MainPhone           Phone
	INN                 null.String
	KPP                 null.String
	Description         string
	Phones              AdditionalPhones
	WithoutPassportData bool
	CreatedAt           time.Time
}

func (a *Account) CustomerID() string         { return a.ID }
func (a *Account) CustomerType() CustomerType { return CustomerTypeAccount }
func (*Account) customer()                    {}
