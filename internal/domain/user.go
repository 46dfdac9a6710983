package domain

// User is an operator account. Agents are users that can own tickets.
type User struct {
	ID      string
	Name    string
	Email   string
	Blocked bool
	// PartnerDispatcher marks dispatchers working on behalf of the partner
	// provider; their connection tickets always get the reserved work type.
	PartnerDispatcher bool
}

func (u *User) IsBlocked() bool     { return u.Blocked }
func (u *User) DisplayName() string { return u.Name }
