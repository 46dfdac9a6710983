package domain

// Reason is the subject a customer contacted support about.
type Reason struct {
	ID      string
	Name    string
	Blocked bool
}

func (r *Reason) IsBlocked() bool     { return r.Blocked }
func (r *Reason) DisplayName() string { return r.Name }
