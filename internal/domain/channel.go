package domain

// Channel is the intake channel a ticket arrived through (phone, web, office).
type Channel struct {
	ID      string
	Name    string
	Blocked bool
}

func (c *Channel) IsBlocked() bool     { return c.Blocked }
func (c *Channel) DisplayName() string { return c.Name }
