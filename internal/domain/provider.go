package domain

// Provider is the network operator serving a house.
type Provider struct {
	ID      string
	Name    string
	Blocked bool
}

func (p *Provider) IsBlocked() bool     { return p.Blocked }
func (p *Provider) DisplayName() string { return p.Name }
