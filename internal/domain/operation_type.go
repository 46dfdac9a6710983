package domain

// OperationType classifies the operation requested on a connection.
type OperationType struct {
	ID      string
	Name    string
	Blocked bool
}

func (o *OperationType) IsBlocked() bool     { return o.Blocked }
func (o *OperationType) DisplayName() string { return o.Name }
