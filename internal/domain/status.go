package domain

// Blockable is implemented by every lookup entity that carries a blocked flag.
type Blockable interface {
	IsBlocked() bool
	DisplayName() string
}
