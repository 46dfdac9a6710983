package domain

// House is the building a connection ticket is raised for.
type House struct {
	ID      string
	Address string
}
