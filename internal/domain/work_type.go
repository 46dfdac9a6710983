package domain

// WorkTypeConnectionPartnerSubscriberID is the reserved work type assigned to
// every ticket raised by a partner dispatcher.
const WorkTypeConnectionPartnerSubscriberID = "8b1c6a0e-4f0e-4a55-9f0a-7c1d2e3f4a5b"

// WorkType classifies the work a ticket requires.
type WorkType struct {
	ID      string
	Name    string
	Blocked bool
}
