package domain

// ITService is a service offered to customers, e.g. internet or IPTV.
type ITService struct {
	ID      string
	Name    string
	Blocked bool
	// ServiceTypeReasonNotRequired allows work-type matching without a reason.
	ServiceTypeReasonNotRequired bool
	// WorkTypes keeps the declaration order; matching takes the first hit.
	WorkTypes []ITServiceWorkType
}

func (s *ITService) IsBlocked() bool     { return s.Blocked }
func (s *ITService) DisplayName() string { return s.Name }

// ITServiceWorkType ties a work type to the service-type combination and
// reasons it applies to.
type ITServiceWorkType struct {
	ID           string
	WorkType     WorkType
	ServiceTypes []ITServiceServiceType
	Reasons      []Reason
}

// ServiceTypeIDs returns the ids of the association's service types.
func (w ITServiceWorkType) ServiceTypeIDs() []string {
	ids := make([]string, 0, len(w.ServiceTypes))
	for _, st := range w.ServiceTypes {
		ids = append(ids, st.ID)
	}
	return ids
}

// HasReason reports whether reasonID is one of the permitted reasons.
func (w ITServiceWorkType) HasReason(reasonID string) bool {
	for _, r := range w.Reasons {
		if r.ID == reasonID {
			return true
		}
	}
	return false
}

// ITServiceServiceType is a kind of service within an IT service
// (e.g. "new line", "tariff change").
type ITServiceServiceType struct {
	ID          string
	ITServiceID string
	Name        string
}
