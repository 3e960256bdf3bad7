package sos

type Status string

const (
	StatusOpen       Status = "open"
	StatusDispatched Status = "dispatched"
	StatusResolved   Status = "resolved"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusDispatched, StatusResolved, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusResolved || s == StatusCancelled
}

// Location is the rider-reported position of the incident.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
