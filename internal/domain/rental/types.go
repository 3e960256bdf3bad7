package rental

type Status string

const (
	StatusReserved  Status = "reserved"
	StatusActive    Status = "active"
	StatusEnded     Status = "ended"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusReserved, StatusActive, StatusEnded, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the rental episode is over. Terminal rentals
// never transition again; the bike they referenced is free for the next one.
func (s Status) IsTerminal() bool {
	return s == StatusEnded || s == StatusCancelled
}
