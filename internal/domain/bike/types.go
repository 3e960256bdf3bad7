package bike

type Status string

const (
	StatusAvailable   Status = "available"
	StatusRented      Status = "rented"
	StatusMaintenance Status = "maintenance"
	StatusBroken      Status = "broken"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusRented, StatusMaintenance, StatusBroken:
		return true
	default:
		return false
	}
}

// Rentable reports whether a rental may engage the bike.
// MAINTENANCE and BROKEN bikes stay out of circulation until staff clears them.
func (s Status) Rentable() bool {
	return s == StatusAvailable
}
