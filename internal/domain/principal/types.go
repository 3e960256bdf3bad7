// Package principal identifies the actor behind a request: the routing key
// for status delivery and the authority check for rental overrides. It is a
// lookup key, not an aggregate; account lifecycle lives outside this core.
package principal

type Role string

const (
	RoleRider Role = "rider"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
	RoleAgent Role = "agent"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleRider, RoleStaff, RoleAdmin, RoleAgent:
		return true
	default:
		return false
	}
}

// CanForceEnd reports whether the role may terminate another rider's rental.
func (r Role) CanForceEnd() bool {
	return r == RoleStaff || r == RoleAdmin
}
