package design

// Role identifies what a piece of text means, independent of how it looks.
type Role int

const (
	RoleNone Role = iota // rendered as-is
	RoleSuccess
	RoleFailure
	RolePending
	RoleSkipped
	RoleMuted
	RoleEmphasis
)

// String returns the lowercase role name.
func (r Role) String() string {
	switch r {
	case RoleSuccess:
		return "success"
	case RoleFailure:
		return "failure"
	case RolePending:
		return "pending"
	case RoleSkipped:
		return "skipped"
	case RoleMuted:
		return "muted"
	case RoleEmphasis:
		return "emphasis"
	default:
		return "none"
	}
}
