package model

// Role tags the kind of dashboard a viewer sees.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
)

// ParseRole maps a wire value to a Role. Unknown values are rejected so the
// caller can fall back to the least-privileged default explicitly.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent:
		return Role(s), true
	}
	return "", false
}

// Viewer is the session context a request acts under. Permissions hang off
// the role tag instead of scattered booleans.
type Viewer struct {
	Role Role `json:"role"`
}

// CanManageTimetable reports whether the viewer may create, edit or delete
// periods.
func (v Viewer) CanManageTimetable() bool {
	return v.Role == RoleAdmin || v.Role == RoleTeacher
}

// CanViewReportCards reports whether the viewer may see report cards.
// Every role can; students and parents see their own on the dashboard.
func (v Viewer) CanViewReportCards() bool {
	return v.Role != ""
}

// CanViewClassSummary reports whether the viewer may see the per-exam
// overview of a whole class.
func (v Viewer) CanViewClassSummary() bool {
	return v.Role == RoleAdmin || v.Role == RoleTeacher
}
