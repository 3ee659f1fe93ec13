package acl

import (
	"fmt"
	"strings"
)

// Privilege is an access level granted by an entry or required by an
// operation. Higher values include all lower ones.
type Privilege uint8

const (
	// PrivilegeView allows reading attributes and subscribing.
	PrivilegeView Privilege = 1

	// PrivilegeOperate allows writing attributes and invoking commands.
	PrivilegeOperate Privilege = 2

	// PrivilegeManage allows configuration changes.
	PrivilegeManage Privilege = 3

	// PrivilegeAdmin allows everything, including ACL administration.
	PrivilegeAdmin Privilege = 4
)

// Satisfies returns true if this privilege meets the requirement.
func (p Privilege) Satisfies(required Privilege) bool {
	return p >= required
}

// String returns the privilege name.
func (p Privilege) String() string {
	switch p {
	case PrivilegeView:
		return "view"
	case PrivilegeOperate:
		return "operate"
	case PrivilegeManage:
		return "manage"
	case PrivilegeAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// ParsePrivilege parses a privilege name as used in policy files.
func ParsePrivilege(s string) (Privilege, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "view":
		return PrivilegeView, nil
	case "operate":
		return PrivilegeOperate, nil
	case "manage":
		return PrivilegeManage, nil
	case "admin":
		return PrivilegeAdmin, nil
	default:
		return 0, fmt.Errorf("unknown privilege %q", s)
	}
}
