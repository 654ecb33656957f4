package policy

import "strings"

// Role define los roles soportados (tipo cerrado).
// @Enum admin, staff, customer
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// ParseRole normaliza un rol textual. Rol desconocido => ok=false.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleStaff:
		return RoleStaff, true
	case RoleCustomer:
		return RoleCustomer, true
	default:
		return "", false
	}
}

// Entity identifica el tipo de recurso sobre el que se decide.
type Entity string

const (
	EntityUser     Entity = "user"
	EntityCustomer Entity = "customer"
	EntityDog      Entity = "dog"
	EntityKennel   Entity = "kennel"
	EntityBooking  Entity = "booking"
)

// Operation identifica la operación CRUD.
type Operation string

const (
	OpList   Operation = "list"
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)
