package policy

import "errors"

var (
	// ErrNoProfile: un caller con rol customer sin fila Customer ligada.
	// Para creates es error de validación, no de permisos.
	ErrNoProfile = errors.New("no customer profile")

	// ErrWrongOwner: el target referencia al Customer de otro usuario.
	// En creates se trata como validación (asimetría preservada: en updates
	// la misma condición es ErrForbidden).
	ErrWrongOwner = errors.New("target belongs to another customer")

	ErrForbidden = errors.New("forbidden")
)

// Effect es el resultado de una decisión de acceso.
type Effect int

const (
	Deny Effect = iota
	Allow
	// AllowOwn: permitido pero restringido al Scope del caller
	// (filas alcanzables por la cadena User -> Customer -> Dog -> Booking,
	// o el propio registro Customer/User del caller).
	AllowOwn
)

// Decide es la única tabla de autorización por (rol, entidad, operación).
// No consulta registros: los checks a nivel de fila se hacen con Scope.
func Decide(role Role, entity Entity, op Operation) Effect {
	switch role {
	case RoleAdmin:
		// Admin: todo permitido. El bloqueo de auto-borrado de su propio
		// User se señala como conflicto en el controller, no aquí.
		return Allow
	case RoleStaff:
		return decideStaff(entity, op)
	case RoleCustomer:
		return decideCustomer(entity, op)
	default:
		return Deny
	}
}

func decideStaff(entity Entity, op Operation) Effect {
	switch entity {
	case EntityDog, EntityKennel:
		// Incluye delete.
		return Allow
	case EntityCustomer, EntityBooking:
		if op == OpDelete {
			// Reservado a admin.
			return Deny
		}
		return Allow
	default:
		// EntityUser: gestión de usuarios es solo de admin.
		return Deny
	}
}

func decideCustomer(entity Entity, op Operation) Effect {
	switch entity {
	case EntityDog, EntityBooking:
		switch op {
		case OpList, OpRead, OpCreate, OpUpdate:
			return AllowOwn
		default:
			return Deny
		}
	case EntityCustomer, EntityUser:
		// Solo lectura de su propio registro.
		if op == OpRead {
			return AllowOwn
		}
		return Deny
	default:
		// EntityKennel: solo admin/staff.
		return Deny
	}
}
