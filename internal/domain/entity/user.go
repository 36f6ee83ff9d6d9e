package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// Estados válidos para User.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// Tipos de suscripción.
const (
	SubscriptionTrial    = "trial"
	SubscriptionContract = "contract"
)

// Roles y Statuses en el orden en que se documentan.
var (
	Roles    = []string{RoleAdmin, RoleManager, RoleUser}
	Statuses = []string{StatusActive, StatusInactive, StatusSuspended}
)

// User representa una cuenta registrada. ID es el uid asignado por el proveedor de
// identidad y se reutiliza como clave del documento.
type User struct {
	ID               string
	Email            string
	DisplayName      string
	CompanyName      string
	Role             string
	Status           string
	Department       string
	Position         string
	SubscriptionType *string // nil = sin suscripción
	PhotoURL         string
	CreatedAt        time.Time
	CreatedBy        *string // nil = creado desde esta consola
	UpdatedAt        time.Time
	LastLoginAt      *time.Time
}

// UserPatch campos opcionales de una actualización parcial. nil = no tocar.
type UserPatch struct {
	Role             *string
	Status           *string
	Department       *string
	Position         *string
	SubscriptionType **string // puntero a nil = borrar la suscripción
	DisplayName      *string
	CompanyName      *string
}

// Empty informa si el patch no trae ningún campo.
func (p UserPatch) Empty() bool {
	return p.Role == nil && p.Status == nil && p.Department == nil && p.Position == nil &&
		p.SubscriptionType == nil && p.DisplayName == nil && p.CompanyName == nil
}

// Apply mezcla los campos presentes del patch sobre u.
func (p UserPatch) Apply(u *User) {
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	if p.Department != nil {
		u.Department = *p.Department
	}
	if p.Position != nil {
		u.Position = *p.Position
	}
	if p.SubscriptionType != nil {
		u.SubscriptionType = *p.SubscriptionType
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.CompanyName != nil {
		u.CompanyName = *p.CompanyName
	}
}
