// Package user contiene el esquema unificado de registros de usuario: validación,
// normalización de datos heredados y conversión documento <-> entidad.
//
// Validate es la única definición de "registro correcto"; los casos de uso no deben
// repetir estas comprobaciones por su cuenta.
package user

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/tenant-admin/internal/domain/entity"
)

// Claves de los campos del documento (coinciden con los nombres camelCase del almacén).
const (
	FieldEmail            = "email"
	FieldDisplayName      = "displayName"
	FieldCompanyName      = "companyName"
	FieldRole             = "role"
	FieldStatus           = "status"
	FieldDepartment       = "department"
	FieldPosition         = "position"
	FieldSubscriptionType = "subscriptionType"
	FieldPhotoURL         = "photoURL"
	FieldCreatedAt        = "createdAt"
	FieldCreatedBy        = "createdBy"
	FieldUpdatedAt        = "updatedAt"
	FieldLastLoginAt      = "lastLoginAt"
	FieldLegacyUpdated    = "lastUpdated"
)

// Result resultado de Validate. Errors está vacío cuando Valid es true.
type Result struct {
	Valid  bool
	Errors []string
}

// Validate comprueba todas las reglas del esquema sobre un documento (posiblemente
// parcial) y acumula cada fallo; no se detiene en el primero.
func Validate(doc map[string]any) Result {
	var errs []string

	if email, ok := doc[FieldEmail].(string); !ok || !strings.Contains(email, "@") {
		errs = append(errs, "email must be a valid email address")
	}
	if !nonBlankString(doc[FieldDisplayName]) {
		errs = append(errs, "displayName is required")
	}
	if !nonBlankString(doc[FieldCompanyName]) {
		errs = append(errs, "companyName is required")
	}
	if role, ok := doc[FieldRole].(string); !ok || !slices.Contains(entity.Roles, role) {
		errs = append(errs, `role must be one of "admin", "manager", "user"`)
	}
	if status, ok := doc[FieldStatus].(string); !ok || !slices.Contains(entity.Statuses, status) {
		errs = append(errs, `status must be one of "active", "inactive", "suspended"`)
	}
	if _, ok := timeValue(doc[FieldCreatedAt]); !ok {
		errs = append(errs, "createdAt must be a valid timestamp")
	}

	// Campos opcionales: solo se valida el tipo si están presentes.
	if v, present := doc[FieldDepartment]; present {
		if _, ok := v.(string); !ok {
			errs = append(errs, "department must be a string")
		}
	}
	if v, present := doc[FieldPosition]; present {
		if _, ok := v.(string); !ok {
			errs = append(errs, "position must be a string")
		}
	}
	if v, present := doc[FieldCreatedBy]; present && v != nil {
		if _, ok := v.(string); !ok {
			errs = append(errs, "createdBy must be a string or null")
		}
	}
	if v, present := doc[FieldSubscriptionType]; present && v != nil {
		s, ok := v.(string)
		if !ok || (s != entity.SubscriptionTrial && s != entity.SubscriptionContract) {
			errs = append(errs, `subscriptionType must be "trial", "contract" or null`)
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// ValidateRecord valida una entidad tipada pasando por la misma regla que Validate.
func ValidateRecord(u *entity.User) Result {
	if u == nil {
		return Validate(map[string]any{})
	}
	return Validate(ToDocument(u))
}

// Normalize aplica los valores por defecto a datos heredados o parciales y migra
// lastUpdated a updatedAt. No modifica el mapa recibido.
func Normalize(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc)+5)
	for k, v := range doc {
		out[k] = v
	}

	if isUnsetOrEmpty(out, FieldRole) {
		out[FieldRole] = entity.RoleUser
	}
	if isUnsetOrEmpty(out, FieldStatus) {
		out[FieldStatus] = entity.StatusActive
	}
	if _, present := out[FieldDepartment]; !present {
		out[FieldDepartment] = ""
	}
	if _, present := out[FieldPosition]; !present {
		out[FieldPosition] = ""
	}
	if _, present := out[FieldCreatedBy]; !present {
		out[FieldCreatedBy] = nil
	}

	if legacy, ok := timeValue(doc[FieldLegacyUpdated]); ok && out[FieldUpdatedAt] == nil {
		out[FieldUpdatedAt] = legacy
	}

	return out
}

// isUnsetOrEmpty: ausente, nil o cadena vacía.
func isUnsetOrEmpty(doc map[string]any, key string) bool {
	v, present := doc[key]
	if !present || v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func nonBlankString(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

// timeValue acepta time.Time o *time.Time no nulos y distintos del instante cero.
func timeValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	default:
		return time.Time{}, false
	}
}

// ErrorsString concatena los errores de validación en un único mensaje.
func (r Result) ErrorsString() string {
	return strings.Join(r.Errors, ", ")
}

// String implementa fmt.Stringer para logs.
func (r Result) String() string {
	if r.Valid {
		return "valid"
	}
	return fmt.Sprintf("invalid: %s", r.ErrorsString())
}
