package user

import (
	"time"

	"github.com/jhoicas/tenant-admin/internal/domain/entity"
)

// ToDocument convierte la entidad en el documento que se persiste.
func ToDocument(u *entity.User) map[string]any {
	doc := map[string]any{
		FieldEmail:       u.Email,
		FieldDisplayName: u.DisplayName,
		FieldCompanyName: u.CompanyName,
		FieldRole:        u.Role,
		FieldStatus:      u.Status,
		FieldDepartment:  u.Department,
		FieldPosition:    u.Position,
		FieldCreatedAt:   u.CreatedAt,
		FieldUpdatedAt:   u.UpdatedAt,
	}
	if u.SubscriptionType != nil {
		doc[FieldSubscriptionType] = *u.SubscriptionType
	} else {
		doc[FieldSubscriptionType] = nil
	}
	if u.CreatedBy != nil {
		doc[FieldCreatedBy] = *u.CreatedBy
	} else {
		doc[FieldCreatedBy] = nil
	}
	if u.PhotoURL != "" {
		doc[FieldPhotoURL] = u.PhotoURL
	}
	if u.LastLoginAt != nil {
		doc[FieldLastLoginAt] = *u.LastLoginAt
	}
	return doc
}

// FromDocument decodifica un documento leído del almacén, aplicando Normalize antes.
// Los valores con tipo inesperado se descartan (quedan en su valor cero).
func FromDocument(id string, raw map[string]any) *entity.User {
	doc := Normalize(raw)
	u := &entity.User{
		ID:          id,
		Email:       stringField(doc, FieldEmail),
		DisplayName: stringField(doc, FieldDisplayName),
		CompanyName: stringField(doc, FieldCompanyName),
		Role:        stringField(doc, FieldRole),
		Status:      stringField(doc, FieldStatus),
		Department:  stringField(doc, FieldDepartment),
		Position:    stringField(doc, FieldPosition),
		PhotoURL:    stringField(doc, FieldPhotoURL),
	}
	u.SubscriptionType = optionalString(doc, FieldSubscriptionType)
	u.CreatedBy = optionalString(doc, FieldCreatedBy)
	if t, ok := timeValue(doc[FieldCreatedAt]); ok {
		u.CreatedAt = t
	}
	if t, ok := timeValue(doc[FieldUpdatedAt]); ok {
		u.UpdatedAt = t
	}
	if t, ok := timeValue(doc[FieldLastLoginAt]); ok {
		u.LastLoginAt = &t
	}
	return u
}

// PatchDocument devuelve solo los campos presentes del patch más updatedAt.
func PatchDocument(p entity.UserPatch, now time.Time) map[string]any {
	doc := map[string]any{FieldUpdatedAt: now}
	if p.Role != nil {
		doc[FieldRole] = *p.Role
	}
	if p.Status != nil {
		doc[FieldStatus] = *p.Status
	}
	if p.Department != nil {
		doc[FieldDepartment] = *p.Department
	}
	if p.Position != nil {
		doc[FieldPosition] = *p.Position
	}
	if p.SubscriptionType != nil {
		if *p.SubscriptionType == nil {
			doc[FieldSubscriptionType] = nil
		} else {
			doc[FieldSubscriptionType] = **p.SubscriptionType
		}
	}
	if p.DisplayName != nil {
		doc[FieldDisplayName] = *p.DisplayName
	}
	if p.CompanyName != nil {
		doc[FieldCompanyName] = *p.CompanyName
	}
	return doc
}

func stringField(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}

func optionalString(doc map[string]any, key string) *string {
	s, ok := doc[key].(string)
	if !ok {
		return nil
	}
	return &s
}
