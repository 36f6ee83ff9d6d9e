package dto

import (
	"bytes"
	"encoding/json"
	"time"
)

// UserResponse registro de usuario tal como lo expone la API.
type UserResponse struct {
	UID              string     `json:"uid"`
	Email            string     `json:"email"`
	DisplayName      string     `json:"displayName"`
	CompanyName      string     `json:"companyName"`
	Role             string     `json:"role"`
	Status           string     `json:"status"`
	Department       string     `json:"department"`
	Position         string     `json:"position"`
	SubscriptionType *string    `json:"subscriptionType"`
	PhotoURL         string     `json:"photoURL,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	CreatedBy        *string    `json:"createdBy"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	LastLoginAt      *time.Time `json:"lastLoginAt,omitempty"`
}

// UserListResponse salida de GET /users.
type UserListResponse struct {
	Success bool            `json:"success"`
	Users   []*UserResponse `json:"users"`
}

// UserEnvelope salida de GET y PUT /users/:id.
type UserEnvelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	User    *UserResponse `json:"user"`
}

// CreateUserRequest cuerpo de POST /users. Si Users viene presente (aunque sea vacío)
// la petición es un alta masiva y los campos individuales se ignoran.
type CreateUserRequest struct {
	Email            string  `json:"email"`
	Password         string  `json:"password"`
	GeneratePassword bool    `json:"generatePassword"`
	DisplayName      string  `json:"displayName"`
	CompanyName      string  `json:"companyName"`
	Role             string  `json:"role"`
	Department       string  `json:"department"`
	Position         string  `json:"position"`
	SubscriptionType *string `json:"subscriptionType"`

	Users []BulkUserEntry `json:"users"`
}

// IsBulk informa si el cuerpo corresponde a un alta masiva.
func (r CreateUserRequest) IsBulk() bool {
	return r.Users != nil
}

// CreateUserResponse salida del alta individual. Password solo si se generó.
type CreateUserResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	UID      string `json:"uid"`
	Password string `json:"password,omitempty"`
}

// BulkUserEntry una fila del alta masiva.
type BulkUserEntry struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// BulkCreateRequest entrada del alta masiva ya separada del cuerpo HTTP.
type BulkCreateRequest struct {
	CompanyName      string
	SubscriptionType *string
	Users            []BulkUserEntry
}

// BulkResult fila creada, con la contraseña generada.
type BulkResult struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	UID         string `json:"uid"`
	Password    string `json:"password"`
}

// BulkError fila rechazada con su motivo.
type BulkError struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Error       string `json:"error"`
}

// BulkSummary totales del alta masiva.
type BulkSummary struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// BulkCreateResponse salida del alta masiva; success es true aunque fallen filas.
type BulkCreateResponse struct {
	Success bool         `json:"success"`
	Results []BulkResult `json:"results"`
	Errors  []BulkError  `json:"errors"`
	Summary BulkSummary  `json:"summary"`
}

// UpdateUserRequest cuerpo de PUT /users/:id. Los punteros nil no se tocan.
type UpdateUserRequest struct {
	Role             *string        `json:"role"`
	Status           *string        `json:"status"`
	Department       *string        `json:"department"`
	Position         *string        `json:"position"`
	SubscriptionType NullableString `json:"subscriptionType"`
	DisplayName      *string        `json:"displayName"`
	CompanyName      *string        `json:"companyName"`
}

// NullableString distingue un campo ausente (Set=false) de un null explícito
// (Set=true, Value=nil).
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON solo se invoca cuando la clave está presente en el cuerpo.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}
