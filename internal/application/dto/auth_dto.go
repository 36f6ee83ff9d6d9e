package dto

// LoginRequest entrada de POST /auth/login (solo proveedor de identidad local).
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token emitido por el proveedor local.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	UID     string `json:"uid"`
	Email   string `json:"email"`
}
