package entity

// Identity es el sujeto verificado de un bearer token.
type Identity struct {
	UID   string
	Email string
}

// NewIdentity datos para crear una cuenta en el proveedor de identidad.
type NewIdentity struct {
	Email       string
	Password    string
	DisplayName string
}
