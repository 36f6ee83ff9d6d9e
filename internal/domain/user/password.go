package user

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// PasswordAlphabet conjunto fijo de caracteres imprimibles para contraseñas generadas.
const PasswordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"

// MinPasswordLength mínimo aceptado por el proveedor de identidad para contraseñas
// elegidas por el operador.
const MinPasswordLength = 6

// MinGeneratedPasswordLength mínimo para contraseñas generadas.
const MinGeneratedPasswordLength = 8

// GeneratePassword genera una contraseña aleatoria (crypto/rand) de la longitud dada.
// Longitudes por debajo de MinGeneratedPasswordLength se elevan a ese mínimo.
func GeneratePassword(length int) (string, error) {
	if length < MinGeneratedPasswordLength {
		length = MinGeneratedPasswordLength
	}
	max := big.NewInt(int64(len(PasswordAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generar contraseña: %w", err)
		}
		buf[i] = PasswordAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// DefaultDisplayName parte local del email, usada cuando no se indica displayName.
func DefaultDisplayName(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
