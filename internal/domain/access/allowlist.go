// Package access decide qué cuentas autenticadas pueden operar la consola.
package access

import (
	"strings"

	"golang.org/x/text/cases"
)

// Allowlist lista de emails autorizados. Sin entradas, cualquier cuenta verificada pasa.
type Allowlist struct {
	emails map[string]struct{}
}

// NewAllowlist construye la lista; la comparación ignora mayúsculas y espacios.
func NewAllowlist(emails []string) *Allowlist {
	a := &Allowlist{emails: make(map[string]struct{}, len(emails))}
	for _, e := range emails {
		if k := a.key(e); k != "" {
			a.emails[k] = struct{}{}
		}
	}
	return a
}

// Restricted indica si hay una lista configurada.
func (a *Allowlist) Restricted() bool {
	return len(a.emails) > 0
}

// Allowed informa si el email puede usar la consola. Un email vacío nunca pasa.
func (a *Allowlist) Allowed(email string) bool {
	if strings.TrimSpace(email) == "" {
		return false
	}
	if !a.Restricted() {
		return true
	}
	return a.Listed(email)
}

// Listed informa si el email figura explícitamente en la lista.
func (a *Allowlist) Listed(email string) bool {
	k := a.key(email)
	if k == "" {
		return false
	}
	_, ok := a.emails[k]
	return ok
}

// key usa un Caser nuevo por llamada: cases.Caser no se comparte entre goroutines.
func (a *Allowlist) key(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}
