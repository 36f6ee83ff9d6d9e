// Package saga ejecuta pasos con compensación: si un paso falla, se deshacen en orden
// inverso los pasos ya completados.
package saga

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Step un paso de la saga. Compensate puede ser nil si el paso no deja efectos.
type Step struct {
	Name       string
	Do         func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Error fallo de una saga: el paso que falló y los errores de compensación, si hubo.
type Error struct {
	Step             string
	Err              error
	CompensationErrs []CompensationError
}

// CompensationError compensación que no pudo completarse.
type CompensationError struct {
	Step string
	Err  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("saga: paso %q: %v", e.Step, e.Err)
	if len(e.CompensationErrs) == 0 {
		return msg
	}
	parts := make([]string, 0, len(e.CompensationErrs))
	for _, c := range e.CompensationErrs {
		parts = append(parts, fmt.Sprintf("%s: %v", c.Step, c.Err))
	}
	return msg + " (compensación fallida: " + strings.Join(parts, "; ") + ")"
}

// Unwrap expone el error del paso para errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// Compensated informa si todas las compensaciones terminaron bien.
func (e *Error) Compensated() bool { return len(e.CompensationErrs) == 0 }

// Run ejecuta los pasos en orden. Ante el primer fallo ejecuta las compensaciones de
// los pasos completados en orden inverso y devuelve *Error. Las compensaciones usan un
// contexto sin cancelación para que un request abortado no deje el rollback a medias.
func Run(ctx context.Context, steps ...Step) error {
	done := make([]Step, 0, len(steps))
	for _, s := range steps {
		if err := s.Do(ctx); err != nil {
			return &Error{Step: s.Name, Err: err, CompensationErrs: compensate(context.WithoutCancel(ctx), done)}
		}
		done = append(done, s)
	}
	return nil
}

func compensate(ctx context.Context, done []Step) []CompensationError {
	var errs []CompensationError
	for i := len(done) - 1; i >= 0; i-- {
		s := done[i]
		if s.Compensate == nil {
			continue
		}
		if err := s.Compensate(ctx); err != nil {
			errs = append(errs, CompensationError{Step: s.Name, Err: err})
		}
	}
	return errs
}

// AsError extrae el *Error de una cadena de errores.
func AsError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
