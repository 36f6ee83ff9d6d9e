package entity

import "time"

// Tipos de inconsistencia entre proveedor de identidad y almacén de registros.
const (
	// OrphanIdentityWithoutRecord: el rollback de un alta no pudo borrar la identidad.
	OrphanIdentityWithoutRecord = "identity_without_record"
	// OrphanRecordWithoutIdentity: la baja borró la identidad pero no el documento.
	OrphanRecordWithoutIdentity = "record_without_identity"
)

// Orphan registra un uid cuyo par identidad/registro quedó incompleto.
type Orphan struct {
	UID        string
	Email      string
	Kind       string
	Reason     string
	DetectedAt time.Time
}
