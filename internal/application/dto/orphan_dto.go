package dto

import "time"

// OrphanResponse entrada del registro de huérfanos.
type OrphanResponse struct {
	UID        string    `json:"uid"`
	Email      string    `json:"email"`
	Kind       string    `json:"kind"`
	Reason     string    `json:"reason"`
	DetectedAt time.Time `json:"detectedAt"`
}

// OrphanListResponse salida de GET /orphans.
type OrphanListResponse struct {
	Success bool              `json:"success"`
	Orphans []*OrphanResponse `json:"orphans"`
}

// SessionResponse salida de GET /session.
type SessionResponse struct {
	Success bool   `json:"success"`
	UID     string `json:"uid"`
	Email   string `json:"email"`
	Role    string `json:"role,omitempty"`
	Admin   bool   `json:"admin"`
	Allowed bool   `json:"allowed"`
}
