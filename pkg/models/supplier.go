package models

import (
	"github.com/google/uuid"
)

// SupplierRecord is one supplier linked to an SME. Suppliers are managed by
// the host application and consumed read-only by the scoring engine.
type SupplierRecord struct {
	ID        uuid.UUID `json:"id"`
	SMEID     uuid.UUID `json:"sme_id"`
	Name      string    `json:"name"`
	Sector    string    `json:"sector"`
	Region    string    `json:"region"`
	HasPermit bool      `json:"has_permit"`
}
