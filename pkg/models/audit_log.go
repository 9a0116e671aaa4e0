package models

import (
	"time"

	"github.com/google/uuid"
)

// ScoreExplanation is the full breakdown persisted with every audit entry
// and returned to callers alongside the final score. Environmental is the
// un-bonused pillar mean; Governance includes its policy bonus. Because the
// environmental and governance bonus terms are not re-clamped, BaseScore and
// FinalScore can legitimately land slightly above 100 (roughly up to 102).
type ScoreExplanation struct {
	FinancialScore     float64               `json:"financial_score"`
	EnvironmentalScore float64               `json:"environmental_score"`
	SocialScore        float64               `json:"social_score"`
	GovernanceScore    float64               `json:"governance_score"`
	BaseScore          float64               `json:"base_score"`
	SuppliersScore     float64               `json:"suppliers_score"`
	SuppliersDetail    []SupplierScoreDetail `json:"suppliers_detail"`
	FinalScore         float64               `json:"final_score"`
}

// SupplierScoreDetail is the per-supplier breakdown inside an explanation.
// All four components are oriented higher-is-safer.
type SupplierScoreDetail struct {
	SupplierName  string  `json:"supplier_name"`
	NameRisk      float64 `json:"name_risk"`
	SectorRisk    float64 `json:"sector_risk"`
	RegionRisk    float64 `json:"region_risk"`
	PermitScore   float64 `json:"permit_score"`
	SupplierScore float64 `json:"supplier_score"`
}

// AuditLogEntry is one append-only history row for an SME. Entries are
// immutable once written and ordered by CreatedAt for "most recent" and
// "last N" queries.
type AuditLogEntry struct {
	ID          uuid.UUID        `json:"id"`
	SMEID       uuid.UUID        `json:"sme_id"`
	Explanation ScoreExplanation `json:"explanation"`
	CreatedAt   time.Time        `json:"created_at"`
}
