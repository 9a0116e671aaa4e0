package models

import (
	"time"

	"github.com/google/uuid"
)

// Waste management maturity categories, in increasing order. Any other
// string scores 0 in the environmental pillar.
const (
	WasteNoPolicy      = "No formal waste management policy"
	WasteBasicDisposal = "Basic disposal only (no recycling or tracking)"
	WasteRecycling     = "Recycling program in place"
	WasteComprehensive = "Comprehensive waste reduction + recycling + tracking"
	WasteZeroWaste     = "Zero-waste or closed-loop operations"
)

// Financial reporting frequencies recognized by the governance pillar.
// Anything else falls back to the Yearly score.
const (
	ReportingDaily     = "Daily"
	ReportingMonthly   = "Monthly"
	ReportingQuarterly = "Quarterly"
	ReportingYearly    = "Yearly"
)

// SMEProfile holds everything the engine knows about a business: identity,
// the raw intake answers for all four pillars, and references to uploaded
// documents. Created once at intake; afterwards only the file references are
// mutated. Measurement fields (energy, water, GHG) keep their raw
// unit-suffixed form ("400kwh", "10m3", "200 kg CO2e"); nil means the
// question was left unanswered.
type SMEProfile struct {
	ID               uuid.UUID `json:"id"`
	BusinessName     string    `json:"business_name"`
	Sector           string    `json:"sector"`
	Region           string    `json:"region"`
	NumEmployees     int       `json:"num_employees"`
	AvgAnnualRevenue float64   `json:"avg_annual_revenue"`
	YearsInOperation int       `json:"years_in_operation"`
	CreatedAt        time.Time `json:"created_at"`

	// Financial
	IsProfitable      bool `json:"is_profitable"`
	MarketCompetition int  `json:"market_competition"` // 0 (none) to 10 (saturated)

	// Environmental
	HasBCP                 bool    `json:"has_bcp"`
	EnergyUsage            *string `json:"energy_usage,omitempty"` // kWh, e.g. "400kwh"
	WaterUsage             *string `json:"water_usage,omitempty"`  // m3 or L, e.g. "10m3"
	WasteManagement        string  `json:"waste_management"`
	HasEnvironmentalPermit bool    `json:"has_environmental_permit"`
	GHGEmissions           *string `json:"ghg_emissions,omitempty"` // kg CO2e, e.g. "200 kg CO2e"

	// Social (all 0-100 except turnover, which is a rate inverted at scoring time)
	PctEmployeesHealth    float64  `json:"pct_emp_health"`
	PctEmployeesSSS       float64  `json:"pct_emp_sss"`
	EmployeeTurnoverRate  float64  `json:"emp_turnover_rate"`
	CSRSpending           *float64 `json:"csr_spending,omitempty"`
	WorkplaceSafety       float64  `json:"workplace_safety"`
	EmergencyPreparedness float64  `json:"emergency_preparedness"`

	// Governance
	FinReportingFreq string  `json:"fin_reporting_freq"`
	HasPolicies      bool    `json:"has_policies"`
	InspectionScore  float64 `json:"inspection_score"` // 0-100

	// Uploaded document references (the only fields mutated after intake)
	BusinessPermitFile *string `json:"business_permit_file,omitempty"`
	PayrollFile        *string `json:"payroll_file,omitempty"`
	IncomeTaxFile      *string `json:"income_tax_file,omitempty"`
}

// SMESummary is the listing/search projection of an SMEProfile.
type SMESummary struct {
	ID           uuid.UUID `json:"id"`
	BusinessName string    `json:"business_name"`
	Sector       string    `json:"sector"`
	Region       string    `json:"region"`
	CreatedAt    time.Time `json:"created_at"`
}

// FileReferences carries the uploaded document paths attached to a profile
// after intake. Nil fields are left untouched.
type FileReferences struct {
	BusinessPermitFile *string `json:"business_permit_file,omitempty"`
	PayrollFile        *string `json:"payroll_file,omitempty"`
	IncomeTaxFile      *string `json:"income_tax_file,omitempty"`
}
