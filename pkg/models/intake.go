package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/bayanihan-labs/esg-engine/pkg/apperrors"
)

// IntakeState is one step of the intake wizard. The flow is a strict
// forward-only state machine: Basics -> Environment -> Social -> Governance
// -> Submitted. Each step must be completed in order; Submitted is terminal.
type IntakeState string

const (
	IntakeBasics      IntakeState = "basics"
	IntakeEnvironment IntakeState = "environment"
	IntakeSocial      IntakeState = "social"
	IntakeGovernance  IntakeState = "governance"
	IntakeSubmitted   IntakeState = "submitted"
)

// intakeOrder defines the wizard progression.
var intakeOrder = []IntakeState{
	IntakeBasics,
	IntakeEnvironment,
	IntakeSocial,
	IntakeGovernance,
	IntakeSubmitted,
}

// Valid reports whether s is a known intake state.
func (s IntakeState) Valid() bool {
	for _, st := range intakeOrder {
		if s == st {
			return true
		}
	}
	return false
}

// Next returns the state that follows s. Advancing past Submitted is an
// invalid transition.
func (s IntakeState) Next() (IntakeState, error) {
	for i, st := range intakeOrder {
		if s == st {
			if i == len(intakeOrder)-1 {
				return "", apperrors.ErrInvalidState
			}
			return intakeOrder[i+1], nil
		}
	}
	return "", apperrors.ErrInvalidState
}

// IntakeSession carries the wizard's accumulated answers and its explicit
// state, instead of ambient UI session state. The draft profile is only
// promoted to a real SMEProfile once the session reaches Submitted.
type IntakeSession struct {
	ID        uuid.UUID   `json:"id"`
	State     IntakeState `json:"state"`
	Draft     SMEProfile  `json:"draft"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// BasicsStep is the payload for the first wizard step.
type BasicsStep struct {
	BusinessName      string  `json:"business_name"`
	Sector            string  `json:"sector"`
	Region            string  `json:"region"`
	NumEmployees      int     `json:"num_employees"`
	AvgAnnualRevenue  float64 `json:"avg_annual_revenue"`
	YearsInOperation  int     `json:"years_in_operation"`
	IsProfitable      bool    `json:"is_profitable"`
	MarketCompetition int     `json:"market_competition"`
}

// EnvironmentStep is the payload for the environmental wizard step.
type EnvironmentStep struct {
	HasBCP                 bool    `json:"has_bcp"`
	EnergyUsage            *string `json:"energy_usage,omitempty"`
	WaterUsage             *string `json:"water_usage,omitempty"`
	WasteManagement        string  `json:"waste_management"`
	HasEnvironmentalPermit bool    `json:"has_environmental_permit"`
	GHGEmissions           *string `json:"ghg_emissions,omitempty"`
}

// SocialStep is the payload for the social wizard step.
type SocialStep struct {
	PctEmployeesHealth    float64  `json:"pct_emp_health"`
	PctEmployeesSSS       float64  `json:"pct_emp_sss"`
	EmployeeTurnoverRate  float64  `json:"emp_turnover_rate"`
	CSRSpending           *float64 `json:"csr_spending,omitempty"`
	WorkplaceSafety       float64  `json:"workplace_safety"`
	EmergencyPreparedness float64  `json:"emergency_preparedness"`
}

// GovernanceStep is the payload for the final wizard step.
type GovernanceStep struct {
	FinReportingFreq string  `json:"fin_reporting_freq"`
	HasPolicies      bool    `json:"has_policies"`
	InspectionScore  float64 `json:"inspection_score"`
}

// ApplyBasics merges the basics step into the draft.
func (s *IntakeSession) ApplyBasics(step BasicsStep) {
	s.Draft.BusinessName = step.BusinessName
	s.Draft.Sector = step.Sector
	s.Draft.Region = step.Region
	s.Draft.NumEmployees = step.NumEmployees
	s.Draft.AvgAnnualRevenue = step.AvgAnnualRevenue
	s.Draft.YearsInOperation = step.YearsInOperation
	s.Draft.IsProfitable = step.IsProfitable
	s.Draft.MarketCompetition = step.MarketCompetition
}

// ApplyEnvironment merges the environment step into the draft.
func (s *IntakeSession) ApplyEnvironment(step EnvironmentStep) {
	s.Draft.HasBCP = step.HasBCP
	s.Draft.EnergyUsage = step.EnergyUsage
	s.Draft.WaterUsage = step.WaterUsage
	s.Draft.WasteManagement = step.WasteManagement
	s.Draft.HasEnvironmentalPermit = step.HasEnvironmentalPermit
	s.Draft.GHGEmissions = step.GHGEmissions
}

// ApplySocial merges the social step into the draft.
func (s *IntakeSession) ApplySocial(step SocialStep) {
	s.Draft.PctEmployeesHealth = step.PctEmployeesHealth
	s.Draft.PctEmployeesSSS = step.PctEmployeesSSS
	s.Draft.EmployeeTurnoverRate = step.EmployeeTurnoverRate
	s.Draft.CSRSpending = step.CSRSpending
	s.Draft.WorkplaceSafety = step.WorkplaceSafety
	s.Draft.EmergencyPreparedness = step.EmergencyPreparedness
}

// ApplyGovernance merges the governance step into the draft.
func (s *IntakeSession) ApplyGovernance(step GovernanceStep) {
	s.Draft.FinReportingFreq = step.FinReportingFreq
	s.Draft.HasPolicies = step.HasPolicies
	s.Draft.InspectionScore = step.InspectionScore
}
