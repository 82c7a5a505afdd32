package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Representative is the legal representative of a contract party
type Representative struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Doc  string `json:"doc"`
}

// Party represents one side of a contract (contractor or contracted)
type Party struct {
	Name           string         `json:"name"`
	Doc            string         `json:"doc"`
	Address        string         `json:"address"`
	Representative Representative `json:"representative"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
}

// SLATargets holds the service-level targets agreed in the contract
type SLATargets struct {
	SLAPct       float64 `json:"sla_pct"`
	OnTimeTarget float64 `json:"on_time_target"`
}

// Milestone is a dated delivery mark
type Milestone struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Signatures holds the signature block of the rendered document
type Signatures struct {
	ContractorSign string `json:"contractor_sign"`
	ContractedSign string `json:"contracted_sign"`
	Witnesses      string `json:"witnesses"`
}

// Contract is the central CLM entity
type Contract struct {
	ID               uuid.UUID      `json:"id"`
	ContractNumber   string         `json:"contractNumber"`
	Type             string         `json:"type"`
	Title            string         `json:"title"`
	Department       string         `json:"department"`
	CostCenter       string         `json:"costCenter,omitempty"`
	Status           ContractStatus `json:"status"`
	Tags             []string       `json:"tags"`
	Contractor       Party          `json:"contractor"`
	Contracted       Party          `json:"contracted"`
	ScopeText        string         `json:"scopeText"`
	DeliverablesText string         `json:"deliverablesText"`
	SLATargets       SLATargets     `json:"slaTargets"`
	AcceptanceRules  string         `json:"acceptanceRulesText"`
	ClausesText      string         `json:"clausesText"`
	CriticalClauses  bool           `json:"criticalClauses"`
	CriticalClausesText string      `json:"criticalClausesText"`
	MandatoryClauses []string       `json:"mandatoryClauses"`
	LegalNotes       string         `json:"legalNotes"`
	StartDate        null.Time      `json:"startDate"`
	EndDate          null.Time      `json:"endDate"`
	Milestones       []Milestone    `json:"milestones"`
	PaymentTerms     string         `json:"paymentTerms"`
	ReajustIndex     string         `json:"reajustIndex"`
	PenaltiesText    string         `json:"penaltiesText"`
	PenaltiesValue   float64        `json:"penaltiesValue"`
	Signatures       Signatures     `json:"signatures"`
	ContractValue    float64        `json:"contractValue"`
	ExecutedValue    float64        `json:"executedValue"`
	SavingsValue     float64        `json:"savingsValue"`
	ROIValue         float64        `json:"roiValue"`
	RequestDate      null.Time      `json:"requestDate"`
	SignedDate       null.Time      `json:"signedDate"`
	ArchivedDate     null.Time      `json:"archivedDate"`
	DigitallySigned  bool           `json:"digitallySigned"`

	StrategicAlignment           bool    `json:"strategicAlignment"`
	RevenueContribution          float64 `json:"revenueContribution"`
	OperationCritical            bool    `json:"operationCritical"`
	SupplierKeyDependency        bool    `json:"supplierKeyDependency"`
	SupplierDiversificationScore float64 `json:"supplierDiversificationScore"`
	MaturityScore                float64 `json:"maturityScore"`
	GovernanceIndex              float64 `json:"governanceIndex"`
	AutomationPct                float64 `json:"automationPct"`
	DefaultProbability           float64 `json:"defaultProbability"`
	AggregateFinancialRisk       float64 `json:"aggregateFinancialRisk"`
	DisruptionPredictiveScore    float64 `json:"disruptionPredictiveScore"`

	PDFPath     string    `json:"pdfPath,omitempty"`
	IsArchived  bool      `json:"isArchived"`
	IsFinalized bool      `json:"isFinalized"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SupplierName returns the contracted party name used for grouping,
// falling back to the "not informed" bucket when missing.
func (c *Contract) SupplierName() string {
	if strings.TrimSpace(c.Contracted.Name) == "" {
		return "N/A"
	}
	return c.Contracted.Name
}

// CreateContractInput carries the user-entered fields for a new contract
type CreateContractInput struct {
	ContractNumber      string      `json:"contractNumber"`
	Type                string      `json:"type" binding:"required"`
	Title               string      `json:"title" binding:"required"`
	Department          string      `json:"department" binding:"required"`
	CostCenter          string      `json:"costCenter"`
	Tags                []string    `json:"tags"`
	Contractor          Party       `json:"contractor"`
	Contracted          Party       `json:"contracted"`
	ScopeText           string      `json:"scopeText"`
	DeliverablesText    string      `json:"deliverablesText"`
	SLATargets          SLATargets  `json:"slaTargets"`
	AcceptanceRules     string      `json:"acceptanceRulesText"`
	ClausesText         string      `json:"clausesText"`
	CriticalClauses     bool        `json:"criticalClauses"`
	CriticalClausesText string      `json:"criticalClausesText"`
	MandatoryClauses    []string    `json:"mandatoryClauses"`
	LegalNotes          string      `json:"legalNotes"`
	StartDate           null.Time   `json:"startDate"`
	EndDate             null.Time   `json:"endDate"`
	Milestones          []Milestone `json:"milestones"`
	PaymentTerms        string      `json:"paymentTerms"`
	ReajustIndex        string      `json:"reajustIndex"`
	PenaltiesText       string      `json:"penaltiesText"`
	PenaltiesValue      float64     `json:"penaltiesValue"`
	Signatures          Signatures  `json:"signatures"`
	ContractValue       float64     `json:"contractValue"`
	RequestDate         null.Time   `json:"requestDate"`
	SignedDate          null.Time   `json:"signedDate"`
}

// Validate collects every problem with the input so the caller can show
// all of them at once.
func (in *CreateContractInput) Validate() ValidationErrors {
	var errs ValidationErrors

	required := []struct {
		label string
		empty bool
	}{
		{"type", strings.TrimSpace(in.Type) == ""},
		{"title", strings.TrimSpace(in.Title) == ""},
		{"department", strings.TrimSpace(in.Department) == ""},
		{"start_date", !in.StartDate.Valid},
		{"end_date", !in.EndDate.Valid},
		{"contract_value", in.ContractValue == 0},
	}
	for _, r := range required {
		if r.empty {
			errs = append(errs, fmt.Sprintf("Campo obrigatório ausente: %s", r.label))
		}
	}

	for _, side := range []struct {
		label string
		party Party
	}{
		{"Contratante", in.Contractor},
		{"Contratado", in.Contracted},
	} {
		if strings.TrimSpace(side.party.Name) == "" {
			errs = append(errs, fmt.Sprintf("%s: razão social/nome é obrigatório", side.label))
		}
		if strings.TrimSpace(side.party.Doc) == "" {
			errs = append(errs, fmt.Sprintf("%s: CNPJ/CPF é obrigatório", side.label))
		}
		if strings.TrimSpace(side.party.Email) == "" {
			errs = append(errs, fmt.Sprintf("%s: email é obrigatório", side.label))
		}
	}

	if len(strings.TrimSpace(in.ClausesText)) < 20 {
		errs = append(errs, "Cláusulas mínimas insuficientes (mínimo 20 caracteres).")
	}

	if in.StartDate.Valid && in.EndDate.Valid && in.StartDate.Time.After(in.EndDate.Time) {
		errs = append(errs, "Data inicial deve ser menor ou igual à data final.")
	}

	return errs
}

// ContractEditInput is the allow-list of contractually amendable fields.
// Nil pointers mean "not provided". Applying a non-empty edit bumps the
// contract version.
type ContractEditInput struct {
	Title         *string    `json:"title"`
	Department    *string    `json:"department"`
	ScopeText     *string    `json:"scopeText"`
	ClausesText   *string    `json:"clausesText"`
	ContractValue *float64   `json:"contractValue"`
	ExecutedValue *float64   `json:"executedValue"`
	SavingsValue  *float64   `json:"savingsValue"`
	ROIValue      *float64   `json:"roiValue"`
	EndDate       *null.Time `json:"endDate"`
}

// Changes returns the provided fields as column -> value pairs.
func (in *ContractEditInput) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if in.Title != nil {
		changes["title"] = *in.Title
	}
	if in.Department != nil {
		changes["department"] = *in.Department
	}
	if in.ScopeText != nil {
		changes["scope_text"] = *in.ScopeText
	}
	if in.ClausesText != nil {
		changes["clauses_text"] = *in.ClausesText
	}
	if in.ContractValue != nil {
		changes["contract_value"] = *in.ContractValue
	}
	if in.ExecutedValue != nil {
		changes["executed_value"] = *in.ExecutedValue
	}
	if in.SavingsValue != nil {
		changes["savings_value"] = *in.SavingsValue
	}
	if in.ROIValue != nil {
		changes["roi_value"] = *in.ROIValue
	}
	if in.EndDate != nil {
		changes["end_date"] = formatDateColumn(*in.EndDate)
	}
	return changes
}

// ActivityUpdateInput is the allow-list for operational data capture.
// Applying it never bumps the contract version.
type ActivityUpdateInput struct {
	ExecutedValue                *float64   `json:"executedValue"`
	SavingsValue                 *float64   `json:"savingsValue"`
	ROIValue                     *float64   `json:"roiValue"`
	LegalNotes                   *string    `json:"legalNotes"`
	SignedDate                   *null.Time `json:"signedDate"`
	ArchivedDate                 *null.Time `json:"archivedDate"`
	RequestDate                  *null.Time `json:"requestDate"`
	DigitallySigned              *bool      `json:"digitallySigned"`
	StrategicAlignment           *bool      `json:"strategicAlignment"`
	RevenueContribution          *float64   `json:"revenueContribution"`
	OperationCritical            *bool      `json:"operationCritical"`
	SupplierKeyDependency        *bool      `json:"supplierKeyDependency"`
	SupplierDiversificationScore *float64   `json:"supplierDiversificationScore"`
	MaturityScore                *float64   `json:"maturityScore"`
	GovernanceIndex              *float64   `json:"governanceIndex"`
	AutomationPct                *float64   `json:"automationPct"`
	DefaultProbability           *float64   `json:"defaultProbability"`
	AggregateFinancialRisk       *float64   `json:"aggregateFinancialRisk"`
	DisruptionPredictiveScore    *float64   `json:"disruptionPredictiveScore"`
}

// Changes returns the provided fields as column -> value pairs.
func (in *ActivityUpdateInput) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if in.ExecutedValue != nil {
		changes["executed_value"] = *in.ExecutedValue
	}
	if in.SavingsValue != nil {
		changes["savings_value"] = *in.SavingsValue
	}
	if in.ROIValue != nil {
		changes["roi_value"] = *in.ROIValue
	}
	if in.LegalNotes != nil {
		changes["legal_notes"] = *in.LegalNotes
	}
	if in.SignedDate != nil {
		changes["signed_date"] = formatDateColumn(*in.SignedDate)
	}
	if in.ArchivedDate != nil {
		changes["archived_date"] = formatDateColumn(*in.ArchivedDate)
	}
	if in.RequestDate != nil {
		changes["request_date"] = formatDateColumn(*in.RequestDate)
	}
	if in.DigitallySigned != nil {
		changes["digitally_signed"] = *in.DigitallySigned
	}
	if in.StrategicAlignment != nil {
		changes["strategic_alignment"] = *in.StrategicAlignment
	}
	if in.RevenueContribution != nil {
		changes["revenue_contribution"] = *in.RevenueContribution
	}
	if in.OperationCritical != nil {
		changes["operation_critical"] = *in.OperationCritical
	}
	if in.SupplierKeyDependency != nil {
		changes["supplier_key_dependency"] = *in.SupplierKeyDependency
	}
	if in.SupplierDiversificationScore != nil {
		changes["supplier_diversification_score"] = *in.SupplierDiversificationScore
	}
	if in.MaturityScore != nil {
		changes["maturity_score"] = *in.MaturityScore
	}
	if in.GovernanceIndex != nil {
		changes["governance_index"] = *in.GovernanceIndex
	}
	if in.AutomationPct != nil {
		changes["automation_pct"] = *in.AutomationPct
	}
	if in.DefaultProbability != nil {
		changes["default_probability"] = *in.DefaultProbability
	}
	if in.AggregateFinancialRisk != nil {
		changes["aggregate_financial_risk"] = *in.AggregateFinancialRisk
	}
	if in.DisruptionPredictiveScore != nil {
		changes["disruption_predictive_score"] = *in.DisruptionPredictiveScore
	}
	return changes
}

// DateLayout is the storage format for date-only columns.
const DateLayout = "2006-01-02"

func formatDateColumn(t null.Time) interface{} {
	if !t.Valid {
		return nil
	}
	return t.Time.Format(DateLayout)
}

// ListFilters narrows contract listings. Zero values mean "no filter";
// Limit 0 disables pagination.
type ListFilters struct {
	Type           string
	Status         ContractStatus
	Department     string
	ContractedLike string
	MinValue       *float64
	MaxValue       *float64
	DateFrom       null.Time
	DateTo         null.Time
	OrderBy        string
	Limit          int
	Offset         int
}
