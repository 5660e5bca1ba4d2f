// Package tables is the tax-table repository (component C2) and edition
// selector (component C3). It is the sole path to bracket, cap, and
// jurisdiction rate data in the engine; the only rate literals in
// internal/calculation are the fixed CPP ratios (0.01 for F2 and
// 0.0495/0.0595 for the CPP credit).
package tables

import (
	"github.com/cadpayroll/engine/internal/domain"
	"github.com/cadpayroll/engine/pkg/money"
)

// Bracket is one federal or provincial tax bracket: income up to Upper is
// taxed at Rate, with K the pre-computed constant making the piecewise
// bracket table continuous.
type Bracket struct {
	Upper money.Amount `json:"upper"`
	Rate  money.Amount `json:"rate"`
	K     money.Amount `json:"k"`
}

// FederalTables holds the federal rate table for one (year, edition).
type FederalTables struct {
	BPAF                   money.Amount `json:"bpaf"`
	CEA                    money.Amount `json:"cea"`
	MaxAnnualCppCreditBase money.Amount `json:"max_annual_cpp_credit_base"`
	MaxAnnualEiCredit      money.Amount `json:"max_annual_ei_credit"`
	LowestRate             money.Amount `json:"lowest_rate"`
	Brackets               []Bracket    `json:"brackets"`
}

// CppEiTables holds the CPP/CPP2/EI constants for one tax year. Unlike the
// federal/provincial income-tax tables, these do not vary by edition within
// a year.
type CppEiTables struct {
	BasicExemption      money.Amount `json:"basic_exemption"`
	YMPE                money.Amount `json:"ympe"`
	YAMPE               money.Amount `json:"yampe"`
	BaseRate            money.Amount `json:"base_rate"`
	AdditionalRate      money.Amount `json:"additional_rate"`
	MaxBaseAnnual       money.Amount `json:"max_base_annual"`
	MaxAdditionalAnnual money.Amount `json:"max_additional_annual"`
	EI                  EiTables     `json:"ei"`
}

// EiTables holds the Employment Insurance constants.
type EiTables struct {
	EmployeeRate     money.Amount `json:"employee_rate"`
	EmployerRatio    money.Amount `json:"employer_ratio"`
	MIE              money.Amount `json:"mie"`
	MaxPremiumAnnual money.Amount `json:"max_premium_annual"`
}

// DynamicBPAKind tags which closed-form basic-personal-amount formula a
// jurisdiction uses, when it is not a flat static value.
type DynamicBPAKind string

const (
	BPAStatic    DynamicBPAKind = "static"
	BPADynamicMB DynamicBPAKind = "dynamic_mb"
	BPADynamicNS DynamicBPAKind = "dynamic_ns"
	BPADynamicYT DynamicBPAKind = "dynamic_yt"
)

// DynamicBPA parameterizes a jurisdiction's basic-personal-amount formula.
type DynamicBPA struct {
	Kind DynamicBPAKind `json:"kind"`
	// Max / Min bound the BPA; Threshold1/Threshold2 bound the phase-in or
	// phase-out band. Unused fields are zero for jurisdictions that don't
	// need them.
	Max        money.Amount `json:"max,omitempty"`
	Min        money.Amount `json:"min,omitempty"`
	Threshold1 money.Amount `json:"threshold1,omitempty"`
	Threshold2 money.Amount `json:"threshold2,omitempty"`
}

// Surtax models Ontario's two-threshold V1 surtax.
type Surtax struct {
	LowerThreshold money.Amount `json:"lower_threshold"`
	LowerRate      money.Amount `json:"lower_rate"`
	UpperThreshold money.Amount `json:"upper_threshold"`
	UpperRate      money.Amount `json:"upper_rate"`
}

// HealthPremiumBand is one step of Ontario's V2 health-premium table: income
// strictly above Floor and up to Ceiling produces Amount (or a ramp, when
// RampRate is non-zero, added on top of Base per dollar above Floor, capped
// at Amount).
type HealthPremiumBand struct {
	Floor    money.Amount `json:"floor"`
	Ceiling  money.Amount `json:"ceiling"`
	Base     money.Amount `json:"base"`
	RampRate money.Amount `json:"ramp_rate"`
	Amount   money.Amount `json:"amount"`
}

// TaxReduction models BC's S factor: full Base below Threshold1, phased out
// at PhaseRate between Threshold1 and Threshold2, zero at/above Threshold2.
type TaxReduction struct {
	Base       money.Amount `json:"base"`
	Threshold1 money.Amount `json:"threshold1"`
	Threshold2 money.Amount `json:"threshold2"`
	PhaseRate  money.Amount `json:"phase_rate"`
}

// K5P models Alberta's supplemental low-income credit reduction.
type K5P struct {
	Threshold money.Amount `json:"threshold"`
	Ratio     money.Amount `json:"ratio"` // 0.04/0.06, published explicitly by the table
}

// ProvincialEntry is one jurisdiction's block within provinces_<year>_<edition>.json.
type ProvincialEntry struct {
	Brackets      []Bracket           `json:"brackets"`
	BPA           money.Amount        `json:"bpa,omitempty"`
	DynamicBPA    *DynamicBPA         `json:"dynamic_bpa,omitempty"`
	Surtax        *Surtax             `json:"surtax,omitempty"`
	HealthPremium []HealthPremiumBand `json:"health_premium,omitempty"`
	TaxReduction  *TaxReduction       `json:"tax_reduction,omitempty"`
	K5P           *K5P                `json:"k5p,omitempty"`
}

// ProvincialTables holds every jurisdiction's entry for one (year, edition).
type ProvincialTables map[domain.Jurisdiction]ProvincialEntry

// TaxTables is the full bundle the calculators consume for one
// (year, edition): federal, CPP/EI, and all 12 provincial/territorial
// entries.
type TaxTables struct {
	Year       int
	Edition    domain.TaxEdition
	Federal    FederalTables
	CppEi      CppEiTables
	Provincial ProvincialTables
}
