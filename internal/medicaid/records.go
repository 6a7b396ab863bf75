package medicaid

// MatchConfidence labels how a cross-source enrichment match was obtained.
type MatchConfidence string

const (
	ConfidenceHigh   MatchConfidence = "high"   // exact case-normalized name match
	ConfidenceMedium MatchConfidence = "medium" // leading-words prefix match
	ConfidenceNone   MatchConfidence = "none"   // no match, NDC absent
)

// PricingRecord is one normalized NADAC row. Numeric fields that fail to
// parse are nil, never zero; zero and unknown stay distinguishable.
type PricingRecord struct {
	NDC                       string   `json:"ndc"`
	Description               string   `json:"description"`
	PerUnit                   *float64 `json:"nadac_per_unit"`
	PricingUnit               string   `json:"pricing_unit"`
	PharmacyTypeIndicator     string   `json:"pharmacy_type_indicator,omitempty"`
	OTC                       string   `json:"otc,omitempty"`
	EffectiveDate             string   `json:"effective_date"`
	ExplanationCode           string   `json:"explanation_code,omitempty"`
	ClassificationForRates    string   `json:"classification_for_rate_setting,omitempty"`
	CorrespondingGenericPrice *float64 `json:"corresponding_generic_nadac,omitempty"`
}

// EnrollmentRecord is one normalized state enrollment snapshot row.
type EnrollmentRecord struct {
	State                string   `json:"state"`
	StateName            string   `json:"state_name"`
	ReportingPeriod      string   `json:"reporting_period"` // YYYYMM
	ExpandedMedicaid     string   `json:"state_expanded_medicaid,omitempty"`
	TotalMedicaidAndCHIP *float64 `json:"total_medicaid_chip_enrollment"`
	TotalMedicaid        *float64 `json:"total_medicaid_enrollment"`
	TotalCHIP            *float64 `json:"total_chip_enrollment"`
	TotalAdult           *float64 `json:"total_adult_enrollment"`
	ChildEnrollment      *float64 `json:"medicaid_chip_child_enrollment"`
}

// FormularyRecord is the common normalized shape every state formulary is
// mapped into. State-specific fields are zero-valued (and omitted from
// JSON) for states that do not publish them.
type FormularyRecord struct {
	// Core identification. A record without both NDC and a name is dropped
	// as malformed during normalization; NDC may still be empty for
	// enrichment recipients (IL) that found no donor match.
	NDC          string `json:"ndc,omitempty"`
	LabelName    string `json:"label_name"`
	GenericName  string `json:"generic_name,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`

	// Brand/generic classification.
	DrugType  string `json:"drug_type,omitempty"`
	IsBrand   bool   `json:"is_brand"`
	IsGeneric bool   `json:"is_generic"`

	// Coverage gates.
	PriorAuthorization bool   `json:"prior_authorization"`
	PACode             string `json:"pa_code,omitempty"`

	// Common pricing contract: amount plus unit of measure, nil when the
	// state publishes no pricing for the product.
	Price       *float64 `json:"price,omitempty"`
	PricingUnit string   `json:"pricing_unit,omitempty"`

	// Quantity management.
	MaxQuantity    *float64 `json:"maximum_quantity,omitempty"`
	RefillsAllowed *int     `json:"refills_allowed,omitempty"`

	EffectiveDate string `json:"effective_date,omitempty"`

	// New York extras.
	AlternateCost *float64 `json:"alternate_cost,omitempty"`
	PreferredDrug bool     `json:"preferred_drug,omitempty"`
	PreferredCode string   `json:"preferred_code,omitempty"`
	OTCIndicator  string   `json:"otc_indicator,omitempty"`
	RxType        string   `json:"rx_type,omitempty"`
	AgeRange      string   `json:"age_range,omitempty"`

	// California extras.
	CostCeilingTier      string `json:"cost_ceiling_tier,omitempty"`
	ExtendedDurationDrug bool   `json:"extended_duration_drug,omitempty"`
	NonCapitatedDrug     bool   `json:"non_capitated_drug,omitempty"`
	CCSPanelAuthority    string `json:"ccs_panel_authority,omitempty"`

	// Texas extras.
	PDLPARequired      bool     `json:"pdl_pa_required,omitempty"`
	ClinicalPARequired bool     `json:"clinical_pa_required,omitempty"`
	RetailPrice        *float64 `json:"retail_price,omitempty"`
	LTCPrice           *float64 `json:"ltc_price,omitempty"`
	SpecialtyPrice     *float64 `json:"specialty_price,omitempty"`
	Price340B          *float64 `json:"price_340b,omitempty"`
	MedicaidActive     bool     `json:"medicaid_active,omitempty"`
	CHIPActive         bool     `json:"chip_active,omitempty"`
	CSHCNActive        bool     `json:"cshcn_active,omitempty"`
	KHCActive          bool     `json:"khc_active,omitempty"`
	HTWActive          bool     `json:"htw_active,omitempty"`
	TherapeuticClass   string   `json:"therapeutic_class,omitempty"`
	PackageSize        string   `json:"package_size,omitempty"`
	PackageUnit        string   `json:"package_unit,omitempty"`

	// Ohio extras.
	Tier          string `json:"tier,omitempty"`
	StepTherapy   string `json:"step_therapy,omitempty"`
	QuantityLimit string `json:"quantity_limit,omitempty"`
	IsOTC         bool   `json:"is_otc,omitempty"`

	// Illinois extras plus enrichment provenance. DrugName is the name as
	// the recipient source spells it, preserved even when the donor's
	// label/generic names are borrowed over LabelName/GenericName.
	DrugName        string          `json:"drug_name,omitempty"`
	DosageForm      string          `json:"dosage_form,omitempty"`
	PDLStatus       string          `json:"pdl_status,omitempty"`
	NDCSource       string          `json:"ndc_source,omitempty"`
	MatchConfidence MatchConfidence `json:"match_confidence,omitempty"`

	// NADAC pricing join output (California).
	NadacPerUnit           *float64 `json:"nadac_per_unit,omitempty"`
	NadacPricingUnit       string   `json:"nadac_pricing_unit,omitempty"`
	NadacPackageSize       *float64 `json:"nadac_package_size,omitempty"`
	NadacEffectiveDate     string   `json:"nadac_effective_date,omitempty"`
	DispensingFee          *float64 `json:"dispensing_fee,omitempty"`
	EstimatedReimbursement *float64 `json:"estimated_reimbursement,omitempty"`
}
