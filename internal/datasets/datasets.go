package datasets

import (
	"fmt"
	"time"
)

// Format identifies the wire format a dataset is published in.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatPipe  Format = "pipe"
	FormatExcel Format = "excel"
	FormatJSON  Format = "json"
)

// Descriptor is the static configuration for one upstream dataset.
// Descriptors are defined at process start and never mutated.
type Descriptor struct {
	Key              string
	Name             string
	Category         string
	Description      string
	DownloadURL      string
	Format           Format
	UpdateFrequency  string
	CacheTTL         time.Duration
	EstimatedSize    string
	EstimatedRecords string
	State            string // two-letter code for state formularies, empty otherwise

	// Excel-only: worksheet name and the marker value that begins the
	// header row (title/legend rows above it are discarded).
	Worksheet    string
	HeaderMarker string
}

// Available reports whether the dataset can actually be fetched.
func (d Descriptor) Available() bool {
	return d.DownloadURL != ""
}

// National datasets from data.medicaid.gov.
var (
	NADAC = Descriptor{
		Key:              "NADAC",
		Name:             "NADAC (National Average Drug Acquisition Cost)",
		Category:         "drug_pricing",
		Description:      "Weekly NADAC pricing data for prescription drugs",
		DownloadURL:      "https://download.medicaid.gov/data/nadac-national-average-drug-acquisition-cost-12-25-2024.csv",
		Format:           FormatCSV,
		UpdateFrequency:  "weekly",
		CacheTTL:         24 * time.Hour,
		EstimatedSize:    "123 MB",
		EstimatedRecords: "1,497,925",
	}

	Enrollment = Descriptor{
		Key:              "ENROLLMENT",
		Name:             "Medicaid and CHIP Eligibility Operations and Enrollment Snapshot",
		Category:         "enrollment",
		Description:      "Monthly enrollment and eligibility processing data by state",
		DownloadURL:      "https://download.medicaid.gov/data/pi-dataset-november-2025release.csv",
		Format:           FormatCSV,
		UpdateFrequency:  "monthly",
		CacheTTL:         7 * 24 * time.Hour,
		EstimatedSize:    "3.6 MB",
		EstimatedRecords: "10,098",
	}
)

// State formulary datasets. Each state publishes its covered-drug list in a
// different format with a different schema; the medicaid package owns the
// per-state normalization.
var (
	CaliforniaFormulary = Descriptor{
		Key:              "CA_FORMULARY",
		Name:             "Medi-Cal Rx Approved NDC List",
		Category:         "state_formulary",
		Description:      "California Medi-Cal covered drugs (no native pricing; joined against NADAC)",
		DownloadURL:      "https://medi-calrx.dhcs.ca.gov/cms/medicalrx/static-assets/documents/provider/forms-and-information/Medi-Cal_Rx_Approved_NDC_List.xlsx",
		Format:           FormatExcel,
		UpdateFrequency:  "monthly",
		CacheTTL:         24 * time.Hour,
		EstimatedSize:    "4 MB",
		EstimatedRecords: "~25,000",
		State:            "CA",
		Worksheet:        "NDC",
		HeaderMarker:     "Product ID",
	}

	NewYorkFormulary = Descriptor{
		Key:              "NY_FORMULARY",
		Name:             "eMedNY Reimbursable Drugs Formulary",
		Category:         "state_formulary",
		Description:      "New York Medicaid reimbursable drugs with MRA pricing",
		DownloadURL:      "https://docs.emedny.org/ReimbursableDrugs/MedReimbDrugsFormulary.csv",
		Format:           FormatCSV,
		UpdateFrequency:  "weekly",
		CacheTTL:         24 * time.Hour,
		EstimatedSize:    "8 MB",
		EstimatedRecords: "~30,000",
		State:            "NY",
	}

	TexasFormulary = Descriptor{
		Key:              "TX_FORMULARY",
		Name:             "Texas VDP Formulary",
		Category:         "state_formulary",
		Description:      "Texas Vendor Drug Program formulary with native retail/340B pricing",
		DownloadURL:      "https://www.txvendordrug.com/formulary/formulary-file-download",
		Format:           FormatPipe,
		UpdateFrequency:  "weekly",
		CacheTTL:         24 * time.Hour,
		EstimatedSize:    "9 MB",
		EstimatedRecords: "~28,000",
		State:            "TX",
	}

	OhioFormulary = Descriptor{
		Key:              "OH_FORMULARY",
		Name:             "Ohio SPBM Unified Preferred Drug List",
		Category:         "state_formulary",
		Description:      "Ohio Medicaid single-PBM formulary (tier, step therapy, quantity limits)",
		DownloadURL:      "https://spbm.medicaid.ohio.gov/assets/UnifiedPDL.json",
		Format:           FormatJSON,
		UpdateFrequency:  "monthly",
		CacheTTL:         24 * time.Hour,
		EstimatedSize:    "34 MB",
		EstimatedRecords: "~40,000",
		State:            "OH",
	}

	IllinoisFormulary = Descriptor{
		Key:              "IL_FORMULARY",
		Name:             "Illinois HFS Preferred Drug List",
		Category:         "state_formulary",
		Description:      "Illinois PDL (drug names only; NDCs borrowed from CA/NY via name matching)",
		DownloadURL:      "https://hfs.illinois.gov/content/dam/soi/en/web/hfs/sitecollectiondocuments/pdl10012025.xlsx",
		Format:           FormatExcel,
		UpdateFrequency:  "quarterly",
		CacheTTL:         7 * 24 * time.Hour,
		EstimatedSize:    "1 MB",
		EstimatedRecords: "5,723",
		State:            "IL",
		Worksheet:        "PDL",
		HeaderMarker:     "Drug Name",
	}
)

// All lists every known dataset in catalog order.
func All() []Descriptor {
	return []Descriptor{
		NADAC,
		Enrollment,
		CaliforniaFormulary,
		NewYorkFormulary,
		TexasFormulary,
		OhioFormulary,
		IllinoisFormulary,
	}
}

// ByState returns the formulary descriptor for a two-letter state code.
func ByState(state string) (Descriptor, error) {
	for _, d := range All() {
		if d.State != "" && d.State == state {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("no formulary dataset for state %q", state)
}

// ByCategory returns every dataset in a category.
func ByCategory(category string) []Descriptor {
	var out []Descriptor
	for _, d := range All() {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}
