package medicaid

// Texas VDP pipe-delimited formulary column positions. The file carries 60+
// columns; only the ones the common shape and TX extras need are named.
const (
	txColGeneric      = 0  // Drug_Generic
	txColNDC          = 6  // Drug_NDC
	txColDescr        = 7  // Drug_Descr
	txColPkg          = 8  // Drug_Pkg
	txColUnit         = 9  // Drug_Unit
	txColMedCode      = 13 // Drug_Med_Code
	txColCHIPCode     = 18 // Drug_chip_code
	txColCSHCNCode    = 22 // Drug_cshcn_code
	txColKHCCode      = 27 // Drug_khc_code
	txColHTWCode      = 29 // Drug_htw_code
	txColPDLPA        = 32 // Drug_PDL_pa_required
	txColClinicalPA   = 35 // Drug_Clinical_pa_required
	txColRetail       = 36 // Drug_Retail
	txColRetailEff    = 37 // Drug_Retail_EffDate
	txColLTC          = 38 // Drug_LTC
	txColSPC          = 40 // Drug_SPC
	txCol340B         = 10 // Drug_340B
	txColTherapeutic  = 44 // Drug_MKID_Desc
	txColManufacturer = 53 // Drug_manufacturer

	txMinFields = 54
)

// NormalizeTexas maps VDP positional rows into the common formulary shape.
// Texas publishes native pricing, so the common Price is the retail price.
// The HTW flag is encoded inverted in the source: anything but "No" counts
// as active.
func NormalizeTexas(rows [][]string) []FormularyRecord {
	records := make([]FormularyRecord, 0, len(rows))
	for _, values := range rows {
		if len(values) < txMinFields {
			continue
		}
		ndc := at(values, txColNDC)
		generic := at(values, txColGeneric)
		if ndc == "" || generic == "" {
			continue
		}

		pdlPA := yes(at(values, txColPDLPA))
		clinicalPA := yes(at(values, txColClinicalPA))
		retail := parseFloat(at(values, txColRetail))

		records = append(records, FormularyRecord{
			NDC:                ndc,
			LabelName:          at(values, txColDescr),
			GenericName:        generic,
			Manufacturer:       at(values, txColManufacturer),
			PriorAuthorization: pdlPA || clinicalPA,
			PDLPARequired:      pdlPA,
			ClinicalPARequired: clinicalPA,
			Price:              retail,
			PricingUnit:        at(values, txColUnit),
			RetailPrice:        retail,
			LTCPrice:           parseFloat(at(values, txColLTC)),
			SpecialtyPrice:     parseFloat(at(values, txColSPC)),
			Price340B:          parseFloat(at(values, txCol340B)),
			MedicaidActive:     yes(at(values, txColMedCode)),
			CHIPActive:         yes(at(values, txColCHIPCode)),
			CSHCNActive:        yes(at(values, txColCSHCNCode)),
			KHCActive:          yes(at(values, txColKHCCode)),
			HTWActive:          at(values, txColHTWCode) != "No",
			TherapeuticClass:   at(values, txColTherapeutic),
			PackageSize:        at(values, txColPkg),
			PackageUnit:        at(values, txColUnit),
			EffectiveDate:      at(values, txColRetailEff),
		})
	}
	return records
}
