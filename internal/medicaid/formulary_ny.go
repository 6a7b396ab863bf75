package medicaid

// eMedNY reimbursable drugs CSV column positions.
const (
	nyColType        = 0  // TYPE (BND, GEN)
	nyColNDC         = 1  // NDC
	nyColMRACost     = 2  // MRA COST
	nyColAltCost     = 3  // ALTERNATE COST
	nyColDescription = 4  // DESCRIPTION
	nyColPA          = 5  // PA code
	nyColLabeler     = 6  // LABELER
	nyColBasisMRA    = 7  // BASIS OF MRA (ML, EA)
	nyColOTC         = 8  // OTC IND
	nyColGeneric     = 9  // GENERIC NAME
	nyColRxType      = 10 // RX TYPE
	nyColEffective   = 11 // EFFECTIVE DATE
	nyColMaxQty      = 12 // MAXIMUM QUANTITIES
	nyColPreferred   = 13 // PREFERRED DRUG CODE
	nyColAgeRange    = 14 // AGE RANGE
	nyColRefills     = 15 // REFILLS ALLOWED

	nyFieldCount = 16
)

// NormalizeNewYork maps eMedNY positional rows into the common formulary
// shape. A PA code that is neither blank nor "0" means prior authorization
// is required; the raw code is preserved alongside the derived flag.
func NormalizeNewYork(rows [][]string) []FormularyRecord {
	records := make([]FormularyRecord, 0, len(rows))
	for _, values := range rows {
		if len(values) < nyFieldCount {
			continue
		}
		ndc := at(values, nyColNDC)
		generic := at(values, nyColGeneric)
		if ndc == "" || generic == "" {
			continue
		}

		paCode := at(values, nyColPA)
		preferredCode := at(values, nyColPreferred)
		drugType := at(values, nyColType)

		records = append(records, FormularyRecord{
			NDC:                ndc,
			LabelName:          at(values, nyColDescription),
			GenericName:        generic,
			Manufacturer:       at(values, nyColLabeler),
			DrugType:           drugType,
			IsBrand:            drugType == "BND",
			IsGeneric:          drugType == "GEN",
			PriorAuthorization: paCode != "" && paCode != "0",
			PACode:             paCode,
			Price:              parseFloat(at(values, nyColMRACost)),
			PricingUnit:        at(values, nyColBasisMRA),
			AlternateCost:      parseFloat(at(values, nyColAltCost)),
			PreferredDrug:      preferredCode == "Y",
			PreferredCode:      preferredCode,
			OTCIndicator:       at(values, nyColOTC),
			RxType:             at(values, nyColRxType),
			AgeRange:           at(values, nyColAgeRange),
			MaxQuantity:        parseFloat(at(values, nyColMaxQty)),
			RefillsAllowed:     parseInt(at(values, nyColRefills)),
			EffectiveDate:      at(values, nyColEffective),
		})
	}
	return records
}
