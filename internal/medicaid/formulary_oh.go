package medicaid

// NormalizeOhio maps SPBM unified PDL JSON objects into the common
// formulary shape. Ohio publishes no separate generic name; the label name
// stands in for both so name searches behave like the other states.
func NormalizeOhio(rows []map[string]interface{}) []FormularyRecord {
	records := make([]FormularyRecord, 0, len(rows))
	for _, row := range rows {
		ndc := str(row, "NDC")
		label := str(row, "NDC_LABEL_NAME")
		if ndc == "" || label == "" {
			continue
		}

		brandGeneric := str(row, "GENERIC_BRAND")
		records = append(records, FormularyRecord{
			NDC:                ndc,
			LabelName:          label,
			GenericName:        label,
			DrugType:           brandGeneric,
			IsBrand:            brandGeneric == "BRAND",
			IsGeneric:          brandGeneric == "GENERIC",
			PriorAuthorization: str(row, "PRIOR_AUTHORIZATION1") == "Y",
			PACode:             str(row, "PRIOR_AUTHORIZATION1"),
			Tier:               str(row, "DRUG_TIER"),
			StepTherapy:        str(row, "STEP_THERAPY"),
			QuantityLimit:      str(row, "QUANTITY_LIMIT"),
			IsOTC:              str(row, "OTC") == "Y",
			EffectiveDate:      str(row, "Formulary_Effective_Date"),
		})
	}
	return records
}
