package medicaid

// formularyStatistics computes the aggregate block returned with every
// formulary search. The base counts come from the matched set; pricing
// averages that depend on the NADAC join (California) come from the
// returned page, since the join is only applied to the page.
func formularyStatistics(state string, totalRecords int, matched, page []FormularyRecord) map[string]interface{} {
	stats := map[string]interface{}{
		"total_formulary_records": totalRecords,
		"matching_records":        len(matched),
	}

	paCount := 0
	for _, r := range matched {
		if r.PriorAuthorization {
			paCount++
		}
	}
	stats["pa_required_count"] = paCount

	switch state {
	case "CA":
		extended := 0
		for _, r := range matched {
			if r.ExtendedDurationDrug {
				extended++
			}
		}
		stats["extended_duration_count"] = extended

		withPricing := 0
		for _, r := range page {
			if r.NadacPerUnit != nil {
				withPricing++
			}
		}
		stats["with_pricing_count"] = withPricing
		stats["avg_estimated_reimbursement"] = avgFormularyPrice(page, func(r FormularyRecord) *float64 {
			return r.EstimatedReimbursement
		})
		stats["avg_nadac_per_unit"] = avgFormularyPrice(page, func(r FormularyRecord) *float64 {
			return r.NadacPerUnit
		})

	case "NY":
		stats["avg_mra_cost"] = avgFormularyPrice(matched, func(r FormularyRecord) *float64 {
			return r.Price
		})
		preferred := 0
		for _, r := range matched {
			if r.PreferredDrug {
				preferred++
			}
		}
		stats["preferred_count"] = preferred

	case "TX":
		stats["avg_retail_price"] = avgFormularyPrice(matched, func(r FormularyRecord) *float64 {
			return r.RetailPrice
		})
		clinicalPA := 0
		for _, r := range matched {
			if r.ClinicalPARequired {
				clinicalPA++
			}
		}
		stats["clinical_pa_count"] = clinicalPA

	case "OH":
		tiers := make(map[string]int)
		stepTherapy := 0
		for _, r := range matched {
			if r.Tier != "" {
				tiers[r.Tier]++
			}
			if yes(r.StepTherapy) {
				stepTherapy++
			}
		}
		stats["tier_counts"] = tiers
		stats["step_therapy_count"] = stepTherapy

	case "IL":
		confidence := map[string]int{
			string(ConfidenceHigh):   0,
			string(ConfidenceMedium): 0,
			string(ConfidenceNone):   0,
		}
		withNDC := 0
		for _, r := range matched {
			confidence[string(r.MatchConfidence)]++
			if r.NDC != "" {
				withNDC++
			}
		}
		stats["match_confidence_counts"] = confidence
		stats["with_ndc_count"] = withNDC
	}

	stats["distinct_generic_names"] = distinctGenericNames(matched)
	return stats
}
