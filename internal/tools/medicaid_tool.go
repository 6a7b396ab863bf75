package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"medicaidgov/internal/medicaid"
)

// methods accepted by the medicaid_info tool.
const (
	MethodGetNADACPricing        = "get_nadac_pricing"
	MethodCompareDrugPricing     = "compare_drug_pricing"
	MethodGetEnrollmentTrends    = "get_enrollment_trends"
	MethodCompareStateEnrollment = "compare_state_enrollment"
	MethodSearchStateFormulary   = "search_state_formulary"
	MethodListAvailableDatasets  = "list_available_datasets"
)

// toolTimeout bounds one tool call end to end, including any upstream
// dataset downloads a cold cache triggers.
const toolTimeout = 5 * time.Minute

// NewMedicaidInfoTool creates the medicaid_info tool. It dispatches on the
// "method" argument to the service's boundary operations.
func NewMedicaidInfoTool(svc *medicaid.Service) *Tool {
	return &Tool{
		Name:        "medicaid_info",
		DisplayName: "Medicaid Open Data",
		Description: "Query Medicaid open data: NADAC drug pricing, state enrollment trends, and state formulary (covered drug list) searches",
		Category:    "data_sources",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"method": map[string]interface{}{
					"type":        "string",
					"description": "The query to run",
					"enum": []string{
						MethodGetNADACPricing,
						MethodCompareDrugPricing,
						MethodGetEnrollmentTrends,
						MethodCompareStateEnrollment,
						MethodSearchStateFormulary,
						MethodListAvailableDatasets,
					},
				},
				"ndc_code": map[string]interface{}{
					"type":        "string",
					"description": "National Drug Code, with or without separators (get_nadac_pricing)",
				},
				"drug_name": map[string]interface{}{
					"type":        "string",
					"description": "Case-insensitive drug name substring (get_nadac_pricing)",
				},
				"price_date": map[string]interface{}{
					"type":        "string",
					"description": "Exact effective date YYYY-MM-DD (get_nadac_pricing)",
				},
				"ndc_codes": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "NDCs to compare (compare_drug_pricing)",
				},
				"drug_names": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Drug name substrings to compare (compare_drug_pricing)",
				},
				"start_date": map[string]interface{}{
					"type":        "string",
					"description": "Range start YYYY-MM-DD (compare_drug_pricing, get_enrollment_trends)",
				},
				"end_date": map[string]interface{}{
					"type":        "string",
					"description": "Range end YYYY-MM-DD (compare_drug_pricing, get_enrollment_trends)",
				},
				"state": map[string]interface{}{
					"type":        "string",
					"description": "Two-letter state code (get_enrollment_trends, search_state_formulary)",
				},
				"states": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "State codes to compare (compare_state_enrollment)",
				},
				"month": map[string]interface{}{
					"type":        "string",
					"description": "Reporting month YYYY-MM (compare_state_enrollment)",
				},
				"ndc": map[string]interface{}{
					"type":        "string",
					"description": "Exact NDC filter, separator-insensitive (search_state_formulary)",
				},
				"generic_name": map[string]interface{}{
					"type":        "string",
					"description": "Generic name substring filter (search_state_formulary)",
				},
				"label_name": map[string]interface{}{
					"type":        "string",
					"description": "Label name substring filter (search_state_formulary)",
				},
				"requires_pa": map[string]interface{}{
					"type":        "boolean",
					"description": "Filter by prior authorization requirement (search_state_formulary)",
				},
				"tier": map[string]interface{}{
					"type":        "string",
					"description": "Drug tier filter, Ohio only (search_state_formulary)",
				},
				"match_confidence": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"high", "medium", "none"},
					"description": "Enrichment confidence filter, Illinois only (search_state_formulary)",
				},
				"has_ndc": map[string]interface{}{
					"type":        "boolean",
					"description": "Keep only records with (or without) an NDC (search_state_formulary)",
				},
				"min_price": map[string]interface{}{
					"type":        "number",
					"description": "Inclusive lower price bound (search_state_formulary)",
				},
				"max_price": map[string]interface{}{
					"type":        "number",
					"description": "Inclusive upper price bound (search_state_formulary)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Max records to return (default 100, cap 5000)",
				},
				"offset": map[string]interface{}{
					"type":        "integer",
					"description": "Records to skip for pagination",
				},
			},
			"required": []string{"method"},
		},
		Keywords: []string{"medicaid", "nadac", "drug", "pricing", "formulary", "enrollment", "ndc", "healthcare"},
		Execute:  executeMedicaidInfo(svc),
	}
}

func executeMedicaidInfo(svc *medicaid.Service) ExecuteFunc {
	return func(args map[string]interface{}) (string, error) {
		method, _ := args["method"].(string)
		if method == "" {
			return "", fmt.Errorf("method is required")
		}

		ctx, cancel := context.WithTimeout(context.Background(), toolTimeout)
		defer cancel()

		var result interface{}
		var err error
		switch method {
		case MethodGetNADACPricing:
			var p medicaid.PricingParams
			if err := decodeArgs(args, &p); err != nil {
				return "", err
			}
			result, err = svc.GetNADACPricing(ctx, p)
		case MethodCompareDrugPricing:
			var p medicaid.CompareParams
			if err := decodeArgs(args, &p); err != nil {
				return "", err
			}
			result, err = svc.CompareDrugPricing(ctx, p)
		case MethodGetEnrollmentTrends:
			var p medicaid.EnrollmentTrendsParams
			if err := decodeArgs(args, &p); err != nil {
				return "", err
			}
			result, err = svc.GetEnrollmentTrends(ctx, p)
		case MethodCompareStateEnrollment:
			var p medicaid.CompareEnrollmentParams
			if err := decodeArgs(args, &p); err != nil {
				return "", err
			}
			result, err = svc.CompareStateEnrollment(ctx, p)
		case MethodSearchStateFormulary:
			var p medicaid.FormularySearchParams
			if err := decodeArgs(args, &p); err != nil {
				return "", err
			}
			result, err = svc.SearchStateFormulary(ctx, p)
		case MethodListAvailableDatasets:
			result = svc.ListAvailableDatasets()
		default:
			return "", fmt.Errorf("unknown method %q", method)
		}
		if err != nil {
			return "", err
		}

		out, err := json.Marshal(result)
		if err != nil {
			return "", fmt.Errorf("encoding %s result: %w", method, err)
		}
		return string(out), nil
	}
}

// decodeArgs converts the raw argument map into a typed parameter struct by
// round-tripping through JSON, so the tool layer never touches raw fields.
func decodeArgs(args map[string]interface{}, out interface{}) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encoding arguments: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
