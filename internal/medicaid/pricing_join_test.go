package medicaid

import (
	"math"
	"testing"
)

func TestDefaultPackageSize(t *testing.T) {
	tests := []struct {
		label string
		want  float64
	}{
		{"HUMALOG 100 UNIT/ML VIAL 10 ML", 10}, // "UNIT/ML" is not a size token
		{"TRULICITY 0.75MG/0.5ML PEN", 0.5},
		{"LISINOPRIL 10MG TAB", 1.0},
		{"SOLUTION 5 ml", 5},
		{"", 1.0},
	}
	for _, tt := range tests {
		if got := DefaultPackageSize(tt.label); got != tt.want {
			t.Errorf("DefaultPackageSize(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestJoinPicksLatestEffectiveDate(t *testing.T) {
	pricing := []PricingRecord{
		{NDC: "00002143380", PerUnit: floatPtr(1.00), EffectiveDate: "2024-01-15"},
		{NDC: "00002143380", PerUnit: floatPtr(2.50), EffectiveDate: "2024-06-01"},
		{NDC: "00002143380", PerUnit: floatPtr(1.80), EffectiveDate: "2024-03-10"},
	}
	records := []FormularyRecord{{NDC: "0000-2143-380", LabelName: "SOME TAB"}}

	joined := JoinNADACPricing(records, pricing, nil, CaliforniaDispensingFee)
	got := joined[0]
	if got.NadacPerUnit == nil || *got.NadacPerUnit != 2.50 {
		t.Fatalf("per unit = %v, want 2.50 (latest effective date)", got.NadacPerUnit)
	}
	if got.NadacEffectiveDate != "2024-06-01" {
		t.Errorf("effective date = %q", got.NadacEffectiveDate)
	}

	want := 2.50*1.0 + CaliforniaDispensingFee
	if math.Abs(*got.EstimatedReimbursement-want) > 1e-9 {
		t.Errorf("reimbursement = %v, want %v", *got.EstimatedReimbursement, want)
	}
}

func TestJoinAppliesPackageSizeMultiplier(t *testing.T) {
	pricing := []PricingRecord{
		{NDC: "123", PerUnit: floatPtr(0.50), PricingUnit: "ML", EffectiveDate: "2024-06-01"},
	}
	records := []FormularyRecord{{NDC: "123", LabelName: "INJECTION 10 ML VIAL"}}

	joined := JoinNADACPricing(records, pricing, nil, CaliforniaDispensingFee)
	got := joined[0]
	if got.NadacPackageSize == nil || *got.NadacPackageSize != 10 {
		t.Fatalf("package size = %v, want 10", got.NadacPackageSize)
	}
	want := 0.50*10 + CaliforniaDispensingFee
	if math.Abs(*got.EstimatedReimbursement-want) > 1e-9 {
		t.Errorf("reimbursement = %v, want %v", *got.EstimatedReimbursement, want)
	}
}

func TestJoinInjectablePackageSizeFunc(t *testing.T) {
	pricing := []PricingRecord{
		{NDC: "123", PerUnit: floatPtr(2.0), EffectiveDate: "2024-06-01"},
	}
	records := []FormularyRecord{{NDC: "123", LabelName: "ANYTHING"}}

	fixed := func(string) float64 { return 30 }
	joined := JoinNADACPricing(records, pricing, fixed, 0)
	if got := *joined[0].EstimatedReimbursement; got != 60 {
		t.Errorf("reimbursement with injected size func = %v, want 60", got)
	}
}

func TestJoinLeavesUnmatchedRecordsUnpriced(t *testing.T) {
	pricing := []PricingRecord{
		{NDC: "999", PerUnit: floatPtr(1.0), EffectiveDate: "2024-06-01"},
	}
	records := []FormularyRecord{
		{NDC: "123", LabelName: "NOT IN NADAC"},
		{LabelName: "NO NDC AT ALL"},
	}

	for _, rec := range JoinNADACPricing(records, pricing, nil, CaliforniaDispensingFee) {
		if rec.NadacPerUnit != nil || rec.EstimatedReimbursement != nil {
			t.Errorf("unmatched record must stay unpriced: %+v", rec)
		}
	}
}
