package medicaid

import "testing"

func donorsForTest() []donorIndex {
	ca := []FormularyRecord{
		{NDC: "00002143380", LabelName: "HUMALOG", GenericName: "INSULIN LISPRO"},
		{NDC: "00002151101", LabelName: "TRULICITY 0.75MG/0.5ML", GenericName: "DULAGLUTIDE"},
	}
	ny := []FormularyRecord{
		{NDC: "00003089421", LabelName: "HUMALOG", GenericName: "INSULIN LISPRO (NY)"},
		{NDC: "00003089422", LabelName: "ELIQUIS 5MG TAB", GenericName: "APIXABAN"},
	}
	return []donorIndex{
		buildDonorIndex("CA", ca),
		buildDonorIndex("NY", ny),
	}
}

func TestEnrichExactMatchPrefersFirstDonor(t *testing.T) {
	recipients := []FormularyRecord{{LabelName: "Humalog", DrugName: "Humalog"}}

	out := EnrichByName(recipients, donorsForTest())
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}

	got := out[0]
	if got.MatchConfidence != ConfidenceHigh {
		t.Errorf("confidence = %q, want high", got.MatchConfidence)
	}
	// CA is tried before NY, so the CA record wins even though NY also has
	// an exact match.
	if got.NDC != "00002143380" || got.NDCSource != "CA" {
		t.Errorf("ndc = %q from %q, want CA donor", got.NDC, got.NDCSource)
	}
	if got.GenericName != "INSULIN LISPRO" {
		t.Errorf("generic = %q", got.GenericName)
	}
}

func TestEnrichPrefixMatchIsMedium(t *testing.T) {
	recipients := []FormularyRecord{{LabelName: "ELIQUIS 5MG TAB 60CT", DrugName: "ELIQUIS 5MG TAB 60CT"}}

	out := EnrichByName(recipients, donorsForTest())
	got := out[0]
	if got.MatchConfidence != ConfidenceMedium {
		t.Errorf("confidence = %q, want medium", got.MatchConfidence)
	}
	if got.NDC != "00003089422" || got.NDCSource != "NY" {
		t.Errorf("ndc = %q from %q, want NY donor", got.NDC, got.NDCSource)
	}
}

func TestEnrichNoMatchClearsIdentifier(t *testing.T) {
	recipients := []FormularyRecord{{LabelName: "COMPLETELY UNKNOWN DRUG", DrugName: "COMPLETELY UNKNOWN DRUG"}}

	out := EnrichByName(recipients, donorsForTest())
	got := out[0]
	if got.MatchConfidence != ConfidenceNone {
		t.Errorf("confidence = %q, want none", got.MatchConfidence)
	}
	if got.NDC != "" || got.NDCSource != "" || got.GenericName != "" {
		t.Errorf("unmatched record must carry no borrowed identity: %+v", got)
	}
	if got.DrugName != "COMPLETELY UNKNOWN DRUG" {
		t.Errorf("source drug name must survive enrichment, got %q", got.DrugName)
	}
}

// Every record must satisfy: confidence none if and only if no NDC.
func TestEnrichConfidenceNDCInvariant(t *testing.T) {
	recipients := []FormularyRecord{
		{LabelName: "HUMALOG"},
		{LabelName: "TRULICITY 0.75MG/0.5ML PEN"},
		{LabelName: "NO SUCH PRODUCT"},
		{LabelName: ""},
	}

	for _, rec := range EnrichByName(recipients, donorsForTest()) {
		hasNDC := rec.NDC != ""
		if (rec.MatchConfidence == ConfidenceNone) == hasNDC {
			t.Errorf("invariant violated: confidence=%q ndc=%q", rec.MatchConfidence, rec.NDC)
		}
	}
}
