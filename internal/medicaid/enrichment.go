package medicaid

import (
	"log"
	"strings"
)

// donorIndex is a name-to-records lookup for one donor state's formulary,
// keyed by uppercased trimmed display/generic name. A name may map to
// several records (same drug, different package sizes); only the first is
// used, a documented precision loss.
type donorIndex struct {
	state   string
	byName  map[string][]FormularyRecord
	ordered []string // insertion order, for deterministic prefix scans
}

func buildDonorIndex(state string, formulary []FormularyRecord) donorIndex {
	idx := donorIndex{state: state, byName: make(map[string][]FormularyRecord)}
	for _, rec := range formulary {
		name := strings.ToUpper(strings.TrimSpace(rec.LabelName))
		if name == "" {
			name = strings.ToUpper(strings.TrimSpace(rec.GenericName))
		}
		if name == "" {
			continue
		}
		if _, ok := idx.byName[name]; !ok {
			idx.ordered = append(idx.ordered, name)
		}
		idx.byName[name] = append(idx.byName[name], rec)
	}
	return idx
}

// firstWords takes the leading n whitespace-separated tokens of a name.
func firstWords(name string, n int) string {
	tokens := strings.Fields(name)
	if len(tokens) > n {
		tokens = tokens[:n]
	}
	return strings.Join(tokens, " ")
}

// EnrichByName borrows NDCs for recipient records (which lack identifiers)
// from donor formularies matched by drug name. Donors are tried in the given
// fixed order; within each tier the first match wins. Confidence tiers:
// exact uppercase name match is high, a first-three-words prefix match in
// either direction is medium, no match is none with the NDC left absent.
func EnrichByName(recipients []FormularyRecord, donors []donorIndex) []FormularyRecord {
	enriched := make([]FormularyRecord, 0, len(recipients))
	matched := 0

	for _, rec := range recipients {
		name := strings.ToUpper(strings.TrimSpace(rec.LabelName))

		out, ok := exactMatch(rec, name, donors)
		if !ok {
			out, ok = prefixMatch(rec, name, donors)
		}
		if ok {
			matched++
		} else {
			out = rec
			out.NDC = ""
			out.GenericName = ""
			out.NDCSource = ""
			out.MatchConfidence = ConfidenceNone
		}
		enriched = append(enriched, out)
	}

	log.Printf("[ENRICH] matched %d / %d recipient records", matched, len(recipients))
	return enriched
}

func exactMatch(rec FormularyRecord, name string, donors []donorIndex) (FormularyRecord, bool) {
	for _, donor := range donors {
		if hits := donor.byName[name]; len(hits) > 0 {
			return borrow(rec, hits[0], donor.state, ConfidenceHigh), true
		}
	}
	return FormularyRecord{}, false
}

func prefixMatch(rec FormularyRecord, name string, donors []donorIndex) (FormularyRecord, bool) {
	reduced := firstWords(name, 3)
	if reduced == "" {
		return FormularyRecord{}, false
	}
	for _, donor := range donors {
		for _, donorName := range donor.ordered {
			if strings.HasPrefix(donorName, reduced) || strings.HasPrefix(reduced, firstWords(donorName, 3)) {
				return borrow(rec, donor.byName[donorName][0], donor.state, ConfidenceMedium), true
			}
		}
	}
	return FormularyRecord{}, false
}

// borrow copies the donor's identifier and name fields onto the recipient,
// tagging provenance and confidence.
func borrow(rec, donor FormularyRecord, state string, confidence MatchConfidence) FormularyRecord {
	rec.NDC = donor.NDC
	rec.GenericName = donor.GenericName
	if donor.LabelName != "" {
		rec.LabelName = donor.LabelName
	}
	rec.NDCSource = state
	rec.MatchConfidence = confidence
	return rec
}
