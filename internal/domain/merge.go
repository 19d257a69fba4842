package domain

import "sort"

// MergeRisks unions the two rule passes. Findings are keyed by
// (type, severity); when both passes produced the same key, the primary
// pass wins. The result is ordered HIGH to LOW, stable within a band, so
// merging a list with itself is a no-op.
func MergeRisks(primary, legacy []Risk) []Risk {
	type riskKey struct {
		t RiskType
		s Severity
	}

	seen := make(map[riskKey]bool, len(primary)+len(legacy))
	merged := make([]Risk, 0, len(primary)+len(legacy))
	for _, pass := range [][]Risk{primary, legacy} {
		for _, r := range pass {
			k := riskKey{r.Type, r.Severity}
			if seen[k] {
				continue
			}
			seen[k] = true
			merged = append(merged, r)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Severity.Rank() > merged[j].Severity.Rank()
	})
	return merged
}

// SummarizeRisks reduces a risk list to counts and the highest severity.
// HighestSeverity is empty for an empty list.
func SummarizeRisks(risks []Risk) RiskSummary {
	summary := RiskSummary{
		Total:      len(risks),
		BySeverity: make(map[Severity]int, 3),
		ByType:     make(map[RiskType]int, len(risks)),
	}
	for _, r := range risks {
		summary.BySeverity[r.Severity]++
		summary.ByType[r.Type]++
		if r.Severity.Rank() > summary.HighestSeverity.Rank() {
			summary.HighestSeverity = r.Severity
		}
	}
	return summary
}
