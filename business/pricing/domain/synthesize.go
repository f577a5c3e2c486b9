package domain

// Synthesize picks the reference estimate for a target grade from the
// per-grade aggregates. Graded cards are priced strictly against their own
// grade population; blending grades would corrupt the estimate.
//
// A RAW target with no raw samples falls back to the tightest graded
// population, marked Fallback so the risk estimator de-weights it. The
// fallback never fabricates a price: with no samples anywhere the result
// stays absent and propagates downstream as "no comparable data".
func Synthesize(perGrade map[GradeTier]ReferencePrice, target GradeTier) ReferencePrice {
	if est, ok := perGrade[target]; ok && est.HasEvidence() {
		return est
	}

	if target != GradeRaw {
		return ReferencePrice{}
	}

	best := ReferencePrice{}
	for _, tier := range []GradeTier{GradePSA9, GradePSA10, GradeOther} {
		est, ok := perGrade[tier]
		if !ok || !est.HasEvidence() {
			continue
		}
		if !best.HasEvidence() || est.SpreadRatio.LessThan(best.SpreadRatio) {
			best = est
		}
	}
	if best.HasEvidence() {
		best.Fallback = true
	}
	return best
}
