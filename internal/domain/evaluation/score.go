package evaluation

// CompositeScore combines up to three role scores for one question into a
// single value. Scores at or below zero are unset and are excluded from
// the denominator entirely instead of diluting the average:
//
//	none set          -> 0
//	one set           -> that value
//	two set           -> truncated mean of the two
//	all three set     -> (employee*2 + supervisor*4 + manager*4) / 10
//
// Integer division truncates, matching the source system.
func CompositeScore(employee, supervisor, manager int64) int64 {
	set := make([]int64, 0, 3)
	for _, score := range []int64{employee, supervisor, manager} {
		if score > 0 {
			set = append(set, score)
		}
	}
	switch len(set) {
	case 0:
		return 0
	case 1:
		return set[0]
	case 2:
		return (set[0] + set[1]) / 2
	default:
		return (employee*2 + supervisor*4 + manager*4) / 10
	}
}

// SumTotalScores accumulates the composite scores of an assessment's
// answers. The summary's averageScore is this sum, not a mean; the source
// system accumulates and downstream reporting depends on it.
func SumTotalScores(answers []Answer) float64 {
	var sum int64
	for _, answer := range answers {
		sum += answer.TotalScore
	}
	return float64(sum)
}

// DeriveState reports the assessment's lifecycle stage from which roles
// have scored, terminal-most first. A manager score alone completes the
// assessment; roles may submit in any order.
func DeriveState(answers []Answer) string {
	state := StateStarted
	for _, answer := range answers {
		switch {
		case answer.ScoreByManager > 0:
			return StateCompleted
		case answer.ScoreBySupervisor > 0:
			state = StateSupervisorReviewed
		case answer.ScoreByEmployee > 0 && state == StateStarted:
			state = StateSelfAssessed
		}
	}
	return state
}
