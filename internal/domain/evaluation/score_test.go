package evaluation

import "testing"

func TestCompositeScoreAllUnset(t *testing.T) {
	if got := CompositeScore(0, 0, 0); got != 0 {
		t.Fatalf("expected 0 for all unset, got %d", got)
	}
	if got := CompositeScore(-1, 0, -3); got != 0 {
		t.Fatalf("expected 0 for negative scores, got %d", got)
	}
}

func TestCompositeScoreSingleRoleIsSymmetric(t *testing.T) {
	cases := [][3]int64{{5, 0, 0}, {0, 5, 0}, {0, 0, 5}}
	for _, c := range cases {
		if got := CompositeScore(c[0], c[1], c[2]); got != 5 {
			t.Fatalf("CompositeScore(%v) = %d, want 5", c, got)
		}
	}
}

func TestCompositeScoreTwoRolesIsTruncatedMean(t *testing.T) {
	cases := []struct {
		scores [3]int64
		want   int64
	}{
		{[3]int64{3, 7, 0}, 5},
		{[3]int64{3, 0, 7}, 5},
		{[3]int64{0, 3, 7}, 5},
		{[3]int64{3, 4, 0}, 3}, // 7/2 truncates
	}
	for _, c := range cases {
		if got := CompositeScore(c.scores[0], c.scores[1], c.scores[2]); got != c.want {
			t.Fatalf("CompositeScore(%v) = %d, want %d", c.scores, got, c.want)
		}
	}
}

func TestCompositeScoreThreeRolesIsWeighted(t *testing.T) {
	// (4*2 + 6*4 + 8*4) / 10 = 64/10 truncated to 6.
	if got := CompositeScore(4, 6, 8); got != 6 {
		t.Fatalf("expected weighted composite 6, got %d", got)
	}
	// Unset roles must not be zero-substituted into the weighted branch:
	// (10, 10, 0) is a two-role mean, not (10*2+10*4)/10.
	if got := CompositeScore(10, 10, 0); got != 10 {
		t.Fatalf("expected two-role mean 10, got %d", got)
	}
}

func TestSumTotalScoresAccumulates(t *testing.T) {
	answers := []Answer{{TotalScore: 4}, {TotalScore: 6}, {TotalScore: 0}}
	if got := SumTotalScores(answers); got != 10 {
		t.Fatalf("expected sum 10, got %v", got)
	}
	if got := SumTotalScores(nil); got != 0 {
		t.Fatalf("expected sum 0 for no answers, got %v", got)
	}
}

func TestDeriveState(t *testing.T) {
	cases := []struct {
		name    string
		answers []Answer
		want    string
	}{
		{"no answers", nil, StateStarted},
		{"answers without scores", []Answer{{}}, StateStarted},
		{"employee only", []Answer{{ScoreByEmployee: 3}}, StateSelfAssessed},
		{"supervisor only", []Answer{{ScoreBySupervisor: 4}}, StateSupervisorReviewed},
		{"employee then supervisor", []Answer{{ScoreByEmployee: 3}, {ScoreBySupervisor: 4}}, StateSupervisorReviewed},
		{"manager without supervisor", []Answer{{ScoreByEmployee: 3}, {ScoreByManager: 5}}, StateCompleted},
		{"manager only", []Answer{{ScoreByManager: 5}}, StateCompleted},
	}
	for _, c := range cases {
		if got := DeriveState(c.answers); got != c.want {
			t.Fatalf("%s: DeriveState = %q, want %q", c.name, got, c.want)
		}
	}
}
