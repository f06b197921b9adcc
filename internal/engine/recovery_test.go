package engine

import "testing"

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestComputeRecoveryComponents_AllIdeal(t *testing.T) {
	in := RecoveryInput{
		SleepHours:   floatPtr(8),
		SleepQuality: intPtr(5),
		Energy:       intPtr(5),
		Stress:       intPtr(1),
		Soreness:     floatPtr(1),
	}
	got := ComputeRecoveryComponents(in, 8)

	if got.Score != 100 {
		t.Errorf("Score = %d, want 100", got.Score)
	}
	if got.Measured != 4 {
		t.Errorf("Measured = %d, want 4", got.Measured)
	}
}

func TestComputeRecoveryComponents_AllWorst(t *testing.T) {
	in := RecoveryInput{
		SleepHours:   floatPtr(0),
		SleepQuality: intPtr(1),
		Energy:       intPtr(1),
		Stress:       intPtr(5),
		Soreness:     floatPtr(5),
	}
	got := ComputeRecoveryComponents(in, 8)

	if got.Score != 0 {
		t.Errorf("Score = %d, want 0", got.Score)
	}
}

func TestComputeRecoveryComponents_ScoreAlwaysInRange(t *testing.T) {
	cases := []RecoveryInput{
		{},
		{SleepHours: floatPtr(14), SleepQuality: intPtr(5)}, // oversleep caps at 100
		{Energy: intPtr(5), Stress: intPtr(1)},
		{SleepHours: floatPtr(-2)},
		{Energy: intPtr(9), Stress: intPtr(-3)}, // out-of-scale values clamp
	}
	for i, in := range cases {
		got := ComputeRecoveryComponents(in, 8)
		if got.Score < 0 || got.Score > 100 {
			t.Errorf("case %d: Score = %d, want within [0,100]", i, got.Score)
		}
	}
}

func TestComputeRecoveryComponents_MissingIsNeutralNotWorst(t *testing.T) {
	// Missing stress with everything else ideal must outscore missing
	// stress with everything else at its worst - absence can't act as a
	// hidden worst value.
	ideal := ComputeRecoveryComponents(RecoveryInput{
		SleepHours:   floatPtr(8),
		SleepQuality: intPtr(5),
		Energy:       intPtr(5),
		Soreness:     floatPtr(1),
	}, 8)
	worst := ComputeRecoveryComponents(RecoveryInput{
		SleepHours:   floatPtr(1),
		SleepQuality: intPtr(1),
		Energy:       intPtr(1),
		Soreness:     floatPtr(5),
	}, 8)

	if ideal.Score <= worst.Score {
		t.Errorf("ideal-with-missing-stress (%d) <= worst-with-missing-stress (%d)", ideal.Score, worst.Score)
	}
	if ideal.Stress != NeutralComponent || worst.Stress != NeutralComponent {
		t.Errorf("missing stress component = %.0f / %.0f, want neutral %.0f",
			ideal.Stress, worst.Stress, NeutralComponent)
	}
}

func TestComputeRecoveryComponents_NoDataIsFlagged(t *testing.T) {
	got := ComputeRecoveryComponents(RecoveryInput{}, 8)
	if got.Measured != 0 {
		t.Errorf("Measured = %d, want 0 for empty input", got.Measured)
	}
	if got.Score != 50 {
		t.Errorf("Score = %d, want neutral 50 for empty input", got.Score)
	}
}

func TestSleepScore(t *testing.T) {
	tests := []struct {
		name    string
		hours   *float64
		quality *int
		want    float64
		wantOK  bool
	}{
		{"full night best quality", floatPtr(8), intPtr(5), 100, true},
		{"full night worst quality", floatPtr(8), intPtr(1), 50, true},
		{"oversleep caps at goal", floatPtr(11), intPtr(5), 100, true},
		{"half night neutral quality", floatPtr(4), nil, 37.5, true},
		{"missing duration", nil, intPtr(5), NeutralComponent, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SleepScore(tt.hours, tt.quality, 8)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetTrainingRecommendation(t *testing.T) {
	tests := []struct {
		score int
		level string
	}{
		{100, "intenso"},
		{80, "intenso"},
		{79, "normal"},
		{60, "normal"},
		{59, "leve"},
		{40, "leve"},
		{39, "descanso"},
		{0, "descanso"},
	}
	for _, tt := range tests {
		got := GetTrainingRecommendation(tt.score)
		if got.Level != tt.level {
			t.Errorf("GetTrainingRecommendation(%d).Level = %q, want %q", tt.score, got.Level, tt.level)
		}
		if got.Rationale == "" {
			t.Errorf("GetTrainingRecommendation(%d) has empty rationale", tt.score)
		}
	}
}
