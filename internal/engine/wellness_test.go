package engine

import "testing"

func TestComputeWellnessScore_Extremes(t *testing.T) {
	best := ComputeWellnessScore(WellnessInput{
		Mood:       intPtr(5),
		Stress:     intPtr(1),
		Energy:     intPtr(5),
		SleepScore: floatPtr(100),
	})
	if best.Score != 100 {
		t.Errorf("best-case score = %d, want 100", best.Score)
	}

	worst := ComputeWellnessScore(WellnessInput{
		Mood:       intPtr(1),
		Stress:     intPtr(5),
		Energy:     intPtr(1),
		SleepScore: floatPtr(0),
	})
	if worst.Score != 0 {
		t.Errorf("worst-case score = %d, want 0", worst.Score)
	}
}

func TestComputeWellnessScore_NoDataIsNeutralAndFlagged(t *testing.T) {
	got := ComputeWellnessScore(WellnessInput{})
	if got.HasData {
		t.Error("HasData = true for empty input, want false")
	}
	if got.Score != 50 {
		t.Errorf("Score = %d, want neutral 50", got.Score)
	}
}

func TestComputeWellnessScore_PartialInput(t *testing.T) {
	// Only mood logged: the other signals sit at neutral, not at zero.
	got := ComputeWellnessScore(WellnessInput{Mood: intPtr(5)})
	if !got.HasData {
		t.Error("HasData = false, want true with mood logged")
	}
	// 0.30*100 + 0.25*50 + 0.20*50 + 0.25*50 = 65
	if got.Score != 65 {
		t.Errorf("Score = %d, want 65", got.Score)
	}
}

func TestComputeWellnessScore_ClampsOutOfScaleInput(t *testing.T) {
	got := ComputeWellnessScore(WellnessInput{
		Mood:       intPtr(12),
		Stress:     intPtr(-4),
		Energy:     intPtr(7),
		SleepScore: floatPtr(250),
	})
	if got.Score != 100 {
		t.Errorf("Score = %d, want 100 after clamping", got.Score)
	}
}
