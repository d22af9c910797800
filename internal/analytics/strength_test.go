package analytics

import (
	"testing"

	"FlowScope/internal/model"
)

func TestModelStrengthScenario(t *testing.T) {
	evals := map[string]model.ModelEvalStats{
		"m1": {InferenceTimeSec: 1, PseudoAccuracyPct: f64(90), PseudoPrecisionPct: f64(80), StabilityPct: f64(70)},
		"m2": {InferenceTimeSec: 2, PseudoAccuracyPct: f64(90), PseudoPrecisionPct: f64(80), StabilityPct: f64(70)},
	}

	scores := ModelStrength(evals)

	// m1: 0.30*90 + 0.25*80 + 0.25*70 - 0.20*50  = 54.50
	// m2: same quality but timeScaled = 100       = 44.50
	if scores["m1"] != 54.50 {
		t.Errorf("expected m1 strength 54.50, got %v", scores["m1"])
	}
	if scores["m2"] != 44.50 {
		t.Errorf("expected m2 strength 44.50, got %v", scores["m2"])
	}
}

func TestModelStrengthIdenticalModelsScoreEqually(t *testing.T) {
	e := model.ModelEvalStats{InferenceTimeSec: 0.5, PseudoAccuracyPct: f64(88), PseudoPrecisionPct: f64(77), StabilityPct: f64(66)}
	scores := ModelStrength(map[string]model.ModelEvalStats{"a": e, "b": e})

	if scores["a"] != scores["b"] {
		t.Errorf("expected equal scores for identical models, got %v and %v", scores["a"], scores["b"])
	}
}

// With all inference times at 0, the time penalty vanishes entirely.
func TestModelStrengthAllZeroTimes(t *testing.T) {
	evals := map[string]model.ModelEvalStats{
		"fast": {PseudoAccuracyPct: f64(90), PseudoPrecisionPct: f64(80), StabilityPct: f64(70)},
	}

	scores := ModelStrength(evals)

	want := 0.30*90 + 0.25*80 + 0.25*70
	if scores["fast"] != roundTo(want, 2) {
		t.Errorf("expected %v with zero time penalty, got %v", roundTo(want, 2), scores["fast"])
	}
}

func TestModelStrengthMissingMetricsScoreAsZero(t *testing.T) {
	evals := map[string]model.ModelEvalStats{
		"partial": {InferenceTimeSec: 1, PseudoAccuracyPct: f64(100)},
	}

	scores := ModelStrength(evals)

	// 0.30*100 - 0.20*100; precision and stability absent.
	if scores["partial"] != 10.00 {
		t.Errorf("expected 10.00 for model with missing metrics, got %v", scores["partial"])
	}
}

func TestModelStrengthEmptyMap(t *testing.T) {
	if scores := ModelStrength(nil); len(scores) != 0 {
		t.Errorf("expected empty score map, got %v", scores)
	}
}
