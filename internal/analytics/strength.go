package analytics

import "FlowScope/internal/model"

// Weights of the model strength score. They reward models that are accurate
// and stable while penalizing slower relative inference time.
const (
	weightAccuracy   = 0.30
	weightPrecision  = 0.25
	weightStability  = 0.25
	weightTimeScaled = 0.20

	// minMaxTime floors the normalization divisor. When every model reports
	// an inference time of 0, timeScaled stays 0 for all of them.
	minMaxTime = 1e-9
)

// ModelStrength combines each model's evaluation metrics into one comparable
// score, rounded to 2 decimals. Inference time is scaled against the slowest
// model in the map, so the result depends on the full current map and is
// recomputed from scratch on every call.
func ModelStrength(evals map[string]model.ModelEvalStats) map[string]float64 {
	scores := make(map[string]float64, len(evals))
	if len(evals) == 0 {
		return scores
	}

	maxTime := minMaxTime
	for _, e := range evals {
		if e.InferenceTimeSec > maxTime {
			maxTime = e.InferenceTimeSec
		}
	}

	for name, e := range evals {
		timeScaled := e.InferenceTimeSec / maxTime * 100
		strength := weightAccuracy*pctOrZero(e.PseudoAccuracyPct) +
			weightPrecision*pctOrZero(e.PseudoPrecisionPct) +
			weightStability*pctOrZero(e.StabilityPct) -
			weightTimeScaled*timeScaled
		scores[name] = roundTo(strength, 2)
	}
	return scores
}

func pctOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
