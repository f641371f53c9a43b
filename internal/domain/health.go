package domain

// Health labels and color bands.
const (
	HealthLabelNoData    = "No Data"
	HealthLabelExcellent = "Excellent"
	HealthLabelGreat     = "Great!"
	HealthLabelGood      = "Good"
	HealthLabelFair      = "Fair"
	HealthLabelPoor      = "Poor"
	HealthLabelCritical  = "Critical"
)

// HealthBreakdown exposes every bucket count and score term so the UI can
// show how the number was reached.
type HealthBreakdown struct {
	OverBudgetCount int
	HighCount       int
	MediumCount     int
	LowCount        int
	OverPenalty     int
	HighPenalty     int
	MediumPenalty   int
	LowBonus        int
	NoOverBonus     int
}

// Health is the portfolio-wide budget health score.
type Health struct {
	Score     int
	Label     string
	Color     string
	Breakdown HealthBreakdown
}

// ScoreHealth converts per-budget progress records into a single weighted
// health score. Buckets: over-budget, high (not over, progress >= 80),
// medium (not over, 60 <= progress < 80), low (progress < 40). The low
// bucket is counted independently and may overlap the others; that is the
// scoring rule as shipped, not an accident of this port.
func ScoreHealth(progress []BudgetProgress) Health {
	if len(progress) == 0 {
		return Health{Score: 0, Label: HealthLabelNoData, Color: "gray"}
	}

	var b HealthBreakdown
	for _, p := range progress {
		switch {
		case p.OverBudget:
			b.OverBudgetCount++
		case p.Progress >= 80:
			b.HighCount++
		case p.Progress >= 60:
			b.MediumCount++
		}
		if p.Progress < 40 {
			b.LowCount++
		}
	}

	b.OverPenalty = 20 * b.OverBudgetCount
	b.HighPenalty = 10 * b.HighCount
	b.MediumPenalty = 5 * b.MediumCount
	b.LowBonus = 5 * b.LowCount
	if b.OverBudgetCount == 0 {
		b.NoOverBonus = 10
	}

	score := 100 - b.OverPenalty - b.HighPenalty - b.MediumPenalty + b.LowBonus + b.NoOverBonus
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	label, color := healthBand(score)

	return Health{Score: score, Label: label, Color: color, Breakdown: b}
}

func healthBand(score int) (string, string) {
	switch {
	case score >= 90:
		return HealthLabelExcellent, "green"
	case score >= 75:
		return HealthLabelGreat, "green"
	case score >= 60:
		return HealthLabelGood, "blue"
	case score >= 40:
		return HealthLabelFair, "yellow"
	case score >= 20:
		return HealthLabelPoor, "orange"
	default:
		return HealthLabelCritical, "red"
	}
}
