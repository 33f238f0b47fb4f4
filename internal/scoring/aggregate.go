package scoring

import "math"

// CriterionScoreEntry is the per-criterion outcome of one scoring run.
// Ephemeral: rebuilt on every run, stored only inside the ScoringResult.
type CriterionScoreEntry struct {
	Area             string           `json:"area"`
	CriterionID      string           `json:"criterion_id"`
	BaseScore        float64          `json:"base_score"`
	AdjustedScore    float64          `json:"adjusted_score"`
	MaxScore         float64          `json:"max_score"`
	Weight           float64          `json:"weight"`
	InteractionLevel InteractionLevel `json:"interaction_level"`
}

// interactionMultipliers scale raw criterion scores by engagement. Sparse
// transcripts make the upstream ratios unreliable, so low engagement damps
// them; the aggregation floor below keeps the result from collapsing to zero.
var interactionMultipliers = map[InteractionLevel]float64{
	InteractionMinimal:   0.60,
	InteractionBasic:     0.75,
	InteractionAdequate:  0.90,
	InteractionThorough:  0.95,
	InteractionExtensive: 1.00,
}

// interactionFloors is the minimum rule-based score per engagement tier.
var interactionFloors = map[InteractionLevel]int{
	InteractionMinimal:   20,
	InteractionBasic:     30,
	InteractionAdequate:  40,
	InteractionThorough:  50,
	InteractionExtensive: 60,
}

// InteractionFloor returns the minimum rule-based score for a level.
func InteractionFloor(level InteractionLevel) int {
	return interactionFloors[level]
}

// BuildCriterionEntries evaluates every rubric criterion against the metrics
// record. Criteria whose domain has no data produce no entry; the aggregator
// renormalizes over the weights actually represented.
func BuildCriterionEntries(r Rubric, m *PerformanceMetrics, level InteractionLevel) []CriterionScoreEntry {
	mult := interactionMultipliers[level]
	var entries []CriterionScoreEntry
	for _, area := range r.CompetencyAreas {
		for _, c := range area.Criteria {
			base, ok := EvaluateCriterion(c.ID, m)
			if !ok {
				continue
			}
			entries = append(entries, CriterionScoreEntry{
				Area:             area.Name,
				CriterionID:      c.ID,
				BaseScore:        base,
				AdjustedScore:    clampScore(base * mult),
				MaxScore:         c.MaxScore,
				Weight:           c.Weight,
				InteractionLevel: level,
			})
		}
	}
	return entries
}

// AggregateScore rolls criterion entries up through the rubric weights into
// the 0-100 rule-based score, then applies the interaction floor. Areas and
// criteria without entries drop out of the weighted average instead of
// dragging it to zero.
func AggregateScore(r Rubric, entries []CriterionScoreEntry, level InteractionLevel) int {
	byCriterion := make(map[string]CriterionScoreEntry, len(entries))
	for _, e := range entries {
		byCriterion[e.CriterionID] = e
	}

	weightedSum := 0.0
	weightTotal := 0.0
	for _, area := range r.CompetencyAreas {
		critSum := 0.0
		critWeight := 0.0
		for _, c := range area.Criteria {
			e, ok := byCriterion[c.ID]
			if !ok {
				continue
			}
			critSum += (e.AdjustedScore / e.MaxScore) * c.Weight
			critWeight += c.Weight
		}
		if critWeight == 0 {
			continue
		}
		areaScore := critSum / critWeight // 0..1
		weightedSum += areaScore * area.Weight
		weightTotal += area.Weight
	}

	score := 0
	if weightTotal > 0 {
		score = int(math.Round(weightedSum / weightTotal * 100))
	}
	if floor := interactionFloors[level]; score < floor {
		score = floor
	}
	if score > 100 {
		score = 100
	}
	return score
}
