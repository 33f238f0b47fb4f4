package scoring

import (
	"fmt"
	"math"
)

// weightTolerance is the slack allowed when checking that weights sum to 1.
const weightTolerance = 0.01

// Rubric is a versioned, weighted hierarchy of competency areas and criteria.
// A rubric is immutable once a stored result references it; edits produce a
// new version. Validate is run at ingestion, not per scoring run.
type Rubric struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Version         int              `json:"version"`
	CompetencyAreas []CompetencyArea `json:"competency_areas"`
}

type CompetencyArea struct {
	Name     string      `json:"name" bson:"name"`
	Weight   float64     `json:"weight" bson:"weight"`
	Criteria []Criterion `json:"criteria" bson:"criteria"`
}

// Criterion is the smallest gradable unit. MaxScore is a configurable
// normalizer (100 in current rubrics, but never assumed).
type Criterion struct {
	ID                  string  `json:"id" bson:"id"`
	Description         string  `json:"description" bson:"description"`
	MaxScore            float64 `json:"max_score" bson:"max_score"`
	Weight              float64 `json:"weight" bson:"weight"`
	EvaluationGuideline string  `json:"evaluation_guideline,omitempty" bson:"evaluation_guideline,omitempty"`
}

// Validate checks the sum-to-1 weight invariants. A rubric that fails
// validation must never be used for scoring.
func (r Rubric) Validate() error {
	if len(r.CompetencyAreas) == 0 {
		return fmt.Errorf("%w: rubric %q has no competency areas", ErrInvalidRubric, r.ID)
	}
	areaSum := 0.0
	for _, area := range r.CompetencyAreas {
		areaSum += area.Weight
		if len(area.Criteria) == 0 {
			return fmt.Errorf("%w: area %q has no criteria", ErrInvalidRubric, area.Name)
		}
		critSum := 0.0
		for _, c := range area.Criteria {
			if c.MaxScore <= 0 {
				return fmt.Errorf("%w: criterion %q has max score %v", ErrInvalidRubric, c.ID, c.MaxScore)
			}
			critSum += c.Weight
		}
		if math.Abs(critSum-1.0) > weightTolerance {
			return fmt.Errorf("%w: criterion weights in area %q sum to %.3f", ErrInvalidRubric, area.Name, critSum)
		}
	}
	if math.Abs(areaSum-1.0) > weightTolerance {
		return fmt.Errorf("%w: area weights in rubric %q sum to %.3f", ErrInvalidRubric, r.ID, areaSum)
	}
	return nil
}
