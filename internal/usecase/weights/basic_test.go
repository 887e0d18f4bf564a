package weights

import (
	"testing"

	"github.com/meshly/contactrank/internal/domain/aspect"
	"github.com/meshly/contactrank/internal/domain/goal"
)

func TestBasicWeights_Normalized(t *testing.T) {
	for _, q := range []string{"", "senior golang engineer", "need help"} {
		v := basicWeights(q, nil)
		if !v.IsNormalized() {
			t.Errorf("query %q: sum = %v, want 1.0", q, v.Sum())
		}
	}
}

func TestBasicWeights_TriggerBumpsAspect(t *testing.T) {
	neutral := basicWeights("nothing matching at all", nil)
	bumped := basicWeights("remote golang developer", nil)
	if bumped[aspect.Location] <= neutral[aspect.Location] {
		t.Errorf("remote trigger should raise location: %v vs %v",
			bumped[aspect.Location], neutral[aspect.Location])
	}
	if bumped[aspect.Skills] <= neutral[aspect.Skills] {
		t.Errorf("golang/developer triggers should raise skills: %v vs %v",
			bumped[aspect.Skills], neutral[aspect.Skills])
	}
}

func TestBasicWeights_NoTriggersIsUniform(t *testing.T) {
	v := basicWeights("zzz qqq", nil)
	for _, a := range aspect.All() {
		if v[a] != v[aspect.Skills] {
			t.Errorf("expected flat distribution, %s = %v vs %v", a, v[a], v[aspect.Skills])
		}
	}
}

func TestBasicWeights_GoalMultipliersApply(t *testing.T) {
	v := basicWeights("zzz qqq", &goal.Goal{Type: goal.Mentorship})
	if v[aspect.Experience] <= v[aspect.Company] {
		t.Errorf("mentorship should favor experience: %v vs %v",
			v[aspect.Experience], v[aspect.Company])
	}
}
