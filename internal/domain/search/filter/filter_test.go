package filter

import (
	"testing"
	"time"

	"github.com/meshly/contactrank/internal/domain/aspect"
	"github.com/meshly/contactrank/internal/domain/contact"
	"github.com/meshly/contactrank/internal/domain/goal"
)

func makeRecord(payload map[string]any, texts map[aspect.Aspect][]string) contact.Record {
	return contact.Reconstruct("c-1", "u-1", payload, nil, texts, time.Now(), true)
}

func boolPtr(b bool) *bool { return &b }

func TestFilters_EmptyMatchesEverything(t *testing.T) {
	rec := makeRecord(nil, nil)
	var f *Filters
	if !f.IsEmpty() {
		t.Error("nil filters should be empty")
	}
	if !(&Filters{}).Matches(&rec) {
		t.Error("empty filters should match any record")
	}
}

func TestFilters_SkillsSubstringCaseInsensitive(t *testing.T) {
	rec := makeRecord(nil, map[aspect.Aspect][]string{
		aspect.Skills: {"React", "TypeScript"},
	})
	f := &Filters{Skills: []string{"react"}}
	if !f.Matches(&rec) {
		t.Error("expected case-insensitive skills match")
	}
	f = &Filters{Skills: []string{"rust"}}
	if f.Matches(&rec) {
		t.Error("expected no match for absent skill")
	}
}

func TestFilters_CategoriesANDedValuesORed(t *testing.T) {
	rec := makeRecord(nil, map[aspect.Aspect][]string{
		aspect.Skills:   {"Go", "Kubernetes"},
		aspect.Company:  {"Acme Corp"},
		aspect.Location: {"Austin, TX"},
	})

	// OR within a category: one of two skills is enough.
	f := &Filters{Skills: []string{"haskell", "kubernetes"}}
	if !f.Matches(&rec) {
		t.Error("expected OR semantics within skills")
	}

	// AND across categories: matching skills but wrong location fails.
	f = &Filters{Skills: []string{"go"}, Locations: []string{"berlin"}}
	if f.Matches(&rec) {
		t.Error("expected AND semantics across categories")
	}

	f = &Filters{Skills: []string{"go"}, Locations: []string{"austin"}, Companies: []string{"acme"}}
	if !f.Matches(&rec) {
		t.Error("expected all categories to match")
	}
}

func TestFilters_EmptyAspectTextsFailNonEmptyCategory(t *testing.T) {
	rec := makeRecord(nil, nil)
	f := &Filters{Locations: []string{"austin"}}
	if f.Matches(&rec) {
		t.Error("record without location texts should fail location filter")
	}
}

func TestFilters_BooleanFlags(t *testing.T) {
	rec := makeRecord(map[string]any{"hiring": true, "openToWork": false}, nil)

	if !(&Filters{Hiring: boolPtr(true)}).Matches(&rec) {
		t.Error("hiring=true should match")
	}
	if (&Filters{Hiring: boolPtr(false)}).Matches(&rec) {
		t.Error("hiring=false should not match")
	}
	if (&Filters{OpenToWork: boolPtr(true)}).Matches(&rec) {
		t.Error("openToWork=true should not match")
	}

	// Flag requested but absent from payload.
	bare := makeRecord(nil, nil)
	if (&Filters{Hiring: boolPtr(true)}).Matches(&bare) {
		t.Error("missing payload flag should not match")
	}
}

func TestWithPreferences_NilAndEmptyPassThrough(t *testing.T) {
	f := &Filters{Skills: []string{"go"}}
	if got := WithPreferences(f, nil); got != f {
		t.Error("nil goal should return the original filters")
	}
	if got := WithPreferences(f, &goal.Goal{Type: goal.General}); got != f {
		t.Error("goal without preferences should return the original filters")
	}
	if got := WithPreferences(nil, nil); got != nil {
		t.Errorf("nil inputs should stay nil, got %+v", got)
	}
}

func TestWithPreferences_MergesIntoCategories(t *testing.T) {
	f := &Filters{Locations: []string{"berlin"}}
	g := &goal.Goal{
		Type: goal.JobSearch,
		Preferences: goal.Preferences{
			Locations:       []string{"munich"},
			Skills:          []string{"go"},
			Industries:      []string{"fintech"},
			ExperienceLevel: "senior",
		},
	}

	merged := WithPreferences(f, g)
	if len(merged.Locations) != 2 {
		t.Errorf("locations = %v, want both sources", merged.Locations)
	}
	if len(merged.Skills) != 1 || merged.Skills[0] != "go" {
		t.Errorf("skills = %v, want [go]", merged.Skills)
	}
	if len(merged.Industries) != 1 {
		t.Errorf("industries = %v, want [fintech]", merged.Industries)
	}
	if len(merged.ExperienceLevels) != 1 || merged.ExperienceLevels[0] != "senior" {
		t.Errorf("experienceLevels = %v, want [senior]", merged.ExperienceLevels)
	}

	// Inputs stay untouched.
	if len(f.Locations) != 1 || len(f.Skills) != 0 {
		t.Errorf("original filters mutated: %+v", f)
	}
}

func TestWithPreferences_FromNilFilters(t *testing.T) {
	g := &goal.Goal{
		Type:        goal.General,
		Preferences: goal.Preferences{Locations: []string{"Berlin"}},
	}
	merged := WithPreferences(nil, g)
	if merged.IsEmpty() {
		t.Fatal("preferences alone should produce non-empty filters")
	}

	berlin := makeRecord(nil, map[aspect.Aspect][]string{
		aspect.Skills:   {"React"},
		aspect.Location: {"Berlin, Germany"},
	})
	austin := makeRecord(nil, map[aspect.Aspect][]string{
		aspect.Skills:   {"React"},
		aspect.Location: {"Austin, TX"},
	})
	if !merged.Matches(&berlin) {
		t.Error("record satisfying the location preference should pass")
	}
	if merged.Matches(&austin) {
		t.Error("record violating the location preference should fail")
	}
}

func TestFilters_ExperienceLevelMatchesExperienceTexts(t *testing.T) {
	rec := makeRecord(nil, map[aspect.Aspect][]string{
		aspect.Experience: {"Senior Software Engineer, 8 years"},
	})
	if !(&Filters{ExperienceLevels: []string{"senior"}}).Matches(&rec) {
		t.Error("expected case-insensitive experience level match")
	}
	if (&Filters{ExperienceLevels: []string{"junior"}}).Matches(&rec) {
		t.Error("expected no match for absent experience level")
	}
}

func TestFilters_IndustryFallsBackToCompanyTexts(t *testing.T) {
	rec := makeRecord(nil, map[aspect.Aspect][]string{
		aspect.Company: {"Stripe (fintech)"},
	})
	f := &Filters{Industries: []string{"fintech"}}
	if !f.Matches(&rec) {
		t.Error("industry should match against company texts")
	}

	rec2 := makeRecord(map[string]any{"industry": "Healthcare"}, nil)
	f = &Filters{Industries: []string{"health"}}
	if !f.Matches(&rec2) {
		t.Error("industry should match payload industry field")
	}
}
