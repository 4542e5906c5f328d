package resume

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDecodeAppliesDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		raw   map[string]any
		check func(t *testing.T, r Resume)
	}{
		{
			name: "nil input gives skeleton",
			raw:  nil,
			check: func(t *testing.T, r Resume) {
				if r.Experience == nil || r.Education == nil || r.Skills == nil || r.Projects == nil {
					t.Fatalf("expected every list to be non-nil: %+v", r)
				}
			},
		},
		{
			name: "wrong section types become empty",
			raw: map[string]any{
				"personalInfo": "not an object",
				"experience":   "oops",
				"skills":       42,
			},
			check: func(t *testing.T, r Resume) {
				if r.PersonalInfo != (PersonalInfo{}) {
					t.Fatalf("expected empty personal info, got %+v", r.PersonalInfo)
				}
				if len(r.Experience) != 0 || len(r.Skills) != 0 {
					t.Fatalf("expected empty lists, got %+v", r)
				}
			},
		},
		{
			name: "malformed items are skipped",
			raw: map[string]any{
				"experience": []any{
					"plain string",
					map[string]any{"title": "Engineer", "company": "Acme"},
					map[string]any{"title": []any{"bad"}},
				},
			},
			check: func(t *testing.T, r Resume) {
				if len(r.Experience) != 1 || r.Experience[0].Title != "Engineer" {
					t.Fatalf("unexpected experience: %+v", r.Experience)
				}
			},
		},
		{
			name: "weak scalar coercion",
			raw: map[string]any{
				"id": float64(17),
				"experience": []any{
					map[string]any{"id": float64(3), "title": "Dev", "endDate": "Present"},
				},
				"skills": []any{
					map[string]any{"name": "Go", "proficiency": "4"},
				},
			},
			check: func(t *testing.T, r Resume) {
				if r.ID != "17" {
					t.Fatalf("expected id 17, got %q", r.ID)
				}
				if r.Experience[0].ID != "3" || !r.Experience[0].IsCurrent() {
					t.Fatalf("unexpected experience: %+v", r.Experience[0])
				}
				if r.Skills[0].Proficiency != 4 {
					t.Fatalf("expected proficiency 4, got %d", r.Skills[0].Proficiency)
				}
			},
		},
		{
			name: "skill proficiency defaults and clamps",
			raw: map[string]any{
				"skills": []any{
					"React",
					map[string]any{"name": "Go"},
					map[string]any{"name": "SQL", "proficiency": 9},
					map[string]any{"name": "Perl", "proficiency": -1},
					map[string]any{"name": "   "},
				},
			},
			check: func(t *testing.T, r Resume) {
				want := []SkillItem{
					{Name: "React", Proficiency: 3},
					{Name: "Go", Proficiency: 3},
					{Name: "SQL", Proficiency: 5},
					{Name: "Perl", Proficiency: 1},
				}
				if len(r.Skills) != len(want) {
					t.Fatalf("expected %d skills, got %+v", len(want), r.Skills)
				}
				for i := range want {
					if r.Skills[i] != want[i] {
						t.Fatalf("skill %d: got %+v want %+v", i, r.Skills[i], want[i])
					}
				}
			},
		},
		{
			name: "project technologies never nil",
			raw: map[string]any{
				"projects": []any{map[string]any{"title": "CLI"}},
			},
			check: func(t *testing.T, r Resume) {
				if r.Projects[0].Technologies == nil {
					t.Fatalf("expected empty technologies slice")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.check(t, Decode(tt.raw))
		})
	}
}

func TestEnsureIDs(t *testing.T) {
	r := Resume{
		Experience: []ExperienceItem{{ID: "a"}, {}, {ID: "a"}},
		Skills:     []SkillItem{{Name: "Go"}, {ID: "s1", Name: "SQL"}},
		Education:  []EducationItem{{}},
		Projects:   []ProjectItem{{ID: "p"}},
	}

	EnsureIDs(&r)

	if r.Experience[0].ID != "a" {
		t.Fatalf("existing id must be kept, got %q", r.Experience[0].ID)
	}
	seen := map[string]bool{}
	for _, exp := range r.Experience {
		if exp.ID == "" || seen[exp.ID] {
			t.Fatalf("expected unique ids, got %+v", r.Experience)
		}
		seen[exp.ID] = true
	}
	if r.Skills[0].ID == "" || r.Skills[1].ID != "s1" {
		t.Fatalf("unexpected skill ids: %+v", r.Skills)
	}
	if r.Education[0].ID == "" || r.Projects[0].ID != "p" {
		t.Fatalf("unexpected ids: %+v %+v", r.Education, r.Projects)
	}
}

func TestNewItemIDIsTimeBased(t *testing.T) {
	original := now
	now = func() time.Time { return time.UnixMilli(1700000000000) }
	defer func() { now = original }()

	first := NewItemID()
	second := NewItemID()

	if !strings.HasPrefix(first, "1700000000000-") {
		t.Fatalf("unexpected id %q", first)
	}
	if first == second {
		t.Fatalf("expected random suffix to differ, got %q twice", first)
	}
}

func TestAccessors(t *testing.T) {
	t.Parallel()

	r := Resume{
		PersonalInfo: PersonalInfo{FirstName: "Ada", LastName: "Lovelace"},
		Experience:   []ExperienceItem{{Title: "Engineer"}, {Title: " "}, {Title: "Analyst"}},
		Skills:       []SkillItem{{Name: "Go"}, {Name: ""}, {Name: "SQL"}},
	}

	if got := strings.Join(r.JobTitles(), ","); got != "Engineer,Analyst" {
		t.Fatalf("unexpected titles %q", got)
	}
	if got := strings.Join(r.SkillNames(), ","); got != "Go,SQL" {
		t.Fatalf("unexpected skills %q", got)
	}
	if r.FullName() != "Ada Lovelace" {
		t.Fatalf("unexpected name %q", r.FullName())
	}
	if r.HasID() {
		t.Fatalf("resume without id must report HasID false")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.json")

	content, err := json.Marshal(map[string]any{
		"personalInfo": map[string]any{"firstName": "Ada", "summary": "Engineer"},
		"skills":       []any{"Go"},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	r, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if r.PersonalInfo.FirstName != "Ada" || len(r.Skills) != 1 || r.Skills[0].ID == "" {
		t.Fatalf("unexpected resume: %+v", r)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
