package resume

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	// PresentEndDate marks an experience entry that is still ongoing.
	PresentEndDate = "Present"

	DefaultProficiency = 3
	MinProficiency     = 1
	MaxProficiency     = 5
)

type Resume struct {
	ID           string           `json:"id,omitempty"`
	Title        string           `json:"title,omitempty"`
	PersonalInfo PersonalInfo     `json:"personalInfo"`
	Experience   []ExperienceItem `json:"experience"`
	Education    []EducationItem  `json:"education"`
	Skills       []SkillItem      `json:"skills"`
	Projects     []ProjectItem    `json:"projects"`
}

type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Headline  string `json:"headline"`
	Summary   string `json:"summary"`
}

type ExperienceItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// IsCurrent reports whether the position has no end date yet.
func (e ExperienceItem) IsCurrent() bool {
	return strings.EqualFold(strings.TrimSpace(e.EndDate), PresentEndDate)
}

type EducationItem struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type SkillItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Proficiency int    `json:"proficiency"`
	Category    string `json:"category,omitempty"`
}

type ProjectItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link,omitempty"`
}

// Empty returns a skeleton with every list present and empty.
func Empty() Resume {
	return Resume{
		Experience: []ExperienceItem{},
		Education:  []EducationItem{},
		Skills:     []SkillItem{},
		Projects:   []ProjectItem{},
	}
}

// HasID reports whether the resume is persisted.
func (r Resume) HasID() bool {
	return strings.TrimSpace(r.ID) != ""
}

// SkillNames returns non-empty skill names in resume order.
func (r Resume) SkillNames() []string {
	names := make([]string, 0, len(r.Skills))
	for _, skill := range r.Skills {
		if name := strings.TrimSpace(skill.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// JobTitles returns non-empty experience titles in resume order.
func (r Resume) JobTitles() []string {
	titles := make([]string, 0, len(r.Experience))
	for _, exp := range r.Experience {
		if title := strings.TrimSpace(exp.Title); title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}

// FullName joins first and last name.
func (r Resume) FullName() string {
	return strings.TrimSpace(r.PersonalInfo.FirstName + " " + r.PersonalInfo.LastName)
}

// LoadFile reads a JSON resume from disk and applies the boundary defaults.
func LoadFile(path string) (Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Resume{}, err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Resume{}, fmt.Errorf("parse resume %s: %w", path, err)
	}

	r := Decode(raw)
	EnsureIDs(&r)
	return r, nil
}
