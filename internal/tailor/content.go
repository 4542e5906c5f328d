package tailor

import (
	"github.com/spigell/jobfit/internal/resume"
)

const (
	// MaxTailoredExperience caps how many experience entries are rewritten.
	MaxTailoredExperience = 2
	// MaxMergedSkills caps the merged skill list.
	MaxMergedSkills = 10
)

// Content is resume text rewritten for one job. It is never persisted here.
type Content struct {
	Summary                string                  `json:"summary"`
	Skills                 []string                `json:"skills"`
	ExperienceImprovements []ExperienceImprovement `json:"experienceImprovements"`
	KeywordsIncorporated   []string                `json:"keywordsIncorporated,omitempty"`
	MatchAnalysis          string                  `json:"matchAnalysis,omitempty"`
}

type ExperienceImprovement struct {
	ID                  string `json:"id"`
	ImprovedDescription string `json:"improvedDescription"`
}

// MergeSkills returns the union of existing and required in that order,
// capped at MaxMergedSkills. Duplicates are detected case-sensitively, so
// "react" and "React" are both kept.
func MergeSkills(existing, required []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(required))
	merged := make([]string, 0, MaxMergedSkills)

	for _, list := range [][]string{existing, required} {
		for _, skill := range list {
			if _, ok := seen[skill]; ok || skill == "" {
				continue
			}
			seen[skill] = struct{}{}
			merged = append(merged, skill)
		}
	}

	if len(merged) > MaxMergedSkills {
		merged = merged[:MaxMergedSkills]
	}
	return merged
}

// Apply returns a copy of r with the tailored summary, experience descriptions
// and skills merged in. New skills get fresh identifiers.
func (c Content) Apply(r resume.Resume) resume.Resume {
	out := r
	if c.Summary != "" {
		out.PersonalInfo.Summary = c.Summary
	}

	improved := make(map[string]string, len(c.ExperienceImprovements))
	for _, item := range c.ExperienceImprovements {
		improved[item.ID] = item.ImprovedDescription
	}

	out.Experience = make([]resume.ExperienceItem, len(r.Experience))
	for i, exp := range r.Experience {
		if desc, ok := improved[exp.ID]; ok && desc != "" {
			exp.Description = desc
		}
		out.Experience[i] = exp
	}

	if len(c.Skills) > 0 {
		existing := make(map[string]resume.SkillItem, len(r.Skills))
		for _, skill := range r.Skills {
			existing[skill.Name] = skill
		}

		out.Skills = make([]resume.SkillItem, 0, len(c.Skills))
		for _, name := range c.Skills {
			skill, ok := existing[name]
			if !ok {
				skill = resume.SkillItem{ID: resume.NewItemID(), Name: name, Proficiency: resume.DefaultProficiency}
			}
			out.Skills = append(out.Skills, skill)
		}
	}

	return out
}
