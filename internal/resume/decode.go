package resume

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Decode converts loosely typed resume content into a Resume. Missing or
// malformed sections become empty, malformed list items are skipped and
// scalar fields are coerced where possible ("4" becomes 4).
func Decode(raw map[string]any) Resume {
	r := Empty()
	if raw == nil {
		return r
	}

	r.ID = scalar(raw["id"])
	r.Title = scalar(raw["title"])

	if info, ok := raw["personalInfo"].(map[string]any); ok {
		if err := decode(info, &r.PersonalInfo); err != nil {
			r.PersonalInfo = PersonalInfo{}
		}
	}

	r.Experience = decodeList[ExperienceItem](raw["experience"])
	r.Education = decodeList[EducationItem](raw["education"])
	r.Skills = decodeSkills(raw["skills"])
	r.Projects = decodeList[ProjectItem](raw["projects"])

	for i := range r.Projects {
		if r.Projects[i].Technologies == nil {
			r.Projects[i].Technologies = []string{}
		}
	}

	return r
}

func decodeSkills(raw any) []SkillItem {
	items, ok := raw.([]any)
	if !ok {
		return []SkillItem{}
	}

	skills := make([]SkillItem, 0, len(items))
	for _, item := range items {
		var skill SkillItem
		switch v := item.(type) {
		case string:
			skill.Name = v
		case map[string]any:
			if err := decode(v, &skill); err != nil {
				continue
			}
		default:
			continue
		}

		skill.Name = strings.TrimSpace(skill.Name)
		if skill.Name == "" {
			continue
		}
		skill.Proficiency = clampProficiency(skill.Proficiency)
		skills = append(skills, skill)
	}

	return skills
}

func decodeList[T any](raw any) []T {
	items, ok := raw.([]any)
	if !ok {
		return []T{}
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		var v T
		if err := decode(fields, &v); err != nil {
			continue
		}
		out = append(out, v)
	}

	return out
}

func decode(input any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func clampProficiency(p int) int {
	switch {
	case p == 0:
		return DefaultProficiency
	case p < MinProficiency:
		return MinProficiency
	case p > MaxProficiency:
		return MaxProficiency
	default:
		return p
	}
}

func scalar(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return fmt.Sprintf("%.0f", s)
	default:
		return fmt.Sprint(s)
	}
}
