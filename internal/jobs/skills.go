package jobs

import "strings"

var techSkills = []string{
	"JavaScript", "TypeScript", "React", "Node.js", "Angular", "Vue",
	"HTML", "CSS", "Python", "Java", "C#", "PHP", "SQL", "NoSQL",
	"MongoDB", "PostgreSQL", "MySQL", "Redis", "Docker", "Kubernetes",
	"AWS", "Azure", "GCP", "REST", "GraphQL", "Express", "Flask",
	"Spring", "Django", "Ruby", "Rails", "Swift", "Kotlin", "Flutter",
}

var roleDefaults = []struct {
	markers []string
	skills  []string
}{
	{markers: []string{"frontend", "front-end", "front end"}, skills: []string{"JavaScript", "React", "HTML", "CSS"}},
	{markers: []string{"backend", "back-end", "back end"}, skills: []string{"Node.js", "Express", "SQL", "APIs"}},
	{markers: []string{"fullstack", "full-stack", "full stack"}, skills: []string{"JavaScript", "React", "Node.js", "SQL"}},
}

// ExtractSkills finds known technology names in a description. Matching is
// case-sensitive. When nothing is found, role keywords select a default set.
func ExtractSkills(description string) []string {
	found := make([]string, 0)
	for _, skill := range techSkills {
		if strings.Contains(description, skill) {
			found = append(found, skill)
		}
	}
	if len(found) > 0 {
		return found
	}

	lower := strings.ToLower(description)
	for _, role := range roleDefaults {
		for _, marker := range role.markers {
			if strings.Contains(lower, marker) {
				return append(found, role.skills...)
			}
		}
	}

	return found
}
