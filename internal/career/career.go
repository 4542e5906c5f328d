package career

import (
	"strings"

	"github.com/spigell/jobfit/internal/resume"
)

// Path is a coarse occupational category used to pick prompts and fallbacks.
type Path string

const (
	SoftwareEngineering Path = "software_engineering"
	DataScience         Path = "data_science"
	Design              Path = "design"
	Marketing           Path = "marketing"
	Sales               Path = "sales"
	ProductManagement   Path = "product_management"
	Finance             Path = "finance"
	Healthcare          Path = "healthcare"
	Education           Path = "education"
	CustomerService     Path = "customer_service"
	General             Path = "general"
)

var paths = []Path{
	SoftwareEngineering,
	DataScience,
	Design,
	Marketing,
	Sales,
	ProductManagement,
	Finance,
	Healthcare,
	Education,
	CustomerService,
	General,
}

// Paths returns every known path in a fixed order.
func Paths() []Path {
	return append([]Path(nil), paths...)
}

func (p Path) Valid() bool {
	for _, known := range paths {
		if p == known {
			return true
		}
	}
	return false
}

func (p Path) String() string {
	return string(p)
}

// Parse normalizes raw model output or user input into a Path. Anything
// outside the vocabulary is reported as not ok.
func Parse(raw string) (Path, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.Trim(value, "\"'`.")
	value = strings.TrimSpace(value)

	p := Path(value)
	if !p.Valid() {
		return General, false
	}
	return p, true
}

// Context is the resume content the classifier looks at.
type Context struct {
	JobTitles []string
	Skills    []string
	Summary   string
}

func ContextFromResume(r resume.Resume) Context {
	return Context{
		JobTitles: r.JobTitles(),
		Skills:    r.SkillNames(),
		Summary:   strings.TrimSpace(r.PersonalInfo.Summary),
	}
}

// Empty reports whether there is nothing to classify.
func (c Context) Empty() bool {
	return len(c.JobTitles) == 0 && len(c.Skills) == 0 && c.Summary == ""
}
