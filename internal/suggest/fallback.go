package suggest

import "strings"

var fallbackSummaries = []string{
	"Results-driven professional with a track record of delivering high-quality work on schedule, combining strong problem-solving skills with clear communication to move projects from idea to measurable outcome.",
	"Collaborative team member who thrives in fast-paced environments, known for learning new tools quickly, taking ownership of complex tasks and helping colleagues succeed through practical knowledge sharing.",
	"Detail-oriented specialist focused on continuous improvement, bringing hands-on experience in streamlining processes, reducing errors and turning feedback into better products and services for customers.",
}

var fallbackBulletPoints = []string{
	"Led a cross-functional initiative that improved team delivery speed by 25% through clearer planning and regular feedback loops.",
	"Developed and documented standardized processes that reduced recurring errors by 30% and shortened onboarding for new team members.",
	"Collaborated with stakeholders to gather requirements and delivered solutions that increased customer satisfaction scores by 15%.",
	"Analyzed performance data to identify bottlenecks and implemented fixes that saved the department roughly ten hours every week.",
	"Mentored three junior colleagues, helping each reach full productivity within their first quarter and improving overall team output.",
}

var fallbackGeneral = []string{
	"Add more measurable achievements to your work experience with specific metrics and results.",
	"Include keywords from the job descriptions you're targeting to improve ATS compatibility.",
	"Strengthen your professional summary to highlight your unique value proposition.",
	"Add relevant certifications or training to showcase your continuous learning.",
	"Consider reorganizing your skills section to prioritize the most in-demand technologies.",
}

var (
	developmentSkills = []string{"TypeScript", "Docker", "Kubernetes", "GraphQL", "CI/CD", "AWS", "Unit Testing", "System Design", "PostgreSQL", "Microservices"}
	designSkills      = []string{"Figma", "User Research", "Prototyping", "Design Systems", "Accessibility", "Wireframing", "Usability Testing", "Adobe Creative Suite", "Interaction Design", "Visual Hierarchy"}
	managementSkills  = []string{"Stakeholder Management", "Strategic Planning", "Budgeting", "Agile Methodologies", "Team Leadership", "OKRs", "Risk Management", "Hiring and Mentoring", "Change Management", "Vendor Management"}
	generalSkills     = []string{"Project Management", "Data Analysis", "Communication", "Problem Solving", "Microsoft Excel", "Time Management", "Presentation Skills", "Customer Focus", "Critical Thinking", "Collaboration"}
)

var skillCategories = []struct {
	markers []string
	skills  []string
}{
	{markers: []string{"develop", "engineer", "program"}, skills: developmentSkills},
	{markers: []string{"design"}, skills: designSkills},
	{markers: []string{"manage", "director", "lead"}, skills: managementSkills},
}

// fallbackSkills picks a fixed skill list by keywords in the job title.
func fallbackSkills(jobTitle string) []string {
	title := strings.ToLower(jobTitle)
	for _, category := range skillCategories {
		for _, marker := range category.markers {
			if strings.Contains(title, marker) {
				return clone(category.skills)
			}
		}
	}
	return clone(generalSkills)
}

func clone(items []string) []string {
	return append([]string(nil), items...)
}
