package career

// Guidance holds the per-path wording used by prompts.
type Guidance struct {
	Name string
	// Focus is what rewrites for this path should emphasise.
	Focus string
	// Advisor is the system prompt for holistic resume suggestions.
	Advisor string
}

const suggestionFormat = " Limit your suggestions to 3-5 concise, bullet-point style recommendations."

var guidance = map[Path]Guidance{
	SoftwareEngineering: {
		Name:    "Software Engineering",
		Focus:   "technical depth, shipped systems, scale, performance and the concrete technologies used",
		Advisor: "You are an expert technical recruiter for software engineering roles. Suggest improvements that surface technical impact, system scale, technologies and measurable engineering outcomes.",
	},
	DataScience: {
		Name:    "Data Science",
		Focus:   "models, datasets, statistical methods, tooling and the business decisions the analysis drove",
		Advisor: "You are an expert resume consultant for data science and analytics roles. Suggest improvements that quantify model performance, data scale and business impact of analyses.",
	},
	Design: {
		Name:    "Design",
		Focus:   "user research, design process, collaboration with engineering and measurable usability outcomes",
		Advisor: "You are an expert resume consultant for UX, UI and product design roles. Suggest improvements that highlight design process, portfolio evidence and user outcomes.",
	},
	Marketing: {
		Name:    "Marketing",
		Focus:   "campaign results, channel expertise, growth metrics and brand impact",
		Advisor: "You are an expert resume consultant for marketing roles. Suggest improvements that quantify campaign performance, audience growth and return on spend.",
	},
	Sales: {
		Name:    "Sales",
		Focus:   "quota attainment, revenue generated, pipeline growth and client relationships",
		Advisor: "You are an expert resume consultant for sales roles. Suggest improvements that lead with quota attainment, revenue figures and deal sizes.",
	},
	ProductManagement: {
		Name:    "Product Management",
		Focus:   "product outcomes, roadmap ownership, cross-functional leadership and customer metrics",
		Advisor: "You are an expert resume consultant for product management roles. Suggest improvements that show product outcomes, prioritisation decisions and cross-functional leadership.",
	},
	Finance: {
		Name:    "Finance",
		Focus:   "financial analysis, accuracy, compliance, cost savings and the size of portfolios or budgets managed",
		Advisor: "You are an expert resume consultant for finance and accounting roles. Suggest improvements that quantify budgets, savings, accuracy and regulatory knowledge.",
	},
	Healthcare: {
		Name:    "Healthcare",
		Focus:   "patient outcomes, clinical skills, certifications and compliance with care standards",
		Advisor: "You are an expert resume consultant for healthcare roles. Suggest improvements that highlight patient outcomes, licences, certifications and clinical competencies.",
	},
	Education: {
		Name:    "Education",
		Focus:   "student outcomes, curriculum development, teaching methods and classroom leadership",
		Advisor: "You are an expert resume consultant for education roles. Suggest improvements that show student achievement, curriculum work and teaching philosophy.",
	},
	CustomerService: {
		Name:    "Customer Service",
		Focus:   "customer satisfaction, resolution times, communication and problem solving",
		Advisor: "You are an expert resume consultant for customer service roles. Suggest improvements that quantify satisfaction scores, resolution times and volumes handled.",
	},
	General: {
		Name:    "General",
		Focus:   "measurable achievements, transferable skills and relevance to the target role",
		Advisor: "You are an expert resume consultant who helps job seekers improve their resumes. Provide specific, actionable suggestions to enhance this resume. Focus on improvements related to content, structure, achievements, and keywords.",
	},
}

// Guidance returns the prompt wording for p. Unknown paths get the general one.
func (p Path) Guidance() Guidance {
	g, ok := guidance[p]
	if !ok {
		g = guidance[General]
	}
	g.Advisor += suggestionFormat
	return g
}
