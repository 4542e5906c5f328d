package jobs

import (
	"strings"
	"time"
)

type sampleJob struct {
	job Job
	age time.Duration
}

const day = 24 * time.Hour

var sampleJobs = []sampleJob{
	{age: 3 * day, job: Job{
		ID: "1", Title: "Senior Frontend Developer", Company: "Tech Innovations Inc", Location: "San Francisco, CA", Type: typeFullTime,
		Description: "We're looking for a Senior Frontend Developer with expertise in React, TypeScript, and modern JavaScript frameworks. You'll be responsible for building high-performance web applications and collaborating with cross-functional teams.",
		Skills:      []string{"React", "TypeScript", "JavaScript", "HTML/CSS", "Redux"},
	}},
	{age: 5 * day, job: Job{
		ID: "2", Title: "Full Stack Developer", Company: "WebSolutions Co", Location: "Remote (US)", Type: typeFullTime,
		Description: "Join our remote team as a Full Stack Developer! We're seeking someone experienced with Node.js and React to help build and maintain our suite of web applications. You'll work on both frontend and backend development.",
		Skills:      []string{"React", "Node.js", "MongoDB", "Express", "JavaScript"},
	}},
	{age: 2 * day, job: Job{
		ID: "3", Title: "UI/UX Developer", Company: "DesignWorks Agency", Location: "New York, NY", Type: typeContract,
		Description: "DesignWorks is hiring a UI/UX Developer to create beautiful, intuitive interfaces for our clients. The ideal candidate has a strong background in design principles and frontend development skills.",
		Skills:      []string{"HTML/CSS", "JavaScript", "Figma", "UI/UX Design", "React"},
	}},
	{age: 7 * day, job: Job{
		ID: "4", Title: "Backend Developer", Company: "DataSystems", Location: "Austin, TX", Type: typeFullTime,
		Description: "DataSystems is seeking a skilled Backend Developer to join our engineering team. You'll be designing RESTful APIs, implementing business logic, and working with databases to support our growing platform.",
		Skills:      []string{"Node.js", "Express", "PostgreSQL", "Docker", "Microservices"},
	}},
	{age: 1 * day, job: Job{
		ID: "5", Title: "Junior Frontend Developer", Company: "StartupNow", Location: "Remote (Global)", Type: typePartTime,
		Description: "Exciting startup looking for a Junior Frontend Developer to help build our customer-facing web application. Great opportunity for someone early in their career to gain experience with modern web technologies.",
		Skills:      []string{"JavaScript", "React", "HTML/CSS", "Responsive Design"},
	}},
	{age: 4 * day, job: Job{
		ID: "6", Title: "DevOps Engineer", Company: "CloudTech Solutions", Location: "Seattle, WA", Type: typeFullTime,
		Description: "Join our DevOps team to help automate deployment processes, manage cloud infrastructure, and improve our CI/CD pipelines. Experience with AWS and containerization technologies is required.",
		Skills:      []string{"AWS", "Docker", "Kubernetes", "CI/CD", "Terraform"},
	}},
	{age: 6 * day, job: Job{
		ID: "7", Title: "Mobile Developer (React Native)", Company: "AppGenies", Location: "Chicago, IL", Type: typeFullTime,
		Description: "AppGenies is looking for a talented Mobile Developer experienced with React Native to join our product team. You'll be building cross-platform mobile applications for iOS and Android.",
		Skills:      []string{"React Native", "JavaScript", "iOS", "Android", "Redux"},
	}},
	{age: 10 * day, job: Job{
		ID: "8", Title: "ML Engineer", Company: "AI Innovations", Location: "Boston, MA", Type: typeFullTime,
		Description: "AI Innovations is seeking a Machine Learning Engineer to develop and implement ML models. You'll be working on cutting-edge AI solutions for our clients in healthcare and finance.",
		Skills:      []string{"Python", "TensorFlow", "PyTorch", "Data Science", "AI"},
	}},
	{age: 8 * day, job: Job{
		ID: "9", Title: "QA Engineer", Company: "QualitySoft", Location: "Denver, CO", Type: typeFullTime,
		Description: "QualitySoft is hiring a QA Engineer to ensure the quality of our software products. You'll be responsible for designing test cases, performing manual testing, and developing automated tests.",
		Skills:      []string{"Selenium", "Jest", "Cypress", "QA Methodologies", "JIRA"},
	}},
	{age: 5 * day, job: Job{
		ID: "10", Title: "Technical Writer", Company: "DocuTech", Location: "Portland, OR", Type: typeContract,
		Description: "DocuTech needs a Technical Writer to create clear, concise documentation for our software products. The ideal candidate has experience documenting APIs and writing user guides.",
		Skills:      []string{"Technical Writing", "Markdown", "API Documentation", "Information Architecture"},
	}},
}

// SampleJobs returns the built-in job set filtered by params, with posting
// times relative to now.
func SampleJobs(params SearchParams, now time.Time) *Jobs {
	title := strings.ToLower(strings.TrimSpace(params.Title))
	location := strings.ToLower(strings.TrimSpace(params.Location))
	jobType := strings.TrimSpace(params.Type)
	experience := strings.ToLower(strings.TrimSpace(params.Experience))

	result := &Jobs{Items: make([]Job, 0, len(sampleJobs))}
	for _, sample := range sampleJobs {
		job := sample.job
		job.Skills = append([]string(nil), sample.job.Skills...)
		job.PostedAt = now.Add(-sample.age)
		job.ApplyURL = fallbackApplyURL
		job.IsNew = IsNew(job.PostedAt, now)

		lowerTitle := strings.ToLower(job.Title)
		lowerDescription := strings.ToLower(job.Description)

		if title != "" && !strings.Contains(lowerTitle, title) && !strings.Contains(lowerDescription, title) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
			continue
		}
		if jobType != "" && jobType != "all" && !strings.EqualFold(job.Type, jobType) {
			continue
		}
		if !matchesExperience(experience, lowerTitle, lowerDescription) {
			continue
		}

		result.Items = append(result.Items, job)
	}

	return result
}

func matchesExperience(experience, title, description string) bool {
	switch experience {
	case "junior":
		return strings.Contains(title, "junior") ||
			strings.Contains(description, "junior") ||
			strings.Contains(description, "entry level")
	case "mid-level":
		return !strings.Contains(title, "senior") && !strings.Contains(title, "junior")
	case "senior":
		return strings.Contains(title, "senior") ||
			strings.Contains(description, "senior") ||
			strings.Contains(description, "experienced")
	default:
		return true
	}
}
