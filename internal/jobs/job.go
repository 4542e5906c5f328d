package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	JobIDField      = "ID"
	JobCompanyField = "Company"

	// NewWindow is how long a posting counts as new.
	NewWindow = 72 * time.Hour
)

type Jobs struct {
	Items []Job
}

type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills"`
	PostedAt    time.Time `json:"postedAt"`
	ApplyURL    string    `json:"applyUrl"`
	Salary      string    `json:"salary,omitempty"`

	// Derived at read time.
	Match int  `json:"match"`
	IsNew bool `json:"isNew"`
}

// IsNew reports whether postedAt falls within NewWindow of now. A posting
// exactly NewWindow old still counts as new.
func IsNew(postedAt, now time.Time) bool {
	return !postedAt.Before(now.Add(-NewWindow))
}

// Text is the job content keyword matching runs against.
func (j Job) Text() string {
	return j.Title + " " + j.Description + " " + strings.Join(j.Skills, " ")
}

func (j Job) GetStringField(name string) string {
	switch name {
	case JobIDField:
		return j.ID
	case JobCompanyField:
		return j.Company
	default:
		return ""
	}
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) FindByID(id string) *Job {
	for i := range j.Items {
		if j.Items[i].ID == id {
			return &j.Items[i]
		}
	}
	return nil
}

// Exclude removes jobs whose field matches one of targets and returns the
// removed IDs. Order of the remaining jobs is preserved.
func (j *Jobs) Exclude(name string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		set[strings.ToLower(strings.TrimSpace(target))] = struct{}{}
	}

	var excluded []string
	kept := j.Items[:0]
	for _, job := range j.Items {
		if _, ok := set[strings.ToLower(job.GetStringField(name))]; ok {
			excluded = append(excluded, job.ID)
			continue
		}
		kept = append(kept, job)
	}
	j.Items = kept

	return excluded
}

// ExcludeBelow removes jobs scored under minimum and returns the removed IDs.
func (j *Jobs) ExcludeBelow(minimum int) []string {
	var excluded []string
	kept := j.Items[:0]
	for _, job := range j.Items {
		if job.Match < minimum {
			excluded = append(excluded, job.ID)
			continue
		}
		kept = append(kept, job)
	}
	j.Items = kept

	return excluded
}

// ReportByCompany groups a printable summary of every job by company.
func (j *Jobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range j.Items {
		entry := map[string]string{
			"title":    job.Title,
			"url":      job.ApplyURL,
			"location": job.Location,
			"type":     job.Type,
			"match":    fmt.Sprintf("%d", job.Match),
			"new":      fmt.Sprintf("%t", job.IsNew),
		}
		if job.Salary != "" {
			entry["salary"] = job.Salary
		}
		report[job.Company] = append(report[job.Company], entry)
	}
	return report
}

func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return "", err
	}
	return file.Name(), nil
}
