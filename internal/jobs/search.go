package jobs

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	SearchPath = "/v1/api/jobs/%s/search/%d"

	defaultWhat        = "developer"
	unknownTitle       = "Unknown Position"
	unknownCompany     = "Unknown Company"
	noDescription      = "No description provided"
	remoteLocation     = "Remote"
	fallbackApplyURL   = "#"
	typeFullTime       = "Full-time"
	typePartTime       = "Part-time"
	typeContract       = "Contract"
	experienceAllValue = "all"
)

var (
	errUnexpectedPayload = errors.New("unexpected adzuna response format")

	countryNames = regexp.MustCompile(`(?i)\b(united states|usa|us|united kingdom|uk|gb)\b`)
	ukMarkers    = []string{"uk", "united kingdom", "london", "manchester", "birmingham"}

	salaryPrinter = message.NewPrinter(language.English)
	titleCaser    = cases.Title(language.English)
)

type SearchParams struct {
	Title          string `mapstructure:"title"`
	Location       string `mapstructure:"location"`
	Type           string `mapstructure:"type"`
	Experience     string `mapstructure:"experience"`
	Country        string `mapstructure:"country"`
	Page           int    `mapstructure:"page"`
	ResultsPerPage int    `mapstructure:"results-per-page"`
}

type searchResponse struct {
	Results []any `json:"results"`
	Count   int   `json:"count"`
}

type adzunaJob struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Created      string  `json:"created"`
	RedirectURL  string  `json:"redirect_url"`
	ContractTime string  `json:"contract_time"`
	ContractType string  `json:"contract_type"`
	SalaryMin    float64 `json:"salary_min"`
	SalaryMax    float64 `json:"salary_max"`
	Company      struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string   `json:"display_name"`
		Area        []string `json:"area"`
	} `json:"location"`
}

// Search queries Adzuna. Missing credentials, transport failures and
// unexpected payloads all resolve to the filtered sample jobs.
func (c *Client) Search(ctx context.Context, params SearchParams) *Jobs {
	if !c.configured() {
		c.logger.Warn("using sample jobs because adzuna credentials are not set")
		return SampleJobs(params, c.now())
	}

	found, err := c.search(ctx, params)
	if err != nil {
		c.logger.Warn("adzuna search failed, using sample jobs", zap.Error(err))
		return SampleJobs(params, c.now())
	}

	c.logger.Debug("got response from adzuna", zap.Int("jobs", found.Len()))
	return found
}

func (c *Client) search(ctx context.Context, params SearchParams) (*Jobs, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}

	endpoint := c.APIURL + fmt.Sprintf(SearchPath, c.countryFor(params), page)

	q := buildParams(params)
	q.Set("app_id", c.appID)
	q.Set("app_key", c.apiKey)

	var response searchResponse
	if err := c.getJSON(ctx, endpoint, q, &response); err != nil {
		return nil, err
	}
	if response.Results == nil {
		return nil, errUnexpectedPayload
	}

	var raw []adzunaJob
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &raw,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(response.Results); err != nil {
		return nil, fmt.Errorf("%w: %v", errUnexpectedPayload, err)
	}

	now := c.now()
	found := &Jobs{Items: make([]Job, 0, len(raw))}
	for i, item := range raw {
		found.Items = append(found.Items, transform(item, i+1, now))
	}

	return found, nil
}

func (c *Client) countryFor(params SearchParams) string {
	if country := strings.TrimSpace(params.Country); country != "" {
		return strings.ToLower(country)
	}

	location := strings.ToLower(params.Location)
	for _, marker := range ukMarkers {
		if strings.Contains(location, marker) {
			return "gb"
		}
	}

	return c.country
}

func buildParams(params SearchParams) url.Values {
	q := url.Values{}

	perPage := params.ResultsPerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	q.Set("results_per_page", strconv.Itoa(perPage))

	title := strings.TrimSpace(params.Title)
	what := title
	if what == "" {
		what = defaultWhat
	}

	experience := strings.ToLower(strings.TrimSpace(params.Experience))
	if experience != "" && experience != experienceAllValue {
		switch {
		case strings.Contains(experience, "senior"), strings.Contains(experience, "lead"):
			what = "senior " + what
			if title == "" {
				what = "senior lead"
			}
		case strings.Contains(experience, "junior"), strings.Contains(experience, "entry"):
			what = "junior " + what
			if title == "" {
				what = "junior entry level"
			}
		}
	}
	q.Set("what", what)

	if where := searchLocation(params.Location); where != "" {
		q.Set("where", where)
	}

	if contract := contractType(params.Type); contract != "" {
		q.Set("contract_type", contract)
	}

	return q
}

// searchLocation drops remote locations and country names the API rejects.
func searchLocation(location string) string {
	lower := strings.ToLower(location)
	if strings.Contains(lower, "remote") || strings.Contains(lower, "anywhere") {
		return ""
	}

	cleaned := countryNames.ReplaceAllString(location, "")
	cleaned = strings.Trim(strings.Join(strings.Fields(cleaned), " "), " ,")
	return cleaned
}

func contractType(jobType string) string {
	lower := strings.ToLower(strings.TrimSpace(jobType))
	switch {
	case lower == "" || lower == "all":
		return ""
	case strings.Contains(lower, "full"):
		return "full_time"
	case strings.Contains(lower, "part"):
		return "part_time"
	case strings.Contains(lower, "contract"), strings.Contains(lower, "temp"):
		return "contract"
	default:
		return ""
	}
}

func transform(item adzunaJob, index int, now time.Time) Job {
	id := strings.TrimSpace(item.ID)
	if id == "" {
		id = strconv.Itoa(index)
	}

	description := CleanDescription(item.Description)
	if description == "" {
		description = noDescription
	}

	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = unknownTitle
	}

	company := strings.TrimSpace(item.Company.DisplayName)
	if company == "" {
		company = unknownCompany
	}

	applyURL := item.RedirectURL
	if applyURL == "" {
		applyURL = fallbackApplyURL
	}

	postedAt := now
	if created, err := time.Parse(time.RFC3339, item.Created); err == nil {
		postedAt = created
	}

	return Job{
		ID:          id,
		Title:       title,
		Company:     company,
		Location:    location(item),
		Type:        jobType(item),
		Description: description,
		Skills:      ExtractSkills(description),
		PostedAt:    postedAt,
		ApplyURL:    applyURL,
		Salary:      salary(item.SalaryMin, item.SalaryMax),
		IsNew:       IsNew(postedAt, now),
	}
}

func location(item adzunaJob) string {
	if item.Location.DisplayName != "" {
		return item.Location.DisplayName
	}

	area := item.Location.Area
	switch {
	case len(area) > 1:
		// The first element is the country.
		return strings.Join(area[1:], ", ")
	case len(area) == 1:
		return area[0]
	default:
		return remoteLocation
	}
}

func jobType(item adzunaJob) string {
	switch {
	case item.ContractTime == "full_time":
		return typeFullTime
	case item.ContractTime == "part_time":
		return typePartTime
	case item.ContractTime != "":
		return titleCaser.String(strings.ReplaceAll(item.ContractTime, "_", " "))
	case item.ContractType == "contract", item.ContractType == "temporary":
		return typeContract
	default:
		return typeFullTime
	}
}

func salary(minimum, maximum float64) string {
	if minimum <= 0 || maximum <= 0 {
		return ""
	}

	lo := int64(math.Round(minimum))
	hi := int64(math.Round(maximum))
	if lo == hi {
		return salaryPrinter.Sprintf("$%d/year", lo)
	}
	return salaryPrinter.Sprintf("$%d - $%d/year", lo, hi)
}
