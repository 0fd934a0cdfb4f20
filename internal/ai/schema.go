package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/justsurfingit/chamba-match/internal/models"
	"google.golang.org/genai"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// jobListSchema is the response schema sent with Structure calls.
func jobListSchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"id":          str,
				"title":       str,
				"company":     str,
				"salary":      str,
				"type":        str,
				"location":    str,
				"logo":        str,
				"tags":        {Type: genai.TypeArray, Items: str},
				"isNew":       {Type: genai.TypeBoolean},
				"url":         str,
				"description": str,
			},
			Required: []string{"title", "company", "location", "description"},
		},
	}
}

// AgentPlanSchema describes models.AgentPlan for GenerateJSON.
func AgentPlanSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"agentName":               {Type: genai.TypeString},
			"searchFrequency":         {Type: genai.TypeString},
			"optimizedQueries":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"estimatedMatchesPerWeek": {Type: genai.TypeInteger},
		},
		Required: []string{"agentName", "searchFrequency", "optimizedQueries", "estimatedMatchesPerWeek"},
	}
}

// rawJob is one item as the model returns it.
type rawJob struct {
	ID          string   `json:"id"`
	Title       string   `json:"title" validate:"required"`
	Company     string   `json:"company" validate:"required"`
	Salary      string   `json:"salary"`
	Type        string   `json:"type"`
	Location    string   `json:"location" validate:"required"`
	Logo        string   `json:"logo"`
	Tags        []string `json:"tags"`
	IsNew       bool     `json:"isNew"`
	URL         string   `json:"url"`
	Description string   `json:"description" validate:"required"`
}

func (r *rawJob) trim() {
	r.ID = strings.TrimSpace(r.ID)
	r.Title = strings.TrimSpace(r.Title)
	r.Company = strings.TrimSpace(r.Company)
	r.Salary = strings.TrimSpace(r.Salary)
	r.Type = strings.TrimSpace(r.Type)
	r.Location = strings.TrimSpace(r.Location)
	r.Logo = strings.TrimSpace(r.Logo)
	r.URL = strings.TrimSpace(r.URL)
	r.Description = strings.TrimSpace(r.Description)

	tags := r.Tags[:0]
	for _, t := range r.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	r.Tags = tags
}

func (r rawJob) job() models.Job {
	return models.Job{
		ID:          r.ID,
		Title:       r.Title,
		Company:     r.Company,
		Salary:      r.Salary,
		Type:        r.Type,
		Location:    r.Location,
		Logo:        r.Logo,
		Tags:        r.Tags,
		IsNew:       r.IsNew,
		URL:         r.URL,
		Description: r.Description,
	}
}

// stripFences removes markdown code fences from model output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// decodeJobs parses a structured answer. Items that fail to decode or miss a
// required field are skipped and counted in dropped. Empty text is an empty
// list.
func decodeJobs(text string) (jobs []models.Job, dropped int, err error) {
	text = stripFences(text)
	if text == "" {
		return nil, 0, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, 0, fmt.Errorf("decode job list: %w", err)
	}

	jobs = make([]models.Job, 0, len(items))
	for _, item := range items {
		var r rawJob
		if err := json.Unmarshal(item, &r); err != nil {
			dropped++
			continue
		}
		r.trim()
		if err := validate.Struct(r); err != nil {
			dropped++
			continue
		}
		jobs = append(jobs, r.job())
	}
	return jobs, dropped, nil
}
