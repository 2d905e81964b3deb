// Package planner generates structured project plans through the Gemini API.
// The model is a black-box collaborator: one request with a fixed prompt and
// response schema, no retries, no repair of malformed output.
package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/lifeconnect/backend/internal/models"
)

const planModel = "gemini-2.5-flash"

const systemPrompt = "You are an expert project planner. Break down projects into actionable tasks " +
	"with priorities, time estimates, and required skills/resources. Return structured data."

// Task is one actionable step of a generated plan.
type Task struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Priority          string   `json:"priority"` // high | medium | low
	EstimatedHours    float64  `json:"estimated_hours"`
	RequiredSkills    []string `json:"required_skills,omitempty"`
	RequiredResources []string `json:"required_resources,omitempty"`
}

// Plan is the structured breakdown returned by the model.
type Plan struct {
	Tasks               []Task  `json:"tasks"`
	TimelineWeeks       float64 `json:"timeline_weeks"`
	TeamSizeRecommended float64 `json:"team_size_recommended"`
}

// Service wraps a genai client for plan generation.
type Service struct {
	client *genai.Client
	model  string
}

// NewService creates a planner backed by the Gemini API.
func NewService(ctx context.Context, apiKey string) (*Service, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Service{client: client, model: planModel}, nil
}

// GeneratePlan asks the model for a task breakdown of the project. The
// response schema constrains the output; anything that still fails to decode
// surfaces as an error to the caller.
func (s *Service) GeneratePlan(ctx context.Context, project *models.Project) (*Plan, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    planSchema(),
	}
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(buildPrompt(project)), config)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}
	return parsePlan([]byte(resp.Text()))
}

// buildPrompt renders the fixed prompt template for a project.
func buildPrompt(project *models.Project) string {
	return fmt.Sprintf("Break down this project into 5-8 actionable tasks:\n\n"+
		"Title: %s\nDescription: %s\nCategory: %s\nBudget: %.2f\n\n"+
		"For each task, provide: title, description, priority (high/medium/low), estimated_hours, "+
		"required_skills (array), and required_resources (array).",
		project.Title, project.Description, project.Category, project.EstimatedBudget)
}

// parsePlan decodes the model's JSON output and rejects responses that lack
// the required fields.
func parsePlan(data []byte) (*Plan, error) {
	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("decode plan response: %w", err)
	}
	if len(plan.Tasks) == 0 {
		return nil, fmt.Errorf("plan response contains no tasks")
	}
	return &plan, nil
}

func planSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"tasks": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":              {Type: genai.TypeString},
						"description":        {Type: genai.TypeString},
						"priority":           {Type: genai.TypeString, Enum: []string{"high", "medium", "low"}},
						"estimated_hours":    {Type: genai.TypeNumber},
						"required_skills":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
						"required_resources": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					},
					Required: []string{"title", "description", "priority", "estimated_hours"},
				},
			},
			"timeline_weeks":        {Type: genai.TypeNumber},
			"team_size_recommended": {Type: genai.TypeNumber},
		},
		Required: []string{"tasks", "timeline_weeks", "team_size_recommended"},
	}
}
