package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/strrl/mentorlink/pkg/models"
)

const (
	DefaultModel = "gemini-3-flash-preview"

	NoMatchReply     = "I couldn't find a specific match, but Dr. Sarah Chen is a great general starting point."
	UnavailableReply = "Unable to get AI recommendation at this moment."
)

// Generator is the subset of the GenAI models service the advisor needs
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Advisor suggests mentors and growth paths through a generative model
type Advisor struct {
	generator Generator
	model     string
	logger    *zap.Logger
}

// New creates an Advisor backed by the Gemini API
func New(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Advisor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return NewWithGenerator(client.Models, model, logger), nil
}

// NewWithGenerator creates an Advisor on top of any Generator
func NewWithGenerator(generator Generator, model string, logger *zap.Logger) *Advisor {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{generator: generator, model: model, logger: logger}
}

// Model returns the model name requests are sent to
func (a *Advisor) Model() string {
	return a.model
}

// MatchPrompt builds the mentor matching prompt for a user goal
func MatchPrompt(goal string, mentors []models.Mentor) string {
	lines := make([]string, 0, len(mentors))
	for _, m := range mentors {
		lines = append(lines, fmt.Sprintf("%s (Specialization: %s, Skills: %s)",
			m.Name, m.Specialization, strings.Join(m.Skills, ", ")))
	}

	return fmt.Sprintf(`You are an expert career consultant. A user has the following goal: %q.
Based on the following list of mentors, which one is the best fit?
Explain why in 2 sentences and suggest 3 topics for their first session.

Mentors:
%s`, goal, strings.Join(lines, "\n"))
}

// MatchMentor never fails: errors and empty replies turn into fixed fallback text
func (a *Advisor) MatchMentor(ctx context.Context, goal string, mentors []models.Mentor) string {
	resp, err := a.generator.GenerateContent(ctx, a.model, genai.Text(MatchPrompt(goal, mentors)), nil)
	if err != nil {
		a.logger.Error("mentor match request failed", zap.String("model", a.model), zap.Error(err))
		return UnavailableReply
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return NoMatchReply
	}
	return text
}

// GrowthPathPrompt builds the growth path prompt
func GrowthPathPrompt(currentSkills []string, targetRole string) string {
	return fmt.Sprintf(`Create a step-by-step 3-month mentorship growth path for someone moving from [%s] to a %q role.
Provide a JSON structure with months as keys.`, strings.Join(currentSkills, ", "), targetRole)
}

var growthPathSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"month1": {Type: genai.TypeString},
		"month2": {Type: genai.TypeString},
		"month3": {Type: genai.TypeString},
		"focusAreas": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"month1", "month2", "month3", "focusAreas"},
}

// GrowthPath asks for a structured three-month plan
func (a *Advisor) GrowthPath(ctx context.Context, currentSkills []string, targetRole string) (*models.GrowthPath, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   growthPathSchema,
	}

	resp, err := a.generator.GenerateContent(ctx, a.model, genai.Text(GrowthPathPrompt(currentSkills, targetRole)), config)
	if err != nil {
		a.logger.Error("growth path request failed", zap.String("model", a.model), zap.Error(err))
		return nil, fmt.Errorf("growth path request failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		text = "{}"
	}

	var path models.GrowthPath
	if err := json.Unmarshal([]byte(text), &path); err != nil {
		a.logger.Error("growth path reply is not valid JSON", zap.Error(err))
		return nil, fmt.Errorf("failed to decode growth path: %w", err)
	}
	return &path, nil
}
