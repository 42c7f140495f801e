package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/jobreach/jobreach/internal/config"
	"github.com/jobreach/jobreach/internal/logger"
	"github.com/jobreach/jobreach/internal/model"
)

const composeSystemInstruction = "You are an expert email writer who crafts compelling, effective cold emails and professional correspondence."

// contentGenerator is the slice of the genai client the service needs
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenerateService produces contact suggestions and cold-email drafts with
// Gemini. It is request/response glue around the model: no state, no retries.
type GenerateService struct {
	models contentGenerator
	cfg    *config.Config
	log    *logger.Logger
}

// NewGenerateService creates a new GenerateService around a genai client
func NewGenerateService(client *genai.Client, cfg *config.Config, log *logger.Logger) *GenerateService {
	var models contentGenerator
	if client != nil {
		models = client.Models
	}
	return &GenerateService{
		models: models,
		cfg:    cfg,
		log:    log.WithComponent("generate"),
	}
}

// FindContactsRequest holds the search criteria for contact suggestions
type FindContactsRequest struct {
	CompanyType string
	RoleTypes   []string
	Location    string
}

func (r *FindContactsRequest) defaults() {
	if r.CompanyType == "" {
		r.CompanyType = "big tech"
	}
	if len(r.RoleTypes) == 0 {
		r.RoleTypes = []string{"Staff Engineer", "HR Leader"}
	}
	if r.Location == "" {
		r.Location = "San Francisco"
	}
}

// FindContacts asks the model for plausible (fictional) hiring-manager
// contacts matching the criteria.
func (s *GenerateService) FindContacts(ctx context.Context, req FindContactsRequest) ([]model.ContactSuggestion, error) {
	if s.models == nil {
		return nil, fmt.Errorf("gemini api key is not configured")
	}
	req.defaults()

	prompt := fmt.Sprintf(`Generate a list of 5 potential hiring manager contacts at %s companies in %s.

For each contact, provide:
- Name (realistic but fictional to demonstrate the concept)
- Title (should be one of: %s)
- Company (real %s company names)
- Location

Format as a JSON array with objects containing: name, title, company, location

IMPORTANT: Return ONLY the JSON array, no other text.`,
		req.CompanyType, req.Location, strings.Join(req.RoleTypes, ", "), req.CompanyType)

	resp, err := s.models.GenerateContent(ctx, s.cfg.Gemini.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("contact generation failed: %w", err)
	}

	contacts, err := parseContacts(resp.Text())
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// ComposeEmailRequest holds the inputs for drafting a cold email
type ComposeEmailRequest struct {
	JobRole           string
	Purpose           string
	Tone              string
	RecipientName     string
	AdditionalContext string
}

// ComposeEmail drafts a cold email. The returned text starts with a
// "Subject:" line followed by a blank line and the body.
func (s *GenerateService) ComposeEmail(ctx context.Context, req ComposeEmailRequest) (string, error) {
	if req.Purpose == "" {
		return "", &ValidationError{Field: "purpose"}
	}
	if s.models == nil {
		return "", fmt.Errorf("gemini api key is not configured")
	}
	if req.Tone == "" {
		req.Tone = "professional"
	}

	prompt := fmt.Sprintf(`Generate a %s cold email based on the following details:

Job Role: %s
Purpose: %s
Recipient Name: %s
Additional Context: %s

Write a compelling, well-structured email that:
- Has an engaging subject line
- Opens with a strong hook
- Clearly communicates the purpose
- Is appropriate for the %s tone
- Ends with a clear call-to-action
- Is concise and professional

Format the response as:
Subject: [subject line]

[email body]`,
		req.Tone,
		orDefault(req.JobRole, "Not specified"),
		req.Purpose,
		orDefault(req.RecipientName, "Not specified"),
		orDefault(req.AdditionalContext, "None"),
		req.Tone)

	resp, err := s.models.GenerateContent(ctx, s.cfg.Gemini.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: composeSystemInstruction}}},
	})
	if err != nil {
		return "", fmt.Errorf("email generation failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("model returned an empty draft")
	}
	return text, nil
}

// parseContacts decodes the model's JSON array, tolerating a fenced code
// block around it.
func parseContacts(text string) ([]model.ContactSuggestion, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}
	if text == "" {
		return []model.ContactSuggestion{}, nil
	}

	var contacts []model.ContactSuggestion
	if err := json.Unmarshal([]byte(text), &contacts); err != nil {
		return nil, fmt.Errorf("model returned malformed contact list: %w", err)
	}
	return contacts, nil
}

// ParseDraft splits generated email text into subject and body. Text without
// a Subject: line becomes an all-body draft.
func ParseDraft(text string) model.EmailDraft {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "Subject:") {
		return model.EmailDraft{Body: text}
	}
	subject, body, _ := strings.Cut(text, "\n")
	return model.EmailDraft{
		Subject: strings.TrimSpace(strings.TrimPrefix(subject, "Subject:")),
		Body:    strings.TrimSpace(body),
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
