package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Tomas-vilte/MateReview/internal/config"
	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/Tomas-vilte/MateReview/internal/domain/ports"
	"github.com/Tomas-vilte/MateReview/internal/i18n"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var _ ports.ReviewSummarizer = (*GeminiReviewSummarizer)(nil)

// GeminiReviewSummarizer genera resúmenes de review con Gemini a partir del
// contenido local de la PR. No toca la API de GitHub: trabaja solo con lo que
// ya está en el espejo.
type GeminiReviewSummarizer struct {
	client *genai.Client
	model  *genai.GenerativeModel
	trans  *i18n.Translations
}

type reviewSummaryJSON struct {
	Overview   string   `json:"overview"`
	KeyChanges []string `json:"key_changes"`
	Risks      []string `json:"risks"`
}

func NewGeminiReviewSummarizer(ctx context.Context, cfg *config.Config, trans *i18n.Translations) (*GeminiReviewSummarizer, error) {
	if cfg.GeminiAPIKey == "" {
		msg := trans.GetMessage("error_missing_api_key", 0, nil)
		return nil, fmt.Errorf("%s", msg)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("error al crear el cliente de Gemini: %w", err)
	}

	model := client.GenerativeModel(cfg.GeminiModel)
	model.ResponseMIMEType = "application/json"
	return &GeminiReviewSummarizer{
		client: client,
		model:  model,
		trans:  trans,
	}, nil
}

func (s *GeminiReviewSummarizer) SummarizeReview(ctx context.Context, prompt string) (models.ReviewSummary, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return models.ReviewSummary{}, fmt.Errorf("error al generar el resumen: %w", err)
	}

	responseText := formatResponse(resp)
	if responseText == "" {
		msg := s.trans.GetMessage("summarize_empty_response", 0, nil)
		return models.ReviewSummary{}, fmt.Errorf("%s", msg)
	}

	responseText = strings.TrimSpace(responseText)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	var parsed reviewSummaryJSON
	if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
		return models.ReviewSummary{}, fmt.Errorf("error al parsear la respuesta de la IA: %w", err)
	}
	if strings.TrimSpace(parsed.Overview) == "" {
		msg := s.trans.GetMessage("summarize_empty_response", 0, nil)
		return models.ReviewSummary{}, fmt.Errorf("%s", msg)
	}

	return models.ReviewSummary{
		Overview:   parsed.Overview,
		KeyChanges: parsed.KeyChanges,
		Risks:      parsed.Risks,
	}, nil
}

func formatResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || resp.Candidates == nil {
		return ""
	}

	var content strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			content.WriteString(fmt.Sprintf("%v", part))
		}
	}
	return content.String()
}

// Close libera el cliente subyacente.
func (s *GeminiReviewSummarizer) Close() error {
	return s.client.Close()
}
