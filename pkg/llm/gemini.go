package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"WasteNot-Backend/internal/utils"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1/models"

// Default preference order when GEMINI_FALLBACK_MODELS is not configured.
var defaultFallbackModels = []string{
	"gemini-1.5-flash",
	"gemini-1.5-pro-latest",
	"gemini-1.5-pro",
	"gemini-pro",
}

var ErrAllModelsFailed = errors.New("all gemini models failed")

type geminiService struct {
	apiKey     string
	models     []string
	httpClient *http.Client
}

// NewGeminiService builds a CompletionService over the Gemini API. Models
// are tried in preference order; a 404 or timeout moves to the next model
// and failure is surfaced only after the last candidate fails.
func NewGeminiService() CompletionService {
	primary := utils.GetConfig("GEMINI_MODEL")
	if primary == "" {
		primary = defaultFallbackModels[0]
	}

	models := []string{primary}
	fallbacks := defaultFallbackModels
	if configured := utils.GetConfig("GEMINI_FALLBACK_MODELS"); configured != "" {
		fallbacks = strings.Split(configured, ",")
	}
	for _, m := range fallbacks {
		m = strings.TrimSpace(m)
		if m != "" && m != primary {
			models = append(models, m)
		}
	}

	return &geminiService{
		apiKey:     utils.GetConfig("GEMINI_API_KEY"),
		models:     models,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *geminiService) Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error) {
	if s.apiKey == "" {
		return "", errors.New("GEMINI_API_KEY not configured")
	}

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     opts.Temperature,
			"maxOutputTokens": opts.MaxOutputTokens,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	var lastErr error
	for i, model := range s.models {
		isLastModel := i == len(s.models)-1

		text, err := s.completeWithModel(ctx, model, requestJSON)
		if err == nil {
			return text, nil
		}

		if errors.Is(err, context.Canceled) {
			return "", err
		}

		lastErr = err
		if isLastModel {
			break
		}
		log.Printf("gemini model %s failed: %v, trying next model", model, err)
	}

	if lastErr == nil {
		lastErr = ErrAllModelsFailed
	}
	return "", lastErr
}

func (s *geminiService) completeWithModel(ctx context.Context, model string, requestJSON []byte) (string, error) {
	geminiURL := fmt.Sprintf("%s/%s:generateContent?key=%s", geminiBaseURL, model, url.QueryEscape(s.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("model %s not found", model)
	}
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from gemini")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}
