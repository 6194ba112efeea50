// Package gateway is the networked last resort of the resolution chain:
// a Gemini client with a bounded, per-failure-class recovery budget. Each
// recovery path (inline instruction, model fallback, quota backoff) fires
// at most once per call.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gestasai/academy-tutor/internal/core"
	"github.com/gestasai/academy-tutor/pkg/log"
	"github.com/gestasai/academy-tutor/pkg/retry"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-1.5-flash"

	// Fixed pause before the single 429 retry.
	quotaRetryDelay = 2 * time.Second
)

type Client struct {
	client     *http.Client
	baseURL    string
	settings   core.SettingsRepository
	retrier    *retry.Retrier
	quotaDelay time.Duration
}

func New(settings core.SettingsRepository) *Client {
	return NewWithBaseURL(settings, defaultBaseURL)
}

func NewWithBaseURL(settings core.SettingsRepository, baseURL string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
		baseURL:    baseURL,
		settings:   settings,
		retrier:    retry.NewDefaultRetrier(),
		quotaDelay: quotaRetryDelay,
	}
}

type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"system_instruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) Ask(ctx context.Context, query string, lesson *core.LessonContext, history []core.ChatMessage) (core.ResolutionResult, error) {
	settings, err := c.settings.Get(ctx)
	if err != nil {
		return core.ResolutionResult{}, fmt.Errorf("load settings: %w", err)
	}
	if settings.GeminiAPIKey == "" {
		return core.ResolutionResult{}, ErrAPIKeyMissing
	}

	model := settings.GeminiModel
	if model == "" {
		model = defaultModel
	}

	instruction := BuildSystemPrompt(lesson)
	reqBody := generateRequest{
		Contents:          buildContents(history, query),
		SystemInstruction: &content{Parts: []part{{Text: instruction}}},
		GenerationConfig: generationConfig{
			Temperature:     0.4,
			MaxOutputTokens: 2048,
		},
	}

	text, err := c.generateWithRecovery(ctx, settings.GeminiAPIKey, model, reqBody, instruction)
	if err != nil {
		return core.ResolutionResult{}, err
	}

	return core.ResolutionResult{
		Text: text,
		Type: core.ResultGenerated,
	}, nil
}

// retryBudget tracks which recovery paths have fired. Each is one-shot:
// a second failure of the same class surfaces to the caller.
type retryBudget struct {
	inline bool
	model  bool
	quota  bool
}

func (c *Client) generateWithRecovery(ctx context.Context, apiKey, model string, reqBody generateRequest, instruction string) (string, error) {
	var used retryBudget

	for {
		text, err := c.generate(ctx, apiKey, model, reqBody)
		if err == nil {
			return text, nil
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			return "", err
		}

		switch {
		case apiErr.InstructionUnsupported() && !used.inline:
			used.inline = true
			log.FromCtx(ctx).Warn().Str("model", model).
				Msg("system instruction rejected, inlining into user turn")
			reqBody.Contents = inlineInstruction(reqBody.Contents, instruction)
			reqBody.SystemInstruction = nil

		case apiErr.ModelNotFound() && !used.model:
			used.model = true
			fallback, ferr := c.fallbackModel(ctx, apiKey)
			if ferr != nil {
				log.FromCtx(ctx).Error().Err(ferr).Msg("model fallback lookup failed")
				return "", err
			}
			log.FromCtx(ctx).Warn().Str("from", model).Str("to", fallback).
				Msg("model not found, rotating")
			model = fallback

		case apiErr.RateLimited() && !used.quota:
			used.quota = true
			log.FromCtx(ctx).Warn().Dur("delay", c.quotaDelay).
				Msg("rate limited, backing off once")
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.quotaDelay):
			}

		default:
			return "", err
		}
	}
}

// generate is a single POST attempt with no recovery.
func (c *Client) generate(ctx context.Context, apiKey, model string, reqBody generateRequest) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/models/"+model+":generateContent", apiKey, reqBody)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", parseAPIError(resp.StatusCode, data)
	}

	var genResp generateResponse
	if err := json.Unmarshal(data, &genResp); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}

	if len(genResp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// ListModels returns the provider's models that support content generation.
// Wrapped in the shared retrier: listing is a plain idempotent GET.
func (c *Client) ListModels(ctx context.Context) ([]core.Model, error) {
	settings, err := c.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if settings.GeminiAPIKey == "" {
		return nil, ErrAPIKeyMissing
	}

	var models []core.Model
	err = c.retrier.Do(ctx, func() error {
		fetched, ferr := c.fetchModels(ctx, settings.GeminiAPIKey)
		if ferr != nil {
			return ferr
		}
		models = fetched
		return nil
	})
	return models, err
}

func (c *Client) fetchModels(ctx context.Context, apiKey string) ([]core.Model, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/models", apiKey, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseAPIError(resp.StatusCode, data)
	}

	var apiResp struct {
		Models []struct {
			Name                       string   `json:"name"`
			DisplayName                string   `json:"displayName"`
			Description                string   `json:"description"`
			SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
		} `json:"models"`
	}
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("decode models response: %w", err)
	}

	var models []core.Model
	for _, m := range apiResp.Models {
		if !supportsGeneration(m.SupportedGenerationMethods) {
			continue
		}
		models = append(models, core.Model{
			ID:          strings.TrimPrefix(m.Name, "models/"),
			Name:        m.DisplayName,
			Description: m.Description,
		})
	}
	return models, nil
}

func supportsGeneration(methods []string) bool {
	for _, m := range methods {
		if m == "generateContent" {
			return true
		}
	}
	return false
}

// fallbackModel picks a replacement after a 404: the first "flash" model
// (the cost-optimized line) or, failing that, whatever comes first.
func (c *Client) fallbackModel(ctx context.Context, apiKey string) (string, error) {
	models, err := c.fetchModels(ctx, apiKey)
	if err != nil {
		return "", err
	}
	if len(models) == 0 {
		return "", errors.New("no generation models available")
	}
	for _, m := range models {
		if strings.Contains(m.ID, "flash") {
			return m.ID, nil
		}
	}
	return models[0].ID, nil
}

func (c *Client) doRequest(ctx context.Context, method, path, apiKey string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", core.TutorUserAgent)
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	return resp, nil
}
