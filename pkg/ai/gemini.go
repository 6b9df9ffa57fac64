package ai

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient calls the Gemini generateContent endpoint.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiClient(apiKey, model string, timeout time.Duration) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiClient{
		apiKey:     apiKey,
		model:      normalizeModel(model),
		baseURL:    defaultGeminiBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// WithBaseURL points the client at another endpoint, e.g. a test server.
func (c *GeminiClient) WithBaseURL(baseURL string) *GeminiClient {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
}

func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, schema map[string]any) (string, error) {
	return c.generate(ctx, generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	})
}

func (c *GeminiClient) generate(ctx context.Context, reqBody generateRequest) (string, error) {
	var resp generateResponse
	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	if err := c.doJSON(ctx, url, reqBody, &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

func normalizeModel(model string) string {
	model = strings.TrimSpace(model)
	model = strings.TrimPrefix(model, "models/")
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return model
}

func (c *GeminiClient) doJSON(ctx context.Context, url string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	// The key stays out of the URL so transport errors never carry it.
	req.Header.Set("x-goog-api-key", c.apiKey)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error.Message != "" {
			return fmt.Errorf("gemini api error: %s", errResp.Error.Message)
		}
		return fmt.Errorf("gemini api error: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
