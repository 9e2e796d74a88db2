package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"ocean-predict/internal/domain"
	"ocean-predict/internal/scoring"
)

const (
	DefaultBaseURL = "https://router.huggingface.co"
	DefaultModelID = "Minej/bert-base-personality"

	maxDetailLen = 200
)

// HTTPClient implementa Provider contra la API de inferencia de Hugging Face.
type HTTPClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient construye un cliente apuntando a {baseURL}/models/{model}.
func NewHTTPClient(baseURL, apiKey, model string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModelID
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *HTTPClient) Model() string { return c.model }

func (c *HTTPClient) Predict(ctx context.Context, text string) (domain.TraitVector, error) {
	bodyBytes, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return domain.TraitVector{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/models/"+c.model, bytes.NewReader(bodyBytes))
	if err != nil {
		return domain.TraitVector{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.TraitVector{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.TraitVector{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("inference api error",
			zap.String("model", c.model),
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(string(respBody), maxDetailLen)),
		)
		if resp.StatusCode == http.StatusServiceUnavailable {
			return domain.TraitVector{}, &ModelLoadingError{Model: c.model, RetryAfter: retryAfter(resp, respBody)}
		}
		return domain.TraitVector{}, &StatusError{
			Model:  c.model,
			Code:   resp.StatusCode,
			Detail: truncate(string(respBody), maxDetailLen),
		}
	}

	vec, err := ParseOutput(respBody)
	if err != nil {
		c.logger.Error("unexpected inference output",
			zap.String("model", c.model),
			zap.String("body", truncate(string(respBody), maxDetailLen)),
		)
		return domain.TraitVector{}, err
	}
	return vec, nil
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ParseOutput acepta [n...], [[n...]], [{label,score}...] o [[{label,score}...]].
// Los valores numericos siguen el orden O, C, E, A, N.
func ParseOutput(body []byte) (domain.TraitVector, error) {
	var outer []json.RawMessage
	if err := json.Unmarshal(body, &outer); err != nil || len(outer) == 0 {
		return domain.TraitVector{}, ErrUnexpectedOutput
	}

	// Lote de un solo elemento: [[...]].
	if trimmed := bytes.TrimSpace(outer[0]); len(trimmed) > 0 && trimmed[0] == '[' {
		return ParseOutput(trimmed)
	}

	var nums []float64
	if err := json.Unmarshal(body, &nums); err == nil {
		vec, ok := domain.VectorFromSlice(nums)
		if !ok {
			return domain.TraitVector{}, ErrUnexpectedOutput
		}
		return vec, nil
	}

	var labeled []labelScore
	if err := json.Unmarshal(body, &labeled); err != nil {
		return domain.TraitVector{}, ErrUnexpectedOutput
	}
	return fromLabels(labeled)
}

func fromLabels(items []labelScore) (domain.TraitVector, error) {
	var vec domain.TraitVector
	seen := make(map[domain.Trait]bool, len(domain.Traits))
	for _, it := range items {
		t, ok := traitForLabel(it.Label)
		if !ok {
			continue
		}
		vec = vec.With(t, it.Score)
		seen[t] = true
	}
	if len(seen) < len(domain.Traits) {
		return domain.TraitVector{}, ErrUnexpectedOutput
	}
	return vec, nil
}

func traitForLabel(label string) (domain.Trait, bool) {
	label = strings.TrimSpace(label)
	if t, ok := domain.TraitFromName(label); ok {
		return t, true
	}
	if strings.EqualFold(label, "extroversion") {
		return domain.Extraversion, true
	}
	if rest, ok := strings.CutPrefix(strings.ToUpper(label), "LABEL_"); ok {
		i, err := strconv.Atoi(rest)
		if err == nil && i >= 0 && i < len(domain.Traits) {
			return domain.Traits[i], true
		}
	}
	return "", false
}

func retryAfter(resp *http.Response, body []byte) time.Duration {
	var payload struct {
		EstimatedTime float64 `json:"estimated_time"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.EstimatedTime > 0 {
		return time.Duration(payload.EstimatedTime * float64(time.Second))
	}
	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return DefaultRetryAfter
}

func truncate(s string, n int) string {
	return scoring.TruncateText(s, n)
}
