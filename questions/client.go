package questions

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
	"unicode/utf8"

	"github.com/google/uuid"
)

// MinTextLength is the minimum trimmed document length before a
// generation request is worth issuing. Checked locally; no request is
// sent for shorter text.
const MinTextLength = 30

// Count is the number of questions every generation yields.
const Count = 3

// DefaultQuestion pads out a short result so the caller always sees
// exactly Count questions.
const DefaultQuestion = "What is the main idea you want a reader to take away from this passage?"

var ErrTextTooShort = errors.New("questions: text must be at least 30 characters")

type Question struct {
	ID   string
	Text string
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type generateRequest struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Questions []string `json:"questions"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Generate sends the document text to the generation service and
// returns exactly Count questions. Results are replaced wholesale on
// every call; transport failures, non-success statuses and malformed
// payloads all surface as errors, never as a silent empty list.
func (c *Client) Generate(ctx context.Context, text string) ([]Question, error) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < MinTextLength {
		return nil, ErrTextTooShort
	}

	payload, err := json.Marshal(generateRequest{Text: trimmed})
	if err != nil {
		return nil, fmt.Errorf("questions: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/questions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("questions: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("questions: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("questions: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			if errResp.Details != "" {
				return nil, fmt.Errorf("questions: %s: %s", errResp.Error, errResp.Details)
			}
			return nil, fmt.Errorf("questions: %s", errResp.Error)
		}
		return nil, fmt.Errorf("questions: service returned status %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("questions: malformed response: %w", err)
	}

	return build(genResp.Questions), nil
}

// build normalizes a raw question list to exactly Count entries,
// padding with the default question and dropping blanks. The service
// should already return exactly Count, but a short list must not crash
// or propagate.
func build(raw []string) []Question {
	out := make([]Question, 0, Count)
	for _, q := range raw {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		out = append(out, Question{ID: uuid.NewString(), Text: q})
		if len(out) == Count {
			break
		}
	}
	for len(out) < Count {
		out = append(out, Question{ID: uuid.NewString(), Text: DefaultQuestion})
	}
	return out
}
