package questiond

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"sourcetrace/questions"
)

const systemPrompt = "You are a writing tutor. Given a passage, produce exactly three " +
	"thought-provoking study questions about it. Output each question on its own line, " +
	"prefixed with \"Q: \". Output nothing else."

type Config struct {
	Addr        string
	UpstreamURL string // OpenAI-style chat completions base URL
	UpstreamKey string
	Model       string
	CacheTTL    time.Duration
}

type Service struct {
	cfg    Config
	app    *fiber.App
	log    *zap.Logger
	cache  *gocache.Cache
	client *http.Client
}

func New(cfg Config, log *zap.Logger) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	s := &Service{
		cfg:    cfg,
		log:    log,
		cache:  gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		client: &http.Client{Timeout: 120 * time.Second},
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             1 * 1024 * 1024,
		DisableStartupMessage: true,
	})
	app.Post("/api/questions", s.handleGenerate)
	s.app = app
	return s
}

// App exposes the fiber app for tests.
func (s *Service) App() *fiber.App {
	return s.app
}

func (s *Service) Run() error {
	s.log.Info("questiond listening", zap.String("addr", s.cfg.Addr))
	return s.app.Listen(s.cfg.Addr)
}

type generateBody struct {
	Text any `json:"text"`
}

func (s *Service) handleGenerate(c *fiber.Ctx) error {
	var body generateBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "request body must be JSON",
		})
	}
	text, ok := body.Text.(string)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text is required and must be a string",
		})
	}
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < questions.MinTextLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("text must be at least %d characters", questions.MinTextLength),
		})
	}

	key := cacheKey(trimmed)
	if cached, found := s.cache.Get(key); found {
		return c.JSON(fiber.Map{"questions": cached.([]string)})
	}

	if s.cfg.UpstreamURL == "" || s.cfg.UpstreamKey == "" {
		s.log.Error("generation backend not configured")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "generation backend is not configured",
		})
	}

	qs, err := s.generate(c.UserContext(), trimmed)
	if err != nil {
		s.log.Error("question generation failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "question generation failed",
			"details": err.Error(),
		})
	}

	s.cache.Set(key, qs, gocache.DefaultExpiration)
	return c.JSON(fiber.Map{"questions": qs})
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (s *Service) generate(ctx context.Context, text string) ([]string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal upstream request: %w", err)
	}

	url := strings.TrimRight(s.cfg.UpstreamURL, "/") + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.UpstreamKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return nil, fmt.Errorf("malformed upstream payload: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("upstream returned no choices")
	}

	return normalize(ExtractQuestions(chat.Choices[0].Message.Content)), nil
}

// ExtractQuestions pulls the "Q:"-marked lines out of a completion.
func ExtractQuestions(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Q:") {
			continue
		}
		q := strings.TrimSpace(strings.TrimPrefix(line, "Q:"))
		if q != "" {
			out = append(out, q)
		}
	}
	return out
}

// normalize guarantees exactly questions.Count entries, padding with the
// fixed default question and truncating any surplus.
func normalize(qs []string) []string {
	if len(qs) > questions.Count {
		qs = qs[:questions.Count]
	}
	for len(qs) < questions.Count {
		qs = append(qs, questions.DefaultQuestion)
	}
	return qs
}
