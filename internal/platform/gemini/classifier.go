package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/phrazzld/tasks-api/internal/classification"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"google.golang.org/genai"
)

const (
	defaultMaxRetries = 2
	defaultRetryDelay = 500 * time.Millisecond
)

// ErrContentBlocked is returned when the model refuses to answer for safety reasons.
var ErrContentBlocked = errors.New("content blocked by model safety filters")

// contentGenerator is the part of *genai.Models the classifier uses.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Classifier asks a Gemini model for a task's category.
type Classifier struct {
	models     contentGenerator
	model      string
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewClassifier creates a classifier from the classifier configuration.
func NewClassifier(ctx context.Context, cfg config.ClassifierConfig, logger *slog.Logger) (*Classifier, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", classification.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", classification.ErrInvalidConfig, err)
	}

	return newClassifier(client.Models, cfg.ModelName, logger), nil
}

func newClassifier(models contentGenerator, model string, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	if model == "" {
		model = DefaultModel
	}
	return &Classifier{
		models:     models,
		model:      model,
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
		logger:     logger.With("component", "gemini_classifier"),
	}
}

var _ classification.Classifier = (*Classifier)(nil)

// Classify implements classification.Classifier.
func (c *Classifier) Classify(ctx context.Context, label string) (string, error) {
	if strings.TrimSpace(label) == "" {
		return "", classification.ErrNoCategory
	}
	prompt, err := buildPrompt(label)
	if err != nil {
		return "", err
	}

	log := logger.FromContextOrDefault(ctx, c.logger)
	temperature := float32(0)
	cfg := &genai.GenerateContentConfig{
		Temperature: &temperature,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}

	for attempt := 0; ; attempt++ {
		resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
		if err == nil {
			return categoryFrom(resp)
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if attempt >= c.maxRetries {
			return "", fmt.Errorf("%w: gemini call failed after %d attempts: %v",
				classification.ErrUnavailable, attempt+1, err)
		}

		// delay = base * 2^attempt * [0.5, 1.0)
		delay := time.Duration(float64(c.retryDelay) * math.Pow(2, float64(attempt)) * (0.5 + rand.Float64()*0.5))
		log.Warn("gemini call failed, retrying",
			slog.String("error", err.Error()),
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func categoryFrom(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", classification.ErrInvalidResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content", classification.ErrInvalidResponse)
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}

	category := cleanCategory(text.String())
	if category == "" {
		return "", classification.ErrNoCategory
	}
	return category, nil
}
