package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/tasks-api/internal/classification"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// StatusOK is the reply status of a successful prediction.
const StatusOK = 0

// reply is the classification service's answer.
type reply struct {
	Status int    `json:"status"`
	Result string `json:"result"`
}

// Client classifies labels over a websocket connection.
type Client struct {
	url     string
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient creates a client for the service at url ("ws://" or "wss://").
// timeout bounds a whole round trip when the caller's context has no
// earlier deadline; zero means no extra bound.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if !strings.HasPrefix(url, "ws://") && !strings.HasPrefix(url, "wss://") {
		return nil, fmt.Errorf("%w: url must use ws or wss scheme: %q", classification.ErrInvalidConfig, url)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		url:     url,
		timeout: timeout,
		logger:  logger.With("component", "classifier_client"),
	}, nil
}

var _ classification.Classifier = (*Client)(nil)

// Classify implements classification.Classifier. It blocks until the reply
// arrives or ctx is done.
func (c *Client) Classify(ctx context.Context, label string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	log := logger.FromContextOrDefault(ctx, c.logger)

	conn, _, err := websocket.Dial(ctx, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: dial: %v", classification.ErrUnavailable, err)
	}
	defer conn.Close(websocket.StatusInternalError, "")

	request, err := json.Marshal(label)
	if err != nil {
		return "", fmt.Errorf("failed to encode label: %w", err)
	}
	if err := conn.Write(ctx, websocket.MessageText, request); err != nil {
		return "", fmt.Errorf("%w: write: %v", classification.ErrUnavailable, err)
	}

	var r reply
	if err := wsjson.Read(ctx, conn, &r); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return "", fmt.Errorf("%w: %v", classification.ErrInvalidResponse, err)
		}
		return "", fmt.Errorf("%w: read: %v", classification.ErrUnavailable, err)
	}
	conn.Close(websocket.StatusNormalClosure, "")

	if r.Status != StatusOK {
		log.Warn("classifier reported failure",
			slog.Int("status", r.Status),
			slog.String("result", r.Result))
		return "", fmt.Errorf("%w: status %d", classification.ErrUnavailable, r.Status)
	}

	category := strings.TrimSpace(r.Result)
	if category == "" {
		return "", classification.ErrNoCategory
	}
	return category, nil
}
