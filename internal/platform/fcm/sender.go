package fcm

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/notify"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
	"google.golang.org/api/option"
)

// batchClient is the part of *messaging.Client the sender uses.
type batchClient interface {
	SendEach(ctx context.Context, messages []*messaging.Message) (*messaging.BatchResponse, error)
}

// Sender implements notify.Sender with Firebase Cloud Messaging.
type Sender struct {
	client   batchClient
	classify func(error) notify.FailureCode
	logger   *slog.Logger
}

// NewSender initializes a Firebase app from the service-account credentials
// in cfg and returns a sender backed by its messaging client.
func NewSender(ctx context.Context, cfg config.PushConfig, logger *slog.Logger) (*Sender, error) {
	var fbConfig *firebase.Config
	if cfg.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase messaging client: %w", err)
	}
	return newSender(client, logger), nil
}

func newSender(client batchClient, logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{
		client:   client,
		classify: classifyError,
		logger:   logger.With("component", "fcm_sender"),
	}
}

var _ notify.Sender = (*Sender)(nil)

// SendBatch implements notify.Sender.
func (s *Sender) SendBatch(ctx context.Context, msgs []notify.Message) ([]notify.SendResult, error) {
	if len(msgs) > notify.MaxBatchSize {
		return nil, fmt.Errorf("batch of %d exceeds limit of %d", len(msgs), notify.MaxBatchSize)
	}

	fcmMsgs := make([]*messaging.Message, len(msgs))
	for i, m := range msgs {
		fcmMsgs[i] = toFCM(m)
	}

	resp, err := s.client.SendEach(ctx, fcmMsgs)
	if err != nil {
		return nil, fmt.Errorf("fcm send failed: %w", err)
	}
	if resp == nil || len(resp.Responses) != len(msgs) {
		return nil, notify.ErrResultCount
	}

	results := make([]notify.SendResult, len(msgs))
	for i, r := range resp.Responses {
		if r.Success {
			continue
		}
		results[i] = notify.SendResult{Failure: s.classify(r.Error), Err: r.Error}
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("fcm batch sent",
		slog.Int("success", resp.SuccessCount),
		slog.Int("failure", resp.FailureCount))
	return results, nil
}

// classifyError maps an FCM per-message error to a failure code.
func classifyError(err error) notify.FailureCode {
	switch {
	case err == nil:
		return notify.FailureNone
	case messaging.IsUnregistered(err):
		return notify.FailureUnregistered
	case messaging.IsInvalidArgument(err):
		return notify.FailureInvalidArgument
	default:
		return notify.FailureOther
	}
}

func toFCM(m notify.Message) *messaging.Message {
	msg := &messaging.Message{
		Token: m.Token,
		Data:  m.Data,
	}
	if m.Alert.Title != "" || m.Alert.Body != "" {
		msg.APNS = &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: m.Alert.Title,
						Body:  m.Alert.Body,
					},
					Category: m.Alert.Category,
				},
			},
		}
	}
	return msg
}

// LogSender implements notify.Sender by logging each message. Every
// message is reported as delivered.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger.With("component", "log_push_sender")}
}

var _ notify.Sender = (*LogSender)(nil)

// SendBatch implements notify.Sender.
func (s *LogSender) SendBatch(ctx context.Context, msgs []notify.Message) ([]notify.SendResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	for _, m := range msgs {
		log.Info("push message",
			slog.String("token", redact.Token(m.Token)),
			slog.String("type", m.Data[notify.KeyMessageType]),
			slog.String("title", m.Alert.Title),
			slog.String("body", m.Alert.Body))
	}
	return make([]notify.SendResult, len(msgs)), nil
}
