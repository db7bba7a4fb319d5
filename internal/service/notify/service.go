// Package notify delivers shop reports to the owner.
package notify

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/butcher/internal/domain/models"
	client "github.com/mamadbah2/butcher/pkg/clients/whatsapp"
)

const sendTimeout = 10 * time.Second

// Notifier pushes a text message to a contact.
type Notifier interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// WhatsAppNotifier is the production implementation backed by the WhatsApp Cloud API.
type WhatsAppNotifier struct {
	client client.Client
	logger *zap.Logger
}

// NewWhatsAppNotifier wires a notifier around a Cloud API client.
func NewWhatsAppNotifier(c client.Client, logger *zap.Logger) *WhatsAppNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhatsAppNotifier{client: c, logger: logger}
}

// SendOutbound sends the message with a bounded timeout.
func (n *WhatsAppNotifier) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	if req.To == "" || req.Message == "" {
		return errors.New("recipient and message are required")
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	id, err := n.client.SendTextMessage(ctxWithTimeout, client.TextMessage{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	if err != nil {
		return err
	}

	n.logger.Info("notification sent", zap.String("to", req.To), zap.String("message_id", id))
	return nil
}

// LogNotifier writes messages to the log when no messaging channel is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier builds a notifier that only logs.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// SendOutbound logs the message.
func (n *LogNotifier) SendOutbound(_ context.Context, req models.OutboundMessageRequest) error {
	n.logger.Info("notification", zap.String("to", req.To), zap.String("message", req.Message))
	return nil
}
