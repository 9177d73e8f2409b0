package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// NotificationService delivers booking confirmations. The webhook is the
// policy's configured endpoint and may be empty, in which case the
// confirmation is only logged.
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, event *models.Event, webhook string) error
}

// DefaultNotificationService posts confirmations to the configured webhook.
type DefaultNotificationService struct {
	HTTPClient *http.Client
}

func NewDefaultNotificationService() *DefaultNotificationService {
	return &DefaultNotificationService{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type confirmationPayload struct {
	EventID      string                    `json:"eventId"`
	Subject      string                    `json:"subject"`
	StartsOn     time.Time                 `json:"startsOn"`
	EndsOn       time.Time                 `json:"endsOn"`
	MeetProvider string                    `json:"meetProvider,omitempty"`
	MeetLink     string                    `json:"meetLink,omitempty"`
	Participants []models.EventParticipant `json:"participants,omitempty"`
}

func (s *DefaultNotificationService) SendBookingConfirmation(ctx context.Context, event *models.Event, webhook string) error {
	logger := utils.GetLogger()

	if webhook == "" {
		logger.Info("booking confirmed",
			zap.String("eventId", event.ID),
			zap.Time("startsOn", event.StartsOn),
			zap.Time("endsOn", event.EndsOn))
		return nil
	}

	payload := confirmationPayload{
		EventID:      event.ID,
		Subject:      event.Subject,
		StartsOn:     event.StartsOn,
		EndsOn:       event.EndsOn,
		MeetProvider: event.MeetProvider,
		MeetLink:     event.MeetLink,
		Participants: event.Participants,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal confirmation for %s: %w", event.ID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhook, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build confirmation request for %s: %w", event.ID, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("post confirmation for %s: %w", event.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("confirmation webhook for %s returned %d", event.ID, resp.StatusCode)
	}
	logger.Info("booking confirmation delivered",
		zap.String("eventId", event.ID), zap.String("webhook", webhook))
	return nil
}
