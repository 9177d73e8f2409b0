package calendar

import (
	"context"
	"fmt"
	"time"

	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const maxEventResults = 2000

// GoogleBusyProvider reads busy time from Google Calendar.
type GoogleBusyProvider struct {
	svc *gcalendar.Service
}

// NewGoogleBusyProvider builds a provider from a service-account credentials
// file. An empty path yields a disabled provider, not an error, so
// deployments without calendar integration still start.
func NewGoogleBusyProvider(ctx context.Context, credentialsFile string) (*GoogleBusyProvider, error) {
	if credentialsFile == "" {
		return &GoogleBusyProvider{}, nil
	}
	svc, err := gcalendar.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("init google calendar service: %w", err)
	}
	return &GoogleBusyProvider{svc: svc}, nil
}

func (p *GoogleBusyProvider) Enabled() bool {
	return p.svc != nil
}

func (p *GoogleBusyProvider) GetBusyIntervals(ctx context.Context, calendarID string, dayStart, dayEnd time.Time, ignoreAllDay bool) ([]models.TimeInterval, error) {
	if p.svc == nil {
		return nil, fmt.Errorf("%w: google calendar is not configured", ErrQueryFailed)
	}

	logger := utils.GetLogger()

	events, err := p.svc.Events.List(calendarID).
		SingleEvents(true).
		MaxResults(maxEventResults).
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: list events for %s: %v", ErrQueryFailed, calendarID, err)
	}

	var busy []models.TimeInterval
	for _, item := range events.Items {
		if item.Start == nil || item.End == nil {
			logger.Warn("skipping busy entry without times",
				zap.String("calendarId", calendarID), zap.String("eventId", item.Id))
			continue
		}

		// All-day entries carry a date but no dateTime.
		if item.Start.DateTime == "" || item.End.DateTime == "" {
			if ignoreAllDay {
				continue
			}
			return nil, fmt.Errorf("%w: all-day event %s on %s cannot be placed on the timeline", ErrQueryFailed, item.Id, calendarID)
		}

		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			logger.Warn("skipping busy entry with malformed start",
				zap.String("calendarId", calendarID), zap.String("eventId", item.Id), zap.Error(err))
			continue
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			logger.Warn("skipping busy entry with malformed end",
				zap.String("calendarId", calendarID), zap.String("eventId", item.Id), zap.Error(err))
			continue
		}

		busy = append(busy, models.TimeInterval{Start: start.UTC(), End: end.UTC()})
	}

	return busy, nil
}
