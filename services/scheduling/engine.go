package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotwise/config"
	availabilityRepo "slotwise/database/repository/availability"
	eventRepo "slotwise/database/repository/event"
	leaveRepo "slotwise/database/repository/leave"
	policyRepo "slotwise/database/repository/policy"
	"slotwise/models"
	"slotwise/services/calendar"
	"slotwise/services/meetlink"
	"slotwise/utils"

	"go.uber.org/zap"
)

// ConfirmationDispatcher hands a committed booking off for asynchronous
// confirmation delivery.
type ConfirmationDispatcher interface {
	EnqueueBookingConfirmation(ctx context.Context, eventID string) error
}

// Engine computes bookable slots and commits bookings against them. It is the
// single authority for what is open: listing, validation and booking all go
// through the same per-day computation.
type Engine struct {
	Availability availabilityRepo.AvailabilityRepository
	Policies     policyRepo.PolicyRepository
	Events       eventRepo.EventRepository
	Leaves       leaveRepo.LeaveRepository
	Busy         calendar.BusyPeriodProvider
	Locker       *utils.SlotLocker
	Links        meetlink.Resolver
	Confirm      ConfirmationDispatcher

	// Location interprets member hours ("HH:MM:SS") when projecting them onto
	// concrete dates. Defaults to the configured scheduler timezone.
	Location *time.Location
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewEngine(
	availability availabilityRepo.AvailabilityRepository,
	policies policyRepo.PolicyRepository,
	events eventRepo.EventRepository,
	leaves leaveRepo.LeaveRepository,
	busy calendar.BusyPeriodProvider,
	locker *utils.SlotLocker,
	links meetlink.Resolver,
	confirm ConfirmationDispatcher,
) *Engine {
	return &Engine{
		Availability: availability,
		Policies:     policies,
		Events:       events,
		Leaves:       leaves,
		Busy:         busy,
		Locker:       locker,
		Links:        links,
		Confirm:      confirm,
		Location:     config.SchedulerLocation,
	}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now().UTC()
	}
	return time.Now().UTC()
}

func (e *Engine) loc() *time.Location {
	if e.Location != nil {
		return e.Location
	}
	return time.UTC
}

// BookingRequest is the caller's side of a booking: the exact slot plus the
// meeting details to record on the event. TzOffsetMinutes is the caller's UTC
// offset, used to pin the slot onto the calendar date the caller saw it on.
type BookingRequest struct {
	Subject         string                    `json:"subject"`
	Description     string                    `json:"description,omitempty"`
	StartsOn        time.Time                 `json:"startsOn"`
	EndsOn          time.Time                 `json:"endsOn"`
	TzOffsetMinutes int                       `json:"tzOffset"`
	Participants    []models.EventParticipant `json:"participants,omitempty"`
}

func (r *BookingRequest) validate() error {
	if r.StartsOn.IsZero() || r.EndsOn.IsZero() {
		return fmt.Errorf("%w: slot start and end are required", ErrInvalidInput)
	}
	if !r.EndsOn.After(r.StartsOn) {
		return fmt.Errorf("%w: slot end must be after start", ErrInvalidInput)
	}
	return nil
}

// GetGroupSlots lists the bookable slots of an appointment group for one
// calendar date, as seen from the caller's UTC offset (minutes).
func (e *Engine) GetGroupSlots(ctx context.Context, groupID, dateStr string, tzOffsetMinutes int) (*models.DaySlotResult, error) {
	policy, err := e.loadGroupPolicy(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return e.listSlots(ctx, policy, dateStr, tzOffsetMinutes, nil)
}

// GetPersonalSlots lists the bookable slots of a user's personal duration,
// addressed by the user's public slug.
func (e *Engine) GetPersonalSlots(ctx context.Context, slug, durationID, dateStr string, tzOffsetMinutes int) (*models.DaySlotResult, error) {
	policy, avail, err := e.loadPersonalPolicy(ctx, slug, durationID)
	if err != nil {
		return nil, err
	}
	preloaded := map[string]*models.UserAvailability{avail.User: avail}
	return e.listSlots(ctx, policy, dateStr, tzOffsetMinutes, preloaded)
}

// BookGroupSlot books one listed slot of an appointment group.
func (e *Engine) BookGroupSlot(ctx context.Context, groupID string, req BookingRequest) (*models.Event, error) {
	policy, err := e.loadGroupPolicy(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return e.book(ctx, policy, nil, req)
}

// BookPersonalSlot books one listed slot of a personal duration.
func (e *Engine) BookPersonalSlot(ctx context.Context, slug, durationID string, req BookingRequest) (*models.Event, error) {
	policy, avail, err := e.loadPersonalPolicy(ctx, slug, durationID)
	if err != nil {
		return nil, err
	}
	preloaded := map[string]*models.UserAvailability{avail.User: avail}
	return e.book(ctx, policy, preloaded, req)
}

// RescheduleGroupEvent moves a booked group event onto another open slot.
func (e *Engine) RescheduleGroupEvent(ctx context.Context, groupID, eventID string, req BookingRequest) (*models.Event, error) {
	policy, err := e.loadGroupPolicy(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return e.reschedule(ctx, policy, nil, eventID, req)
}

// ReschedulePersonalEvent moves a booked personal event onto another open slot.
func (e *Engine) ReschedulePersonalEvent(ctx context.Context, slug, durationID, eventID string, req BookingRequest) (*models.Event, error) {
	policy, avail, err := e.loadPersonalPolicy(ctx, slug, durationID)
	if err != nil {
		return nil, err
	}
	preloaded := map[string]*models.UserAvailability{avail.User: avail}
	return e.reschedule(ctx, policy, preloaded, eventID, req)
}

func (e *Engine) loadGroupPolicy(ctx context.Context, groupID string) (*models.AppointmentPolicy, error) {
	policy, err := e.Policies.GetByID(ctx, groupID)
	if errors.Is(err, policyRepo.ErrNotFound) {
		return nil, fmt.Errorf("%w: group %s", ErrPolicyNotFound, groupID)
	}
	if err != nil {
		return nil, err
	}
	return policy, nil
}

func (e *Engine) loadPersonalPolicy(ctx context.Context, slug, durationID string) (*models.AppointmentPolicy, *models.UserAvailability, error) {
	avail, err := e.Availability.GetBySlug(ctx, slug)
	if errors.Is(err, availabilityRepo.ErrNotFound) {
		return nil, nil, fmt.Errorf("%w: user %s", ErrPolicyNotFound, slug)
	}
	if err != nil {
		return nil, nil, err
	}
	duration, ok := avail.DurationByID(durationID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: duration %s for user %s", ErrPolicyNotFound, durationID, slug)
	}
	return models.SynthesizePersonalPolicy(avail, duration), avail, nil
}

// memberAvailabilities loads the availability document of every mandatory
// member, in member order. preloaded short-circuits lookups the caller
// already holds.
func (e *Engine) memberAvailabilities(ctx context.Context, policy *models.AppointmentPolicy, preloaded map[string]*models.UserAvailability) ([]*models.UserAvailability, error) {
	members := policy.MandatoryMembers()
	avails := make([]*models.UserAvailability, 0, len(members))
	for _, m := range members {
		if a, ok := preloaded[m.User]; ok {
			avails = append(avails, a)
			continue
		}
		a, err := e.Availability.GetByUser(ctx, m.User)
		if errors.Is(err, availabilityRepo.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, m.User)
		}
		if err != nil {
			return nil, err
		}
		avails = append(avails, a)
	}
	return avails, nil
}

func (e *Engine) listSlots(ctx context.Context, policy *models.AppointmentPolicy, dateStr string, tzOffsetMinutes int, preloaded map[string]*models.UserAvailability) (*models.DaySlotResult, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", ErrInvalidInput, dateStr)
	}
	date = utils.UTCDate(date)

	if policy.Duration <= 0 {
		return nil, fmt.Errorf("%w: policy duration must be positive", ErrInvalidInput)
	}

	result := &models.DaySlotResult{
		Date:     dateStr,
		Duration: policy.Duration,
		Slots:    []models.BookableSlot{},
	}

	members := policy.MandatoryMembers()
	if len(members) == 0 {
		result.AvailableDays = []string{}
		return result, nil
	}

	avails, err := e.memberAvailabilities(ctx, policy, preloaded)
	if err != nil {
		return nil, err
	}

	availableDays := IntersectAvailableDays(avails)
	result.AvailableDays = availableDays
	if result.AvailableDays == nil {
		result.AvailableDays = []string{}
	}

	validation := ValidateDateWindow(date, e.now(), policy.MinimumNoticeBeforeEvent, policy.AvailabilityWindow)
	result.ValidStartDate = validation.ValidStartDate
	result.ValidEndDate = validation.ValidEndDate
	result.NextValidDate = validation.NextValidDate
	result.PrevValidDate = validation.PrevValidDate

	if !validation.IsValid {
		result.IsInvalidDate = true
		return result, nil
	}

	staffed := staffedDaySet(availableDays)
	nextOff, prevOff, anyStaffed := nearestStaffedOffsets(date, staffed)
	if !anyStaffed {
		return result, nil
	}
	if nextOff != 0 || prevOff != 0 {
		// The requested weekday itself is unstaffed; point the caller at the
		// closest staffed dates instead.
		result.IsInvalidDate = true
		result.NextValidDate = clampDate(validation.NextValidDate.AddDate(0, 0, nextOff), validation.ValidStartDate, validation.ValidEndDate)
		result.PrevValidDate = clampDate(validation.PrevValidDate.AddDate(0, 0, -prevOff), validation.ValidStartDate, validation.ValidEndDate)
		return result, nil
	}

	memo := NewLeaveMemo(e.Leaves)

	// Member hours live in the reference timezone, so the caller's local date
	// can span two UTC computation days. A caller east of UTC sees slots from
	// the prior day spill in; a caller west of UTC sees the next day's.
	computeDates := []time.Time{date, date.AddDate(0, 0, 1)}
	if tzOffsetMinutes > 0 {
		computeDates = []time.Time{date.AddDate(0, 0, -1), date}
	}

	var selected []models.BookableSlot
	for _, d := range computeDates {
		slots, err := e.computeDaySlots(ctx, policy, avails, d, memo, "")
		if err != nil {
			return nil, err
		}
		for _, slot := range slots {
			local := utils.ToFixedOffset(slot.StartTime, tzOffsetMinutes)
			if local.Day() == date.Day() {
				selected = append(selected, slot)
			}
		}
	}

	now := e.now()
	nowLocal := utils.ToFixedOffset(now, tzOffsetMinutes)
	for _, slot := range selected {
		endLocal := utils.ToFixedOffset(slot.EndTime, tzOffsetMinutes)
		if sameCalendarDate(endLocal, nowLocal) && slot.StartTime.Before(now) && slot.EndTime.Before(now) {
			continue
		}
		result.Slots = append(result.Slots, slot)
	}
	result.TotalSlotsForDay = len(result.Slots)
	return result, nil
}

// computeDaySlots runs the full per-day pipeline for one UTC calendar date:
// weekday window, leave veto, external busy time, booked-event frequency and
// the generation sweep. A nil, nil return means the day offers nothing.
func (e *Engine) computeDaySlots(ctx context.Context, policy *models.AppointmentPolicy, avails []*models.UserAvailability, date time.Time, memo *LeaveMemo, excludeEventID string) ([]models.BookableSlot, error) {
	window, ok := ResolveDayWindow(avails, utils.WeekdayName(date))
	if !ok {
		return nil, nil
	}

	onLeave, err := memo.AnyOnLeave(ctx, policy.MandatoryMembers(), date)
	if err != nil {
		return nil, err
	}
	if onLeave {
		return nil, nil
	}

	interval, err := window.ToInterval(date, e.loc())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var busy []models.TimeInterval
	for _, a := range avails {
		if a.GoogleCalendarID == "" || e.Busy == nil {
			continue
		}
		got, err := e.Busy.GetBusyIntervals(ctx, a.GoogleCalendarID, interval.Start, interval.End, policy.IgnoreAllDayEvents)
		if err != nil {
			return nil, err
		}
		busy = append(busy, FilterToWindow(got, interval)...)
	}

	freq, err := CheckBookingFrequency(ctx, e.Events, policy.EventScope(), date, policy.LimitBookingFrequency, excludeEventID)
	if err != nil {
		return nil, err
	}
	if !freq.Available {
		utils.GetLogger().Debug("booking frequency limit reached",
			zap.String("scope", policy.EventScope()), zap.String("date", date.Format("2006-01-02")))
		return nil, nil
	}
	for _, ev := range freq.Events {
		busy = append(busy, FilterToWindow([]models.TimeInterval{ev.Interval()}, interval)...)
	}

	return GenerateSlots(interval, NormalizeBusy(busy), policy.Duration, policy.MinimumBufferTime), nil
}

// slotStillOpen recomputes availability around the slot's UTC date and checks
// for an exact match. The slot may have been generated for an adjacent
// computation day, so the neighbors are scanned too.
func (e *Engine) slotStillOpen(ctx context.Context, policy *models.AppointmentPolicy, avails []*models.UserAvailability, startsOn, endsOn time.Time, memo *LeaveMemo, excludeEventID string) (bool, error) {
	base := utils.UTCDate(startsOn)
	for _, offset := range []int{0, -1, 1} {
		slots, err := e.computeDaySlots(ctx, policy, avails, base.AddDate(0, 0, offset), memo, excludeEventID)
		if err != nil {
			return false, err
		}
		for _, slot := range slots {
			if slot.StartTime.Equal(startsOn) && slot.EndTime.Equal(endsOn) {
				return true, nil
			}
		}
	}
	return false, nil
}

// checkDateWindow re-runs the notice and availability-window rules on the
// calendar date the caller sees the slot on. Listings flag an out-of-window
// date and return it empty; a booking aimed at one is refused outright.
func (e *Engine) checkDateWindow(policy *models.AppointmentPolicy, startsOn time.Time, tzOffsetMinutes int) error {
	local := utils.ToFixedOffset(startsOn, tzOffsetMinutes)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	validation := ValidateDateWindow(date, e.now(), policy.MinimumNoticeBeforeEvent, policy.AvailabilityWindow)
	if !validation.IsValid {
		return fmt.Errorf("%w: %s is outside the bookable date window", ErrInvalidInput, date.Format("2006-01-02"))
	}
	return nil
}

func (e *Engine) book(ctx context.Context, policy *models.AppointmentPolicy, preloaded map[string]*models.UserAvailability, req BookingRequest) (*models.Event, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if policy.Duration <= 0 {
		return nil, fmt.Errorf("%w: policy duration must be positive", ErrInvalidInput)
	}
	if !req.StartsOn.After(e.now()) {
		return nil, fmt.Errorf("%w: slot start is in the past", ErrInvalidInput)
	}
	if err := e.checkDateWindow(policy, req.StartsOn, req.TzOffsetMinutes); err != nil {
		return nil, err
	}
	avails, err := e.memberAvailabilities(ctx, policy, preloaded)
	if err != nil {
		return nil, err
	}

	var event *models.Event
	err = e.withSlotLock(ctx, policy, req.StartsOn, req.EndsOn, func(ctx context.Context) error {
		freq, err := CheckBookingFrequency(ctx, e.Events, policy.EventScope(), req.StartsOn, policy.LimitBookingFrequency, "")
		if err != nil {
			return err
		}
		if !freq.Available {
			return ErrBookingFrequencyExceeded
		}

		open, err := e.slotStillOpen(ctx, policy, avails, req.StartsOn.UTC(), req.EndsOn.UTC(), NewLeaveMemo(e.Leaves), "")
		if err != nil {
			return err
		}
		if !open {
			return ErrSlotNoLongerAvailable
		}

		provider, link := e.resolveLink(policy)
		event = &models.Event{
			Subject:      req.Subject,
			Description:  req.Description,
			StartsOn:     req.StartsOn.UTC(),
			EndsOn:       req.EndsOn.UTC(),
			Scope:        policy.EventScope(),
			Participants: req.Participants,
			MeetProvider: provider,
			MeetLink:     link,
		}
		return e.Events.CreateEvent(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	e.dispatchConfirmation(ctx, event)
	return event, nil
}

func (e *Engine) reschedule(ctx context.Context, policy *models.AppointmentPolicy, preloaded map[string]*models.UserAvailability, eventID string, req BookingRequest) (*models.Event, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if policy.Duration <= 0 {
		return nil, fmt.Errorf("%w: policy duration must be positive", ErrInvalidInput)
	}
	if !req.StartsOn.After(e.now()) {
		return nil, fmt.Errorf("%w: slot start is in the past", ErrInvalidInput)
	}
	if err := e.checkDateWindow(policy, req.StartsOn, req.TzOffsetMinutes); err != nil {
		return nil, err
	}

	event, err := e.Events.GetByID(ctx, eventID)
	if errors.Is(err, eventRepo.ErrNotFound) {
		return nil, fmt.Errorf("%w: event %s", ErrInvalidInput, eventID)
	}
	if err != nil {
		return nil, err
	}
	if event.Scope != policy.EventScope() {
		return nil, fmt.Errorf("%w: event %s does not belong here", ErrInvalidInput, eventID)
	}

	avails, err := e.memberAvailabilities(ctx, policy, preloaded)
	if err != nil {
		return nil, err
	}

	err = e.withSlotLock(ctx, policy, req.StartsOn, req.EndsOn, func(ctx context.Context) error {
		open, err := e.slotStillOpen(ctx, policy, avails, req.StartsOn.UTC(), req.EndsOn.UTC(), NewLeaveMemo(e.Leaves), event.ID)
		if err != nil {
			return err
		}
		if !open {
			return ErrSlotNoLongerAvailable
		}
		return e.Events.RescheduleEvent(ctx, event.ID, req.StartsOn.UTC(), req.EndsOn.UTC())
	})
	if err != nil {
		return nil, err
	}

	event.StartsOn = req.StartsOn.UTC()
	event.EndsOn = req.EndsOn.UTC()
	e.dispatchConfirmation(ctx, event)
	return event, nil
}

// withSlotLock serializes the critical section when a locker is wired; a
// losing contender reads as the slot being gone.
func (e *Engine) withSlotLock(ctx context.Context, policy *models.AppointmentPolicy, start, end time.Time, fn func(ctx context.Context) error) error {
	if e.Locker == nil {
		return fn(ctx)
	}
	err := e.Locker.WithSlotLock(ctx, policy.EventScope(), start, end, fn)
	if errors.Is(err, utils.ErrLockNotAcquired) {
		return ErrSlotNoLongerAvailable
	}
	return err
}

func (e *Engine) resolveLink(policy *models.AppointmentPolicy) (string, string) {
	if e.Links == nil {
		return policy.MeetProvider, policy.MeetLink
	}
	return e.Links.Resolve(policy)
}

// dispatchConfirmation is best effort; a queue outage must not undo a
// committed booking.
func (e *Engine) dispatchConfirmation(ctx context.Context, event *models.Event) {
	if e.Confirm == nil || event == nil {
		return
	}
	if err := e.Confirm.EnqueueBookingConfirmation(ctx, event.ID); err != nil {
		utils.GetLogger().Error("failed to enqueue booking confirmation",
			zap.String("eventId", event.ID), zap.Error(err))
	}
}

func sameCalendarDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
