package scheduling

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	availabilityRepo "slotwise/database/repository/availability"
	eventRepo "slotwise/database/repository/event"
	policyRepo "slotwise/database/repository/policy"
	"slotwise/models"
	"slotwise/services/calendar"
)

type fakeAvailabilityRepo struct {
	byUser map[string]*models.UserAvailability
}

func (r *fakeAvailabilityRepo) GetByUser(_ context.Context, user string) (*models.UserAvailability, error) {
	if a, ok := r.byUser[user]; ok {
		return a, nil
	}
	return nil, availabilityRepo.ErrNotFound
}

func (r *fakeAvailabilityRepo) GetBySlug(_ context.Context, slug string) (*models.UserAvailability, error) {
	for _, a := range r.byUser {
		if a.Slug == slug && a.EnableScheduling {
			return a, nil
		}
	}
	return nil, availabilityRepo.ErrNotFound
}

func (r *fakeAvailabilityRepo) Upsert(_ context.Context, a *models.UserAvailability) error {
	r.byUser[a.User] = a
	return nil
}

func (r *fakeAvailabilityRepo) ListWithCalendars(_ context.Context) ([]models.UserAvailability, error) {
	var out []models.UserAvailability
	for _, a := range r.byUser {
		if a.GoogleCalendarID != "" {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakePolicyRepo struct {
	byID map[string]*models.AppointmentPolicy
}

func (r *fakePolicyRepo) GetByID(_ context.Context, id string) (*models.AppointmentPolicy, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, policyRepo.ErrNotFound
}

func (r *fakePolicyRepo) Create(_ context.Context, p *models.AppointmentPolicy) error {
	r.byID[p.ID] = p
	return nil
}

type fakeEventRepo struct {
	events []models.Event
}

func (r *fakeEventRepo) inDay(ev models.Event, scope string, dayStart, dayEnd time.Time) bool {
	return ev.Scope == scope &&
		!ev.StartsOn.Before(dayStart) && ev.StartsOn.Before(dayEnd) &&
		!ev.EndsOn.Before(dayStart) && ev.EndsOn.Before(dayEnd)
}

func (r *fakeEventRepo) CountEvents(ctx context.Context, scope string, dayStart, dayEnd time.Time) (int, error) {
	list, _ := r.ListEvents(ctx, scope, dayStart, dayEnd)
	return len(list), nil
}

func (r *fakeEventRepo) ListEvents(_ context.Context, scope string, dayStart, dayEnd time.Time) ([]models.Event, error) {
	var out []models.Event
	for _, ev := range r.events {
		if r.inDay(ev, scope, dayStart, dayEnd) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) CreateEvent(_ context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = fmt.Sprintf("evt-%d", len(r.events)+1)
	}
	event.CreatedAt = time.Now().UTC()
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*models.Event, error) {
	for i := range r.events {
		if r.events[i].ID == id {
			ev := r.events[i]
			return &ev, nil
		}
	}
	return nil, eventRepo.ErrNotFound
}

func (r *fakeEventRepo) RescheduleEvent(_ context.Context, id string, startsOn, endsOn time.Time) error {
	for i := range r.events {
		if r.events[i].ID == id {
			r.events[i].StartsOn = startsOn
			r.events[i].EndsOn = endsOn
			return nil
		}
	}
	return eventRepo.ErrNotFound
}

type fakeLeaveRepo struct {
	onLeave map[string]bool // "user|2006-01-02"
}

func (r *fakeLeaveRepo) IsOnLeave(_ context.Context, user string, date time.Time) (bool, error) {
	return r.onLeave[user+"|"+date.Format("2006-01-02")], nil
}

type fakeBusyProvider struct {
	byCalendar map[string][]models.TimeInterval
	err        error
}

func (p *fakeBusyProvider) Enabled() bool { return true }

func (p *fakeBusyProvider) GetBusyIntervals(_ context.Context, calendarID string, _, _ time.Time, _ bool) ([]models.TimeInterval, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.byCalendar[calendarID], nil
}

type fakeDispatcher struct {
	enqueued []string
}

func (d *fakeDispatcher) EnqueueBookingConfirmation(_ context.Context, eventID string) error {
	d.enqueued = append(d.enqueued, eventID)
	return nil
}

type testEnv struct {
	engine   *Engine
	avail    *fakeAvailabilityRepo
	policies *fakePolicyRepo
	events   *fakeEventRepo
	leaves   *fakeLeaveRepo
	busy     *fakeBusyProvider
	dispatch *fakeDispatcher
}

// newTestEnv wires an engine around one group ("g1") whose single mandatory
// member works Wednesdays 09:00-11:00. The clock is pinned to Monday
// 2026-01-05 08:00 UTC and member hours are interpreted in UTC.
func newTestEnv() *testEnv {
	alice := &models.UserAvailability{
		ID:               "avail-alice",
		User:             "alice@example.com",
		Slug:             "alice",
		EnableScheduling: true,
		WeeklyHours: []models.WeeklyHourRule{
			{Day: "Wednesday", StartTime: "09:00:00", EndTime: "11:00:00"},
		},
		Durations: []models.SlotDuration{
			{ID: "d30", Title: "Quick chat", DurationSeconds: 1800},
		},
	}
	group := &models.AppointmentPolicy{
		ID:        "g1",
		GroupName: "Interview Panel",
		Members: []models.Member{
			{User: "alice@example.com", IsMandatory: true},
		},
		Duration:              30 * time.Minute,
		LimitBookingFrequency: -1,
	}

	env := &testEnv{
		avail:    &fakeAvailabilityRepo{byUser: map[string]*models.UserAvailability{alice.User: alice}},
		policies: &fakePolicyRepo{byID: map[string]*models.AppointmentPolicy{group.ID: group}},
		events:   &fakeEventRepo{},
		leaves:   &fakeLeaveRepo{onLeave: map[string]bool{}},
		busy:     &fakeBusyProvider{byCalendar: map[string][]models.TimeInterval{}},
		dispatch: &fakeDispatcher{},
	}
	env.engine = &Engine{
		Availability: env.avail,
		Policies:     env.policies,
		Events:       env.events,
		Leaves:       env.leaves,
		Busy:         env.busy,
		Links:        nil,
		Confirm:      env.dispatch,
		Location:     time.UTC,
		Now: func() time.Time {
			return time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
		},
	}
	return env
}

func (env *testEnv) group() *models.AppointmentPolicy { return env.policies.byID["g1"] }

func TestGetGroupSlotsFreeDay(t *testing.T) {
	env := newTestEnv()

	res, err := env.engine.GetGroupSlots(context.Background(), "g1", "2026-01-07", 0)
	if err != nil {
		t.Fatalf("get slots: %v", err)
	}
	if res.IsInvalidDate {
		t.Fatalf("date should be valid: %+v", res)
	}
	assertSlots(t, res.Slots, []models.TimeInterval{
		iv(9, 0, 9, 30), iv(9, 30, 10, 0), iv(10, 0, 10, 30), iv(10, 30, 11, 0),
	})
	if res.TotalSlotsForDay != 4 {
		t.Fatalf("total = %d, want 4", res.TotalSlotsForDay)
	}
	if len(res.AvailableDays) != 1 || res.AvailableDays[0] != "Wednesday" {
		t.Fatalf("available days = %v", res.AvailableDays)
	}
}

func TestGetGroupSlotsIdempotent(t *testing.T) {
	env := newTestEnv()
	env.busy.byCalendar["cal-alice"] = []models.TimeInterval{iv(9, 15, 9, 40)}
	env.avail.byUser["alice@example.com"].GoogleCalendarID = "cal-alice"

	first, err := env.engine.GetGroupSlots(context.Background(), "g1", "2026-01-07", 0)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := env.engine.GetGroupSlots(context.Background(), "g1", "2026-01-07", 0)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(first.Slots) != len(second.Slots) {
		t.Fatalf("slot counts differ: %d vs %d", len(first.Slots), len(second.Slots))
	}
	for i := range first.Slots {
		if !first.Slots[i].StartTime.Equal(second.Slots[i].StartTime) {
			t.Fatalf("slot %d differs between calls", i)
		}
	}
}

func TestGetGroupSlotsAroundCalendarBusy(t *testing.T) {
	env := newTestEnv()
	env.avail.byUser["alice@example.com"].GoogleCalendarID = "cal-alice"
	env.busy.byCalendar["cal-alice"] = []models.TimeInterval{iv(9, 45, 10, 15)}

	res, err := env.engine.GetGroupSlots(context.Background(), "g1", "2026-01-07", 0)
	if err != nil {
		t.Fatalf("get slots: %v", err)
	}
	assertSlots(t, res.Slots, []models.TimeInterval{
		iv(9, 0, 9, 30), iv(10, 15, 10, 45),
	})
}

func TestGetGroupSlotsCalendarFailureAborts(t *testing.T) {
	env := newTestEnv()
	env.avail.byUser["alice@example.com"].GoogleCalendarID = "cal-alice"
	env.busy.err = fmt.Errorf("%w: token expired", calendar.ErrQueryFailed)

	_, err := env.engine.GetGroupSlots(context.Background(), "g1", "2026-01-07", 0)
	if !errors.Is(err, calendar.ErrQueryFailed) {
		t.Fatalf("expected calendar query failure, got %v", err)
	}
}

func TestGetGroupSlotsMergesBookedEvents(t *testing.T) {
	env := newTestEnv()
	env.events.events = append(env.events.events, models.Event{
		ID: "evt-existing", Scope: "group:g1",
		StartsOn: at(9, 0), EndsOn: at(9, 30),
	})

	res, err := env.engine.GetGroupSlots(context.Background(), "g1", "2026-01-07", 0)
	if err != nil {
		t.Fatalf("get slots: %v", err)
	}
	assertSlots(t, res.Slots, []models.TimeInterval{
		iv(9, 30, 10, 0), iv(10, 0, 10, 30), iv(10, 30, 11, 0),
	})
}

func TestGetGroupSlotsFrequencyLimitClosesDay(t *testing.T) {
	env := newTestEnv()
	env.group().LimitBookingFrequency = 1
	env.events.events = append(env.events.events, models.Event{
		ID: "evt-existing", Scope: "group:g1",
		StartsOn: at(9, 0), EndsOn: at(9, 30),
	})

	res, err := env.engine.GetGroupSlots(context.Background(), "g1", "2026-01-07", 0)
	if err != nil {
		t.Fatalf("get slots: %v", err)
	}
	if res.IsInvalidDate {
		t.Fatal("a frequency-closed day is still a valid date")
	}
	if len(res.Slots) != 0 || res.TotalSlotsForDay != 0 {
		t.Fatalf("expected no slots, got %v", res.Slots)
	}
}

func TestGetGroupSlotsDateBeforeNotice(t *testing.T) {
	env := newTestEnv()
	env.group().MinimumNoticeBeforeEvent = 3

	res, err := env.engine.GetGroupSlots(context.Background(), "g1", "2026-01-07", 0)
	if err != nil {
		t.Fatalf("get slots: %v", err)
	}
	if !res.IsInvalidDate {
		t.Fatal("date inside the notice period must be invalid")
	}
	want := utcDate(2026, 1, 8)
	if !res.NextValidDate.Equal(want) || !res.PrevValidDate.Equal(want) {
		t.Fatalf("next/prev = %v/%v, want both %v", res.NextValidDate, res.PrevValidDate, want)
	}
}

func TestGetGroupSlotsUnstaffedWeekday(t *testing.T) {
	env := newTestEnv()

	// 2026-01-10 is a Saturday; the panel only works Wednesdays.
	res, err := env.engine.GetGroupSlots(context.Background(), "g1", "2026-01-10", 0)
	if err != nil {
		t.Fatalf("get slots: %v", err)
	}
	if !res.IsInvalidDate {
		t.Fatal("unstaffed weekday must be flagged invalid")
	}
	if !res.NextValidDate.Equal(utcDate(2026, 1, 14)) {
		t.Fatalf("next = %v, want the following Wednesday", res.NextValidDate)
	}
	if !res.PrevValidDate.Equal(utcDate(2026, 1, 7)) {
		t.Fatalf("prev = %v, want the preceding Wednesday", res.PrevValidDate)
	}
}

func TestGetGroupSlotsLeaveVeto(t *testing.T) {
	env := newTestEnv()
	env.leaves.onLeave["alice@example.com|2026-01-07"] = true

	res, err := env.engine.GetGroupSlots(context.Background(), "g1", "2026-01-07", 0)
	if err != nil {
		t.Fatalf("get slots: %v", err)
	}
	if res.IsInvalidDate {
		t.Fatal("leave does not make the date itself invalid")
	}
	if len(res.Slots) != 0 {
		t.Fatalf("expected no slots while on leave, got %v", res.Slots)
	}
}

func TestGetGroupSlotsDropsElapsedSlots(t *testing.T) {
	env := newTestEnv()
	env.engine.Now = func() time.Time {
		return time.Date(2026, 1, 7, 9, 40, 0, 0, time.UTC)
	}

	res, err := env.engine.GetGroupSlots(context.Background(), "g1", "2026-01-07", 0)
	if err != nil {
		t.Fatalf("get slots: %v", err)
	}
	// 09:00-09:30 has fully elapsed; 09:30-10:00 is underway but not over.
	assertSlots(t, res.Slots, []models.TimeInterval{
		iv(9, 30, 10, 0), iv(10, 0, 10, 30), iv(10, 30, 11, 0),
	})
	if res.TotalSlotsForDay != 3 {
		t.Fatalf("total = %d, want 3", res.TotalSlotsForDay)
	}
}

func TestGetGroupSlotsTimezoneFanOut(t *testing.T) {
	env := newTestEnv()
	env.avail.byUser["alice@example.com"].WeeklyHours = []models.WeeklyHourRule{
		{Day: "Wednesday", StartTime: "09:00:00", EndTime: "10:00:00"},
		{Day: "Thursday", StartTime: "01:00:00", EndTime: "02:00:00"},
	}

	// UTC-8: Wednesday 09:00 UTC is 01:00 local Wednesday, and Thursday
	// 01:00 UTC is 17:00 local Wednesday. Both land on the requested date.
	res, err := env.engine.GetGroupSlots(context.Background(), "g1", "2026-01-07", -480)
	if err != nil {
		t.Fatalf("get slots: %v", err)
	}
	if len(res.Slots) != 4 {
		t.Fatalf("got %d slots, want 4: %v", len(res.Slots), res.Slots)
	}
	last := res.Slots[len(res.Slots)-1]
	if !last.StartTime.Equal(time.Date(2026, 1, 8, 1, 30, 0, 0, time.UTC)) {
		t.Fatalf("expected the Thursday spill-over slot, got %v", last)
	}
}

func TestBookGroupSlotAcceptsListedSlot(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	res, err := env.engine.GetGroupSlots(ctx, "g1", "2026-01-07", 0)
	if err != nil {
		t.Fatalf("get slots: %v", err)
	}
	slot := res.Slots[0]

	event, err := env.engine.BookGroupSlot(ctx, "g1", BookingRequest{
		Subject:  "Phone screen",
		StartsOn: slot.StartTime,
		EndsOn:   slot.EndTime,
		Participants: []models.EventParticipant{
			{Email: "candidate@example.com", Name: "Pat"},
		},
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if event.Scope != "group:g1" {
		t.Fatalf("scope = %q", event.Scope)
	}
	if len(env.dispatch.enqueued) != 1 || env.dispatch.enqueued[0] != event.ID {
		t.Fatalf("confirmation not enqueued: %v", env.dispatch.enqueued)
	}

	// The same slot must now be gone, for listing and for booking.
	res, err = env.engine.GetGroupSlots(ctx, "g1", "2026-01-07", 0)
	if err != nil {
		t.Fatalf("relist: %v", err)
	}
	for _, s := range res.Slots {
		if s.StartTime.Equal(slot.StartTime) {
			t.Fatal("booked slot still listed")
		}
	}
	_, err = env.engine.BookGroupSlot(ctx, "g1", BookingRequest{
		StartsOn: slot.StartTime, EndsOn: slot.EndTime,
	})
	if !errors.Is(err, ErrSlotNoLongerAvailable) {
		t.Fatalf("double booking should fail, got %v", err)
	}
}

func TestBookGroupSlotRejectsUnlistedSlot(t *testing.T) {
	env := newTestEnv()

	_, err := env.engine.BookGroupSlot(context.Background(), "g1", BookingRequest{
		StartsOn: at(9, 10),
		EndsOn:   at(9, 40),
	})
	if !errors.Is(err, ErrSlotNoLongerAvailable) {
		t.Fatalf("off-grid slot should be rejected, got %v", err)
	}
}

func TestBookGroupSlotFrequencyExceeded(t *testing.T) {
	env := newTestEnv()
	env.group().LimitBookingFrequency = 1
	env.events.events = append(env.events.events, models.Event{
		ID: "evt-existing", Scope: "group:g1",
		StartsOn: at(9, 0), EndsOn: at(9, 30),
	})

	_, err := env.engine.BookGroupSlot(context.Background(), "g1", BookingRequest{
		StartsOn: at(10, 0), EndsOn: at(10, 30),
	})
	if !errors.Is(err, ErrBookingFrequencyExceeded) {
		t.Fatalf("expected frequency error, got %v", err)
	}
}

func TestBookGroupSlotInvalidInput(t *testing.T) {
	env := newTestEnv()

	_, err := env.engine.BookGroupSlot(context.Background(), "g1", BookingRequest{
		StartsOn: at(10, 0), EndsOn: at(9, 30),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("inverted slot should be invalid input, got %v", err)
	}

	_, err = env.engine.BookGroupSlot(context.Background(), "g1", BookingRequest{
		StartsOn: time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC),
		EndsOn:   time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("past slot should be invalid input, got %v", err)
	}
}

func TestBookGroupSlotOutsideDateWindow(t *testing.T) {
	env := newTestEnv()
	env.group().MinimumNoticeBeforeEvent = 3

	// Listing flags 2026-01-07 as inside the notice period; booking one of its
	// slots directly must be refused the same way.
	res, err := env.engine.GetGroupSlots(context.Background(), "g1", "2026-01-07", 0)
	if err != nil {
		t.Fatalf("get slots: %v", err)
	}
	if !res.IsInvalidDate {
		t.Fatal("date inside the notice period must be flagged invalid")
	}
	_, err = env.engine.BookGroupSlot(context.Background(), "g1", BookingRequest{
		StartsOn: at(9, 0), EndsOn: at(9, 30),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("booking inside the notice period should be invalid input, got %v", err)
	}

	env = newTestEnv()
	env.group().AvailabilityWindow = 1 // only 2026-01-05 is bookable
	_, err = env.engine.BookGroupSlot(context.Background(), "g1", BookingRequest{
		StartsOn: at(9, 0), EndsOn: at(9, 30),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("booking past the availability window should be invalid input, got %v", err)
	}
	if len(env.events.events) != 0 {
		t.Fatalf("no event should be committed: %v", env.events.events)
	}
}

func TestBookGroupSlotWindowUsesCallerDate(t *testing.T) {
	env := newTestEnv()
	env.group().AvailabilityWindow = 3 // 2026-01-05 through 2026-01-07
	env.avail.byUser["alice@example.com"].WeeklyHours = []models.WeeklyHourRule{
		{Day: "Wednesday", StartTime: "17:00:00", EndTime: "19:00:00"},
	}
	ctx := context.Background()

	// At UTC+8 the 18:00 UTC Wednesday slot falls on Thursday 2026-01-08
	// locally, past the window the caller was shown.
	_, err := env.engine.BookGroupSlot(ctx, "g1", BookingRequest{
		StartsOn: at(18, 0), EndsOn: at(18, 30), TzOffsetMinutes: 480,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for the caller's local date, got %v", err)
	}

	// A UTC caller sees the same slot on 2026-01-07, inside the window.
	event, err := env.engine.BookGroupSlot(ctx, "g1", BookingRequest{
		StartsOn: at(18, 0), EndsOn: at(18, 30),
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if !event.StartsOn.Equal(at(18, 0)) {
		t.Fatalf("event start = %v", event.StartsOn)
	}
}

func TestPersonalSlotsAndBooking(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	res, err := env.engine.GetPersonalSlots(ctx, "alice", "d30", "2026-01-07", 0)
	if err != nil {
		t.Fatalf("get personal slots: %v", err)
	}
	if len(res.Slots) != 4 {
		t.Fatalf("got %d slots, want 4", len(res.Slots))
	}

	event, err := env.engine.BookPersonalSlot(ctx, "alice", "d30", BookingRequest{
		Subject:  "Quick chat",
		StartsOn: res.Slots[0].StartTime,
		EndsOn:   res.Slots[0].EndTime,
	})
	if err != nil {
		t.Fatalf("book personal: %v", err)
	}
	if event.Scope != "duration:d30" {
		t.Fatalf("scope = %q, want duration:d30", event.Scope)
	}
}

func TestPersonalUnknownDuration(t *testing.T) {
	env := newTestEnv()

	_, err := env.engine.GetPersonalSlots(context.Background(), "alice", "nope", "2026-01-07", 0)
	if !errors.Is(err, ErrPolicyNotFound) {
		t.Fatalf("expected policy-not-found, got %v", err)
	}
}

func TestRescheduleExcludesOwnBooking(t *testing.T) {
	env := newTestEnv()
	env.group().LimitBookingFrequency = 1
	ctx := context.Background()

	event, err := env.engine.BookGroupSlot(ctx, "g1", BookingRequest{
		Subject:  "Phone screen",
		StartsOn: at(9, 0), EndsOn: at(9, 30),
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	moved, err := env.engine.RescheduleGroupEvent(ctx, "g1", event.ID, BookingRequest{
		StartsOn: at(10, 0), EndsOn: at(10, 30),
	})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if !moved.StartsOn.Equal(at(10, 0)) {
		t.Fatalf("event not moved: %+v", moved)
	}
	stored, err := env.events.GetByID(ctx, event.ID)
	if err != nil || !stored.StartsOn.Equal(at(10, 0)) {
		t.Fatalf("stored event not updated: %+v err=%v", stored, err)
	}
}

func TestRescheduleOutsideDateWindow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	event, err := env.engine.BookGroupSlot(ctx, "g1", BookingRequest{
		Subject:  "Phone screen",
		StartsOn: at(9, 0), EndsOn: at(9, 30),
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	// Close the window to 2026-01-05 through 2026-01-09; the following
	// Wednesday is staffed but no longer bookable.
	env.group().AvailabilityWindow = 5
	_, err = env.engine.RescheduleGroupEvent(ctx, "g1", event.ID, BookingRequest{
		StartsOn: time.Date(2026, 1, 14, 10, 0, 0, 0, time.UTC),
		EndsOn:   time.Date(2026, 1, 14, 10, 30, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("rescheduling past the window should be invalid input, got %v", err)
	}
	stored, err := env.events.GetByID(ctx, event.ID)
	if err != nil || !stored.StartsOn.Equal(at(9, 0)) {
		t.Fatalf("event must stay put after a refused reschedule: %+v err=%v", stored, err)
	}
}

func TestBookPersonalZeroDurationRejected(t *testing.T) {
	env := newTestEnv()
	env.avail.byUser["alice@example.com"].Durations = append(
		env.avail.byUser["alice@example.com"].Durations,
		models.SlotDuration{ID: "d0", Title: "Broken", DurationSeconds: 0},
	)

	_, err := env.engine.BookPersonalSlot(context.Background(), "alice", "d0", BookingRequest{
		StartsOn: at(9, 0), EndsOn: at(9, 30),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero-length duration should be invalid input, got %v", err)
	}
}

func TestMissingMemberAvailability(t *testing.T) {
	env := newTestEnv()
	env.group().Members = append(env.group().Members, models.Member{
		User: "ghost@example.com", IsMandatory: true,
	})

	_, err := env.engine.GetGroupSlots(context.Background(), "g1", "2026-01-07", 0)
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected member-not-found, got %v", err)
	}
}

func TestUnknownGroup(t *testing.T) {
	env := newTestEnv()

	_, err := env.engine.GetGroupSlots(context.Background(), "missing", "2026-01-07", 0)
	if !errors.Is(err, ErrPolicyNotFound) {
		t.Fatalf("expected policy-not-found, got %v", err)
	}
}

func TestMalformedDate(t *testing.T) {
	env := newTestEnv()

	_, err := env.engine.GetGroupSlots(context.Background(), "g1", "07-01-2026", 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
