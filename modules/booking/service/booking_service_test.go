package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"meetsync-api/core/params"
	availentity "meetsync-api/modules/availability/entity"
	availservice "meetsync-api/modules/availability/service"
	"meetsync-api/modules/booking/dto"
	"meetsync-api/modules/booking/entity"

	"github.com/google/uuid"
)

type fakeBookingRepo struct {
	linksBySlug map[string]*entity.BookingLink
	bookings    []*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{linksBySlug: map[string]*entity.BookingLink{}}
}

func (f *fakeBookingRepo) CreateLink(_ context.Context, link *entity.BookingLink) (*entity.BookingLink, error) {
	saved := *link
	saved.ID = uuid.New()
	f.linksBySlug[saved.Slug] = &saved
	return &saved, nil
}

func (f *fakeBookingRepo) GetLinkByID(_ context.Context, id uuid.UUID) (*entity.BookingLink, error) {
	for _, link := range f.linksBySlug {
		if link.ID == id {
			return link, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) GetLinkBySlug(_ context.Context, slug string) (*entity.BookingLink, error) {
	return f.linksBySlug[slug], nil
}

func (f *fakeBookingRepo) ListLinksByUserID(_ context.Context, _ uuid.UUID) ([]entity.BookingLink, error) {
	return nil, nil
}

func (f *fakeBookingRepo) UpdateLink(_ context.Context, _ *entity.BookingLink) error { return nil }

func (f *fakeBookingRepo) DeleteLink(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeBookingRepo) CreateBooking(_ context.Context, booking *entity.Booking) (*entity.Booking, error) {
	saved := *booking
	saved.ID = uuid.New()
	f.bookings = append(f.bookings, &saved)
	return &saved, nil
}

func (f *fakeBookingRepo) GetBookingByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) ListBookingsByUserID(_ context.Context, _ uuid.UUID, _ string, p params.QueryParams) (*entity.PaginatedBookingEntity, error) {
	return &entity.PaginatedBookingEntity{PageNumber: p.PageNumber, PageSize: p.PageSize}, nil
}

func (f *fakeBookingRepo) ListUpcoming(_ context.Context, _ uuid.UUID, _ time.Time) ([]entity.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) ListBlockingInRange(_ context.Context, _ uuid.UUID, from, to time.Time) ([]entity.Booking, error) {
	var out []entity.Booking
	for _, b := range f.bookings {
		if (b.Status == entity.StatusPending || b.Status == entity.StatusConfirmed) &&
			b.StartTime.Before(to) && b.EndTime.After(from) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListAllByUserID(_ context.Context, _ uuid.UUID) ([]entity.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) UpdateBookingStatus(_ context.Context, _ uuid.UUID, _ string, _ *time.Time, _ string) error {
	return nil
}

type fakeScheduleRepo struct {
	schedule *availentity.AvailabilitySchedule
}

func (f *fakeScheduleRepo) Create(_ context.Context, s *availentity.AvailabilitySchedule) (*availentity.AvailabilitySchedule, error) {
	return s, nil
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id uuid.UUID) (*availentity.AvailabilitySchedule, error) {
	if f.schedule != nil && f.schedule.ID == id {
		return f.schedule, nil
	}
	return nil, nil
}

func (f *fakeScheduleRepo) GetDefaultByUserID(_ context.Context, _ uuid.UUID) (*availentity.AvailabilitySchedule, error) {
	return f.schedule, nil
}

func (f *fakeScheduleRepo) ListByUserID(_ context.Context, _ uuid.UUID) ([]availentity.AvailabilitySchedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) Update(_ context.Context, _ *availentity.AvailabilitySchedule) error {
	return nil
}
func (f *fakeScheduleRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeScheduleRepo) SetDefault(_ context.Context, _, _ uuid.UUID) error { return nil }

type fakeNotifier struct {
	titles []string
}

func (f *fakeNotifier) Enqueue(_ context.Context, _ uuid.UUID, _, title, _ string, _ map[string]interface{}) error {
	f.titles = append(f.titles, title)
	return nil
}

func aucklandSchedule(userID uuid.UUID) *availentity.AvailabilitySchedule {
	day := availentity.DaySchedule{
		Enabled: true,
		Slots:   []availentity.SubInterval{{Start: "09:00", End: "17:00"}},
	}
	schedule := &availentity.AvailabilitySchedule{
		UserID:   userID,
		Name:     "NZ hours",
		Timezone: "Pacific/Auckland",
		Weekly:   availentity.WeeklySchedule{Monday: day},
	}
	schedule.ID = uuid.New()
	return schedule
}

// A slot generated for a host east of UTC can fall on the previous UTC
// calendar date; booking it must still succeed.
func TestCreateBookingAcrossDateLine(t *testing.T) {
	hostID := uuid.New()
	schedule := aucklandSchedule(hostID)
	repo := newFakeBookingRepo()
	avail := availservice.NewAvailabilityService(&fakeScheduleRepo{schedule: schedule})
	svc := NewBookingService(repo, avail, &fakeNotifier{}, nil)

	link := &entity.BookingLink{
		ID:              uuid.New(),
		UserID:          hostID,
		Slug:            "intro-call",
		Title:           "Intro call",
		DurationMinutes: 60,
		MinNoticeHours:  1,
		MaxDaysAhead:    60,
		Timezone:        "Pacific/Auckland",
		LocationType:    entity.LocationVideo,
		ScheduleID:      &schedule.ID,
		IsActive:        true,
	}
	repo.linksBySlug[link.Slug] = link

	// Monday 2026-01-05 09:00 NZDT is still Sunday in UTC
	start := time.Date(2026, 1, 4, 20, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	resp, err := svc.CreateBooking(context.Background(), "intro-call", &dto.CreateBookingRequest{
		InviteeName:  "Ana",
		InviteeEmail: "ana@example.com",
		StartTime:    start,
	}, now)
	if err != nil {
		t.Fatalf("booking a generated slot failed: %v", err)
	}
	if !resp.StartTime.Equal(start) {
		t.Fatalf("booked start = %v, want %v", resp.StartTime, start)
	}
	if resp.Status != entity.StatusConfirmed {
		t.Fatalf("status = %s, want %s", resp.Status, entity.StatusConfirmed)
	}
}

func TestCreateBookingRejectsTakenSlot(t *testing.T) {
	hostID := uuid.New()
	schedule := aucklandSchedule(hostID)
	repo := newFakeBookingRepo()
	avail := availservice.NewAvailabilityService(&fakeScheduleRepo{schedule: schedule})
	svc := NewBookingService(repo, avail, &fakeNotifier{}, nil)

	link := &entity.BookingLink{
		ID:              uuid.New(),
		UserID:          hostID,
		Slug:            "intro-call",
		Title:           "Intro call",
		DurationMinutes: 60,
		MinNoticeHours:  1,
		MaxDaysAhead:    60,
		Timezone:        "Pacific/Auckland",
		LocationType:    entity.LocationVideo,
		ScheduleID:      &schedule.ID,
		IsActive:        true,
	}
	repo.linksBySlug[link.Slug] = link

	start := time.Date(2026, 1, 4, 20, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	req := &dto.CreateBookingRequest{
		InviteeName:  "Ana",
		InviteeEmail: "ana@example.com",
		StartTime:    start,
	}

	if _, err := svc.CreateBooking(context.Background(), "intro-call", req, now); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.CreateBooking(context.Background(), "intro-call", req, now); err == nil {
		t.Fatal("second booking of the same slot should be rejected")
	}
}

func TestCreateLinkSlugSuffixOnlyOnCollision(t *testing.T) {
	repo := newFakeBookingRepo()
	avail := availservice.NewAvailabilityService(&fakeScheduleRepo{})
	svc := NewBookingService(repo, avail, &fakeNotifier{}, nil)

	first, err := svc.CreateLink(context.Background(), uuid.New(), &dto.CreateLinkRequest{Title: "Team Sync"})
	if err != nil {
		t.Fatalf("first CreateLink failed: %v", err)
	}
	if first.Slug != "team-sync" {
		t.Fatalf("first slug = %q, want the plain %q", first.Slug, "team-sync")
	}

	second, err := svc.CreateLink(context.Background(), uuid.New(), &dto.CreateLinkRequest{Title: "Team Sync"})
	if err != nil {
		t.Fatalf("second CreateLink failed: %v", err)
	}
	if !strings.HasPrefix(second.Slug, "team-sync-") || second.Slug == first.Slug {
		t.Fatalf("colliding slug = %q, want a suffixed variant of %q", second.Slug, "team-sync")
	}
}
