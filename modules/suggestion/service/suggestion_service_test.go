package service

import (
	"context"
	"testing"
	"time"

	"meetsync-api/core/constants"
	contactentity "meetsync-api/modules/contact/entity"
	"meetsync-api/modules/suggestion/dto"

	"github.com/google/uuid"
)

type fakeContacts struct {
	contacts []contactentity.Contact
}

func (f *fakeContacts) GetContactsByIDs(_ context.Context, _ uuid.UUID, _ []uuid.UUID) ([]contactentity.Contact, error) {
	return f.contacts, nil
}

func newTestSuggestionService(contacts ...contactentity.Contact) *SuggestionService {
	return NewSuggestionService(&fakeContacts{contacts: contacts}, nil)
}

func suggestReq(rangeStart, rangeEnd string, maxSuggestions int, ids ...uuid.UUID) *dto.SuggestTimesRequest {
	return &dto.SuggestTimesRequest{
		ContactIDs:  ids,
		RangeStart:  rangeStart,
		RangeEnd:    rangeEnd,
		Timezone:    "UTC",
		Constraints: dto.MeetingConstraintsDTO{MaxSuggestions: maxSuggestions},
	}
}

func TestSuggestTimesCandidateWindow(t *testing.T) {
	contact := contactentity.Contact{ID: uuid.New(), Name: "Alice", Timezone: "UTC"}
	svc := newTestSuggestionService(contact)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	resp, err := svc.SuggestTimes(context.Background(), uuid.New(),
		suggestReq("2026-01-05", "2026-01-05", 50, contact.ID), now)
	if err != nil {
		t.Fatalf("SuggestTimes returned error: %v", err)
	}

	wantCount := constants.CandidateDayEndHour - constants.CandidateDayStartHour + 1
	if len(resp.Suggestions) != wantCount {
		t.Fatalf("got %d suggestions, want %d (one per candidate hour)", len(resp.Suggestions), wantCount)
	}
	for _, s := range resp.Suggestions {
		hour := s.Start.Hour()
		if hour < constants.CandidateDayStartHour || hour > constants.CandidateDayEndHour {
			t.Fatalf("candidate at hour %d outside the %d-%d window",
				hour, constants.CandidateDayStartHour, constants.CandidateDayEndHour)
		}
		if s.Score <= 0 {
			t.Fatalf("candidate at hour %d has score %d, zero-score candidates must be dropped", hour, s.Score)
		}
	}
}

func TestSuggestTimesDefaultMaxSuggestions(t *testing.T) {
	contact := contactentity.Contact{ID: uuid.New(), Name: "Alice", Timezone: "UTC"}
	svc := newTestSuggestionService(contact)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	resp, err := svc.SuggestTimes(context.Background(), uuid.New(),
		suggestReq("2026-01-05", "2026-01-06", 0, contact.ID), now)
	if err != nil {
		t.Fatalf("SuggestTimes returned error: %v", err)
	}
	if len(resp.Suggestions) != constants.DefaultMaxSuggestions {
		t.Fatalf("got %d suggestions, want the default cap of %d",
			len(resp.Suggestions), constants.DefaultMaxSuggestions)
	}
}

func TestSuggestTimesHonorsMaxSuggestions(t *testing.T) {
	contact := contactentity.Contact{ID: uuid.New(), Name: "Alice", Timezone: "UTC"}
	svc := newTestSuggestionService(contact)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	resp, err := svc.SuggestTimes(context.Background(), uuid.New(),
		suggestReq("2026-01-05", "2026-01-06", 3, contact.ID), now)
	if err != nil {
		t.Fatalf("SuggestTimes returned error: %v", err)
	}
	if len(resp.Suggestions) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(resp.Suggestions))
	}
}
