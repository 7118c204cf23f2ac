package entity

import "testing"

func TestOverrideListUpsertReplacesDuplicateDate(t *testing.T) {
	list := OverrideList{
		{Date: "2026-01-05", Available: true, Slots: SlotList{{Start: "09:00", End: "12:00"}}},
		{Date: "2026-01-07", Available: false},
	}

	list = list.Upsert(AvailabilityOverride{
		Date:      "2026-01-05",
		Available: false,
	})

	if len(list) != 2 {
		t.Fatalf("got %d overrides, want 2", len(list))
	}
	if list[0].Date != "2026-01-05" || list[0].Available {
		t.Fatalf("duplicate date was not replaced: %+v", list[0])
	}
}

func TestOverrideListUpsertKeepsDateOrder(t *testing.T) {
	var list OverrideList
	for _, date := range []string{"2026-01-20", "2026-01-05", "2026-01-12"} {
		list = list.Upsert(AvailabilityOverride{Date: date, Available: true})
	}

	want := []string{"2026-01-05", "2026-01-12", "2026-01-20"}
	for i, date := range want {
		if list[i].Date != date {
			t.Fatalf("position %d = %s, want %s", i, list[i].Date, date)
		}
	}
}

func TestOverrideListRemove(t *testing.T) {
	list := OverrideList{
		{Date: "2026-01-05", Available: true},
		{Date: "2026-01-07", Available: false},
	}

	list = list.Remove("2026-01-05")
	if len(list) != 1 || list[0].Date != "2026-01-07" {
		t.Fatalf("unexpected overrides after remove: %+v", list)
	}

	// removing an absent date is a no-op
	list = list.Remove("2026-02-01")
	if len(list) != 1 {
		t.Fatalf("remove of absent date changed the list: %+v", list)
	}
}
