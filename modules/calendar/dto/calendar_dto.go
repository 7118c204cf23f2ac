package dto

import "time"

// OAuthURLResponse carries the Google consent URL for the frontend redirect
type OAuthURLResponse struct {
	URL string `json:"url"`
}

type ConnectionResponse struct {
	ID            string `json:"id"`
	Provider      string `json:"provider"`
	CalendarEmail string `json:"calendar_email"`
	IsActive      bool   `json:"is_active"`
	ConnectedAt   string `json:"connected_at"`
}

// BusySlot is one busy interval reported by the provider
type BusySlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type FreeBusyResponse struct {
	Provider  string     `json:"provider"`
	BusySlots []BusySlot `json:"busy_slots"`
	Count     int        `json:"count"`
}
