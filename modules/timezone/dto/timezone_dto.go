package dto

// TimezoneInfoResponse describes a single IANA timezone for the UI picker
type TimezoneInfoResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	OffsetHours int    `json:"offset_hours"`
	LocalHour   int    `json:"local_hour"`
	LocalTime   string `json:"local_time"`
}

// ValidateTimezoneResponse reports whether a timezone name is recognized
type ValidateTimezoneResponse struct {
	Name  string `json:"name"`
	Valid bool   `json:"valid"`
}
