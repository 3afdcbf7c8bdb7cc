package dto

// RescheduleSessionRequest amends a single session. Omitted fields are left
// unchanged; at least one of date, startTime or topic must be present.
type RescheduleSessionRequest struct {
	Date      *string `json:"date,omitempty" example:"2025-01-09"`
	StartTime *string `json:"startTime,omitempty" example:"14:00"`
	Topic     *string `json:"topic,omitempty" example:"Mock test #2"`
	Reason    *string `json:"reason,omitempty" example:"tutor unavailable"`
}

// CancelSessionRequest carries the optional reason for calling off a session
type CancelSessionRequest struct {
	Reason *string `json:"reason,omitempty" example:"room unavailable"`
}
