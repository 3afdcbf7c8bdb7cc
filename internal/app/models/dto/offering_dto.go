package dto

// CreateOfferingRequest carries the fields needed to create a course offering
// together with its recurrence descriptor. The session list is generated from
// the descriptor exactly once, at creation time.
type CreateOfferingRequest struct {
	Title            string  `json:"title" binding:"required,min=2,max=200" example:"IELTS Writing Intensive"`
	Description      *string `json:"description,omitempty" example:"Two evenings a week, eight sessions"`
	Capacity         int     `json:"capacity" binding:"required,gt=0" example:"8"`
	ApprovalRequired bool    `json:"approvalRequired" example:"false"`
	StartDate        string  `json:"startDate" binding:"required" example:"2025-01-06"`
	Weekdays         []int   `json:"weekdays" binding:"required,min=1,dive,gte=0,lte=6" example:"1,3"`
	SessionCount     int     `json:"sessionCount" binding:"required,gt=0" example:"8"`
	DailyStart       string  `json:"dailyStart" binding:"required" example:"08:00"`
	DurationMinutes  int     `json:"durationMinutes" binding:"required,gt=0" example:"90"`
}

// PreviewOfferingRequest carries only the recurrence descriptor, for
// expanding the session list without persisting anything.
type PreviewOfferingRequest struct {
	StartDate       string `json:"startDate" binding:"required" example:"2025-01-06"`
	Weekdays        []int  `json:"weekdays" binding:"required,min=1,dive,gte=0,lte=6" example:"1,3"`
	SessionCount    int    `json:"sessionCount" binding:"required,gt=0" example:"4"`
	DailyStart      string `json:"dailyStart" binding:"required" example:"08:00"`
	DurationMinutes int    `json:"durationMinutes" binding:"required,gt=0" example:"90"`
}
