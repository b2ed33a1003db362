package request

// ScheduleEntryRequest is one weekday's hours. Open and close are
// "15:04" wall-clock strings and are ignored when closed is true.
type ScheduleEntryRequest struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	Open      string `json:"open" example:"09:00"`
	Close     string `json:"close" example:"21:00"`
	Closed    bool   `json:"closed"`
}

type ReplaceScheduleRequest struct {
	Entries []ScheduleEntryRequest `json:"entries" binding:"required,dive"`
}
