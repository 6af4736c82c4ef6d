package models

// ActivityLog is a single audit record. Read-only on the client.
type ActivityLog struct {
	ID          int64     `json:"id"`
	UserID      *int64    `json:"user_id"`
	Username    *string   `json:"username"`
	Action      string    `json:"action"`
	EntityType  *string   `json:"entity_type"`
	EntityID    *int64    `json:"entity_id"`
	Description *string   `json:"description"`
	IPAddress   *string   `json:"ip_address"`
	UserAgent   *string   `json:"user_agent"`
	CreatedAt   Timestamp `json:"created_at"`
}

type ActivityLogPage struct {
	Logs  []ActivityLog `json:"logs"`
	Total int           `json:"total"`
}

// LogFilter selects a page of activity logs. Zero values are not sent.
type LogFilter struct {
	Skip       int `validate:"gte=0"`
	Limit      int `validate:"omitempty,min=1,max=500"`
	Action     string
	EntityType string
	Username   string
	Search     string
	Days       int `validate:"omitempty,min=1,max=365"`
}

// LogSummary aggregates activity over the last PeriodDays days.
type LogSummary struct {
	PeriodDays int            `json:"period_days"`
	TotalLogs  int            `json:"total_logs"`
	Actions    map[string]int `json:"actions"`
	Entities   map[string]int `json:"entities"`
	TopUsers   []UserActivity `json:"top_users"`
}

type UserActivity struct {
	Username string `json:"username"`
	Count    int    `json:"count"`
}
