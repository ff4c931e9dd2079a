// Package models defines the append-only audit trail entities.
package models

import (
	"encoding/json"
	"time"
)

// RequestSnapshot is the structured capture of the request that produced an
// audit entry. Browser/OS come from parsing the User-Agent at insert time
// so the trail stays readable after clients churn.
type RequestSnapshot struct {
	Method         string          `json:"method"`
	Path           string          `json:"path"`
	Query          string          `json:"query,omitempty"`
	Body           json.RawMessage `json:"body,omitempty"`
	UserAgent      string          `json:"user_agent,omitempty"`
	Browser        string          `json:"browser,omitempty"`
	BrowserVersion string          `json:"browser_version,omitempty"`
	OS             string          `json:"os,omitempty"`
	Mobile         bool            `json:"mobile,omitempty"`
}

// Entry is one audit log row. Comments accumulate across updates: new text
// is joined to the old, never replacing it, so the field only grows.
type Entry struct {
	LogID       int64           `json:"log_id"`
	MethodRoute string          `json:"method_route"`
	Snapshot    RequestSnapshot `json:"request"`
	Comments    string          `json:"comments"`
	IPAddress   string          `json:"ip_address"`
	UserID      int64           `json:"user_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

// Row projects the entry for the predicate evaluator using the column
// names the relational table carries.
func (e Entry) Row() map[string]any {
	row := map[string]any{
		"log_id":       e.LogID,
		"method_route": e.MethodRoute,
		"comments":     e.Comments,
		"ip_address":   e.IPAddress,
		"user_id":      e.UserID,
		"created_at":   e.CreatedAt,
	}
	if e.UpdatedAt != nil {
		row["updated_at"] = *e.UpdatedAt
	}
	return row
}

// Event is the async notification emitted after a mutation, fanned out to
// the configured publisher (Kafka when brokers are set).
type Event struct {
	Action    string    `json:"action"`
	LogID     int64     `json:"log_id"`
	UserID    int64     `json:"user_id"`
	Route     string    `json:"route"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventInserted = "audit_log_inserted"
	EventUpdated  = "audit_log_updated"
	EventDeleted  = "audit_log_deleted"
)
