package model

import "carnaval/shared/model"

const (
	TableName  = "incidents"
	EntityName = "incident"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldSeverity    = "severity"
	FieldStatus      = "status"
	FieldLocation    = "location"
	FieldEventID     = "event_id"
)

const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

const (
	StatusOpen         = "open"
	StatusAcknowledged = "acknowledged"
	StatusResolved     = "resolved"
)

type Incident struct {
	ID          string `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Severity    string `db:"severity"`
	Status      string `db:"status"`
	Location    string `db:"location"`
	EventID     string `db:"event_id"`
	model.Metadata
}

func Severities() []string {
	return []string{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// CanTransition reports whether an incident may move between statuses.
// Resolution is terminal; an open incident may be resolved directly.
func CanTransition(from, to string) bool {
	switch from {
	case StatusOpen:
		return to == StatusAcknowledged || to == StatusResolved
	case StatusAcknowledged:
		return to == StatusResolved
	default:
		return false
	}
}
