package model

import (
	"time"

	"github.com/lib/pq"

	"carnaval/shared/model"
)

const (
	TableName  = "events"
	EntityName = "event"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldTags        = "tags"
	FieldVenue       = "venue"
	FieldLatitude    = "latitude"
	FieldLongitude   = "longitude"
	FieldBadgeColor  = "badge_color"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
)

// Event categories are a closed set; unrecognized values are rejected at the
// request boundary and never reach the core.
const (
	CategoryParade      = "parade"
	CategoryConcert     = "concert"
	CategoryStreetParty = "street_party"
	CategoryCultural    = "cultural"
	CategoryFood        = "food"
	CategoryCompetition = "competition"
)

// Derived event lifecycle states. Never stored; always recomputed from the
// clock against the event window.
const (
	StatusLive     = "live"
	StatusUpcoming = "upcoming"
	StatusPast     = "past"
)

func Categories() []string {
	return []string{
		CategoryParade,
		CategoryConcert,
		CategoryStreetParty,
		CategoryCultural,
		CategoryFood,
		CategoryCompetition,
	}
}

func IsValidCategory(category string) bool {
	switch category {
	case CategoryParade, CategoryConcert, CategoryStreetParty,
		CategoryCultural, CategoryFood, CategoryCompetition:
		return true
	default:
		return false
	}
}

type Event struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Category    string         `db:"category"`
	Tags        pq.StringArray `db:"tags"`
	Venue       string         `db:"venue"`
	Latitude    float64        `db:"latitude"`
	Longitude   float64        `db:"longitude"`
	BadgeColor  string         `db:"badge_color"`
	StartTime   time.Time      `db:"start_time"`
	EndTime     time.Time      `db:"end_time"`
	model.Metadata
}
