package model

import (
	"github.com/lib/pq"

	"carnaval/shared/model"
)

const (
	TableName  = "galleries"
	EntityName = "gallery"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImages      = "images"
	FieldEventID     = "event_id"
)

// Gallery is an album of carnival moments, optionally pinned to the event
// where the photos were taken.
type Gallery struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Images      pq.StringArray `db:"images"`
	EventID     string         `db:"event_id"`
	model.Metadata
}
