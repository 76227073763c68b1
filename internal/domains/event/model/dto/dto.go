package dto

import (
	"time"

	"github.com/google/uuid"

	"carnaval/internal/domains/event/model"
	"carnaval/internal/domains/event/schedule"
	"carnaval/shared"
	"carnaval/shared/colorx"
	"carnaval/shared/constant"
	gDto "carnaval/shared/dto"
	gModel "carnaval/shared/model"
	"carnaval/shared/timezone"
)

type CreateEventRequest struct {
	Name        string   `json:"name"        validate:"required,max=150"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Category    string   `json:"category"    validate:"required,oneof=parade concert street_party cultural food competition"`
	Tags        []string `json:"tags"        validate:"omitempty,dive,max=50"`
	Venue       string   `json:"venue"       validate:"required,max=200"`
	Latitude    float64  `json:"latitude"    validate:"omitempty,latitude"`
	Longitude   float64  `json:"longitude"   validate:"omitempty,longitude"`
	BadgeColor  string   `json:"badge_color" validate:"omitempty,hexcolor"`
	StartTime   string   `json:"start_time"  validate:"required"`
	EndTime     string   `json:"end_time"    validate:"required"`
}

func (c *CreateEventRequest) ToModel(user string) (model.Event, error) {
	startTime, err := time.Parse(constant.DateFormat, c.StartTime)
	if err != nil {
		return model.Event{}, err
	}

	endTime, err := time.Parse(constant.DateFormat, c.EndTime)
	if err != nil {
		return model.Event{}, err
	}

	return model.Event{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Category:    c.Category,
		Tags:        c.Tags,
		Venue:       c.Venue,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		BadgeColor:  c.BadgeColor,
		StartTime:   startTime,
		EndTime:     endTime,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateEventRequest struct {
	Name        string   `db:"name"        json:"name"        validate:"omitempty,max=150"`
	Description string   `db:"description" json:"description" validate:"omitempty,max=2000"`
	Category    string   `db:"category"    json:"category"    validate:"omitempty,oneof=parade concert street_party cultural food competition"`
	Venue       string   `db:"venue"       json:"venue"       validate:"omitempty,max=200"`
	BadgeColor  string   `db:"badge_color" json:"badge_color" validate:"omitempty,hexcolor"`
	StartTime   string   `json:"start_time" validate:"omitempty"`
	EndTime     string   `json:"end_time"   validate:"omitempty"`
	Tags        []string `json:"tags"       validate:"omitempty,dive,max=50"`
}

type EventResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Tags        []string           `json:"tags"`
	Venue       string             `json:"venue"`
	Latitude    float64            `json:"latitude"`
	Longitude   float64            `json:"longitude"`
	BadgeColor  string             `json:"badge_color"`
	BadgeText   string             `json:"badge_text_color"`
	StartTime   string             `json:"start_time"`
	EndTime     string             `json:"end_time"`
	Status      string             `json:"status"`
	Countdown   schedule.Countdown `json:"countdown"`
	gDto.Metadata
}

func (r *EventResponse) FromModel(event model.Event, now time.Time) {
	r.ID = event.ID
	r.Name = event.Name
	r.Description = event.Description
	r.Category = event.Category
	r.Tags = event.Tags
	r.Venue = event.Venue
	r.Latitude = event.Latitude
	r.Longitude = event.Longitude
	r.BadgeColor = event.BadgeColor
	r.BadgeText = colorx.TextColorFor(event.BadgeColor)
	r.StartTime = timezone.Format(event.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(event.EndTime, constant.DateFormat)
	r.Status = schedule.Status(event, now)
	r.Countdown = schedule.FormatCountdown(schedule.TimeUntil(event, now))
	r.Metadata.FromModel(event.Metadata)
}

type GetEventsResponse struct {
	Events    []EventResponse `json:"events"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetEventsResponse) FromModels(models []model.Event, now time.Time, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Events = make([]EventResponse, len(models))
	for i, mod := range models {
		r.Events[i].FromModel(mod, now)
	}
}

type GroupedEventsResponse struct {
	Groups map[string][]EventResponse `json:"groups"`
}

func (r *GroupedEventsResponse) FromGroups(groups map[string][]model.Event, now time.Time) {
	r.Groups = make(map[string][]EventResponse, len(groups))

	for category, events := range groups {
		responses := make([]EventResponse, len(events))
		for i, event := range events {
			responses[i].FromModel(event, now)
		}

		r.Groups[category] = responses
	}
}

// ListOptions carries the derived-state filters that cannot be pushed into
// SQL: lifecycle status is recomputed from the clock, text search spans tags.
// At overrides the reference time; zero means the current application time.
const (
	SortStartTimeAsc  = "start_time"
	SortStartTimeDesc = "-start_time"
)

type ListOptions struct {
	Status     string `validate:"omitempty,oneof=live upcoming past"`
	Query      string
	Sort       string `validate:"omitempty,oneof=start_time -start_time"`
	RangeStart *time.Time
	RangeEnd   *time.Time
	At         *time.Time
}

// Filtered reports whether any option narrows the list after the SQL page
// is fetched, in which case totals must come from the narrowed list.
func (l ListOptions) Filtered() bool {
	return l.Status != "" || l.Query != "" || (l.RangeStart != nil && l.RangeEnd != nil)
}

type CountdownResponse struct {
	EventID   string             `json:"event_id"`
	Status    string             `json:"status"`
	Countdown schedule.Countdown `json:"countdown"`
}
