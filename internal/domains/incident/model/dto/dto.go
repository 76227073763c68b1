package dto

import (
	"github.com/google/uuid"

	"carnaval/internal/domains/incident/model"
	"carnaval/shared"
	gDto "carnaval/shared/dto"
	gModel "carnaval/shared/model"
	"carnaval/shared/timezone"
)

type CreateIncidentRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Severity    string `json:"severity"    validate:"required,oneof=low medium high critical"`
	Location    string `json:"location"    validate:"omitempty,max=300"`
	EventID     string `json:"event_id"    validate:"omitempty,uuid"`
}

func (c *CreateIncidentRequest) ToModel(user string) model.Incident {
	return model.Incident{
		ID:          uuid.NewString(),
		Title:       c.Title,
		Description: c.Description,
		Severity:    c.Severity,
		Status:      model.StatusOpen,
		Location:    c.Location,
		EventID:     c.EventID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateIncidentRequest struct {
	Title       string `db:"title"       json:"title"       validate:"omitempty,max=200"`
	Description string `db:"description" json:"description" validate:"omitempty,max=2000"`
	Severity    string `db:"severity"    json:"severity"    validate:"omitempty,oneof=low medium high critical"`
	Location    string `db:"location"    json:"location"    validate:"omitempty,max=300"`
}

type UpdateIncidentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=acknowledged resolved"`
}

type IncidentResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Status      string `json:"status"`
	Location    string `json:"location"`
	EventID     string `json:"event_id,omitempty"`
	gDto.Metadata
}

func (r *IncidentResponse) FromModel(model model.Incident) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Severity = model.Severity
	r.Status = model.Status
	r.Location = model.Location
	r.EventID = model.EventID
	r.Metadata.FromModel(model.Metadata)
}

type GetIncidentsResponse struct {
	Incidents []IncidentResponse `json:"incidents"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetIncidentsResponse) FromModels(models []model.Incident, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Incidents = make([]IncidentResponse, len(models))
	for i, mod := range models {
		r.Incidents[i].FromModel(mod)
	}
}
