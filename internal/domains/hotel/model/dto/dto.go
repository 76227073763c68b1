package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"carnaval/internal/domains/hotel/model"
	"carnaval/shared"
	gDto "carnaval/shared/dto"
	gModel "carnaval/shared/model"
	"carnaval/shared/timezone"
)

type CreateHotelRequest struct {
	Name           string                `json:"name"            validate:"required,max=150"`
	Description    string                `json:"description"     validate:"omitempty,max=2000"`
	Address        string                `json:"address"         validate:"required,max=300"`
	City           string                `json:"city"            validate:"required,max=100"`
	Latitude       float64               `json:"latitude"        validate:"omitempty,latitude"`
	Longitude      float64               `json:"longitude"       validate:"omitempty,longitude"`
	Amenities      []string              `json:"amenities"       validate:"omitempty,dive,max=50"`
	CommissionRate float64               `json:"commission_rate" validate:"omitempty,gte=0,lte=1"`
	Image          *multipart.FileHeader `json:"image"           validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile      multipart.File        `json:"-"`
	Active         *bool                 `json:"active"          validate:"omitempty"`
}

func (c *CreateHotelRequest) ToModel(user, imageURL string) model.Hotel {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Hotel{
		ID:             uuid.NewString(),
		Name:           c.Name,
		Description:    c.Description,
		Address:        c.Address,
		City:           c.City,
		Latitude:       c.Latitude,
		Longitude:      c.Longitude,
		Amenities:      c.Amenities,
		Image:          imageURL,
		CommissionRate: c.CommissionRate,
		Active:         active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateHotelRequest struct {
	Name           string                `db:"name"            json:"name"            validate:"omitempty,max=150"`
	Description    string                `db:"description"     json:"description"     validate:"omitempty,max=2000"`
	Address        string                `db:"address"         json:"address"         validate:"omitempty,max=300"`
	City           string                `db:"city"            json:"city"            validate:"omitempty,max=100"`
	CommissionRate *float64              `db:"commission_rate" json:"commission_rate" validate:"omitempty,gte=0,lte=1"`
	Image          *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile      multipart.File        `json:"-"`
	Active         *bool                 `db:"active"          json:"active"          validate:"omitempty"`
}

type CreateRoomTypeRequest struct {
	RoomType  string `json:"room_type" validate:"required,max=50"`
	Price     int64  `json:"price"     validate:"required,min=0"`
	Available int    `json:"available" validate:"required,min=0"`
}

func (c *CreateRoomTypeRequest) ToModel(user, hotelID string) model.RoomType {
	return model.RoomType{
		ID:        uuid.NewString(),
		HotelID:   hotelID,
		RoomType:  c.RoomType,
		Price:     c.Price,
		Available: c.Available,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomTypeRequest struct {
	Price     *int64 `db:"price"     json:"price"     validate:"omitempty,min=0"`
	Available *int   `db:"available" json:"available" validate:"omitempty,min=0"`
}

type RateHotelRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

type RoomTypeResponse struct {
	ID        string `json:"id"`
	RoomType  string `json:"room_type"`
	Price     int64  `json:"price"`
	Available int    `json:"available"`
}

func (r *RoomTypeResponse) FromModel(model model.RoomType) {
	r.ID = model.ID
	r.RoomType = model.RoomType
	r.Price = model.Price
	r.Available = model.Available
}

type HotelResponse struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	Address        string             `json:"address"`
	City           string             `json:"city"`
	Latitude       float64            `json:"latitude"`
	Longitude      float64            `json:"longitude"`
	Amenities      []string           `json:"amenities"`
	Image          string             `json:"image"`
	CommissionRate float64            `json:"commission_rate"`
	AverageRating  float64            `json:"average_rating"`
	RatingCount    int                `json:"rating_count"`
	Active         bool               `json:"active"`
	RoomTypes      []RoomTypeResponse `json:"room_types,omitempty"`
	gDto.Metadata
}

func (r *HotelResponse) FromModel(hotel model.Hotel) {
	r.ID = hotel.ID
	r.Name = hotel.Name
	r.Description = hotel.Description
	r.Address = hotel.Address
	r.City = hotel.City
	r.Latitude = hotel.Latitude
	r.Longitude = hotel.Longitude
	r.Amenities = hotel.Amenities
	r.Image = hotel.Image
	r.CommissionRate = hotel.CommissionRate
	r.AverageRating = hotel.AverageRating()
	r.RatingCount = hotel.RatingCount
	r.Active = hotel.Active
	r.Metadata.FromModel(hotel.Metadata)
}

func (r *HotelResponse) WithRoomTypes(roomTypes []model.RoomType) {
	r.RoomTypes = make([]RoomTypeResponse, len(roomTypes))
	for i, roomType := range roomTypes {
		r.RoomTypes[i].FromModel(roomType)
	}
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		r.Hotels[i].FromModel(mod)
	}
}
