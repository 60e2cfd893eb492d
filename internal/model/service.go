package model

import (
	"time"

	"github.com/google/uuid"
)

type ServiceCategory string

const (
	CategoryHaircut  ServiceCategory = "haircut"
	CategoryColoring ServiceCategory = "coloring"
	CategoryStyling  ServiceCategory = "styling"
	CategoryFacial   ServiceCategory = "facial"
	CategoryManicure ServiceCategory = "manicure"
	CategoryPedicure ServiceCategory = "pedicure"
	CategoryMassage  ServiceCategory = "massage"
	CategoryOther    ServiceCategory = "other"
)

func (c ServiceCategory) Valid() bool {
	switch c {
	case CategoryHaircut, CategoryColoring, CategoryStyling, CategoryFacial,
		CategoryManicure, CategoryPedicure, CategoryMassage, CategoryOther:
		return true
	}
	return false
}

type Service struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Duration    int             `db:"duration" json:"duration"` // in minutes
	Price       float64         `db:"price" json:"price"`
	Category    ServiceCategory `db:"category" json:"category"`
	IsActive    bool            `db:"is_active" json:"is_active"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Duration    int             `json:"duration" binding:"required,gt=0"`
	Price       float64         `json:"price" binding:"required,gte=0"`
	Category    ServiceCategory `json:"category"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Duration    *int             `json:"duration"`
	Price       *float64         `json:"price"`
	Category    *ServiceCategory `json:"category"`
	IsActive    *bool            `json:"is_active"`
}
