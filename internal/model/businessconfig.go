package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type BusinessType string

const (
	BusinessTypeSalon      BusinessType = "salon"
	BusinessTypeHospital   BusinessType = "hospital"
	BusinessTypeHotel      BusinessType = "hotel"
	BusinessTypeRestaurant BusinessType = "restaurant"
	BusinessTypeGym        BusinessType = "gym"
	BusinessTypeSpa        BusinessType = "spa"
	BusinessTypeClinic     BusinessType = "clinic"
)

type Label struct {
	Singular string `json:"singular"`
	Plural   string `json:"plural"`
}

// Terminology maps each entity to its display labels.
type Terminology struct {
	Service  Label `json:"service"`
	Provider Label `json:"provider"`
	Booking  Label `json:"booking"`
	Customer Label `json:"customer"`
}

type FeatureToggles struct {
	RequireStaffApproval bool `json:"require_staff_approval"`
	EnableOnlinePayment  bool `json:"enable_online_payment"`
	EnableCashPayment    bool `json:"enable_cash_payment"`
}

func (t Terminology) Value() (driver.Value, error) { return json.Marshal(t) }

func (t *Terminology) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unexpected terminology column type %T", src)
	}
	return json.Unmarshal(b, t)
}

func (f FeatureToggles) Value() (driver.Value, error) { return json.Marshal(f) }

func (f *FeatureToggles) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unexpected features column type %T", src)
	}
	return json.Unmarshal(b, f)
}

// BusinessConfig is the process-wide configuration singleton, stored under a
// fixed key so exactly one row can exist.
type BusinessConfig struct {
	Key            string         `db:"key" json:"-"`
	BusinessName   string         `db:"business_name" json:"business_name"`
	BusinessType   BusinessType   `db:"business_type" json:"business_type"`
	Logo           string         `db:"logo" json:"logo,omitempty"`
	PrimaryColor   string         `db:"primary_color" json:"primary_color"`
	SecondaryColor string         `db:"secondary_color" json:"secondary_color"`
	Terminology    Terminology    `db:"terminology" json:"terminology"`
	Features       FeatureToggles `db:"features" json:"features"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// ConfigKey is the fixed identifier of the singleton row.
const ConfigKey = "default"

// DefaultBusinessConfig returns the salon defaults used on first read.
func DefaultBusinessConfig() *BusinessConfig {
	return &BusinessConfig{
		Key:            ConfigKey,
		BusinessName:   "Salon Booking System",
		BusinessType:   BusinessTypeSalon,
		PrimaryColor:   "#667eea",
		SecondaryColor: "#764ba2",
		Terminology: Terminology{
			Service:  Label{Singular: "Service", Plural: "Services"},
			Provider: Label{Singular: "Staff", Plural: "Staff Members"},
			Booking:  Label{Singular: "Appointment", Plural: "Appointments"},
			Customer: Label{Singular: "Customer", Plural: "Customers"},
		},
		Features: FeatureToggles{
			RequireStaffApproval: true,
			EnableOnlinePayment:  true,
			EnableCashPayment:    true,
		},
	}
}

type UpdateBusinessConfigRequest struct {
	BusinessName   string         `json:"business_name" binding:"required"`
	BusinessType   BusinessType   `json:"business_type" binding:"required"`
	Logo           string         `json:"logo"`
	PrimaryColor   string         `json:"primary_color"`
	SecondaryColor string         `json:"secondary_color"`
	Terminology    Terminology    `json:"terminology"`
	Features       FeatureToggles `json:"features"`
}
