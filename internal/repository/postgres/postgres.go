package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/bookdesk/booking-api/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

type serviceRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

type businessConfigRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func NewServiceRepository(db *sqlx.DB) repository.ServiceRepository {
	return &serviceRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewBusinessConfigRepository(db *sqlx.DB) repository.BusinessConfigRepository {
	return &businessConfigRepository{db: db}
}
