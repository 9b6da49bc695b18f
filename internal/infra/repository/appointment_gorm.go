package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Appointment (create / read)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("get appointment %d: %w", id, err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) FindByBookingCodeAndEmail(
	ctx context.Context,
	code string,
	email string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("booking_code = ? AND email = ?", code, email).
		First(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Branch != "" {
		q = q.Where("branch = ?", filter.Branch)
	}
	if filter.Date != "" {
		q = q.Where("appointment_date = ?", filter.Date)
	}

	var apps []models.Appointment
	if err := q.Order("id DESC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if err := r.db.WithContext(ctx).Save(ap).Error; err != nil {
		return fmt.Errorf("update appointment %d: %w", ap.ID, err)
	}
	return nil
}

func (r *AppointmentGormRepository) BookingCodeExists(
	ctx context.Context,
	code string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("booking_code = ?", code).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check booking code: %w", err)
	}
	return count > 0, nil
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookedTimes(
	ctx context.Context,
	branch string,
	date string,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Distinct("appointment_time").
		Where(
			"branch = ? AND appointment_date = ? AND status = ?",
			branch, date, string(domain.StatusAccepted),
		).
		Order("appointment_time ASC").
		Pluck("appointment_time", &times).Error; err != nil {
		return nil, fmt.Errorf("list booked times: %w", err)
	}
	return times, nil
}

func (r *AppointmentGormRepository) HasAcceptedInSlot(
	ctx context.Context,
	branch string,
	date string,
	slot string,
	excludeID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"branch = ? AND appointment_date = ? AND appointment_time = ? AND status = ? AND id <> ?",
			branch, date, slot, string(domain.StatusAccepted), excludeID,
		).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check slot: %w", err)
	}
	return count > 0, nil
}

// --------------------------------------------------
// Stats
// --------------------------------------------------

func (r *AppointmentGormRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}

func (r *AppointmentGormRepository) CountUpcoming(ctx context.Context, today string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("appointment_date > ? AND status <> ?", today, string(domain.StatusCancelled)).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count upcoming: %w", err)
	}
	return count, nil
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreatePatient(
	ctx context.Context,
	name string,
	email string,
	phone string,
) (*models.Patient, error) {

	var patient models.Patient
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&patient).Error

	if err == nil {
		return &patient, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find patient: %w", err)
	}

	// A concurrent first booking may insert the same email; keep whichever
	// row won and read it back.
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(&models.Patient{Name: name, Email: email, Phone: phone}).Error; err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&patient).Error; err != nil {
		return nil, fmt.Errorf("reload patient: %w", err)
	}

	return &patient, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
