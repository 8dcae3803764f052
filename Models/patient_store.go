package Models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

func CreatePatient(patient *Patient) error {
	return DB.Create(patient).Error
}

func GetPatientByID(id string) (Patient, error) {
	var patient Patient
	if err := DB.First(&patient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return patient, ErrPatientNotFound
		}
		return patient, err
	}
	return patient, nil
}

// SavePatient persists the whole aggregate with an optimistic version check:
// the row is only written if nobody else saved it since this copy was
// loaded. A lost race surfaces as ErrVersionConflict instead of silently
// overwriting the other writer.
func SavePatient(patient *Patient) error {
	loaded := patient.Version
	patient.Version = loaded + 1
	result := DB.Model(&Patient{}).
		Where("id = ? AND version = ?", patient.ID, loaded).
		Select("*").Omit("id", "created_at").
		Updates(patient)
	if result.Error != nil {
		patient.Version = loaded
		return result.Error
	}
	if result.RowsAffected == 0 {
		patient.Version = loaded
		return ErrVersionConflict
	}
	return nil
}

// DeletePatientByID is an idempotent no-op when the patient is already gone.
func DeletePatientByID(id string) error {
	return DB.Delete(&Patient{}, "id = ?", id).Error
}

// FindPatients lists patients newest first. search matches name or phone as
// a case-insensitive substring; status and doctor are exact filters.
func FindPatients(search, status, doctor string) ([]Patient, error) {
	query := DB.Model(&Patient{})
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(phone) LIKE ?", pattern, pattern)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if doctor != "" {
		query = query.Where("recommended_doctor = ?", doctor)
	}

	var patients []Patient
	if err := query.Order("created_at DESC").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

// FindPatientsByDoctorAndMonth backs the doctor report: patients referred to
// the doctor whose appointment date falls inside the given month.
func FindPatientsByDoctorAndMonth(doctor string, year int, month time.Month) ([]Patient, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var patients []Patient
	err := DB.Model(&Patient{}).
		Where("recommended_doctor = ?", doctor).
		Where("appointment_date >= ? AND appointment_date < ?", start, end).
		Order("appointment_date ASC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

// FindPatientsCreatedInMonth backs the monthly summary report.
func FindPatientsCreatedInMonth(year int, month time.Month) ([]Patient, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var patients []Patient
	err := DB.Model(&Patient{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}
