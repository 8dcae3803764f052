package Models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A fresh connection would see a fresh in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Admin{}, &Doctor{}, &Treatment{}, &Patient{}))
	DB = db
}

func seedPatient(t *testing.T, patient *Patient) {
	t.Helper()
	require.NoError(t, CreatePatient(patient))
}

func TestPatientDocumentRoundTrip(t *testing.T) {
	setupTestDB(t)

	patient := Patient{
		Name:              "Ramesh Kumar",
		Age:               42,
		Gender:            "Male",
		Phone:             "9876543210",
		AppointmentDate:   NewDate(2025, time.January, 10),
		RecommendedDoctor: "Dr. Priya",
		Treatments:        []string{"Therapy"},
	}
	_, err := patient.AddVisit("2025-01-10", "2025-01-14", therapyLines(), 2000)
	require.NoError(t, err)
	require.NoError(t, patient.RecordPayment(500))

	seedPatient(t, &patient)
	require.NotEmpty(t, patient.ID)

	loaded, err := GetPatientByID(patient.ID)
	require.NoError(t, err)

	assert.Equal(t, "Ramesh Kumar", loaded.Name)
	assert.Equal(t, "2025-01-10", loaded.AppointmentDate.String())
	require.Len(t, loaded.TreatmentHistory, 1)
	require.Len(t, loaded.Invoices, 1)
	require.Len(t, loaded.PaymentHistory, 1)
	assert.Equal(t, 2000.0, loaded.TotalAmount)
	assert.Equal(t, 500.0, loaded.PaidAmount)
	assert.Equal(t, 500.0, loaded.TreatmentHistory[0].PaidAmount)
	assert.Equal(t, "Therapy", loaded.TreatmentHistory[0].Treatments[0].TreatmentName)
	assert.Equal(t, StatusOngoing, loaded.Status)
}

func TestGetPatientByIDNotFound(t *testing.T) {
	setupTestDB(t)

	_, err := GetPatientByID("missing")
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestSavePatientVersionConflict(t *testing.T) {
	setupTestDB(t)

	patient := Patient{Name: "Ramesh", Phone: "111"}
	_, err := patient.AddVisit("2025-01-01", "2025-01-05", therapyLines(), 2000)
	require.NoError(t, err)
	seedPatient(t, &patient)

	first, err := GetPatientByID(patient.ID)
	require.NoError(t, err)
	second, err := GetPatientByID(patient.ID)
	require.NoError(t, err)

	require.NoError(t, first.RecordPayment(500))
	require.NoError(t, SavePatient(&first))

	// The second copy is now stale; its save must not win silently.
	require.NoError(t, second.RecordPayment(2000))
	assert.ErrorIs(t, SavePatient(&second), ErrVersionConflict)

	loaded, err := GetPatientByID(patient.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, loaded.PaidAmount)
}

func TestSavePatientPersistsMutations(t *testing.T) {
	setupTestDB(t)

	patient := Patient{Name: "Ramesh", Phone: "111"}
	_, err := patient.AddVisit("2025-01-01", "2025-01-05", therapyLines(), 2000)
	require.NoError(t, err)
	seedPatient(t, &patient)

	loaded, err := GetPatientByID(patient.ID)
	require.NoError(t, err)
	require.NoError(t, loaded.RecordPayment(2000))
	require.NoError(t, SavePatient(&loaded))

	again, err := GetPatientByID(patient.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, again.Status)
	assert.Equal(t, 2000.0, again.PaidAmount)
	require.Len(t, again.PaymentHistory, 1)
}

func TestDeletePatientIsIdempotent(t *testing.T) {
	setupTestDB(t)

	patient := Patient{Name: "Ramesh"}
	seedPatient(t, &patient)

	require.NoError(t, DeletePatientByID(patient.ID))
	_, err := GetPatientByID(patient.ID)
	assert.ErrorIs(t, err, ErrPatientNotFound)

	// Deleting again is a silent no-op.
	require.NoError(t, DeletePatientByID(patient.ID))
}

func TestFindPatientsSearch(t *testing.T) {
	setupTestDB(t)

	seedPatient(t, &Patient{Name: "Ramesh Kumar", Phone: "9876543210"})
	seedPatient(t, &Patient{Name: "Suresh", Phone: "8000ram99"})
	seedPatient(t, &Patient{Name: "Lakshmi", Phone: "7000000000"})

	found, err := FindPatients("ram", "", "")
	require.NoError(t, err)
	require.Len(t, found, 2)
	names := []string{found[0].Name, found[1].Name}
	assert.Contains(t, names, "Ramesh Kumar")
	assert.Contains(t, names, "Suresh")

	found, err = FindPatients("RAM", "", "")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = FindPatients("lakshmi", "", "")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Lakshmi", found[0].Name)
}

func TestFindPatientsFilters(t *testing.T) {
	setupTestDB(t)

	older := Patient{Name: "One", RecommendedDoctor: "Dr. Priya", Status: StatusCompleted, CreatedAt: time.Now().Add(-2 * time.Hour)}
	newer := Patient{Name: "Two", RecommendedDoctor: "Dr. Priya", Status: StatusOngoing, CreatedAt: time.Now().Add(-1 * time.Hour)}
	other := Patient{Name: "Three", RecommendedDoctor: "Dr. Anand", Status: StatusOngoing, CreatedAt: time.Now()}
	seedPatient(t, &older)
	seedPatient(t, &newer)
	seedPatient(t, &other)

	found, err := FindPatients("", StatusOngoing, "")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = FindPatients("", "", "Dr. Priya")
	require.NoError(t, err)
	require.Len(t, found, 2)
	// Newest first.
	assert.Equal(t, "Two", found[0].Name)
	assert.Equal(t, "One", found[1].Name)

	found, err = FindPatients("", StatusOngoing, "Dr. Priya")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Two", found[0].Name)
}

func TestFindPatientsByDoctorAndMonth(t *testing.T) {
	setupTestDB(t)

	seedPatient(t, &Patient{Name: "January", RecommendedDoctor: "Dr. Priya", AppointmentDate: NewDate(2025, time.January, 15)})
	seedPatient(t, &Patient{Name: "February", RecommendedDoctor: "Dr. Priya", AppointmentDate: NewDate(2025, time.February, 2)})
	seedPatient(t, &Patient{Name: "OtherDoctor", RecommendedDoctor: "Dr. Anand", AppointmentDate: NewDate(2025, time.January, 20)})

	found, err := FindPatientsByDoctorAndMonth("Dr. Priya", 2025, time.January)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "January", found[0].Name)
}

func TestFindPatientsCreatedInMonth(t *testing.T) {
	setupTestDB(t)

	inMonth := Patient{Name: "In", CreatedAt: time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)}
	outMonth := Patient{Name: "Out", CreatedAt: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)}
	seedPatient(t, &inMonth)
	seedPatient(t, &outMonth)

	found, err := FindPatientsCreatedInMonth(2025, time.March)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "In", found[0].Name)
}
