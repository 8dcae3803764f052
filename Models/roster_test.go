package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorRoster(t *testing.T) {
	setupTestDB(t)

	_, err := AddDoctor("Dr. Priya")
	require.NoError(t, err)
	_, err = AddDoctor("Dr. Anand")
	require.NoError(t, err)

	_, err = AddDoctor("Dr. Priya")
	assert.ErrorIs(t, err, ErrDoctorExists)

	doctors, err := FindDoctors()
	require.NoError(t, err)
	require.Len(t, doctors, 2)
	assert.Equal(t, "Dr. Anand", doctors[0].Name)
	assert.Equal(t, "Dr. Priya", doctors[1].Name)

	require.NoError(t, DeleteDoctor(doctors[0].ID))
	// Deleting an id that no longer exists is a silent no-op.
	require.NoError(t, DeleteDoctor(doctors[0].ID))

	doctors, err = FindDoctors()
	require.NoError(t, err)
	require.Len(t, doctors, 1)
}

func TestTreatmentRoster(t *testing.T) {
	setupTestDB(t)

	therapy, err := AddTreatment("Therapy", 500)
	require.NoError(t, err)
	_, err = AddTreatment("Massage", 300)
	require.NoError(t, err)

	_, err = AddTreatment("Therapy", 999)
	assert.ErrorIs(t, err, ErrTreatmentExists)

	treatments, err := FindTreatments()
	require.NoError(t, err)
	require.Len(t, treatments, 2)
	assert.Equal(t, "Massage", treatments[0].Name)

	require.NoError(t, UpdateTreatmentPrice(therapy.ID, 650))
	treatments, err = FindTreatments()
	require.NoError(t, err)
	assert.Equal(t, 650.0, treatments[1].PricePerDay)

	require.NoError(t, DeleteTreatment(therapy.ID))
	require.NoError(t, DeleteTreatment(therapy.ID))
	treatments, err = FindTreatments()
	require.NoError(t, err)
	require.Len(t, treatments, 1)
}
