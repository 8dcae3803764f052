package Controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Meghanadh2306/physio-website/Models"
	"github.com/Meghanadh2306/physio-website/SSE"

	"github.com/gin-gonic/gin"
)

type patientView struct {
	Models.Patient
	DueAmount float64 `json:"dueAmount"`
}

// BookAppointment creates the patient record for an initial booking.
func BookAppointment(c *gin.Context) {
	var input struct {
		Name               string      `json:"name"`
		Age                int         `json:"age"`
		Gender             string      `json:"gender"`
		Address            string      `json:"address"`
		Phone              string      `json:"phone"`
		AppointmentDate    Models.Date `json:"appointmentDate"`
		Treatments         []string    `json:"treatments"`
		Problem            string      `json:"problem"`
		RecommendedDoctor  string      `json:"recommendedDoctor"`
		PastMedicalHistory string      `json:"pastMedicalHistory"`
		PreviousTreatments string      `json:"previousTreatments"`
		AllergiesAndMeds   string      `json:"allergiesAndMeds"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if input.Name == "" || input.Age == 0 || input.Phone == "" || input.AppointmentDate.IsZero() || input.Gender == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}
	if len(input.Treatments) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please select at least one treatment"})
		return
	}
	if input.RecommendedDoctor == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please select a recommended doctor"})
		return
	}

	patient := Models.Patient{
		Name:               input.Name,
		Age:                input.Age,
		Gender:             input.Gender,
		Address:            input.Address,
		Phone:              input.Phone,
		AppointmentDate:    input.AppointmentDate,
		Treatments:         input.Treatments,
		Problem:            input.Problem,
		RecommendedDoctor:  input.RecommendedDoctor,
		PastMedicalHistory: input.PastMedicalHistory,
		PreviousTreatments: input.PreviousTreatments,
		AllergiesAndMeds:   input.AllergiesAndMeds,
		Status:             Models.StatusOngoing,
	}

	if err := Models.CreatePatient(&patient); err != nil {
		log.Println("appointment booking error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to book appointment"})
		return
	}

	SSE.PatientsChanged()
	c.JSON(http.StatusOK, gin.H{"message": "Appointment booked successfully", "patientId": patient.ID})
}

func FetchPatients(c *gin.Context) {
	patients, err := Models.FindPatients(c.Query("search"), c.Query("status"), c.Query("doctor"))
	if err != nil {
		log.Println("patient list error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch patients"})
		return
	}

	views := make([]patientView, 0, len(patients))
	for _, patient := range patients {
		views = append(views, patientView{Patient: patient, DueAmount: patient.DueAmount()})
	}
	c.JSON(http.StatusOK, views)
}

func GetPatient(c *gin.Context) {
	patient, err := Models.GetPatientByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, Models.ErrPatientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Patient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch patient"})
		return
	}
	c.JSON(http.StatusOK, patientView{Patient: patient, DueAmount: patient.DueAmount()})
}

// UpdatePatient records a payment against the active visit and/or updates
// the free-text notes.
func UpdatePatient(c *gin.Context) {
	var input struct {
		AddPaid float64 `json:"addPaid"`
		Notes   string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	patient, err := Models.GetPatientByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, Models.ErrPatientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Patient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed"})
		return
	}

	if input.AddPaid > 0 {
		if err := patient.RecordPayment(input.AddPaid); err != nil {
			switch {
			case errors.Is(err, Models.ErrNoActiveVisit):
				c.JSON(http.StatusBadRequest, gin.H{"message": "No active visit found. Please add treatments first."})
			case errors.Is(err, Models.ErrPaymentExceedsDue):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Payment exceeds due amount"})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			}
			return
		}
	}
	if input.Notes != "" {
		patient.Notes = input.Notes
	}
	patient.RefreshStatus()

	if err := Models.SavePatient(&patient); err != nil {
		if errors.Is(err, Models.ErrVersionConflict) {
			c.JSON(http.StatusConflict, gin.H{"message": "Patient was modified by another request, please retry"})
			return
		}
		log.Println("patient update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed"})
		return
	}

	SSE.PatientsChanged()
	c.JSON(http.StatusOK, gin.H{"message": "Payment updated"})
}

func DeletePatient(c *gin.Context) {
	if err := Models.DeletePatientByID(c.Param("id")); err != nil {
		log.Println("patient delete error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete patient"})
		return
	}
	SSE.PatientsChanged()
	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted"})
}

// AddTreatmentVisit appends a visit to the patient's treatment history and
// auto-generates the invoice snapshot for it.
func AddTreatmentVisit(c *gin.Context) {
	var input struct {
		StartDate   string                 `json:"startDate"`
		EndDate     string                 `json:"endDate"`
		Treatments  []Models.TreatmentLine `json:"treatments"`
		TotalAmount float64                `json:"totalAmount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	patient, err := Models.GetPatientByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, Models.ErrPatientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Patient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save treatment"})
		return
	}

	invoiceNumber, err := patient.AddVisit(input.StartDate, input.EndDate, input.Treatments, input.TotalAmount)
	if err != nil {
		switch {
		case errors.Is(err, Models.ErrMissingDates):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Start and End date required"})
		case errors.Is(err, Models.ErrNoTreatmentLines):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Please select at least one treatment"})
		case errors.Is(err, Models.ErrTotalMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Total amount does not match treatment lines"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		}
		return
	}

	if err := Models.SavePatient(&patient); err != nil {
		if errors.Is(err, Models.ErrVersionConflict) {
			c.JSON(http.StatusConflict, gin.H{"message": "Patient was modified by another request, please retry"})
			return
		}
		log.Println("treatment save error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save treatment"})
		return
	}

	SSE.PatientsChanged()
	c.JSON(http.StatusOK, gin.H{"message": "Treatment & Invoice saved", "invoiceNumber": invoiceNumber})
}

func FetchInvoices(c *gin.Context) {
	patient, err := Models.GetPatientByID(c.Param("id"))
	if err != nil {
		// The dashboard expects an empty list rather than an error here.
		c.JSON(http.StatusOK, []Models.Invoice{})
		return
	}
	if patient.Invoices == nil {
		c.JSON(http.StatusOK, []Models.Invoice{})
		return
	}
	c.JSON(http.StatusOK, patient.Invoices)
}

func DeleteInvoice(c *gin.Context) {
	patient, err := Models.GetPatientByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, Models.ErrPatientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Patient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete invoice"})
		return
	}

	if err := patient.RemoveInvoice(c.Param("invoiceNumber")); err != nil {
		switch {
		case errors.Is(err, Models.ErrNoInvoices):
			c.JSON(http.StatusNotFound, gin.H{"message": "No invoices found"})
		case errors.Is(err, Models.ErrInvoiceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Invoice not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete invoice"})
		}
		return
	}

	if err := Models.SavePatient(&patient); err != nil {
		if errors.Is(err, Models.ErrVersionConflict) {
			c.JSON(http.StatusConflict, gin.H{"message": "Patient was modified by another request, please retry"})
			return
		}
		log.Println("invoice delete error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete invoice"})
		return
	}

	SSE.PatientsChanged()
	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}
