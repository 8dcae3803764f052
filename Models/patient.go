package Models

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient is the root aggregate. The whole record, including its visit,
// invoice and payment collections, lives in a single row so that one save is
// atomic for the document, mirroring the store it replaced.
type Patient struct {
	ID                 string  `gorm:"primaryKey;size:36" json:"id"`
	Name               string  `json:"name"`
	Age                int     `json:"age"`
	Gender             string  `json:"gender"`
	Address            string  `json:"address"`
	Phone              string  `json:"phone"`
	AppointmentDate    Date    `json:"appointmentDate"`
	RecommendedDoctor  string  `json:"recommendedDoctor"`
	Problem            string  `json:"problem"`
	Notes              string  `json:"notes"`
	PastMedicalHistory string  `json:"pastMedicalHistory"`
	PreviousTreatments string  `json:"previousTreatments"`
	AllergiesAndMeds   string  `json:"allergiesAndMeds"`
	TotalAmount        float64 `json:"totalAmount"`
	PaidAmount         float64 `json:"paidAmount"`
	Status             string  `json:"status"`

	Treatments       []string       `gorm:"serializer:json" json:"treatments"`
	TreatmentHistory []Visit        `gorm:"serializer:json" json:"treatmentHistory"`
	Invoices         []Invoice      `gorm:"serializer:json" json:"invoices"`
	PaymentHistory   []PaymentEntry `gorm:"serializer:json" json:"paymentHistory"`

	Version   int64     `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Visit is one treatment engagement. TotalAmount is fixed at creation;
// PaidAmount grows from 0 up to TotalAmount as payments arrive.
type Visit struct {
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
	Treatments  []TreatmentLine `json:"treatments"`
	TotalAmount float64         `json:"totalAmount"`
	PaidAmount  float64         `json:"paidAmount"`
}

type TreatmentLine struct {
	TreatmentName string  `json:"treatmentName"`
	PricePerDay   float64 `json:"pricePerDay"`
	Days          int     `json:"days"`
	TotalAmount   float64 `json:"totalAmount"`
}

// Invoice is a billing snapshot frozen at the moment its visit is added.
// Later payments never touch it.
type Invoice struct {
	InvoiceNumber      string    `json:"invoiceNumber"`
	TreatmentStartDate string    `json:"treatmentStartDate"`
	TreatmentEndDate   string    `json:"treatmentEndDate"`
	TotalAmount        float64   `json:"totalAmount"`
	PaidAmount         float64   `json:"paidAmount"`
	DueAmount          float64   `json:"dueAmount"`
	CreatedAt          time.Time `json:"createdAt"`
}

type PaymentEntry struct {
	EntryType string    `json:"entryType"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
}

const (
	StatusOngoing   = "Ongoing"
	StatusCompleted = "Completed"
)

func (patient *Patient) BeforeCreate(tx *gorm.DB) error {
	if patient.ID == "" {
		patient.ID = uuid.NewString()
	}
	if patient.Status == "" {
		patient.Status = StatusOngoing
	}
	return nil
}

// NewInvoiceNumber returns INV-<date>-<4 digit random>. Uniqueness is
// probabilistic only, same as the system this replaces; callers that need a
// hard guarantee must check for collisions themselves.
func NewInvoiceNumber() string {
	return fmt.Sprintf("INV-%s-%d", time.Now().Format("20060102"), 1000+rand.Intn(9000))
}

func amountsEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

// AddVisit appends a treatment visit and its frozen invoice snapshot, and
// bumps the patient's running total. The visit total is recomputed from the
// lines; a non-zero caller total that disagrees with the recomputed sum is
// rejected rather than trusted.
func (patient *Patient) AddVisit(startDate, endDate string, lines []TreatmentLine, total float64) (string, error) {
	if startDate == "" || endDate == "" {
		return "", ErrMissingDates
	}
	if len(lines) == 0 {
		return "", ErrNoTreatmentLines
	}

	var computed float64
	for i := range lines {
		lineTotal := lines[i].PricePerDay * float64(lines[i].Days)
		if lines[i].TotalAmount != 0 && !amountsEqual(lines[i].TotalAmount, lineTotal) {
			return "", ErrTotalMismatch
		}
		lines[i].TotalAmount = lineTotal
		computed += lineTotal
	}
	if total != 0 && !amountsEqual(total, computed) {
		return "", ErrTotalMismatch
	}

	patient.TreatmentHistory = append(patient.TreatmentHistory, Visit{
		StartDate:   startDate,
		EndDate:     endDate,
		Treatments:  lines,
		TotalAmount: computed,
		PaidAmount:  0,
	})
	patient.TotalAmount += computed

	invoice := Invoice{
		InvoiceNumber:      NewInvoiceNumber(),
		TreatmentStartDate: startDate,
		TreatmentEndDate:   endDate,
		TotalAmount:        computed,
		PaidAmount:         0,
		DueAmount:          computed,
		CreatedAt:          time.Now(),
	}
	patient.Invoices = append(patient.Invoices, invoice)

	patient.RefreshStatus()
	return invoice.InvoiceNumber, nil
}

// ActiveVisit is the most recently added visit, the only one a payment may
// be applied to.
func (patient *Patient) ActiveVisit() *Visit {
	if len(patient.TreatmentHistory) == 0 {
		return nil
	}
	return &patient.TreatmentHistory[len(patient.TreatmentHistory)-1]
}

// RecordPayment applies amount against the active visit's outstanding due.
// A payment larger than that due is rejected outright, never clamped, and
// leaves the aggregate untouched.
func (patient *Patient) RecordPayment(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	visit := patient.ActiveVisit()
	if visit == nil {
		return ErrNoActiveVisit
	}
	due := visit.TotalAmount - visit.PaidAmount
	if amount > due && !amountsEqual(amount, due) {
		return ErrPaymentExceedsDue
	}

	visit.PaidAmount += amount
	patient.PaidAmount += amount
	patient.PaymentHistory = append(patient.PaymentHistory, PaymentEntry{
		EntryType: "Payment",
		Amount:    amount,
		Date:      time.Now(),
	})
	patient.RefreshStatus()
	return nil
}

// RemoveInvoice drops the snapshot matching invoiceNumber. It is a
// record-keeping operation only: totals and paid amounts stay as they are.
func (patient *Patient) RemoveInvoice(invoiceNumber string) error {
	if len(patient.Invoices) == 0 {
		return ErrNoInvoices
	}
	for i := range patient.Invoices {
		if patient.Invoices[i].InvoiceNumber == invoiceNumber {
			patient.Invoices = append(patient.Invoices[:i], patient.Invoices[i+1:]...)
			return nil
		}
	}
	return ErrInvoiceNotFound
}

// FindInvoice returns the snapshot matching invoiceNumber, or the latest one
// when invoiceNumber is empty.
func (patient *Patient) FindInvoice(invoiceNumber string) (Invoice, error) {
	if len(patient.Invoices) == 0 {
		return Invoice{}, ErrNoInvoices
	}
	if invoiceNumber == "" {
		return patient.Invoices[len(patient.Invoices)-1], nil
	}
	for _, invoice := range patient.Invoices {
		if invoice.InvoiceNumber == invoiceNumber {
			return invoice, nil
		}
	}
	return Invoice{}, ErrInvoiceNotFound
}

// VisitForInvoice returns the visit the invoice was cut from, falling back
// to the active visit when no exact match exists.
func (patient *Patient) VisitForInvoice(invoice Invoice) *Visit {
	for i := range patient.TreatmentHistory {
		visit := &patient.TreatmentHistory[i]
		if visit.StartDate == invoice.TreatmentStartDate &&
			visit.EndDate == invoice.TreatmentEndDate &&
			amountsEqual(visit.TotalAmount, invoice.TotalAmount) {
			return visit
		}
	}
	return patient.ActiveVisit()
}

func (patient *Patient) RefreshStatus() {
	if patient.PaidAmount >= patient.TotalAmount {
		patient.Status = StatusCompleted
	} else {
		patient.Status = StatusOngoing
	}
}

func (patient *Patient) DueAmount() float64 {
	return patient.TotalAmount - patient.PaidAmount
}

func (visit *Visit) DueAmount() float64 {
	return visit.TotalAmount - visit.PaidAmount
}
