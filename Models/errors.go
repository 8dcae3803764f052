package Models

import "errors"

var (
	ErrPatientNotFound   = errors.New("patient not found")
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrNoInvoices        = errors.New("no invoices found")
	ErrMissingDates      = errors.New("start and end date required")
	ErrNoTreatmentLines  = errors.New("at least one treatment line required")
	ErrTotalMismatch     = errors.New("visit total does not match treatment lines")
	ErrNoActiveVisit     = errors.New("no active visit")
	ErrInvalidAmount     = errors.New("payment amount must be positive")
	ErrPaymentExceedsDue = errors.New("payment exceeds due amount")
	ErrVersionConflict   = errors.New("patient was modified concurrently")
	ErrDoctorExists      = errors.New("doctor already exists")
	ErrTreatmentExists   = errors.New("treatment already exists")
)
