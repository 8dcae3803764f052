package Controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Meghanadh2306/physio-website/Models"
	"github.com/Meghanadh2306/physio-website/Utils/Token"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

func formatDateDMY(value string) string {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return "-"
	}
	return parsed.Format("02/01/2006")
}

// InvoicePDF renders a stored invoice snapshot as a downloadable PDF. The
// route is used from direct links, so the token arrives as a query param.
func InvoicePDF(c *gin.Context) {
	if err := Token.TokenValid(c); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		return
	}

	patient, err := Models.GetPatientByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, Models.ErrPatientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Patient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load patient"})
		return
	}

	invoice, err := patient.FindInvoice(c.Query("invoice"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No invoices found"})
		return
	}
	visit := patient.VisitForInvoice(invoice)

	pdf := buildInvoicePDF(patient, invoice, visit)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_invoice.pdf", patient.Name))
	if err := pdf.Output(c.Writer); err != nil {
		// Bytes may already be on the wire; the client gets a truncated file.
		log.Println("invoice pdf error:", err)
		c.Status(http.StatusInternalServerError)
	}
}

func buildInvoicePDF(patient Models.Patient, invoice Models.Invoice, visit *Models.Visit) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(0, 64, 128)
	pdf.CellFormat(0, 10, "Sri Physiotherapy Center", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, "Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Patient Details", "1", 1, "C", false, 0, "")
	addDetailRow(pdf, "Name", patient.Name, true)
	addDetailRow(pdf, "Phone", patient.Phone, true)
	addDetailRow(pdf, "Gender", orDash(patient.Gender), true)
	addDetailRow(pdf, "Age", strconv.Itoa(patient.Age), true)
	addDetailRow(pdf, "Address", orDash(patient.Address), true)
	addDetailRow(pdf, "Invoice No", invoice.InvoiceNumber, true)
	addDetailRow(pdf, "Start Date", formatDateDMY(invoice.TreatmentStartDate), true)
	addDetailRow(pdf, "End Date", formatDateDMY(invoice.TreatmentEndDate), true)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Treatment Details", "1", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(80, 8, "Treatment", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 8, "Price/Day", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 8, "Days", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	var visitTotal float64
	if visit != nil {
		for _, line := range visit.Treatments {
			amount := line.PricePerDay * float64(line.Days)
			visitTotal += amount
			pdf.CellFormat(80, 8, line.TreatmentName, "1", 0, "", false, 0, "")
			pdf.CellFormat(35, 8, fmt.Sprintf("Rs. %.2f", line.PricePerDay), "1", 0, "R", false, 0, "")
			pdf.CellFormat(25, 8, strconv.Itoa(line.Days), "1", 0, "R", false, 0, "")
			pdf.CellFormat(50, 8, fmt.Sprintf("Rs. %.2f", amount), "1", 1, "R", false, 0, "")
		}
	}
	if visit == nil || len(visit.Treatments) == 0 {
		pdf.CellFormat(190, 8, "No treatment data available", "1", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	visitPaid := 0.0
	if visit != nil {
		visitPaid = visit.PaidAmount
	}
	pdf.SetFont("Arial", "", 11)
	addDetailRow(pdf, "Total Amount", fmt.Sprintf("Rs. %.2f", visitTotal), false)
	addDetailRow(pdf, "Paid Amount", fmt.Sprintf("Rs. %.2f", visitPaid), false)
	pdf.SetFont("Arial", "B", 11)
	addDetailRow(pdf, "Due Amount", fmt.Sprintf("Rs. %.2f", visitTotal-visitPaid), false)

	pdf.Ln(16)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, "Authorized Signature", "", 1, "R", false, 0, "")
	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Thank you for choosing Sri Physiotherapy Center", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, "Wishing you a speedy recovery", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 8, "This is a computer generated invoice and does not require a physical signature.", "", 1, "C", false, 0, "")

	return pdf
}

func addDetailRow(pdf *gofpdf.Fpdf, label, value string, fill bool) {
	if fill {
		pdf.SetFillColor(240, 240, 240)
	}
	pdf.CellFormat(45, 8, label, "1", 0, "", fill, 0, "")
	pdf.CellFormat(0, 8, value, "1", 1, "", false, 0, "")
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

// DoctorReportPDF lists the patients referred to a doctor in a given month.
func DoctorReportPDF(c *gin.Context) {
	doctor := c.Query("doctor")
	monthParam := c.Query("month")
	yearParam := c.Query("year")
	if doctor == "" || monthParam == "" || yearParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Doctor, Month, Year required"})
		return
	}
	month, err := strconv.Atoi(monthParam)
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid month"})
		return
	}
	year, err := strconv.Atoi(yearParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid year"})
		return
	}

	patients, err := Models.FindPatientsByDoctorAndMonth(doctor, year, time.Month(month))
	if err != nil {
		log.Println("doctor report error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "PDF generation failed"})
		return
	}

	pdf := buildDoctorReportPDF(doctor, month, year, patients)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_%d_%d.pdf", doctor, month, year))
	if err := pdf.Output(c.Writer); err != nil {
		log.Println("doctor report pdf error:", err)
		c.Status(http.StatusInternalServerError)
	}
}

func buildDoctorReportPDF(doctor string, month, year int, patients []Models.Patient) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(0, 64, 128)
	pdf.CellFormat(0, 10, "Sri Physiotherapy Center", "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, fmt.Sprintf("Doctor: %s", doctor), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Month / Year: %d / %d", month, year), "", 1, "", false, 0, "")
	pdf.Ln(4)

	if len(patients) == 0 {
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(0, 10, "No patients found for this period.", "", 1, "C", false, 0, "")
		return pdf
	}

	for i, patient := range patients {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, fmt.Sprintf("%d. %s | %s | %s", i+1, patient.Name, patient.Phone, orDash(patient.Gender)), "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("    Problem: %s", orDash(patient.Problem)), "", 1, "", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("    Appointment: %s", patient.AppointmentDate.String()), "", 1, "", false, 0, "")
		pdf.Ln(3)
	}
	return pdf
}

// MonthlyExcelReport summarizes the month's intake and collections.
func MonthlyExcelReport(c *gin.Context) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid month"})
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid year"})
		return
	}

	patients, err := Models.FindPatientsCreatedInMonth(year, time.Month(month))
	if err != nil {
		log.Println("monthly report error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Report generation failed"})
		return
	}

	file := buildMonthlyWorkbook(patients)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=monthly_report_%d_%d.xlsx", month, year))
	if err := file.Write(c.Writer); err != nil {
		log.Println("monthly excel error:", err)
		c.Status(http.StatusInternalServerError)
	}
}

func buildMonthlyWorkbook(patients []Models.Patient) *excelize.File {
	var total, paid float64
	for _, patient := range patients {
		total += patient.TotalAmount
		paid += patient.PaidAmount
	}

	file := excelize.NewFile()
	sheet := "Monthly Report"
	file.NewSheet(sheet)
	file.DeleteSheet("Sheet1")

	rows := [][]interface{}{
		{"Patients", len(patients)},
		{"Total Amount", total},
		{"Paid Amount", paid},
		{"Due Amount", total - paid},
	}
	for i, row := range rows {
		file.SetCellValue(sheet, fmt.Sprintf("A%d", i+1), row[0])
		file.SetCellValue(sheet, fmt.Sprintf("B%d", i+1), row[1])
	}
	return file
}
