package Controllers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/Meghanadh2306/physio-website/Models"

	"github.com/gin-gonic/gin"
	gomail "gopkg.in/gomail.v2"
)

// EmailInvoice renders the invoice PDF and mails it to the given address.
func EmailInvoice(c *gin.Context) {
	var input struct {
		To string `json:"to"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.To == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Recipient email required"})
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

	invoice, err := patient.FindInvoice(c.Param("invoiceNumber"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Invoice not found"})
		return
	}

	pdf := buildInvoicePDF(patient, invoice, patient.VisitForInvoice(invoice))
	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		log.Println("invoice pdf error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate invoice"})
		return
	}

	body := fmt.Sprintf("Please find attached invoice %s for %s.", invoice.InvoiceNumber, patient.Name)
	filename := fmt.Sprintf("%s.pdf", invoice.InvoiceNumber)
	if err := sendInvoiceEmail(input.To, body, filename, buffer.Bytes()); err != nil {
		log.Println("invoice email error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice emailed successfully"})
}

func sendInvoiceEmail(to, body, attachmentName string, attachmentData []byte) error {
	host := os.Getenv("SMTP_HOST")
	sender := os.Getenv("SMTP_EMAIL")
	password := os.Getenv("SMTP_PASSWORD")
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	message := gomail.NewMessage()
	message.SetHeader("From", sender)
	message.SetHeader("To", to)
	message.SetHeader("Subject", "Invoice from Sri Physiotherapy Center")
	message.SetBody("text/plain", body)
	message.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(attachmentData)
		return err
	}))

	dialer := gomail.NewDialer(host, port, sender, password)
	if err := dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	return nil
}
