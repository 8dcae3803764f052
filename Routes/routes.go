package Routes

import (
	"github.com/Meghanadh2306/physio-website/Controllers"
	"github.com/Meghanadh2306/physio-website/Middleware"
	"github.com/Meghanadh2306/physio-website/SSE"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func ConfigRoutes(router *gin.Engine) {
	router.Use(gzip.Gzip(gzip.BestSpeed))

	// Public routes
	router.POST("/login", Controllers.Login)
	// Invoice downloads are opened from links, so the token is verified
	// inside the handler from the ?token= query param.
	router.GET("/invoice/:id", Controllers.InvoicePDF)

	// Authorized routes
	authorized := router.Group("/")
	authorized.Use(Middleware.JwtAuthMiddleware())
	{
		authorized.POST("/admin/change-password", Controllers.ChangePassword)

		// Doctor roster
		authorized.GET("/doctors", Controllers.GetDoctors)
		authorized.POST("/doctors", Controllers.AddDoctor)
		authorized.DELETE("/doctors/:id", Controllers.DeleteDoctor)

		// Treatment master list
		authorized.GET("/treatments", Controllers.GetTreatments)
		authorized.POST("/treatments", Controllers.AddTreatment)
		authorized.PUT("/treatments/:id", Controllers.UpdateTreatment)
		authorized.DELETE("/treatments/:id", Controllers.DeleteTreatment)

		// Patients
		authorized.POST("/patients", Controllers.BookAppointment)
		authorized.GET("/patients", Controllers.FetchPatients)
		authorized.GET("/patient/:id", Controllers.GetPatient)
		authorized.PUT("/patient/:id", Controllers.UpdatePatient)
		authorized.DELETE("/patient/:id", Controllers.DeletePatient)
		authorized.POST("/patient/:id/treatments/add", Controllers.AddTreatmentVisit)
		authorized.GET("/patient/:id/invoices", Controllers.FetchInvoices)
		authorized.DELETE("/patient/:id/invoice/:invoiceNumber", Controllers.DeleteInvoice)
		authorized.POST("/patient/:id/invoice/:invoiceNumber/email", Controllers.EmailInvoice)

		// Reports
		authorized.GET("/reports/doctor-pdf", Controllers.DoctorReportPDF)
		authorized.GET("/report/monthly/excel", Controllers.MonthlyExcelReport)

		// SSE dashboard refresh
		authorized.GET("/events", SSE.RequestSSE)
	}

	// Static file serving
	router.Static("/assets", "./assets")
	router.Static("/Web", "./Static")
}
