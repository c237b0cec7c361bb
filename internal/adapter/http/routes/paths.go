package routes

import (
	"vetclinic/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPing          = "/ping"
	PathClients       = "/clients"
	PathPets          = "/pets"
	PathSlots         = "/slots"
	PathAppointments  = "/appointments"
	PathConsultations = "/consultations"
	PathInvoices      = "/invoices"
	PathInvoiceTotals = "/invoice-totals"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, handlers.Ping)
}

func addRegistryRoutes(rg *gin.RouterGroup, registry *handlers.RegistryHandler, appointments *handlers.AppointmentHandler, consultations *handlers.ConsultationHandler) {
	clients := rg.Group(PathClients)
	{
		clients.POST("", registry.CreateClient)
		clients.GET("/:id", registry.GetClient)
	}

	pets := rg.Group(PathPets)
	{
		pets.POST("", registry.CreatePet)
		pets.GET("/:id", registry.GetPet)
		pets.GET("/:id/appointments", appointments.ListByPet)
		pets.GET("/:id/consultations", consultations.ListByPet)
	}
}

func addScheduleRoutes(rg *gin.RouterGroup, h *handlers.AppointmentHandler) {
	slots := rg.Group(PathSlots)
	{
		slots.GET("", h.ListSlots)
		slots.GET("/validate", h.ValidateSlot)
	}

	appointments := rg.Group(PathAppointments)
	{
		appointments.POST("", h.Book)
		appointments.GET("", h.List)
		appointments.GET("/:id", h.Get)
		appointments.PATCH("/:id/status", h.UpdateStatus)
	}
}

func addConsultationRoutes(rg *gin.RouterGroup, h *handlers.ConsultationHandler) {
	consultations := rg.Group(PathConsultations)
	{
		consultations.POST("", h.Create)
		consultations.GET("", h.List)
		consultations.GET("/:id", h.Get)
		consultations.PATCH("/:id/complete", h.Complete)
		consultations.GET("/:id/prescription", h.Prescription)
	}
}

func addInvoiceRoutes(rg *gin.RouterGroup, h *handlers.InvoiceHandler) {
	rg.POST(PathInvoiceTotals, h.ComputeTotals)

	invoices := rg.Group(PathInvoices)
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET("/:id", h.Get)
		invoices.POST("/:id/payments", h.RegisterPayment)
		invoices.PATCH("/:id/void", h.Void)
		invoices.GET("/:id/void-check", h.CanVoid)
	}
}
