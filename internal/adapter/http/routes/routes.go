package routes

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "vetclinic/docs" // swagger registration
	"vetclinic/internal/adapter/events"
	"vetclinic/internal/adapter/http/handlers"
	"vetclinic/internal/infrastructure/clock"
	"vetclinic/internal/infrastructure/config"
	"vetclinic/internal/infrastructure/payments"
	"vetclinic/internal/infrastructure/telemetry"
	"vetclinic/internal/usecase"
	"vetclinic/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handlers groups every HTTP handler mounted under /v1.
type Handlers struct {
	Registry     *handlers.RegistryHandler
	Appointment  *handlers.AppointmentHandler
	Consultation *handlers.ConsultationHandler
	Invoice      *handlers.InvoiceHandler
}

// Run will start the server and block until SIGINT or SIGTERM.
func Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:  cfg.ServiceName,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SampleRatio:  cfg.TraceSampleRate,
	})
	if err != nil {
		log.Printf("[routes] telemetry setup failed, continuing without tracing err=%v", err)
		shutdownTracing = func(context.Context) error { return nil }
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StorageDriver, err)
	}

	publisher, closePublisher := newPublisher(cfg)
	router := NewRouter(buildHandlers(cfg, st, publisher))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(router, cfg.ServiceName),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("[routes] http server starting addr=%s storage=%s", srv.Addr, cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to startup the application: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[routes] http server shutdown error err=%v", err)
	}
	if err := closePublisher(); err != nil {
		log.Printf("[routes] event publisher close error err=%v", err)
	}
	if err := st.close(); err != nil {
		log.Printf("[routes] store close error err=%v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("[routes] telemetry shutdown error err=%v", err)
	}
	log.Printf("[routes] http server stopped")
}

func buildHandlers(cfg config.Config, st *store, publisher interfaces.IEventPublisher) Handlers {
	clinicClock := clock.NewSystemClock(cfg.ClinicLocation)

	var gateway interfaces.IPaymentGateway
	mp, err := payments.NewMercadoPagoGateway(payments.GatewayConfig{
		AccessToken: cfg.MercadoPagoAccessToken,
		Mock:        cfg.PaymentGatewayMock,
	})
	if err != nil {
		log.Printf("[routes] mercado pago gateway not configured err=%v", err)
	} else {
		gateway = mp
	}

	registryUseCase := usecase.NewRegistryUseCase(st.clients, st.pets)
	appointmentUseCase := usecase.NewAppointmentUseCase(st.appointments, st.pets, st.tx, clinicClock, publisher)
	consultationUseCase := usecase.NewConsultationUseCase(st.consultations, st.appointments, st.invoices, st.pets, st.clients, st.tx, clinicClock, publisher, cfg.TaxRate)
	invoiceUseCase := usecase.NewInvoiceUseCase(st.invoices, st.consultations, st.pets, gateway, st.tx, clinicClock, publisher, usecase.InvoiceConfig{
		TaxRate: cfg.TaxRate,
		DueDays: cfg.InvoiceDueDays,
		Payer: usecase.PayerPolicy{
			Mock:            cfg.PaymentGatewayMock,
			Sandbox:         strings.HasPrefix(cfg.MercadoPagoAccessToken, "TEST-"),
			TestPayerEmail:  cfg.MercadoPagoTestPayerEmail,
			TestPayerUserID: cfg.MercadoPagoTestPayerUserID,
		},
	})

	return Handlers{
		Registry:     handlers.NewRegistryHandler(registryUseCase),
		Appointment:  handlers.NewAppointmentHandler(appointmentUseCase),
		Consultation: handlers.NewConsultationHandler(consultationUseCase),
		Invoice:      handlers.NewInvoiceHandler(invoiceUseCase),
	}
}

// newPublisher returns the Kafka publisher when brokers are configured and
// the log publisher otherwise, plus the matching close func.
func newPublisher(cfg config.Config) (interfaces.IEventPublisher, func() error) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Printf("[routes] no KAFKA_BROKERS, domain events go to the log")
		return events.LogPublisher{}, func() error { return nil }
	}
	p := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopicPrefix)
	return p, p.Close
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addRegistryRoutes(v1, h.Registry, h.Appointment, h.Consultation)
	addScheduleRoutes(v1, h.Appointment)
	addConsultationRoutes(v1, h.Consultation)
	addInvoiceRoutes(v1, h.Invoice)
	return router
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
