package gormstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"vetclinic/internal/domain/entities"
	"vetclinic/internal/infrastructure/config"
	"vetclinic/internal/infrastructure/database"
	"vetclinic/internal/usecase"
	"vetclinic/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var testToday = time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

type fixedClock struct{ today time.Time }

func (c fixedClock) Today() time.Time { return c.today }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenGorm(config.DriverSQLite, config.Config{SQLitePath: ":memory:"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedPet(t *testing.T, db *gorm.DB) entities.Pet {
	t.Helper()
	ctx := context.Background()
	owner, err := NewClientRepository(db).Create(ctx, entities.Client{ID: "client-1", Name: "Ana", CreatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	pet, err := NewPetRepository(db).Create(ctx, entities.Pet{ID: "pet-1", OwnerID: owner.ID, Name: "Rex", Species: "dog", CreatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("seed pet: %v", err)
	}
	return pet
}

func appointment(id string, status entities.AppointmentStatus) entities.Appointment {
	now := time.Now().UTC()
	return entities.Appointment{
		ID:        id,
		PetID:     "pet-1",
		Date:      testToday.AddDate(0, 0, 1),
		Slot:      "10:00",
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestAppointmentRepository_ActiveSlotIsUnique(t *testing.T) {
	db := newTestDB(t)
	repo := NewAppointmentRepository(db)
	ctx := context.Background()

	if _, err := repo.Create(ctx, appointment("a-1", entities.AppointmentStatusCancelled)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Create(ctx, appointment("a-2", entities.AppointmentStatusScheduled)); err != nil {
		t.Fatalf("cancelled appointment must not hold the slot: %v", err)
	}
	_, err := repo.Create(ctx, appointment("a-3", entities.AppointmentStatusConfirmed))
	if !errors.Is(err, interfaces.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// reactivating a-1 while a-2 holds the slot violates the index
	a1 := appointment("a-1", entities.AppointmentStatusScheduled)
	if _, err := repo.UpdateStatus(ctx, a1, entities.AppointmentStatusCancelled); !errors.Is(err, interfaces.ErrConflict) {
		t.Fatalf("expected ErrConflict on reactivation, got %v", err)
	}

	active, err := repo.ListByDate(ctx, testToday.AddDate(0, 0, 1), entities.AppointmentStatusScheduled, entities.AppointmentStatusConfirmed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 1 || active[0].ID != "a-2" {
		t.Fatalf("unexpected active appointments: %+v", active)
	}

	all, err := repo.ListByDate(ctx, testToday.AddDate(0, 0, 1))
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 appointments, got %d (%v)", len(all), err)
	}
}

func TestAppointmentRepository_UpdateStatusIsConditional(t *testing.T) {
	db := newTestDB(t)
	repo := NewAppointmentRepository(db)
	ctx := context.Background()

	if _, err := repo.Create(ctx, appointment("a-1", entities.AppointmentStatusScheduled)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	confirmed := appointment("a-1", entities.AppointmentStatusConfirmed)
	if _, err := repo.UpdateStatus(ctx, confirmed, entities.AppointmentStatusScheduled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancelled := appointment("a-1", entities.AppointmentStatusCancelled)
	if _, err := repo.UpdateStatus(ctx, cancelled, entities.AppointmentStatusScheduled); !errors.Is(err, interfaces.ErrConflict) {
		t.Fatalf("expected stale update conflict, got %v", err)
	}

	got, err := repo.GetByID(ctx, "a-1")
	if err != nil || got.Status != entities.AppointmentStatusConfirmed || !got.Date.Equal(testToday.AddDate(0, 0, 1)) {
		t.Fatalf("unexpected appointment %+v (%v)", got, err)
	}

	missing, err := repo.GetByID(ctx, "nope")
	if err != nil || missing.ID != "" {
		t.Fatalf("expected zero appointment, got %+v (%v)", missing, err)
	}
}

func TestInvoiceRepository_OneInvoicePerConsultation(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	inv := entities.Invoice{
		ID:             "inv-1",
		Number:         "INV-1-1000",
		ConsultationID: "c-1",
		PetID:          "pet-1",
		Subtotal:       decimal.RequireFromString("45.50"),
		Tax:            decimal.RequireFromString("5.92"),
		Total:          decimal.RequireFromString("51.42"),
		TaxRate:        decimal.RequireFromString("0.13"),
		IssueDate:      testToday,
		DueDate:        testToday.AddDate(0, 0, 30),
		Status:         entities.InvoiceStatusPending,
	}
	if _, err := repo.Create(ctx, inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dup := inv
	dup.ID, dup.Number = "inv-2", "INV-1-2000"
	if _, err := repo.Create(ctx, dup); !errors.Is(err, interfaces.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	got, err := repo.GetByConsultationID(ctx, "c-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "inv-1" || !got.Total.Equal(inv.Total) || !got.DueDate.Equal(inv.DueDate) {
		t.Fatalf("unexpected invoice %+v", got)
	}

	paid := got
	paidDate := testToday
	paid.Status = entities.InvoiceStatusPaid
	paid.PaymentMethod = entities.PaymentMethodCash
	paid.PaidDate = &paidDate
	if _, err := repo.Update(ctx, paid, entities.InvoiceStatusPending); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	invoiced, err := repo.InvoicedConsultationIDs(ctx, []string{"c-1", "c-9"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !invoiced["c-1"] || invoiced["c-9"] || len(invoiced) != 1 {
		t.Fatalf("unexpected invoiced set %v", invoiced)
	}

	pending, err := repo.List(ctx, entities.InvoiceStatusPending)
	if err != nil || len(pending) != 0 {
		t.Fatalf("expected no pending invoices, got %d (%v)", len(pending), err)
	}
	all, err := repo.List(ctx, "")
	if err != nil || len(all) != 1 || all[0].PaidDate == nil {
		t.Fatalf("unexpected list %+v (%v)", all, err)
	}
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	tx := NewTransactor(db)
	repo := NewAppointmentRepository(db)
	boom := errors.New("boom")

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		if _, err := repo.Create(ctx, appointment("a-1", entities.AppointmentStatusScheduled)); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	got, err := repo.GetByID(context.Background(), "a-1")
	if err != nil || got.ID != "" {
		t.Fatalf("expected rollback, got %+v (%v)", got, err)
	}
}

func TestConcurrentBookingOfTheSameSlot(t *testing.T) {
	db := newTestDB(t)
	seedPet(t, db)
	uc := usecase.NewAppointmentUseCase(
		NewAppointmentRepository(db),
		NewPetRepository(db),
		NewTransactor(db),
		fixedClock{today: testToday},
		nil,
	)

	const attempts = 2
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, attempts)
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = uc.Book(context.Background(), usecase.BookAppointmentCommand{
				PetID: "pet-1",
				Date:  "2026-10-20",
				Slot:  "10:00",
			})
		}(i)
	}
	close(start)
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, interfaces.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflicts != 1 {
		t.Fatalf("expected one success and one conflict, got ok=%d conflicts=%d", ok, conflicts)
	}

	slots, err := uc.ListAvailableSlots(context.Background(), "2026-10-20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range slots {
		if s.Slot == "10:00" && s.IsAvailable {
			t.Fatalf("booked slot reported available")
		}
	}
}

func TestConsultationToInvoiceFlow(t *testing.T) {
	db := newTestDB(t)
	seedPet(t, db)
	ctx := context.Background()
	clock := fixedClock{today: testToday}
	tx := NewTransactor(db)
	appointments := NewAppointmentRepository(db)
	consultations := NewConsultationRepository(db)
	invoices := NewInvoiceRepository(db)
	pets := NewPetRepository(db)
	clients := NewClientRepository(db)

	appointmentUC := usecase.NewAppointmentUseCase(appointments, pets, tx, clock, nil)
	consultationUC := usecase.NewConsultationUseCase(consultations, appointments, invoices, pets, clients, tx, clock, nil, decimal.RequireFromString("0.13"))
	invoiceUC := usecase.NewInvoiceUseCase(invoices, consultations, pets, nil, tx, clock, nil, usecase.InvoiceConfig{TaxRate: decimal.RequireFromString("0.13")})

	appt, err := appointmentUC.Book(ctx, usecase.BookAppointmentCommand{PetID: "pet-1", Date: "2026-10-19", Slot: "16:00"})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	c, err := consultationUC.Create(ctx, usecase.CreateConsultationCommand{
		PetID:         "pet-1",
		StaffID:       "vet-1",
		AppointmentID: &appt.ID,
		Reason:        "checkup",
		Medications:   "amoxicillin 250mg every 12h",
		Cost:          decimal.RequireFromString("100.00"),
	})
	if err != nil {
		t.Fatalf("create consultation: %v", err)
	}
	if _, err := invoiceUC.CreateFromConsultation(ctx, c.ID); !errors.Is(err, usecase.ErrConsultationNotCompleted) {
		t.Fatalf("expected ErrConsultationNotCompleted, got %v", err)
	}
	if _, err := consultationUC.Prescription(ctx, c.ID); !errors.Is(err, usecase.ErrPrescriptionNotCompleted) {
		t.Fatalf("expected ErrPrescriptionNotCompleted, got %v", err)
	}
	if _, err := consultationUC.Complete(ctx, c.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	rx, err := consultationUC.Prescription(ctx, c.ID)
	if err != nil {
		t.Fatalf("prescription: %v", err)
	}
	if rx.PetName != "Rex" || rx.OwnerName != "Ana" || rx.Medications != "amoxicillin 250mg every 12h" {
		t.Fatalf("unexpected prescription %+v", rx)
	}

	gotAppt, err := appointmentUC.GetByID(ctx, appt.ID)
	if err != nil || gotAppt.Status != entities.AppointmentStatusCompleted {
		t.Fatalf("expected linked appointment completed, got %+v (%v)", gotAppt, err)
	}

	pending, err := consultationUC.ListPendingInvoice(ctx)
	if err != nil || len(pending) != 1 || !pending[0].Total.Equal(decimal.RequireFromString("113")) {
		t.Fatalf("unexpected pending list %+v (%v)", pending, err)
	}

	inv, err := invoiceUC.CreateFromConsultation(ctx, c.ID)
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if inv.ClientID != "client-1" || !inv.Tax.Equal(decimal.RequireFromString("13")) {
		t.Fatalf("unexpected invoice %+v", inv)
	}
	if _, err := invoiceUC.CreateFromConsultation(ctx, c.ID); !errors.Is(err, usecase.ErrAlreadyInvoiced) {
		t.Fatalf("expected ErrAlreadyInvoiced, got %v", err)
	}

	paid, err := invoiceUC.RegisterPayment(ctx, inv.ID, usecase.RegisterPaymentCommand{Method: "cash"})
	if err != nil || paid.Status != entities.InvoiceStatusPaid {
		t.Fatalf("unexpected payment result %+v (%v)", paid, err)
	}
	if _, err := invoiceUC.VoidInvoice(ctx, inv.ID, ""); !errors.Is(err, usecase.ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}
}
