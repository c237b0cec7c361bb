package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"vetclinic/internal/domain/billing"
	"vetclinic/internal/domain/entities"
	"vetclinic/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrConsultationNotFound         = fmt.Errorf("consultation %w", ErrNotFound)
	ErrInvalidConsultationID        = fmt.Errorf("%w: consultation id is required", ErrInvalidFormat)
	ErrInvalidConsultation          = errors.New("invalid consultation")
	ErrConsultationAlreadyCompleted = errors.New("consultation already completed")
	ErrFutureConsultation           = errors.New("cannot complete a consultation dated in the future")
	ErrPrescriptionNotCompleted     = errors.New("prescriptions are only issued for completed consultations")
	ErrNothingPrescribed            = errors.New("consultation has no treatment or medications")
)

const PrescriptionInstructions = "Follow the veterinarian's directions exactly"

const (
	minWeightKg     = 0.1
	maxWeightKg     = 200
	minTemperatureC = 30
	maxTemperatureC = 45
)

// CreateConsultationCommand is the input of ConsultationUseCase.Create.
type CreateConsultationCommand struct {
	PetID         string
	StaffID       string
	AppointmentID *string
	Reason        string
	Diagnosis     string
	Treatment     string
	Medications   string
	Notes         string
	Cost          decimal.Decimal
	WeightKg      *float64
	TemperatureC  *float64
}

// PendingInvoice is a completed consultation that has no invoice yet, with
// the amounts an invoice would carry today.
type PendingInvoice struct {
	Consultation entities.Consultation `json:"consultation"`
	billing.Totals
}

// Prescription is derived from a completed consultation on request and never
// stored.
type Prescription struct {
	ConsultationID string
	IssueDate      time.Time
	PetName        string
	Species        string
	OwnerName      string
	StaffID        string
	Diagnosis      string
	Treatment      string
	Medications    string
	Notes          string
	Instructions   string
}

// IConsultationUseCase manages the billable visit records.

type IConsultationUseCase interface {
	Create(ctx context.Context, cmd CreateConsultationCommand) (entities.Consultation, error)
	Complete(ctx context.Context, id string) (entities.Consultation, error)
	GetByID(ctx context.Context, id string) (entities.Consultation, error)
	ListByPetID(ctx context.Context, petID string) ([]entities.Consultation, error)
	ListPendingInvoice(ctx context.Context) ([]PendingInvoice, error)
	Prescription(ctx context.Context, id string) (Prescription, error)
}

type ConsultationUseCase struct {
	repo            interfaces.IConsultationRepository
	appointmentRepo interfaces.IAppointmentRepository
	invoiceRepo     interfaces.IInvoiceRepository
	petRepo         interfaces.IPetRepository
	clientRepo      interfaces.IClientRepository
	tx              interfaces.ITransactor
	clock           interfaces.IClock
	publisher       interfaces.IEventPublisher
	taxRate         decimal.Decimal
}

var _ IConsultationUseCase = (*ConsultationUseCase)(nil)

func NewConsultationUseCase(
	repo interfaces.IConsultationRepository,
	appointmentRepo interfaces.IAppointmentRepository,
	invoiceRepo interfaces.IInvoiceRepository,
	petRepo interfaces.IPetRepository,
	clientRepo interfaces.IClientRepository,
	tx interfaces.ITransactor,
	clock interfaces.IClock,
	publisher interfaces.IEventPublisher,
	taxRate decimal.Decimal,
) *ConsultationUseCase {
	return &ConsultationUseCase{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		invoiceRepo:     invoiceRepo,
		petRepo:         petRepo,
		clientRepo:      clientRepo,
		tx:              tx,
		clock:           clock,
		publisher:       publisher,
		taxRate:         taxRate,
	}
}

// ValidateConsultation returns every rule cmd breaks, or nil.
func ValidateConsultation(cmd CreateConsultationCommand) []string {
	var problems []string
	if strings.TrimSpace(cmd.PetID) == "" {
		problems = append(problems, "pet_id is required")
	}
	if strings.TrimSpace(cmd.StaffID) == "" {
		problems = append(problems, "staff_id is required")
	}
	if strings.TrimSpace(cmd.Reason) == "" {
		problems = append(problems, "reason is required")
	}
	if cmd.Cost.IsNegative() {
		problems = append(problems, "cost must not be negative")
	}
	if !cmd.Cost.Equal(cmd.Cost.Round(2)) {
		problems = append(problems, "cost must not have more than 2 decimal places")
	}
	if w := cmd.WeightKg; w != nil && (*w < minWeightKg || *w > maxWeightKg) {
		problems = append(problems, "weight must be between 0.1 and 200 kg")
	}
	if t := cmd.TemperatureC; t != nil && (*t < minTemperatureC || *t > maxTemperatureC) {
		problems = append(problems, "temperature must be between 30 and 45 °C")
	}
	return problems
}

func (u *ConsultationUseCase) Create(ctx context.Context, cmd CreateConsultationCommand) (entities.Consultation, error) {
	if problems := ValidateConsultation(cmd); len(problems) > 0 {
		return entities.Consultation{}, fmt.Errorf("%w: %s", ErrInvalidConsultation, strings.Join(problems, "; "))
	}

	petID := strings.TrimSpace(cmd.PetID)
	pet, err := u.petRepo.GetByID(ctx, petID)
	if err != nil {
		return entities.Consultation{}, err
	}
	if pet.ID == "" {
		return entities.Consultation{}, ErrPetNotFound
	}

	appointmentID := trimOptional(cmd.AppointmentID)
	if appointmentID != nil {
		a, err := u.appointmentRepo.GetByID(ctx, *appointmentID)
		if err != nil {
			return entities.Consultation{}, err
		}
		if a.ID == "" {
			return entities.Consultation{}, ErrAppointmentNotFound
		}
		if a.PetID != petID {
			return entities.Consultation{}, fmt.Errorf("%w: appointment belongs to another pet", ErrInvalidConsultation)
		}
	}

	now := time.Now().UTC()
	c := entities.Consultation{
		ID:            uuid.NewString(),
		PetID:         petID,
		StaffID:       strings.TrimSpace(cmd.StaffID),
		AppointmentID: appointmentID,
		Date:          u.clock.Today(),
		Reason:        strings.TrimSpace(cmd.Reason),
		Diagnosis:     strings.TrimSpace(cmd.Diagnosis),
		Treatment:     strings.TrimSpace(cmd.Treatment),
		Medications:   strings.TrimSpace(cmd.Medications),
		Notes:         strings.TrimSpace(cmd.Notes),
		Cost:          cmd.Cost,
		WeightKg:      cmd.WeightKg,
		TemperatureC:  cmd.TemperatureC,
		Status:        entities.ConsultationStatusOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := u.repo.Create(ctx, c)
	if err != nil {
		log.Printf("[consultation][usecase] create failed pet_id=%s err=%v", petID, err)
		return entities.Consultation{}, err
	}
	log.Printf("[consultation][usecase] create success consultation_id=%s pet_id=%s cost=%s", created.ID, petID, created.Cost)
	return created, nil
}

// Complete closes an open consultation. When it came from an appointment that
// is not completed yet, the appointment is completed in the same transaction.
func (u *ConsultationUseCase) Complete(ctx context.Context, id string) (entities.Consultation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Consultation{}, ErrInvalidConsultationID
	}

	today := u.clock.Today()
	var completed entities.Consultation
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := u.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c.ID == "" {
			return ErrConsultationNotFound
		}
		if c.Status == entities.ConsultationStatusCompleted {
			return ErrConsultationAlreadyCompleted
		}
		if c.Date.After(today) {
			return ErrFutureConsultation
		}

		if c.AppointmentID != nil {
			if err := u.completeAppointment(ctx, *c.AppointmentID, today); err != nil {
				return err
			}
		}

		next := c
		next.Status = entities.ConsultationStatusCompleted
		next.UpdatedAt = time.Now().UTC()
		completed, err = u.repo.UpdateStatus(ctx, next, c.Status)
		return err
	})
	if err != nil {
		log.Printf("[consultation][usecase] complete failed consultation_id=%s err=%v", id, err)
		return entities.Consultation{}, err
	}

	log.Printf("[consultation][usecase] complete success consultation_id=%s", id)
	publish(ctx, u.publisher, interfaces.EventConsultationCompleted, completed.ID, completed)
	return completed, nil
}

func (u *ConsultationUseCase) completeAppointment(ctx context.Context, appointmentID string, today time.Time) error {
	a, err := u.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if a.ID == "" || a.Status == entities.AppointmentStatusCompleted {
		return nil
	}
	if err := CheckAppointmentTransition(a, entities.AppointmentStatusCompleted, today); err != nil {
		return err
	}
	from := a.Status
	a.Status = entities.AppointmentStatusCompleted
	a.UpdatedAt = time.Now().UTC()
	_, err = u.appointmentRepo.UpdateStatus(ctx, a, from)
	return err
}

func (u *ConsultationUseCase) GetByID(ctx context.Context, id string) (entities.Consultation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Consultation{}, ErrInvalidConsultationID
	}

	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Consultation{}, err
	}
	if c.ID == "" {
		return entities.Consultation{}, ErrConsultationNotFound
	}
	return c, nil
}

func (u *ConsultationUseCase) ListByPetID(ctx context.Context, petID string) ([]entities.Consultation, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidPetID
	}
	return u.repo.ListByPetID(ctx, petID)
}

func (u *ConsultationUseCase) ListPendingInvoice(ctx context.Context) ([]PendingInvoice, error) {
	completed, err := u.repo.ListByStatus(ctx, entities.ConsultationStatusCompleted)
	if err != nil {
		return nil, err
	}

	if len(completed) == 0 {
		return []PendingInvoice{}, nil
	}
	ids := make([]string, 0, len(completed))
	for _, c := range completed {
		ids = append(ids, c.ID)
	}
	invoiced, err := u.invoiceRepo.InvoicedConsultationIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]PendingInvoice, 0, len(completed))
	for _, c := range completed {
		if invoiced[c.ID] {
			continue
		}
		out = append(out, PendingInvoice{
			Consultation: c,
			Totals:       billing.ComputeTotals(c.Cost, u.taxRate),
		})
	}
	return out, nil
}

func (u *ConsultationUseCase) Prescription(ctx context.Context, id string) (Prescription, error) {
	c, err := u.GetByID(ctx, id)
	if err != nil {
		return Prescription{}, err
	}
	if c.Status != entities.ConsultationStatusCompleted {
		return Prescription{}, ErrPrescriptionNotCompleted
	}
	if c.Treatment == "" && c.Medications == "" {
		return Prescription{}, ErrNothingPrescribed
	}

	pet, err := u.petRepo.GetByID(ctx, c.PetID)
	if err != nil {
		return Prescription{}, err
	}
	if pet.ID == "" {
		return Prescription{}, ErrPetNotFound
	}
	owner, err := u.clientRepo.GetByID(ctx, pet.OwnerID)
	if err != nil {
		return Prescription{}, err
	}
	if owner.ID == "" {
		log.Printf("[consultation][usecase] prescription owner missing consultation_id=%s owner_id=%s", c.ID, pet.OwnerID)
	}

	return Prescription{
		ConsultationID: c.ID,
		IssueDate:      u.clock.Today(),
		PetName:        pet.Name,
		Species:        pet.Species,
		OwnerName:      owner.Name,
		StaffID:        c.StaffID,
		Diagnosis:      c.Diagnosis,
		Treatment:      c.Treatment,
		Medications:    c.Medications,
		Notes:          c.Notes,
		Instructions:   PrescriptionInstructions,
	}, nil
}
