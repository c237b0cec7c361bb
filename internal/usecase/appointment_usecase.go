package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"vetclinic/internal/domain/entities"
	"vetclinic/internal/domain/schedule"
	"vetclinic/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound  = fmt.Errorf("appointment %w", ErrNotFound)
	ErrPetNotFound          = fmt.Errorf("pet %w", ErrNotFound)
	ErrInvalidAppointmentID = fmt.Errorf("%w: appointment id is required", ErrInvalidFormat)
	ErrInvalidPetID         = fmt.Errorf("%w: pet_id is required", ErrInvalidFormat)
	ErrPastDate             = errors.New("date is in the past")
	ErrSlotNotOffered       = errors.New("slot is not offered on that date")
	ErrSlotTaken            = fmt.Errorf("%w: slot already booked", ErrConflict)
)

// SlotAvailability is one catalog slot of a date with its booking state.
type SlotAvailability struct {
	Date        string `json:"date"`
	Slot        string `json:"slot"`
	IsAvailable bool   `json:"is_available"`
}

// BookAppointmentCommand is the input of Book. Date and Slot use the wire
// formats YYYY-MM-DD and HH:MM.
type BookAppointmentCommand struct {
	PetID   string
	StaffID *string
	Date    string
	Slot    string
	Reason  string
}

// IAppointmentUseCase is the appointment scheduler.
//
//   - ListAvailableSlots / ValidateSlot read the timetable
//   - Book places a new scheduled appointment into a free slot
//   - Transition drives the status lifecycle through the guard table

type IAppointmentUseCase interface {
	ListAvailableSlots(ctx context.Context, date string) ([]SlotAvailability, error)
	ValidateSlot(ctx context.Context, date, slot string) (bool, error)
	Book(ctx context.Context, cmd BookAppointmentCommand) (entities.Appointment, error)
	Transition(ctx context.Context, id string, newStatus string) (entities.Appointment, error)
	GetByID(ctx context.Context, id string) (entities.Appointment, error)
	ListByDate(ctx context.Context, date string) ([]entities.Appointment, error)
	ListByPetID(ctx context.Context, petID string) ([]entities.Appointment, error)
}

type AppointmentUseCase struct {
	repo      interfaces.IAppointmentRepository
	petRepo   interfaces.IPetRepository
	tx        interfaces.ITransactor
	clock     interfaces.IClock
	publisher interfaces.IEventPublisher
}

var _ IAppointmentUseCase = (*AppointmentUseCase)(nil)

func NewAppointmentUseCase(
	repo interfaces.IAppointmentRepository,
	petRepo interfaces.IPetRepository,
	tx interfaces.ITransactor,
	clock interfaces.IClock,
	publisher interfaces.IEventPublisher,
) *AppointmentUseCase {
	return &AppointmentUseCase{repo: repo, petRepo: petRepo, tx: tx, clock: clock, publisher: publisher}
}

func (u *AppointmentUseCase) ListAvailableSlots(ctx context.Context, date string) ([]SlotAvailability, error) {
	d, err := schedule.ParseDate(date)
	if err != nil {
		return nil, invalidFormat(err)
	}
	return u.availableSlots(ctx, d)
}

func (u *AppointmentUseCase) availableSlots(ctx context.Context, date time.Time) ([]SlotAvailability, error) {
	occupied, err := u.occupiedSlots(ctx, date, "")
	if err != nil {
		return nil, err
	}

	catalog := schedule.Catalog(date)
	out := make([]SlotAvailability, 0, len(catalog))
	for _, slot := range catalog {
		_, taken := occupied[slot]
		out = append(out, SlotAvailability{
			Date:        schedule.FormatDate(date),
			Slot:        slot,
			IsAvailable: !taken,
		})
	}
	return out, nil
}

// occupiedSlots returns the slots held on date by scheduled or confirmed
// appointments, ignoring the appointment exceptID.
func (u *AppointmentUseCase) occupiedSlots(ctx context.Context, date time.Time, exceptID string) (map[string]struct{}, error) {
	active, err := u.repo.ListByDate(ctx, date, entities.AppointmentStatusScheduled, entities.AppointmentStatusConfirmed)
	if err != nil {
		return nil, err
	}
	occupied := make(map[string]struct{}, len(active))
	for _, a := range active {
		if a.ID == exceptID || !a.Status.HoldsSlot() {
			continue
		}
		occupied[a.Slot] = struct{}{}
	}
	return occupied, nil
}

func (u *AppointmentUseCase) ValidateSlot(ctx context.Context, date, slot string) (bool, error) {
	d, canonical, err := u.parseBookableSlot(date, slot)
	if err != nil {
		return false, err
	}

	slots, err := u.availableSlots(ctx, d)
	if err != nil {
		return false, err
	}
	for _, s := range slots {
		if s.Slot == canonical {
			return s.IsAvailable, nil
		}
	}
	return false, nil
}

// parseBookableSlot parses date and slot in that order. A past date is
// reported before the slot is even looked at.
func (u *AppointmentUseCase) parseBookableSlot(date, slot string) (time.Time, string, error) {
	d, err := schedule.ParseDate(date)
	if err != nil {
		return time.Time{}, "", invalidFormat(err)
	}
	if d.Before(u.clock.Today()) {
		return time.Time{}, "", ErrPastDate
	}
	canonical, err := schedule.ParseSlot(slot)
	if err != nil {
		return time.Time{}, "", invalidFormat(err)
	}
	return d, canonical, nil
}

func (u *AppointmentUseCase) Book(ctx context.Context, cmd BookAppointmentCommand) (entities.Appointment, error) {
	log.Printf("[appointment][usecase] book start pet_id=%q date=%q slot=%q", cmd.PetID, cmd.Date, cmd.Slot)
	petID := strings.TrimSpace(cmd.PetID)
	if petID == "" {
		return entities.Appointment{}, ErrInvalidPetID
	}

	date, slot, err := u.parseBookableSlot(cmd.Date, cmd.Slot)
	if err != nil {
		return entities.Appointment{}, err
	}
	if !schedule.Offers(date, slot) {
		return entities.Appointment{}, ErrSlotNotOffered
	}

	pet, err := u.petRepo.GetByID(ctx, petID)
	if err != nil {
		return entities.Appointment{}, err
	}
	if pet.ID == "" {
		return entities.Appointment{}, ErrPetNotFound
	}

	now := time.Now().UTC()
	appt := entities.Appointment{
		ID:        uuid.NewString(),
		PetID:     petID,
		StaffID:   trimOptional(cmd.StaffID),
		Date:      date,
		Slot:      slot,
		Reason:    strings.TrimSpace(cmd.Reason),
		Status:    entities.AppointmentStatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var created entities.Appointment
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		occupied, err := u.occupiedSlots(ctx, date, "")
		if err != nil {
			return err
		}
		if _, taken := occupied[slot]; taken {
			return ErrSlotTaken
		}
		created, err = u.repo.Create(ctx, appt)
		return err
	})
	if err != nil {
		log.Printf("[appointment][usecase] book failed pet_id=%s date=%s slot=%s err=%v", petID, schedule.FormatDate(date), slot, err)
		return entities.Appointment{}, err
	}

	log.Printf("[appointment][usecase] book success appointment_id=%s date=%s slot=%s", created.ID, schedule.FormatDate(date), slot)
	publish(ctx, u.publisher, interfaces.EventAppointmentBooked, created.ID, created)
	return created, nil
}

func (u *AppointmentUseCase) Transition(ctx context.Context, id string, newStatus string) (entities.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Appointment{}, ErrInvalidAppointmentID
	}
	target, ok := entities.ParseAppointmentStatus(strings.ToLower(strings.TrimSpace(newStatus)))
	if !ok {
		return entities.Appointment{}, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	today := u.clock.Today()
	var (
		updated entities.Appointment
		from    entities.AppointmentStatus
	)
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := u.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current.ID == "" {
			return ErrAppointmentNotFound
		}
		if err := CheckAppointmentTransition(current, target, today); err != nil {
			return err
		}

		from = current.Status
		if from == target {
			updated = current
			return nil
		}

		// Re-activating a cancelled or completed appointment takes its slot back.
		if target.HoldsSlot() && !from.HoldsSlot() {
			occupied, err := u.occupiedSlots(ctx, current.Date, current.ID)
			if err != nil {
				return err
			}
			if _, taken := occupied[current.Slot]; taken {
				return ErrSlotTaken
			}
		}

		next := current
		next.Status = target
		next.UpdatedAt = time.Now().UTC()
		updated, err = u.repo.UpdateStatus(ctx, next, from)
		return err
	})
	if err != nil {
		log.Printf("[appointment][usecase] transition failed appointment_id=%s target=%s err=%v", id, target, err)
		return entities.Appointment{}, err
	}

	if from != target {
		log.Printf("[appointment][usecase] transition success appointment_id=%s from=%s to=%s", id, from, target)
		publish(ctx, u.publisher, interfaces.EventAppointmentStatusChanged, updated.ID, map[string]any{
			"appointment_id": updated.ID,
			"from":           from,
			"to":             target,
		})
	}
	return updated, nil
}

func (u *AppointmentUseCase) GetByID(ctx context.Context, id string) (entities.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Appointment{}, ErrInvalidAppointmentID
	}

	a, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Appointment{}, err
	}
	if a.ID == "" {
		return entities.Appointment{}, ErrAppointmentNotFound
	}
	return a, nil
}

func (u *AppointmentUseCase) ListByDate(ctx context.Context, date string) ([]entities.Appointment, error) {
	d, err := schedule.ParseDate(date)
	if err != nil {
		return nil, invalidFormat(err)
	}
	return u.repo.ListByDate(ctx, d)
}

func (u *AppointmentUseCase) ListByPetID(ctx context.Context, petID string) ([]entities.Appointment, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidPetID
	}
	return u.repo.ListByPetID(ctx, petID)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
