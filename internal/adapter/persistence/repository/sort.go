package repository

import (
	"sort"

	"vetclinic/internal/domain/entities"
)

// Index queries come back in hash order; callers expect the timetable order.
func sortAppointments(items []entities.Appointment) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.Before(items[j].Date)
		}
		return items[i].Slot < items[j].Slot
	})
}

func sortConsultations(items []entities.Consultation) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func sortInvoices(items []entities.Invoice) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
