package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"sort"
	"sync"
	"time"

	"agenda/internal/domains/appointment/model"
	"agenda/shared"
	"agenda/shared/timezone"
)

// Appointment is the per-account in-memory mirror of the remote appointment
// collection. Reads never touch the network; the service layer refreshes the
// mirror from the gateway and keeps it consistent after writes.
type Appointment interface {
	Replace(accountID string, appointments []model.Appointment)
	Upsert(accountID string, appointment model.Appointment)
	RemoveSlot(accountID, id, slot string) (removed, emptied bool)
	GetAll(accountID string) []model.Appointment
	Get(accountID, id string) (model.Appointment, bool)
	ByDate(accountID string, date time.Time) []model.Appointment
	BookedSlots(accountID string, date time.Time) []string
	Loaded(accountID string) bool
}

type memoryImpl struct {
	mu     sync.RWMutex
	data   map[string][]model.Appointment
	loaded map[string]bool
}

func New() Appointment {
	return &memoryImpl{
		data:   make(map[string][]model.Appointment),
		loaded: make(map[string]bool),
	}
}

// Replace implements Appointment.
func (r *memoryImpl) Replace(accountID string, appointments []model.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make([]model.Appointment, len(appointments))
	copy(copied, appointments)

	r.data[accountID] = copied
	r.loaded[accountID] = true
}

// Upsert implements Appointment.
func (r *memoryImpl) Upsert(accountID string, appointment model.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.data[accountID] {
		if existing.ID == appointment.ID {
			r.data[accountID][i] = appointment

			return
		}
	}

	r.data[accountID] = append(r.data[accountID], appointment)
}

// RemoveSlot implements Appointment. Removing the last slot drops the whole
// record; an appointment with no remaining times carries no information.
func (r *memoryImpl) RemoveSlot(accountID, id, slot string) (removed, emptied bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appointments := r.data[accountID]

	for i, appointment := range appointments {
		if appointment.ID != id {
			continue
		}

		if !shared.Contains(appointment.Slots, slot) {
			return false, false
		}

		remaining := shared.Remove(appointment.Slots, slot)
		if len(remaining) == 0 {
			r.data[accountID] = append(appointments[:i:i], appointments[i+1:]...)

			return true, true
		}

		appointments[i].Slots = remaining

		return true, false
	}

	return false, false
}

// GetAll implements Appointment.
func (r *memoryImpl) GetAll(accountID string) []model.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appointments := make([]model.Appointment, len(r.data[accountID]))
	copy(appointments, r.data[accountID])

	return appointments
}

// Get implements Appointment.
func (r *memoryImpl) Get(accountID, id string) (model.Appointment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, appointment := range r.data[accountID] {
		if appointment.ID == id {
			return appointment, true
		}
	}

	return model.Appointment{}, false
}

// ByDate implements Appointment.
func (r *memoryImpl) ByDate(accountID string, date time.Time) []model.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var appointments []model.Appointment

	for _, appointment := range r.data[accountID] {
		if timezone.SameDay(appointment.Date, date) {
			appointments = append(appointments, appointment)
		}
	}

	return appointments
}

// BookedSlots implements Appointment. The result is deduplicated and sorted
// ascending.
func (r *memoryImpl) BookedSlots(accountID string, date time.Time) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	booked := []string{}

	for _, appointment := range r.data[accountID] {
		if !timezone.SameDay(appointment.Date, date) {
			continue
		}

		for _, slot := range appointment.Slots {
			if !seen[slot] {
				seen[slot] = true
				booked = append(booked, slot)
			}
		}
	}

	sort.Strings(booked)

	return booked
}

// Loaded implements Appointment.
func (r *memoryImpl) Loaded(accountID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.loaded[accountID]
}
