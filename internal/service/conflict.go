package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"labreserva/backend/internal/model"
)

// TimeWindow is the half-open interval [Inicio, Fim). A window whose
// Fim equals another window's Inicio does not overlap it.
type TimeWindow struct {
	Inicio time.Time
	Fim    time.Time
}

// Valida reports whether the window is non-empty (Inicio strictly
// before Fim).
func (w TimeWindow) Valida() bool {
	return w.Inicio.Before(w.Fim)
}

// Overlaps reports whether two half-open windows intersect.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Inicio.Before(other.Fim) && other.Inicio.Before(w.Fim)
}

// ConflitoError is returned when a requested window collides with
// existing reservations of the same laboratory. It carries the ids of
// the colliding reservations so the client can show them.
type ConflitoError struct {
	ReservaIDs []uint
}

func (e *ConflitoError) Error() string {
	ids := make([]string, len(e.ReservaIDs))
	for i, id := range e.ReservaIDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return "horário em conflito com as reservas: " + strings.Join(ids, ", ")
}

// findConflicts scans reservations of one laboratory for overlaps with
// the window. Cancelled and rejected reservations release their window
// and never conflict. excludeID skips the reservation being edited
// (zero on creation). The scan has no side effects and returns the
// same ids for the same input.
func findConflicts(reservas []model.Reserva, window TimeWindow, excludeID uint) []uint {
	var ids []uint
	for i := range reservas {
		r := &reservas[i]
		if r.ID == excludeID {
			continue
		}
		if !r.Status.Ativa() {
			continue
		}
		if window.Overlaps(TimeWindow{Inicio: r.Inicio, Fim: r.Fim}) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// labLocker hands out one mutex per laboratory. The reservation
// service holds it across "conflict scan → persist", so two concurrent
// requests for the same laboratory serialize instead of both passing
// the scan. Locks are never removed; the map grows with the number of
// laboratories, which is small.
type labLocker struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newLabLocker() *labLocker {
	return &labLocker{locks: make(map[uint]*sync.Mutex)}
}

// Lock acquires the mutex of one laboratory and returns it so the
// caller can defer the unlock.
func (l *labLocker) Lock(laboratorioID uint) *sync.Mutex {
	l.mu.Lock()
	m, ok := l.locks[laboratorioID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[laboratorioID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m
}
