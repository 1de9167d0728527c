package service

import (
	"testing"
	"time"

	"labreserva/backend/internal/model"
)

func window(t *testing.T, inicioH, fimH int) TimeWindow {
	t.Helper()
	base := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	return TimeWindow{
		Inicio: base.Add(time.Duration(inicioH) * time.Hour),
		Fim:    base.Add(time.Duration(fimH) * time.Hour),
	}
}

func TestTimeWindow_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeWindow
		want bool
	}{
		{"identical", window(t, 8, 10), window(t, 8, 10), true},
		{"partial overlap", window(t, 8, 10), window(t, 9, 11), true},
		{"contained", window(t, 8, 12), window(t, 9, 10), true},
		{"touching end-start", window(t, 8, 10), window(t, 10, 12), false},
		{"touching start-end", window(t, 10, 12), window(t, 8, 10), false},
		{"disjoint", window(t, 8, 10), window(t, 14, 16), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			// overlap is symmetric
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeWindow_Valida(t *testing.T) {
	if !window(t, 8, 10).Valida() {
		t.Error("forward window should be valid")
	}
	if window(t, 10, 8).Valida() {
		t.Error("inverted window should be invalid")
	}
	if (TimeWindow{Inicio: window(t, 8, 10).Inicio, Fim: window(t, 8, 10).Inicio}).Valida() {
		t.Error("empty window should be invalid")
	}
}

func TestFindConflicts(t *testing.T) {
	w1 := window(t, 8, 10)
	w2 := window(t, 10, 12)
	w3 := window(t, 9, 11)

	reservas := []model.Reserva{
		{ID: 1, Inicio: w1.Inicio, Fim: w1.Fim, Status: model.StatusReservaAprovado},
		{ID: 2, Inicio: w2.Inicio, Fim: w2.Fim, Status: model.StatusReservaPendente},
		{ID: 3, Inicio: w3.Inicio, Fim: w3.Fim, Status: model.StatusReservaCancelado},
		{ID: 4, Inicio: w3.Inicio, Fim: w3.Fim, Status: model.StatusReservaReprovado},
	}

	// overlaps 1 and 2; 3 and 4 released their windows
	got := findConflicts(reservas, window(t, 9, 11), 0)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("findConflicts() = %v, want [1 2]", got)
	}

	// excluding the edited reservation itself
	got = findConflicts(reservas, window(t, 9, 11), 1)
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("findConflicts() excluding 1 = %v, want [2]", got)
	}

	// touching windows never conflict
	if got := findConflicts(reservas, window(t, 12, 14), 0); len(got) != 0 {
		t.Errorf("touching window should not conflict, got %v", got)
	}
}

func TestFindConflicts_Idempotent(t *testing.T) {
	reservas := []model.Reserva{
		{ID: 1, Inicio: window(t, 8, 10).Inicio, Fim: window(t, 8, 10).Fim, Status: model.StatusReservaPendente},
	}
	w := window(t, 9, 11)

	first := findConflicts(reservas, w, 0)
	second := findConflicts(reservas, w, 0)

	if len(first) != len(second) {
		t.Fatalf("repeated scans disagree: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("repeated scans disagree: %v vs %v", first, second)
		}
	}
}
