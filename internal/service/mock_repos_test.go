package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"labreserva/backend/internal/dto"
	"labreserva/backend/internal/model"
	pkgerrors "labreserva/backend/pkg/errors"
)

// ── mock UsuarioRepository ──

type mockUsuarioRepo struct {
	mu       sync.Mutex
	usuarios map[uint]*model.Usuario
	nextID   uint
}

func newMockUsuarioRepo() *mockUsuarioRepo {
	return &mockUsuarioRepo{usuarios: make(map[uint]*model.Usuario), nextID: 1}
}

func (m *mockUsuarioRepo) Create(_ context.Context, usuario *model.Usuario) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if usuario.ID == 0 {
		usuario.ID = m.nextID
		m.nextID++
	}
	if usuario.Version == 0 {
		usuario.Version = 1
	}
	cp := *usuario
	m.usuarios[usuario.ID] = &cp
	return nil
}

func (m *mockUsuarioRepo) GetByID(_ context.Context, id uint) (*model.Usuario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.usuarios[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUsuarioRepo) GetByEmail(_ context.Context, email string) (*model.Usuario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.usuarios {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUsuarioRepo) ListByPerfil(_ context.Context, perfil model.PerfilUsuario) ([]model.Usuario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Usuario
	for _, u := range m.usuarios {
		if u.Perfil == perfil {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUsuarioRepo) Update(_ context.Context, usuario *model.Usuario) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.usuarios[usuario.ID]
	if !ok || stored.Version != usuario.Version {
		return pkgerrors.ErrOptimisticLock
	}
	usuario.Version++
	cp := *usuario
	m.usuarios[usuario.ID] = &cp
	return nil
}

// ── mock LaboratorioRepository ──

type mockLaboratorioRepo struct {
	mu     sync.Mutex
	labs   map[uint]*model.Laboratorio
	nextID uint
}

func newMockLaboratorioRepo() *mockLaboratorioRepo {
	return &mockLaboratorioRepo{labs: make(map[uint]*model.Laboratorio), nextID: 1}
}

func (m *mockLaboratorioRepo) Create(_ context.Context, lab *model.Laboratorio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if lab.ID == 0 {
		lab.ID = m.nextID
		m.nextID++
	}
	if lab.Version == 0 {
		lab.Version = 1
	}
	cp := *lab
	m.labs[lab.ID] = &cp
	return nil
}

func (m *mockLaboratorioRepo) GetByID(_ context.Context, id uint) (*model.Laboratorio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.labs[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLaboratorioRepo) List(_ context.Context) ([]model.Laboratorio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Laboratorio
	for _, l := range m.labs {
		result = append(result, *l)
	}
	return result, nil
}

func (m *mockLaboratorioRepo) Update(_ context.Context, lab *model.Laboratorio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.labs[lab.ID]
	if !ok || stored.Version != lab.Version {
		return pkgerrors.ErrOptimisticLock
	}
	lab.Version++
	cp := *lab
	m.labs[lab.ID] = &cp
	return nil
}

// ── mock ReservaRepository ──

type mockReservaRepo struct {
	mu       sync.Mutex
	reservas map[uint]*model.Reserva
	nextID   uint

	// sibling mocks, mimicking gorm Preload on reads
	labs     *mockLaboratorioRepo
	usuarios *mockUsuarioRepo
	planos   *mockPlanejamentoRepo

	// forceUpdateErr makes the next Update fail, simulating a stale
	// version or a driver error.
	forceUpdateErr error
}

func newMockReservaRepo() *mockReservaRepo {
	return &mockReservaRepo{reservas: make(map[uint]*model.Reserva), nextID: 1}
}

func (m *mockReservaRepo) withAssoc(r model.Reserva) model.Reserva {
	if m.labs != nil {
		if l, err := m.labs.GetByID(context.Background(), r.LaboratorioID); err == nil {
			r.Laboratorio = l
		}
	}
	if m.usuarios != nil {
		if u, err := m.usuarios.GetByID(context.Background(), r.ProfessorID); err == nil {
			r.Professor = u
		}
	}
	if m.planos != nil && r.PlanejamentoID != nil {
		if p, err := m.planos.GetByID(context.Background(), *r.PlanejamentoID); err == nil {
			r.Planejamento = p
		}
	}
	return r
}

func (m *mockReservaRepo) Create(_ context.Context, reserva *model.Reserva) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if reserva.ID == 0 {
		reserva.ID = m.nextID
		m.nextID++
	}
	if reserva.Version == 0 {
		reserva.Version = 1
	}
	cp := *reserva
	m.reservas[reserva.ID] = &cp
	return nil
}

func (m *mockReservaRepo) GetByID(_ context.Context, id uint) (*model.Reserva, error) {
	m.mu.Lock()
	r, ok := m.reservas[id]
	if !ok {
		m.mu.Unlock()
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	m.mu.Unlock()

	cp = m.withAssoc(cp)
	return &cp, nil
}

func (m *mockReservaRepo) List(_ context.Context, status *model.StatusReserva) ([]model.Reserva, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Reserva
	for _, r := range m.reservas {
		if status != nil && r.Status != *status {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockReservaRepo) ListByProfessor(_ context.Context, professorID uint, status *model.StatusReserva) ([]model.Reserva, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Reserva
	for _, r := range m.reservas {
		if r.ProfessorID != professorID {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockReservaRepo) ListAtivasByLaboratorio(_ context.Context, laboratorioID uint) ([]model.Reserva, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Reserva
	for _, r := range m.reservas {
		if r.LaboratorioID == laboratorioID && r.Status.Ativa() {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockReservaRepo) ListAtivasByLaboratorioEPeriodo(_ context.Context, laboratorioID uint, inicio, fim time.Time) ([]model.Reserva, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Reserva
	for _, r := range m.reservas {
		if r.LaboratorioID != laboratorioID || !r.Status.Ativa() {
			continue
		}
		if r.Inicio.Before(fim) && inicio.Before(r.Fim) {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockReservaRepo) ListFuturasByProfessor(_ context.Context, professorID uint, apos time.Time) ([]model.Reserva, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Reserva
	for _, r := range m.reservas {
		if r.ProfessorID == professorID && r.Inicio.After(apos) && r.Status.Ativa() {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockReservaRepo) ListAprovadasByProfessor(_ context.Context, professorID uint) ([]model.Reserva, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Reserva
	for _, r := range m.reservas {
		if r.ProfessorID == professorID && r.Status == model.StatusReservaAprovado {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockReservaRepo) Update(_ context.Context, reserva *model.Reserva) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forceUpdateErr != nil {
		err := m.forceUpdateErr
		m.forceUpdateErr = nil
		return err
	}
	stored, ok := m.reservas[reserva.ID]
	if !ok || stored.Version != reserva.Version {
		return pkgerrors.ErrOptimisticLock
	}
	reserva.Version++
	cp := *reserva
	m.reservas[reserva.ID] = &cp
	return nil
}

// ── mock PlanejamentoRepository ──

type mockPlanejamentoRepo struct {
	mu     sync.Mutex
	planos map[uint]*model.Planejamento
	nextID uint
}

func newMockPlanejamentoRepo() *mockPlanejamentoRepo {
	return &mockPlanejamentoRepo{planos: make(map[uint]*model.Planejamento), nextID: 1}
}

func (m *mockPlanejamentoRepo) Create(_ context.Context, plano *model.Planejamento) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if plano.ID == 0 {
		plano.ID = m.nextID
		m.nextID++
	}
	if plano.Version == 0 {
		plano.Version = 1
	}
	if plano.Versao == 0 {
		plano.Versao = 1
	}
	cp := *plano
	m.planos[plano.ID] = &cp
	return nil
}

func (m *mockPlanejamentoRepo) GetByID(_ context.Context, id uint) (*model.Planejamento, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.planos[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPlanejamentoRepo) ListVisiveis(_ context.Context, authorID uint) ([]model.Planejamento, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Planejamento
	for _, p := range m.planos {
		if p.Status == model.StatusPlanejamentoPublicado || p.AuthorID == authorID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPlanejamentoRepo) ListByAuthor(_ context.Context, authorID uint) ([]model.Planejamento, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Planejamento
	for _, p := range m.planos {
		if p.AuthorID == authorID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPlanejamentoRepo) ListByStatus(_ context.Context, status model.StatusPlanejamento) ([]model.Planejamento, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Planejamento
	for _, p := range m.planos {
		if p.Status == status {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPlanejamentoRepo) Search(_ context.Context, filtros *dto.PlanejamentoFiltros) ([]model.Planejamento, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Planejamento
	for _, p := range m.planos {
		if filtros.PalavraChave != "" &&
			!strings.Contains(strings.ToLower(p.Titulo), strings.ToLower(filtros.PalavraChave)) &&
			!strings.Contains(strings.ToLower(p.Descricao), strings.ToLower(filtros.PalavraChave)) {
			continue
		}
		if filtros.Area != "" && p.Area != filtros.Area {
			continue
		}
		if filtros.AuthorID != 0 && p.AuthorID != filtros.AuthorID {
			continue
		}
		if filtros.Status != "" && string(p.Status) != filtros.Status {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockPlanejamentoRepo) Update(_ context.Context, plano *model.Planejamento) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.planos[plano.ID]
	if !ok || stored.Version != plano.Version {
		return pkgerrors.ErrOptimisticLock
	}
	plano.Version++
	cp := *plano
	m.planos[plano.ID] = &cp
	return nil
}

func (m *mockPlanejamentoRepo) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.planos, id)
	return nil
}
