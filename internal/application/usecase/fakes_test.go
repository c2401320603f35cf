package usecase_test

import (
	"context"
	"strings"
	"time"

	"github.com/tejidosandina/rollos-api/internal/application/usecase"
	"github.com/tejidosandina/rollos-api/internal/domain/entity"
	"github.com/tejidosandina/rollos-api/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia. Replican el contrato
// de los repositorios reales: las lecturas excluyen registros con soft
// delete y GetByID devuelve (nil, nil) cuando no hay fila.

// ──────────────────────────────────────────────────────────────────────────────
// fakeRollRepo
// ──────────────────────────────────────────────────────────────────────────────

type fakeRollRepo struct {
	rolls map[string]entity.Roll
}

func newFakeRollRepo() *fakeRollRepo {
	return &fakeRollRepo{rolls: map[string]entity.Roll{}}
}

var _ repository.RollRepository = (*fakeRollRepo)(nil)

func (r *fakeRollRepo) Create(roll *entity.Roll) error {
	r.rolls[roll.ID] = *roll
	return nil
}

func (r *fakeRollRepo) GetByID(id string) (*entity.Roll, error) {
	roll, ok := r.rolls[id]
	if !ok || roll.IsDeleted() {
		return nil, nil
	}
	cp := roll
	return &cp, nil
}

func (r *fakeRollRepo) List(f repository.RollFilter, limit, offset int) ([]*entity.Roll, error) {
	var out []*entity.Roll
	for _, roll := range r.rolls {
		if roll.IsDeleted() {
			continue
		}
		if f.CatalogID != "" && roll.CatalogID != f.CatalogID {
			continue
		}
		if f.Status != "" && roll.Status != f.Status {
			continue
		}
		if f.Degree != "" && roll.Degree != f.Degree {
			continue
		}
		if f.Color != "" && !strings.Contains(strings.ToLower(roll.Color), f.Color) {
			continue
		}
		cp := roll
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRollRepo) Update(roll *entity.Roll) error {
	r.rolls[roll.ID] = *roll
	return nil
}

func (r *fakeRollRepo) SoftDelete(id, actorID string, at time.Time) error {
	roll, ok := r.rolls[id]
	if !ok {
		return nil
	}
	roll.DeletedAt = &at
	roll.DeletedBy = &actorID
	r.rolls[id] = roll
	return nil
}

func (r *fakeRollRepo) CountActiveByBarcode(barcode, excludeID string) (int64, error) {
	var n int64
	for _, roll := range r.rolls {
		if roll.Barcode != barcode || !roll.IsActive() {
			continue
		}
		if excludeID != "" && roll.ID == excludeID {
			continue
		}
		n++
	}
	return n, nil
}

func (r *fakeRollRepo) CountByCatalog(catalogID string) (int64, error) {
	var n int64
	for _, roll := range r.rolls {
		if roll.CatalogID == catalogID && !roll.IsDeleted() {
			n++
		}
	}
	return n, nil
}

func (r *fakeRollRepo) CountActiveByCatalog(catalogID string) (int64, error) {
	var n int64
	for _, roll := range r.rolls {
		if roll.CatalogID == catalogID && roll.IsActive() {
			n++
		}
	}
	return n, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// fakeCatalogRepo
// ──────────────────────────────────────────────────────────────────────────────

type fakeCatalogRepo struct {
	catalogs map[string]entity.Catalog
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{catalogs: map[string]entity.Catalog{}}
}

var _ repository.CatalogRepository = (*fakeCatalogRepo)(nil)

func (r *fakeCatalogRepo) Create(c *entity.Catalog) error {
	r.catalogs[c.ID] = *c
	return nil
}

func (r *fakeCatalogRepo) GetByID(id string) (*entity.Catalog, error) {
	c, ok := r.catalogs[id]
	if !ok || c.IsDeleted() {
		return nil, nil
	}
	cp := c
	return &cp, nil
}

func (r *fakeCatalogRepo) GetByCode(code string) (*entity.Catalog, error) {
	for _, c := range r.catalogs {
		if c.Code == code && !c.IsDeleted() {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCatalogRepo) List(f repository.CatalogFilter, limit, offset int) ([]*entity.Catalog, error) {
	var out []*entity.Catalog
	for _, c := range r.catalogs {
		if c.IsDeleted() {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		cp := c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCatalogRepo) Update(c *entity.Catalog) error {
	r.catalogs[c.ID] = *c
	return nil
}

func (r *fakeCatalogRepo) SoftDelete(id, actorID string, at time.Time) error {
	c, ok := r.catalogs[id]
	if !ok {
		return nil
	}
	c.DeletedAt = &at
	c.DeletedBy = &actorID
	r.catalogs[id] = c
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// fakeUserRepo
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]entity.User{}}
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok || u.IsDeleted() {
		return nil, nil
	}
	cp := u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email && !u.IsDeleted() {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(f repository.UserFilter, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.IsDeleted() {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		cp := u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) SoftDelete(id, actorID string, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	u.DeletedAt = &at
	u.DeletedBy = &actorID
	r.users[id] = u
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// fakeAuditRepo
// ──────────────────────────────────────────────────────────────────────────────

type fakeAuditRepo struct {
	entries []entity.AuditLogEntry
}

func newFakeAuditRepo() *fakeAuditRepo { return &fakeAuditRepo{} }

var _ repository.AuditLogRepository = (*fakeAuditRepo)(nil)

func (r *fakeAuditRepo) Create(e *entity.AuditLogEntry) error {
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakeAuditRepo) List(f repository.AuditFilter, limit, offset int) ([]*entity.AuditLogEntry, error) {
	var out []*entity.AuditLogEntry
	for i := range r.entries {
		e := r.entries[i]
		if f.EntityType != "" && e.EntityType != f.EntityType {
			continue
		}
		if f.EntityID != "" && e.EntityID != f.EntityID {
			continue
		}
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		if f.ActorID != "" && e.ActorID != f.ActorID {
			continue
		}
		cp := e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAuditRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	var kept []entity.AuditLogEntry
	var removed int64
	for _, e := range r.entries {
		if e.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return removed, nil
}

// last devuelve la última entrada registrada, o nil.
func (r *fakeAuditRepo) last() *entity.AuditLogEntry {
	if len(r.entries) == 0 {
		return nil
	}
	return &r.entries[len(r.entries)-1]
}

// ──────────────────────────────────────────────────────────────────────────────
// fakeTx
// ──────────────────────────────────────────────────────────────────────────────

// fakeTx ejecuta el callback directamente con los repos en memoria, sin
// transacción real.
type fakeTx struct {
	rolls    *fakeRollRepo
	catalogs *fakeCatalogRepo
	users    *fakeUserRepo
	audit    *fakeAuditRepo
}

var _ usecase.TxRunner = (*fakeTx)(nil)

func (tx *fakeTx) Run(ctx context.Context, fn func(
	repository.RollRepository,
	repository.CatalogRepository,
	repository.UserRepository,
	repository.AuditLogRepository,
) error) error {
	return fn(tx.rolls, tx.catalogs, tx.users, tx.audit)
}

// testEnv agrupa los fakes y los casos de uso listos para los tests.
type testEnv struct {
	rolls    *fakeRollRepo
	catalogs *fakeCatalogRepo
	users    *fakeUserRepo
	audit    *fakeAuditRepo

	rollUC    *usecase.RollUseCase
	catalogUC *usecase.CatalogUseCase
	userUC    *usecase.UserUseCase
	auditUC   *usecase.AuditUseCase
}

func newTestEnv() *testEnv {
	rolls := newFakeRollRepo()
	catalogs := newFakeCatalogRepo()
	users := newFakeUserRepo()
	audit := newFakeAuditRepo()
	tx := &fakeTx{rolls: rolls, catalogs: catalogs, users: users, audit: audit}
	return &testEnv{
		rolls:     rolls,
		catalogs:  catalogs,
		users:     users,
		audit:     audit,
		rollUC:    usecase.NewRollUseCase(rolls, catalogs, tx),
		catalogUC: usecase.NewCatalogUseCase(catalogs, rolls, tx),
		userUC:    usecase.NewUserUseCase(users, tx),
		auditUC:   usecase.NewAuditUseCase(audit),
	}
}

// seedCatalog inserta un catálogo activo directo en el fake.
func (e *testEnv) seedCatalog(id, code string) {
	now := time.Now()
	e.catalogs.catalogs[id] = entity.Catalog{
		ID:        id,
		Code:      code,
		Name:      "Catálogo " + code,
		Status:    entity.CatalogStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
