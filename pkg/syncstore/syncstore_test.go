package syncstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejidosandina/rollos-api/pkg/syncstore"
)

type item struct {
	ID    string
	Name  string
	Count int
}

func newStore() *syncstore.Store[item] {
	return syncstore.New(func(i item) string { return i.ID })
}

var errRed = errors.New("fallo de red")

// ──────────────────────────────────────────────────────────────────────────────
// Update optimista
// ──────────────────────────────────────────────────────────────────────────────

// La mutación es visible de inmediato, antes de que el commit responda.
func TestUpdate_VisibleDeInmediato(t *testing.T) {
	s := newStore()
	s.Put(item{ID: "a", Name: "original"})

	done := make(chan struct{})
	var seenDuringCommit item

	go func() {
		_, _ = s.Update(context.Background(), "a",
			func(i item) item { i.Name = "optimista"; return i },
			func(ctx context.Context) (item, error) {
				// Mientras la "red" está en vuelo, la caché ya muestra el
				// valor optimista y la entrada figura como pending.
				seenDuringCommit, _ = s.Get("a")
				return item{ID: "a", Name: "autoritativo"}, nil
			})
		close(done)
	}()
	<-done

	assert.Equal(t, "optimista", seenDuringCommit.Name)

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "autoritativo", got.Name, "al responder, gana el valor del servidor")
	assert.False(t, s.Pending("a"), "pending se limpia al terminar")
}

// En fallo, el snapshot previo se restaura exacto.
func TestUpdate_RollbackExactoEnFallo(t *testing.T) {
	s := newStore()
	s.Put(item{ID: "a", Name: "original", Count: 7})

	_, err := s.Update(context.Background(), "a",
		func(i item) item { i.Name = "optimista"; i.Count = 99; return i },
		func(ctx context.Context) (item, error) { return item{}, errRed },
	)
	require.ErrorIs(t, err, errRed)

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, item{ID: "a", Name: "original", Count: 7}, got,
		"el rollback restaura el snapshot campo a campo")
	assert.False(t, s.Pending("a"))
}

func TestUpdate_PendingDuranteElVuelo(t *testing.T) {
	s := newStore()
	s.Put(item{ID: "a", Name: "original"})

	var pendingDuringCommit bool
	_, err := s.Update(context.Background(), "a",
		func(i item) item { return i },
		func(ctx context.Context) (item, error) {
			pendingDuringCommit = s.Pending("a")
			return item{ID: "a"}, nil
		})
	require.NoError(t, err)
	assert.True(t, pendingDuringCommit, "pending debe ser true mientras el commit corre")
	assert.False(t, s.Pending("a"))
}

// Un rollback tardío no pisa una mutación solapada más nueva: la versión
// avanzó y el resultado viejo se descarta.
func TestUpdate_RollbackTardioSeDescarta(t *testing.T) {
	s := newStore()
	s.Put(item{ID: "a", Name: "v0"})

	firstCommitStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	firstDone := make(chan struct{})

	// Primera mutación: quedará en vuelo y fallará.
	go func() {
		_, _ = s.Update(context.Background(), "a",
			func(i item) item { i.Name = "primera"; return i },
			func(ctx context.Context) (item, error) {
				close(firstCommitStarted)
				<-releaseFirst
				return item{}, errRed
			})
		close(firstDone)
	}()
	<-firstCommitStarted

	// Segunda mutación solapada: termina bien antes que la primera.
	got, err := s.Update(context.Background(), "a",
		func(i item) item { i.Name = "segunda"; return i },
		func(ctx context.Context) (item, error) {
			return item{ID: "a", Name: "segunda-autoritativa"}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, "segunda-autoritativa", got.Name)

	// Ahora falla la primera: su rollback llega tarde y NO debe
	// restaurar "v0" por encima del resultado de la segunda.
	close(releaseFirst)
	<-firstDone

	final, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "segunda-autoritativa", final.Name,
		"el rollback stale no debe pisar la mutación más nueva")
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// El registro especulativo con id temporal se reconcilia con el id real.
func TestCreate_ReconciliaConIDDelServidor(t *testing.T) {
	s := newStore()

	var seenTemp bool
	got, err := s.Create(context.Background(), "tmp-1", item{ID: "tmp-1", Name: "nuevo"},
		func(ctx context.Context) (item, error) {
			_, seenTemp = s.Get("tmp-1")
			return item{ID: "real-9", Name: "nuevo"}, nil
		})
	require.NoError(t, err)
	assert.True(t, seenTemp, "la entrada temporal es visible mientras el commit corre")
	assert.Equal(t, "real-9", got.ID)

	_, tempLeft := s.Get("tmp-1")
	assert.False(t, tempLeft, "el id temporal desaparece al reconciliar")
	real, ok := s.Get("real-9")
	require.True(t, ok)
	assert.Equal(t, "nuevo", real.Name)
}

func TestCreate_FalloRetiraLaEntradaTemporal(t *testing.T) {
	s := newStore()

	_, err := s.Create(context.Background(), "tmp-1", item{ID: "tmp-1"},
		func(ctx context.Context) (item, error) { return item{}, errRed })
	require.ErrorIs(t, err, errRed)

	_, ok := s.Get("tmp-1")
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_OptimistaYRestauraEnFallo(t *testing.T) {
	s := newStore()
	s.Put(item{ID: "a", Name: "original"})

	var goneDuringCommit bool
	err := s.Delete(context.Background(), "a", func(ctx context.Context) error {
		_, present := s.Get("a")
		goneDuringCommit = !present
		return errRed
	})
	require.ErrorIs(t, err, errRed)
	assert.True(t, goneDuringCommit, "la entrada desaparece de inmediato")

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "original", got.Name, "en fallo, la entrada se restaura")
}

func TestDelete_ExitosoNoRestaura(t *testing.T) {
	s := newStore()
	s.Put(item{ID: "a"})

	require.NoError(t, s.Delete(context.Background(), "a",
		func(ctx context.Context) error { return nil }))
	_, ok := s.Get("a")
	assert.False(t, ok)
}

// Put avanza la versión: un rollback en vuelo sobre ese id queda stale.
func TestPut_InvalidaRollbackEnVuelo(t *testing.T) {
	s := newStore()
	s.Put(item{ID: "a", Name: "v0"})

	commitStarted := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_, _ = s.Update(context.Background(), "a",
			func(i item) item { i.Name = "optimista"; return i },
			func(ctx context.Context) (item, error) {
				close(commitStarted)
				<-release
				return item{}, errRed
			})
		close(done)
	}()
	<-commitStarted

	// Llega un refresh autoritativo del servidor.
	s.Put(item{ID: "a", Name: "refresco"})

	close(release)
	<-done

	got, _ := s.Get("a")
	assert.Equal(t, "refresco", got.Name,
		"el rollback no debe pisar el refresco autoritativo")
}
