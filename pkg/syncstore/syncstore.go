// Package syncstore implementa la caché optimista del lado cliente:
// snapshot inmutable → mutación especulativa → esperar el resultado
// autoritativo → commit (reemplazo) o rollback (restauración exacta),
// limpiando siempre el estado pending.
//
// Cada entrada lleva una versión monotónica. Un rollback o commit solo se
// aplica si la versión actual sigue siendo la que produjo esa mutación
// optimista; si otra mutación solapada ya avanzó la versión, el resultado
// tardío se descarta en vez de pisar el estado más nuevo.
package syncstore

import (
	"context"
	"sync"
)

// Store caché genérica de entidades con mutación optimista y rollback.
// Segura para uso concurrente.
type Store[T any] struct {
	key func(T) string

	mu       sync.Mutex
	items    map[string]T
	versions map[string]uint64
	pending  map[string]int // mutaciones en vuelo por id
}

// New construye la caché. key extrae el identificador de una entidad
// (usado para reconciliar creaciones con el id generado por el servidor).
func New[T any](key func(T) string) *Store[T] {
	return &Store[T]{
		key:      key,
		items:    map[string]T{},
		versions: map[string]uint64{},
		pending:  map[string]int{},
	}
}

// Get devuelve la entidad cacheada, si existe.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[id]
	return v, ok
}

// Len devuelve cuántas entidades hay en la caché.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Pending indica si hay al menos una mutación en vuelo para el id.
func (s *Store[T]) Pending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[id] > 0
}

// Put carga una entidad autoritativa (ej. resultado de un listado).
// Avanza la versión: cualquier rollback en vuelo sobre ese id queda stale.
func (s *Store[T]) Put(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.key(v)
	s.items[id] = v
	s.versions[id]++
}

// snapshot captura el estado previo de un id. Debe tomarse ANTES de la
// escritura optimista.
type snapshot[T any] struct {
	value   T
	existed bool
	token   uint64 // versión producida por la escritura optimista
}

// Update aplica apply(actual) de inmediato (optimista), marca pending y
// ejecuta commit (la llamada de red). Si commit responde, la entrada se
// reemplaza por el valor autoritativo; si falla, se restaura el snapshot
// exacto. En ambos casos el resultado se descarta si otra mutación ya
// avanzó la versión de la entrada.
func (s *Store[T]) Update(ctx context.Context, id string, apply func(T) T, commit func(context.Context) (T, error)) (T, error) {
	s.mu.Lock()
	prev, existed := s.items[id]
	var optimistic T
	if existed {
		optimistic = apply(prev)
		s.items[id] = optimistic
	}
	s.versions[id]++
	snap := snapshot[T]{value: prev, existed: existed, token: s.versions[id]}
	s.pending[id]++
	s.mu.Unlock()

	authoritative, err := commit(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[id]--
	if s.versions[id] != snap.token {
		// Mutación solapada más nueva: ni commit ni rollback tardío.
		if err != nil {
			var zero T
			return zero, err
		}
		return authoritative, nil
	}
	if err != nil {
		s.restore(id, snap)
		var zero T
		return zero, err
	}
	s.items[id] = authoritative
	s.versions[id]++
	return authoritative, nil
}

// Create inserta la entidad especulativa bajo tempID, ejecuta commit y
// reconcilia con el registro autoritativo (el servidor genera id y
// timestamps propios). En fallo, la entrada temporal se retira.
func (s *Store[T]) Create(ctx context.Context, tempID string, speculative T, commit func(context.Context) (T, error)) (T, error) {
	s.mu.Lock()
	s.items[tempID] = speculative
	s.versions[tempID]++
	snap := snapshot[T]{token: s.versions[tempID]}
	s.pending[tempID]++
	s.mu.Unlock()

	authoritative, err := commit(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[tempID]--
	if s.versions[tempID] != snap.token {
		if err != nil {
			var zero T
			return zero, err
		}
		return authoritative, nil
	}
	if err != nil {
		delete(s.items, tempID)
		s.versions[tempID]++
		var zero T
		return zero, err
	}
	delete(s.items, tempID)
	realID := s.key(authoritative)
	s.items[realID] = authoritative
	s.versions[realID]++
	return authoritative, nil
}

// Delete retira la entidad de inmediato (optimista) y ejecuta commit.
// En fallo, el snapshot se restaura exacto.
func (s *Store[T]) Delete(ctx context.Context, id string, commit func(context.Context) error) error {
	s.mu.Lock()
	prev, existed := s.items[id]
	delete(s.items, id)
	s.versions[id]++
	snap := snapshot[T]{value: prev, existed: existed, token: s.versions[id]}
	s.pending[id]++
	s.mu.Unlock()

	err := commit(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[id]--
	if s.versions[id] != snap.token {
		return err
	}
	if err != nil {
		s.restore(id, snap)
		return err
	}
	return nil
}

// restore repone el estado previo al snapshot y avanza la versión.
func (s *Store[T]) restore(id string, snap snapshot[T]) {
	if snap.existed {
		s.items[id] = snap.value
	} else {
		delete(s.items, id)
	}
	s.versions[id]++
}
