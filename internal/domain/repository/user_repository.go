package repository

import (
	"time"

	"github.com/tejidosandina/rollos-api/internal/domain/entity"
)

// UserFilter criterios de listado de usuarios.
type UserFilter struct {
	Role   string
	Status string
	Search string // coincide contra email y name
}

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	// GetByEmail busca por email entre usuarios no eliminados.
	GetByEmail(email string) (*entity.User, error)
	List(f UserFilter, limit, offset int) ([]*entity.User, error)
	Update(user *entity.User) error
	SoftDelete(id, actorID string, at time.Time) error
}
