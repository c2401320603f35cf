package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tejidosandina/rollos-api/internal/application/dto"
	"github.com/tejidosandina/rollos-api/internal/domain"
	"github.com/tejidosandina/rollos-api/internal/domain/entity"
	"github.com/tejidosandina/rollos-api/internal/domain/rbac"
	"github.com/tejidosandina/rollos-api/internal/domain/repository"
)

// UserUseCase casos de uso CRUD para usuarios (solo admin vía RBAC).
type UserUseCase struct {
	users repository.UserRepository
	tx    TxRunner
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users repository.UserRepository, tx TxRunner) *UserUseCase {
	return &UserUseCase{users: users, tx: tx}
}

// List lista usuarios con filtros y paginación.
func (uc *UserUseCase) List(in dto.ListUsersRequest) ([]dto.UserResponse, error) {
	in.DefaultPage()
	f := repository.UserFilter{
		Role:   in.Role,
		Status: in.Status,
		Search: folder.String(in.Search),
	}
	list, err := uc.users.List(f, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return items, nil
}

// GetByID obtiene un usuario por ID. Eliminados son NOT_FOUND.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.loadUser(id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Create crea un usuario: valida rol y email, hashea el password con
// bcrypt y persiste con audit log. El email es único entre no eliminados.
func (uc *UserUseCase) Create(ctx context.Context, actorID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := validateUserFields(in.Email, in.Password, in.Name, in.Role); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.UserStatusActive
	}
	if status != entity.UserStatusActive && status != entity.UserStatusInactive {
		return nil, domain.NewValidation("status debe ser active o inactive",
			map[string]any{"status": status})
	}

	existing, err := uc.users.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflict("el email ya está registrado",
			map[string]any{"email": in.Email})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		Status:       status,
		CreatedAt:    now,
		CreatedBy:    actorID,
		UpdatedAt:    now,
		UpdatedBy:    actorID,
	}

	err = uc.tx.Run(ctx, func(
		_ repository.RollRepository,
		_ repository.CatalogRepository,
		userRepo repository.UserRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := userRepo.Create(user); err != nil {
			return err
		}
		// Nunca se serializa el password ni su hash en el audit log.
		return auditRepo.Create(newAuditEntry(
			entity.AuditEntityUser, user.ID, entity.AuditActionCreate, actorID,
			map[string]any{"email": user.Email, "name": user.Name, "role": user.Role, "status": user.Status},
		))
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Update actualiza un usuario. Cambios de email verifican unicidad;
// password se re-hashea; rol y estado se validan contra los conocidos.
func (uc *UserUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.loadUser(id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && !validEmail(*in.Email) {
		return nil, domain.NewValidation("email inválido", map[string]any{"email": *in.Email})
	}
	if in.Role != nil && !rbac.ValidRole(*in.Role) {
		return nil, domain.NewValidation("role debe ser admin, storekeeper o viewer",
			map[string]any{"role": *in.Role})
	}
	if in.Status != nil && *in.Status != entity.UserStatusActive && *in.Status != entity.UserStatusInactive {
		return nil, domain.NewValidation("status debe ser active o inactive",
			map[string]any{"status": *in.Status})
	}
	if in.Password != nil && len(*in.Password) < 8 {
		return nil, domain.NewValidation("password debe tener al menos 8 caracteres", nil)
	}

	if in.Email != nil && *in.Email != user.Email {
		existing, err := uc.users.GetByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, domain.NewConflict("el email ya está registrado",
				map[string]any{"email": *in.Email})
		}
	}

	changes := map[string]fieldChange{}
	if in.Email != nil && *in.Email != user.Email {
		changes["email"] = fieldChange{From: user.Email, To: *in.Email}
		user.Email = *in.Email
	}
	if in.Name != nil && *in.Name != user.Name {
		changes["name"] = fieldChange{From: user.Name, To: *in.Name}
		user.Name = *in.Name
	}
	if in.Role != nil && *in.Role != user.Role {
		changes["role"] = fieldChange{From: user.Role, To: *in.Role}
		user.Role = *in.Role
	}
	if in.Status != nil && *in.Status != user.Status {
		changes["status"] = fieldChange{From: user.Status, To: *in.Status}
		user.Status = *in.Status
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
		changes["password"] = fieldChange{From: "[redacted]", To: "[redacted]"}
	}
	user.UpdatedAt = time.Now()
	user.UpdatedBy = actorID

	err = uc.tx.Run(ctx, func(
		_ repository.RollRepository,
		_ repository.CatalogRepository,
		userRepo repository.UserRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := userRepo.Update(user); err != nil {
			return err
		}
		return auditRepo.Create(newAuditEntry(
			entity.AuditEntityUser, user.ID, entity.AuditActionUpdate, actorID, changes,
		))
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Delete hace soft delete del usuario.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	user, err := uc.loadUser(id)
	if err != nil {
		return err
	}
	now := time.Now()
	return uc.tx.Run(ctx, func(
		_ repository.RollRepository,
		_ repository.CatalogRepository,
		userRepo repository.UserRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := userRepo.SoftDelete(user.ID, actorID, now); err != nil {
			return err
		}
		return auditRepo.Create(newAuditEntry(
			entity.AuditEntityUser, user.ID, entity.AuditActionDelete, actorID, nil,
		))
	})
}

func (uc *UserUseCase) loadUser(id string) (*entity.User, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDeleted() {
		return nil, domain.NewNotFound("usuario", id)
	}
	return user, nil
}

func validateUserFields(email, password, name, role string) error {
	fields := map[string]string{}
	if !validEmail(email) {
		fields["email"] = "inválido"
	}
	if len(password) < 8 {
		fields["password"] = "mínimo 8 caracteres"
	}
	if name == "" {
		fields["name"] = "requerido"
	}
	if !rbac.ValidRole(role) {
		fields["role"] = "debe ser admin, storekeeper o viewer"
	}
	if len(fields) > 0 {
		return domain.NewValidation("campos de usuario inválidos", map[string]any{"fields": fields})
	}
	return nil
}

// validEmail chequeo mínimo de formato; la BD tiene el índice único.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.Contains(email, " ")
}

// ToUserResponse mapea la entidad al DTO de salida (sin password hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
