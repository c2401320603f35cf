package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/tejidosandina/rollos-api/internal/application/dto"
	"github.com/tejidosandina/rollos-api/internal/application/usecase"
	"github.com/tejidosandina/rollos-api/internal/domain"
	"github.com/tejidosandina/rollos-api/internal/domain/entity"
	"github.com/tejidosandina/rollos-api/internal/domain/repository"
	"github.com/tejidosandina/rollos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y logout.
type AuthUseCase struct {
	users  repository.UserRepository
	audit  repository.AuditLogRepository
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, audit repository.AuditLogRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, audit: audit, jwtCfg: jwtCfg}
}

// Login verifica email/password, exige cuenta activa, genera el JWT con
// el rol como claim y registra la entrada de audit log. Toda falla de
// credenciales (email inexistente, password incorrecto, cuenta inactiva)
// es el mismo AUTH_INVALID 401, sin revelar cuál campo falló.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDeleted() {
		return nil, domain.NewAuthInvalid()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.NewAuthInvalid()
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.NewAuthInvalid()
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if err := uc.audit.Create(usecase.NewAuthAuditEntry(user.ID, entity.AuditActionLogin)); err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}

// Logout registra el cierre de sesión en el audit log. El token JWT es
// stateless; no hay revocación server-side.
func (uc *AuthUseCase) Logout(actorID string) error {
	return uc.audit.Create(usecase.NewAuthAuditEntry(actorID, entity.AuditActionLogout))
}
