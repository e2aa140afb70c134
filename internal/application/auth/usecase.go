package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mybodega/productos-api/internal/application/dto"
	"github.com/mybodega/productos-api/internal/domain"
	"github.com/mybodega/productos-api/internal/domain/entity"
	"github.com/mybodega/productos-api/internal/domain/repository"
	"github.com/mybodega/productos-api/pkg/jwt"
)

// JWTConfig parámetros de emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase registro y login de usuarios. Las contraseñas se guardan con
// bcrypt; el login emite un JWT con el rol para el middleware RBAC.
type UseCase struct {
	repo   repository.UserRepository
	jwtCfg JWTConfig
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{repo: repo, jwtCfg: jwtCfg}
}

// Register crea un usuario nuevo. Devuelve domain.ErrEmailAlreadyExists si
// el email ya está registrado.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	exists, err := uc.repo.ExistsByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUsuario
	}
	user := &entity.User{
		ID:        uuid.New().String(),
		Email:     in.Email,
		Password:  string(hash),
		Name:      in.Name,
		Role:      role,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// Login valida credenciales y emite el token. Credenciales incorrectas o
// usuario inactivo devuelven domain.ErrUnauthorized sin distinguir el caso.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now()
	user.LastAccess = &now
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.NewUserResponse(user), nil
}
