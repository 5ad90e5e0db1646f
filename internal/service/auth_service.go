package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-backoffice/internal/repository"
	"go-backoffice/internal/tenant"
	"go-backoffice/pkg/jwt"
	"go-backoffice/pkg/validator"
)

type LoginRequest struct {
	TenantID  int64  `json:"tenantId" validate:"required,gt=0"`
	CdUsuario string `json:"cdUsuario" validate:"required,max=30"`
	Senha     string `json:"senha" validate:"required"`
}

type LoginResponse struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	Token       string   `json:"token,omitempty"`
	UserName    string   `json:"userName,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
}

type authService struct {
	usuarios repository.UsuarioRepository
	grupos   GrupoService
	log      *zap.Logger
}

func NewAuthService(usuarios repository.UsuarioRepository, grupos GrupoService, log *zap.Logger) AuthService {
	return &authService{usuarios: usuarios, grupos: grupos, log: log}
}

// Login authenticates a user inside a tenant and issues a token carrying the
// flattened permission set. Unknown user and wrong password are reported the
// same way.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, NewValidationError(validator.Messages(errs))
	}
	tc := tenant.Context{TenantID: req.TenantID, Actor: req.CdUsuario}

	u, err := s.usuarios.FindByCd(ctx, tc, req.CdUsuario)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !u.CheckPassword(req.Senha) {
		s.log.Info("login rejected", zap.Int64("tenant", tc.TenantID), zap.String("user", req.CdUsuario))
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	perms, err := s.grupos.PermissionClaims(ctx, tc, u.CdUsuario)
	if err != nil {
		return nil, err
	}
	token, err := jwt.GenerateToken(tc.TenantID, u.CdUsuario, u.DcUsuario, perms)
	if err != nil {
		return nil, err
	}

	s.log.Info("login ok", zap.Int64("tenant", tc.TenantID), zap.String("user", u.CdUsuario))
	return &LoginResponse{
		Success:     true,
		Message:     "authenticated",
		Token:       token,
		UserName:    u.DcUsuario,
		Permissions: perms,
	}, nil
}
