package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"go-backoffice/internal/cache"
	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/tenant"
	"go-backoffice/internal/ws"
	"go-backoffice/pkg/validator"
)

type GrantRequest struct {
	CdSistema string `json:"cdSistema" validate:"required,max=10"`
	CdGrUser  string `json:"cdGrUser" validate:"required,max=30"`
}

type GrupoService interface {
	Memberships(ctx context.Context, tc tenant.Context, cdUsuario string) ([]model.UserGroup, error)
	Grant(ctx context.Context, tc tenant.Context, cdUsuario string, req *GrantRequest) (*model.UserGroup, error)
	Revoke(ctx context.Context, tc tenant.Context, cdUsuario, cdSistema, cdGrUser string) error
	Permissions(ctx context.Context, tc tenant.Context, cdUsuario string) ([]model.Permission, error)
	PermissionClaims(ctx context.Context, tc tenant.Context, cdUsuario string) ([]string, error)
}

type grupoService struct {
	repo  repository.GrupoRepository
	cache *cache.PermissionCache
	hub   *ws.Hub
	log   *zap.Logger
}

func NewGrupoService(repo repository.GrupoRepository, pc *cache.PermissionCache, hub *ws.Hub, log *zap.Logger) GrupoService {
	return &grupoService{repo: repo, cache: pc, hub: hub, log: log}
}

func (s *grupoService) Memberships(ctx context.Context, tc tenant.Context, cdUsuario string) ([]model.UserGroup, error) {
	return s.repo.ListMemberships(ctx, tc, cdUsuario)
}

// Grant opens a new membership and drops the user's cached permission set.
// Granting the same (sistema, grupo) pair again while a valid membership
// exists is a conflict.
func (s *grupoService) Grant(ctx context.Context, tc tenant.Context, cdUsuario string, req *GrantRequest) (*model.UserGroup, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, NewValidationError(validator.Messages(errs))
	}
	existing, err := s.repo.ListMemberships(ctx, tc, cdUsuario)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].DtFimVal == nil &&
			existing[i].CdSistema == req.CdSistema &&
			existing[i].CdGrUser == req.CdGrUser {
			return nil, ErrConflict
		}
	}

	ug := &model.UserGroup{
		CdUsuario: cdUsuario,
		CdSistema: req.CdSistema,
		CdGrUser:  req.CdGrUser,
	}
	if err := s.repo.Grant(ctx, tc, ug); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, tc, cdUsuario)
	s.notify("membership.granted", tc, cdUsuario)
	return ug, nil
}

func (s *grupoService) Revoke(ctx context.Context, tc tenant.Context, cdUsuario, cdSistema, cdGrUser string) error {
	affected, err := s.repo.Revoke(ctx, tc, cdUsuario, cdSistema, cdGrUser)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.cache.Invalidate(ctx, tc, cdUsuario)
	s.notify("membership.revoked", tc, cdUsuario)
	return nil
}

// Permissions returns the effective permission set, consulting the cache
// first. A resolver result is cached even when empty so repeated lookups for
// permissionless users stay cheap.
func (s *grupoService) Permissions(ctx context.Context, tc tenant.Context, cdUsuario string) ([]model.Permission, error) {
	if perms, ok := s.cache.Get(ctx, tc, cdUsuario); ok {
		return perms, nil
	}
	perms, err := s.repo.ResolvePermissions(ctx, tc, cdUsuario)
	if err != nil {
		return nil, err
	}
	s.cache.Put(ctx, tc, cdUsuario, perms)
	return perms, nil
}

// PermissionClaims flattens the permission set into "SISTEMA|FUNCAO|ACOES"
// strings for the token payload.
func (s *grupoService) PermissionClaims(ctx context.Context, tc tenant.Context, cdUsuario string) ([]string, error) {
	perms, err := s.Permissions(ctx, tc, cdUsuario)
	if err != nil {
		return nil, err
	}
	claims := make([]string, len(perms))
	for i, p := range perms {
		claims[i] = strings.TrimSpace(p.CdSistema) + "|" + p.CdFuncao + "|" + p.CdAcoes
	}
	return claims, nil
}

func (s *grupoService) notify(event string, tc tenant.Context, key string) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(ws.Event{Type: event, TenantID: tc.TenantID, Key: key, Actor: tc.Actor})
}
