package service

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-backoffice/internal/filter"
	"go-backoffice/internal/grid"
	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/tenant"
	"go-backoffice/internal/ws"
	"go-backoffice/pkg/export"
	"go-backoffice/pkg/validator"
)

// usuarioExportHeader is the fixed column order shared by export and import.
var usuarioExportHeader = []string{"CdUsuario", "DcUsuario", "EmailUsuario", "FlAtivo", "NoUser"}

// UsuarioGrid wires Usuario into the grid pipeline. Sorting is whitelisted to
// the five exposed columns; everything else falls back to the business key.
var UsuarioGrid = grid.Definition[model.Usuario, model.UsuarioListItem]{
	Schema: filter.NewSchema(map[string]filter.Field{
		"CdUsuario":    {Column: "cd_usuario", Kind: filter.String},
		"DcUsuario":    {Column: "dc_usuario", Kind: filter.String},
		"EmailUsuario": {Column: "email_usuario", Kind: filter.String},
		"FlAtivo":      {Column: "fl_ativo", Kind: filter.String},
		"NoUser":       {Column: "no_user", Kind: filter.Int},
		"TpUsuario":    {Column: "tp_usuario", Kind: filter.String},
		"CreatedAt":    {Column: "created_at", Kind: filter.Time},
	}),
	Sortable: map[string]string{
		"cdusuario":    "cd_usuario",
		"dcusuario":    "dc_usuario",
		"emailusuario": "email_usuario",
		"flativo":      "fl_ativo",
		"nouser":       "no_user",
	},
	DefaultSort: "cd_usuario",
	Project:     (*model.Usuario).ToListItem,
}

type UsuarioCreateRequest struct {
	CdUsuario    string  `json:"cdUsuario" validate:"required,max=30"`
	DcUsuario    string  `json:"dcUsuario" validate:"required,max=50"`
	Senha        string  `json:"senha" validate:"omitempty,min=4,max=60"`
	TpUsuario    *string `json:"tpUsuario" validate:"omitempty,len=1"`
	NoMatric     *string `json:"noMatric" validate:"omitempty,max=8"`
	CdEmpresa    *int    `json:"cdEmpresa"`
	CdFilial     *int    `json:"cdFilial"`
	NoUser       int     `json:"noUser"`
	EmailUsuario *string `json:"emailUsuario" validate:"omitempty,email,max=100"`
	FlAtivo      string  `json:"flAtivo" validate:"omitempty,oneof=S N"`
}

type UsuarioUpdateRequest struct {
	DcUsuario    string  `json:"dcUsuario" validate:"required,max=50"`
	Senha        string  `json:"senha" validate:"omitempty,min=4,max=60"`
	TpUsuario    *string `json:"tpUsuario" validate:"omitempty,len=1"`
	NoMatric     *string `json:"noMatric" validate:"omitempty,max=8"`
	CdEmpresa    *int    `json:"cdEmpresa"`
	CdFilial     *int    `json:"cdFilial"`
	NoUser       int     `json:"noUser"`
	EmailUsuario *string `json:"emailUsuario" validate:"omitempty,email,max=100"`
	FlAtivo      string  `json:"flAtivo" validate:"omitempty,oneof=S N"`
}

type UsuarioService interface {
	Get(ctx context.Context, tc tenant.Context, cdUsuario string) (*model.Usuario, error)
	Create(ctx context.Context, tc tenant.Context, req *UsuarioCreateRequest) (*model.Usuario, error)
	Update(ctx context.Context, tc tenant.Context, cdUsuario string, req *UsuarioUpdateRequest) (*model.Usuario, error)
	Delete(ctx context.Context, tc tenant.Context, cdUsuario string) error
	List(ctx context.Context, tc tenant.Context, req grid.Request) (grid.Response[model.UsuarioListItem], error)
	BulkDelete(ctx context.Context, tc tenant.Context, keys []string) (int64, error)
	ExportCSV(ctx context.Context, tc tenant.Context, group *filter.Group) ([]byte, error)
	ExportExcel(ctx context.Context, tc tenant.Context, group *filter.Group) ([]byte, error)
	ExportPDF(ctx context.Context, tc tenant.Context, group *filter.Group) ([]byte, error)
	ImportCSV(ctx context.Context, tc tenant.Context, r io.Reader) (int, error)
}

type usuarioService struct {
	repo repository.UsuarioRepository
	hub  *ws.Hub
	log  *zap.Logger
}

func NewUsuarioService(repo repository.UsuarioRepository, hub *ws.Hub, log *zap.Logger) UsuarioService {
	return &usuarioService{repo: repo, hub: hub, log: log}
}

func (s *usuarioService) Get(ctx context.Context, tc tenant.Context, cdUsuario string) (*model.Usuario, error) {
	u, err := s.repo.FindByCd(ctx, tc, cdUsuario)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

func (s *usuarioService) Create(ctx context.Context, tc tenant.Context, req *UsuarioCreateRequest) (*model.Usuario, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, NewValidationError(validator.Messages(errs))
	}
	exists, err := s.repo.ExistsByCd(ctx, tc, req.CdUsuario)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	u := &model.Usuario{
		CdUsuario:    req.CdUsuario,
		DcUsuario:    req.DcUsuario,
		TpUsuario:    req.TpUsuario,
		NoMatric:     req.NoMatric,
		CdEmpresa:    req.CdEmpresa,
		CdFilial:     req.CdFilial,
		NoUser:       req.NoUser,
		EmailUsuario: req.EmailUsuario,
		FlAtivo:      req.FlAtivo,
	}
	if u.FlAtivo == "" {
		u.FlAtivo = "S"
	}
	if req.Senha != "" {
		if err := u.SetPassword(req.Senha); err != nil {
			return nil, err
		}
	}
	normalized := strings.ToUpper(u.CdUsuario)
	u.NormalizedUserName = &normalized

	if err := s.repo.Create(ctx, tc, u); err != nil {
		return nil, err
	}
	s.notify("usuario.created", tc, u.CdUsuario)
	return u, nil
}

// Update mutates everything but the business key; CdUsuario is immutable once
// the row exists.
func (s *usuarioService) Update(ctx context.Context, tc tenant.Context, cdUsuario string, req *UsuarioUpdateRequest) (*model.Usuario, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, NewValidationError(validator.Messages(errs))
	}
	u, err := s.Get(ctx, tc, cdUsuario)
	if err != nil {
		return nil, err
	}

	u.DcUsuario = req.DcUsuario
	u.TpUsuario = req.TpUsuario
	u.NoMatric = req.NoMatric
	u.CdEmpresa = req.CdEmpresa
	u.CdFilial = req.CdFilial
	u.NoUser = req.NoUser
	u.EmailUsuario = req.EmailUsuario
	if req.FlAtivo != "" {
		u.FlAtivo = req.FlAtivo
	}
	if req.Senha != "" {
		if err := u.SetPassword(req.Senha); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, tc, u); err != nil {
		return nil, err
	}
	s.notify("usuario.updated", tc, u.CdUsuario)
	return u, nil
}

func (s *usuarioService) Delete(ctx context.Context, tc tenant.Context, cdUsuario string) error {
	affected, err := s.repo.Delete(ctx, tc, cdUsuario)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.notify("usuario.deleted", tc, cdUsuario)
	return nil
}

func (s *usuarioService) List(ctx context.Context, tc tenant.Context, req grid.Request) (grid.Response[model.UsuarioListItem], error) {
	return grid.Run(s.repo.Query(ctx, tc), UsuarioGrid, req)
}

// BulkDelete removes the rows whose keys match; blank keys are skipped and
// unmatched keys are not counted.
func (s *usuarioService) BulkDelete(ctx context.Context, tc tenant.Context, keys []string) (int64, error) {
	cds := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			cds = append(cds, k)
		}
	}
	affected, err := s.repo.DeleteByCds(ctx, tc, cds)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.notify("usuario.deleted", tc, strings.Join(cds, ","))
	}
	return affected, nil
}

func (s *usuarioService) exportRows(ctx context.Context, tc tenant.Context, group *filter.Group) ([][]string, error) {
	items, err := grid.RunAll(s.repo.Query(ctx, tc), UsuarioGrid, group)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{it.CdUsuario, it.DcUsuario, it.EmailUsuario, it.FlAtivo, strconv.Itoa(it.NoUser)}
	}
	return rows, nil
}

func (s *usuarioService) ExportCSV(ctx context.Context, tc tenant.Context, group *filter.Group) ([]byte, error) {
	rows, err := s.exportRows(ctx, tc, group)
	if err != nil {
		return nil, err
	}
	return export.CSV(usuarioExportHeader, rows), nil
}

func (s *usuarioService) ExportExcel(ctx context.Context, tc tenant.Context, group *filter.Group) ([]byte, error) {
	rows, err := s.exportRows(ctx, tc, group)
	if err != nil {
		return nil, err
	}
	return export.Excel("Usuarios", usuarioExportHeader, rows)
}

func (s *usuarioService) ExportPDF(ctx context.Context, tc tenant.Context, group *filter.Group) ([]byte, error) {
	rows, err := s.exportRows(ctx, tc, group)
	if err != nil {
		return nil, err
	}
	return export.PDF(usuarioExportHeader, rows), nil
}

// ImportCSV upserts users from a semicolon-delimited file: the first line is
// treated as the header, rows with fewer than five columns or a blank key are
// skipped, and a NoUser cell that fails to parse leaves the previous value in
// place. Returns the number of rows applied.
func (s *usuarioService) ImportCSV(ctx context.Context, tc tenant.Context, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	applied := 0
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if first {
			first = false
			continue
		}
		cols := strings.Split(line, ";")
		if len(cols) < 5 {
			continue
		}
		cd := strings.TrimSpace(cols[0])
		if cd == "" {
			continue
		}

		u, err := s.repo.FindByCd(ctx, tc, cd)
		isNew := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !isNew {
			return applied, err
		}
		if isNew {
			u = &model.Usuario{CdUsuario: cd, FlAtivo: "S"}
			normalized := strings.ToUpper(cd)
			u.NormalizedUserName = &normalized
		}

		u.DcUsuario = strings.TrimSpace(cols[1])
		if email := strings.TrimSpace(cols[2]); email != "" {
			u.EmailUsuario = &email
		} else {
			u.EmailUsuario = nil
		}
		if fl := strings.TrimSpace(cols[3]); fl != "" {
			u.FlAtivo = fl
		}
		if n, err := strconv.Atoi(strings.TrimSpace(cols[4])); err == nil {
			u.NoUser = n
		}

		if isNew {
			err = s.repo.Create(ctx, tc, u)
		} else {
			err = s.repo.Update(ctx, tc, u)
		}
		if err != nil {
			return applied, err
		}
		applied++
	}
	if err := scanner.Err(); err != nil {
		return applied, err
	}
	if applied > 0 {
		s.notify("usuario.imported", tc, strconv.Itoa(applied))
	}
	return applied, nil
}

func (s *usuarioService) notify(event string, tc tenant.Context, key string) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(ws.Event{Type: event, TenantID: tc.TenantID, Key: key, Actor: tc.Actor})
}
