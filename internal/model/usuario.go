package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Usuario is a back-office login. CdUsuario is the business key, unique inside
// a tenant; FlAtivo keeps the legacy "S"/"N" flag alongside BaseModel.Ativo.
type Usuario struct {
	BaseModel
	// Uniqueness of (tenant_id, cd_usuario) is enforced by the create path;
	// the column index keeps lookups by business key cheap.
	CdUsuario     string     `gorm:"type:varchar(30);not null;index" json:"cdUsuario"`
	DcUsuario     string     `gorm:"type:varchar(50);not null" json:"dcUsuario"`
	SenhaUser     *string    `gorm:"type:varchar(255)" json:"-"`
	NmImpCche     *string    `gorm:"type:varchar(50)" json:"nmImpCche,omitempty"`
	TpUsuario     *string    `gorm:"type:char(1)" json:"tpUsuario,omitempty"`
	NoMatric      *string    `gorm:"type:varchar(8)" json:"noMatric,omitempty"`
	CdEmpresa     *int       `json:"cdEmpresa,omitempty"`
	CdFilial      *int       `json:"cdFilial,omitempty"`
	NoUser        int        `gorm:"not null;default:0" json:"noUser"`
	EmailUsuario  *string    `gorm:"type:varchar(100)" json:"emailUsuario,omitempty"`
	FlAtivo       string     `gorm:"type:char(1);not null;default:'S'" json:"flAtivo"`
	NormalizedUserName *string    `gorm:"type:varchar(30)" json:"-"`
	IdFuncionario      *uuid.UUID `gorm:"type:uuid" json:"idFuncionario,omitempty"`
	FlNaoRecebeEmail   *string    `gorm:"type:char(1)" json:"flNaoRecebeEmail,omitempty"`
}

func (Usuario) TableName() string {
	return "tusuario"
}

// SetPassword hashes and stores the login password.
func (u *Usuario) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s := string(hashed)
	u.SenhaUser = &s
	return nil
}

// CheckPassword verifies a candidate password against the stored hash.
func (u *Usuario) CheckPassword(password string) bool {
	if u.SenhaUser == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*u.SenhaUser), []byte(password)) == nil
}

// IsActive reports the legacy active flag.
func (u *Usuario) IsActive() bool {
	return u.FlAtivo == "S"
}

// UsuarioListItem is the grid/export projection of Usuario.
type UsuarioListItem struct {
	CdUsuario    string `json:"cdUsuario"`
	DcUsuario    string `json:"dcUsuario"`
	EmailUsuario string `json:"emailUsuario"`
	FlAtivo      string `json:"flAtivo"`
	NoUser       int    `json:"noUser"`
}

// ToListItem projects the entity into its grid row shape.
func (u *Usuario) ToListItem() UsuarioListItem {
	email := ""
	if u.EmailUsuario != nil {
		email = *u.EmailUsuario
	}
	return UsuarioListItem{
		CdUsuario:    u.CdUsuario,
		DcUsuario:    u.DcUsuario,
		EmailUsuario: email,
		FlAtivo:      u.FlAtivo,
		NoUser:       u.NoUser,
	}
}
