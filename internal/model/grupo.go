package model

import "time"

// UserGroup is a user-to-group membership (legacy table usrh1). A membership
// is currently valid while DtFimVal is NULL; revoking end-dates the row
// instead of deleting it.
type UserGroup struct {
	BaseModel
	CdUsuario string     `gorm:"column:cdusuario;type:varchar(30);not null;index" json:"cdUsuario"`
	CdSistema string     `gorm:"column:cdsistema;type:char(10);not null" json:"cdSistema"`
	CdGrUser  string     `gorm:"column:cdgruser;type:varchar(30);not null" json:"cdGrUser"`
	DtIniVal  time.Time  `gorm:"column:dtinival" json:"dtIniVal"`
	DtFimVal  *time.Time `gorm:"column:dtfimval" json:"dtFimVal,omitempty"`
}

func (UserGroup) TableName() string {
	return "usrh1"
}

// GroupPermission is a group-to-function grant (legacy table hbrh1). CdAcoes
// packs the allowed actions one character each; CdRestric narrows the scope
// of the grant.
type GroupPermission struct {
	BaseModel
	CdGrUser  string  `gorm:"column:cdgruser;type:varchar(30);not null;index" json:"cdGrUser"`
	CdSistema string  `gorm:"column:cdsistema;type:char(10);not null" json:"cdSistema"`
	CdFuncao  string  `gorm:"column:cdfuncao;type:varchar(30);not null" json:"cdFuncao"`
	CdAcoes   string  `gorm:"column:cdacoes;type:varchar(10)" json:"cdAcoes"`
	CdRestric *string `gorm:"column:cdrestric;type:char(1)" json:"cdRestric,omitempty"`
}

func (GroupPermission) TableName() string {
	return "hbrh1"
}

// Permission is the derived effective-permission tuple for a user. It is
// computed, never stored.
type Permission struct {
	CdSistema string  `json:"cdSistema"`
	DcSistema string  `json:"dcSistema"`
	CdGrUser  string  `json:"cdGrUser"`
	CdFuncao  string  `json:"cdFuncao"`
	CdAcoes   string  `json:"cdAcoes"`
	CdRestric *string `json:"cdRestric,omitempty"`
}

// Allows reports whether the tuple grants the single-character action code.
func (p Permission) Allows(acao string) bool {
	if acao == "" {
		return true
	}
	for _, c := range p.CdAcoes {
		if string(c) == acao {
			return true
		}
	}
	return false
}
