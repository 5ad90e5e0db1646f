package model

// Sistema is an entry in the module registry. Only active sistemas are
// eligible when resolving effective permissions.
type Sistema struct {
	BaseModel
	CdSistema string `gorm:"column:cdsistema;type:char(10);not null;index" json:"cdSistema"`
	DcSistema string `gorm:"column:dcsistema;type:varchar(60);not null" json:"dcSistema"`
}

func (Sistema) TableName() string {
	return "tsistema"
}

// SistemaListItem is the grid/export projection of Sistema.
type SistemaListItem struct {
	CdSistema string `json:"cdSistema"`
	DcSistema string `json:"dcSistema"`
	Ativo     bool   `json:"ativo"`
}

func (s *Sistema) ToListItem() SistemaListItem {
	return SistemaListItem{CdSistema: s.CdSistema, DcSistema: s.DcSistema, Ativo: s.Ativo}
}
