package model

// Botao registers a UI-bindable permission action. The business key is the
// composite (CdSistema, CdFuncao, NmBotao); routes carry it base64url-encoded.
type Botao struct {
	BaseModel
	CdSistema string `gorm:"column:cdsistema;type:char(10);not null;index:ix_btfuncao_key" json:"cdSistema"`
	CdFuncao  string `gorm:"column:cdfuncao;type:varchar(30);not null;index:ix_btfuncao_key" json:"cdFuncao"`
	NmBotao   string `gorm:"column:nmbotao;type:varchar(30);not null;index:ix_btfuncao_key" json:"nmBotao"`
	DcBotao   string `gorm:"column:dcbotao;type:varchar(60);not null" json:"dcBotao"`
	CdAcao    string `gorm:"column:cdacao;type:char(1);not null" json:"cdAcao"`
}

func (Botao) TableName() string {
	return "btfuncao"
}
