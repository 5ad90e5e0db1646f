package model

import "time"

// Funcionario is an employee record a Usuario may be linked to.
type Funcionario struct {
	BaseModel
	Nome         string    `gorm:"type:varchar(100);not null" json:"nome" validate:"required"`
	Email        string    `gorm:"type:varchar(100)" json:"email" validate:"omitempty,email"`
	CPF          string    `gorm:"type:varchar(14);index" json:"cpf" validate:"required"`
	Salario      float64   `gorm:"type:numeric(12,2)" json:"salario"`
	DataAdmissao time.Time `gorm:"type:date" json:"dataAdmissao"`
	Cargo        string    `gorm:"type:varchar(60)" json:"cargo"`
	Departamento string    `gorm:"type:varchar(60)" json:"departamento"`
	Status       string    `gorm:"type:varchar(20);default:'Ativo'" json:"status"`
}

func (Funcionario) TableName() string {
	return "funcionarios"
}
