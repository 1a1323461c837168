package customer

import (
	"errors"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrNotFound   = errors.New("customer not found")
	ErrIncomplete = errors.New("incomplete customer data")
)

// Customer is a registry record. CPF is the natural key but is not unique.
type Customer struct {
	ID           int64  `db:"customer_id" json:"-"`
	CPF          string `db:"cpf" json:"cpf" validate:"required"`
	Name         string `db:"name" json:"nome" validate:"required"`
	RG           int64  `db:"rg" json:"rg"`
	CEP          int64  `db:"cep" json:"cep"`
	Street       string `db:"street" json:"logradouro"`
	Neighborhood string `db:"neighborhood" json:"bairro"`
	City         string `db:"city" json:"localidade"`
	State        string `db:"state" json:"uf"`
	Email        string `db:"email" json:"email" validate:"required"`
}

// Patch carries the fields of a partial update. Nil fields are left untouched;
// non-nil fields overwrite, even when empty.
type Patch struct {
	CPF          *string `json:"cpf"`
	Name         *string `json:"nome"`
	RG           *int64  `json:"rg"`
	CEP          *int64  `json:"cep"`
	Street       *string `json:"logradouro"`
	Neighborhood *string `json:"bairro"`
	City         *string `json:"localidade"`
	State        *string `json:"uf"`
	Email        *string `json:"email"`
}

// Merge returns c with every field provided by p applied over it.
func (c Customer) Merge(p Patch) Customer {
	setString(&c.CPF, p.CPF)
	setString(&c.Name, p.Name)
	setInt(&c.RG, p.RG)
	setInt(&c.CEP, p.CEP)
	setString(&c.Street, p.Street)
	setString(&c.Neighborhood, p.Neighborhood)
	setString(&c.City, p.City)
	setString(&c.State, p.State)
	setString(&c.Email, p.Email)
	return c
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int64, v *int64) {
	if v != nil {
		*dst = *v
	}
}

// normalized returns c with its text fields in Unicode NFC form.
func (c Customer) normalized() Customer {
	c.CPF = norm.NFC.String(c.CPF)
	c.Name = norm.NFC.String(c.Name)
	c.Street = norm.NFC.String(c.Street)
	c.Neighborhood = norm.NFC.String(c.Neighborhood)
	c.City = norm.NFC.String(c.City)
	c.State = norm.NFC.String(c.State)
	c.Email = norm.NFC.String(c.Email)
	return c
}

func (p Patch) normalized() Patch {
	for _, f := range []**string{&p.CPF, &p.Name, &p.Street, &p.Neighborhood, &p.City, &p.State, &p.Email} {
		if *f != nil {
			s := norm.NFC.String(**f)
			*f = &s
		}
	}
	return p
}
