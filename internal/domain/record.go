package domain

import "encoding/json"

const (
	FieldFirstName  = "first_name"
	FieldMiddleName = "middle_name"
	FieldLastName   = "last_name"
	FieldZipCode    = "zip_code"
)

// Record es el registro plano con los cuatro campos buscados.
// Un campo esta poblado cuando su puntero no es nil, aunque el string este vacio.
type Record struct {
	FirstName  *string `json:"first_name,omitempty"`
	MiddleName *string `json:"middle_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	ZipCode    *int64  `json:"zip_code,omitempty"`
}

// IsComplete indica si los cuatro campos estan poblados.
func (r Record) IsComplete() bool {
	return r.Populated() == 4
}

// IsEmpty indica si no se encontro ningun campo.
func (r Record) IsEmpty() bool {
	return r.Populated() == 0
}

// Populated cuenta los campos poblados.
func (r Record) Populated() int {
	n := 0
	if r.FirstName != nil {
		n++
	}
	if r.MiddleName != nil {
		n++
	}
	if r.LastName != nil {
		n++
	}
	if r.ZipCode != nil {
		n++
	}
	return n
}

// SetName guarda un nombre si name es uno de los campos de texto. Devuelve false si no aplica.
func (r *Record) SetName(name, value string) bool {
	switch name {
	case FieldFirstName:
		r.FirstName = &value
	case FieldMiddleName:
		r.MiddleName = &value
	case FieldLastName:
		r.LastName = &value
	default:
		return false
	}
	return true
}

// SetZipCode guarda el codigo postal.
func (r *Record) SetZipCode(zip int64) {
	r.ZipCode = &zip
}

// Marshal serializa el registro con el orden first_name, middle_name, last_name, zip_code.
func (r Record) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
