package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StorageKeyer genera claves particionadas por fecha: yyyy/mm/dd/<uuid><Suffix>.
// La marca de tiempo es epoch en milisegundos y se interpreta en UTC.
type StorageKeyer struct {
	Suffix string
	NewID  func() uuid.UUID
}

// Derive genera una clave nueva; dos llamadas nunca comparten identificador.
func (k StorageKeyer) Derive(epochMillis int64) string {
	newID := k.NewID
	if newID == nil {
		newID = uuid.New
	}
	t := time.UnixMilli(epochMillis).UTC()
	return fmt.Sprintf("%d/%02d/%02d/%s%s", t.Year(), int(t.Month()), t.Day(), newID().String(), k.Suffix)
}

// DeriveKey usa el formato canonico sin sufijo.
func DeriveKey(epochMillis int64) string {
	return StorageKeyer{}.Derive(epochMillis)
}
