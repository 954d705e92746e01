package service

import "extract-store/internal/domain"

// Extract busca first_name, middle_name, last_name y zip_code en cualquier nivel del payload.
// Recorre en profundidad (pre-orden, orden de documento) y se detiene apenas el registro
// queda completo. Las listas no se recorren. Si un campo aparece varias veces, la ultima
// ocurrencia leida antes de completar el registro es la que queda.
func Extract(payload domain.Node) domain.Record {
	var rec domain.Record
	if payload.Kind != domain.KindMapping {
		return rec
	}
	walk(&rec, payload.Fields)
	return rec
}

// ExtractInto procesa un par nombre/valor sobre un registro existente.
// Devuelve true si el registro queda completo.
func ExtractInto(rec *domain.Record, name string, value domain.Node) bool {
	if rec.IsComplete() {
		return true
	}
	return walk(rec, []domain.Field{{Name: name, Value: value}})
}

func walk(rec *domain.Record, fields []domain.Field) bool {
	stack := make([]domain.Field, 0, len(fields))
	stack = pushReversed(stack, fields)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch f.Value.Kind {
		case domain.KindMapping:
			stack = pushReversed(stack, f.Value.Fields)
			continue
		case domain.KindString:
			if !rec.SetName(f.Name, f.Value.Str) {
				continue
			}
		case domain.KindInteger:
			if f.Name != domain.FieldZipCode {
				continue
			}
			rec.SetZipCode(f.Value.Int)
		default:
			continue
		}

		if rec.IsComplete() {
			return true
		}
	}
	return false
}

// pushReversed apila en orden inverso para que el primer campo salga primero.
func pushReversed(stack, fields []domain.Field) []domain.Field {
	for i := len(fields) - 1; i >= 0; i-- {
		stack = append(stack, fields[i])
	}
	return stack
}
