package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"unicode/utf8"

	"extract-store/internal/domain"
)

// ErrMalformedPayload indica que el body no es un documento JSON valido en UTF-8.
var ErrMalformedPayload = errors.New("malformed json payload")

// openMapping es un objeto cuyo cierre todavia no se leyo.
type openMapping struct {
	fields []domain.Field
	key    string
	hasKey bool
}

// ParsePayload convierte el body en un arbol domain.Node conservando el orden de los campos
// y las claves duplicadas. Lee el documento una sola vez como flujo de tokens, sin recursion,
// asi que el costo es lineal en el tamano del body sin importar la profundidad.
// El contenido de las listas se consume sin materializarse.
func ParsePayload(body []byte) (domain.Node, error) {
	if !utf8.Valid(body) {
		return domain.Node{}, ErrMalformedPayload
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var (
		stack     []*openMapping
		root      domain.Node
		done      bool
		listDepth int
	)

	attach := func(v domain.Node) {
		if len(stack) == 0 {
			root = v
			done = true
			return
		}
		top := stack[len(stack)-1]
		top.fields = append(top.fields, domain.Field{Name: top.key, Value: v})
		top.hasKey = false
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil || done {
			// done: hay un segundo valor despues de la raiz.
			return domain.Node{}, ErrMalformedPayload
		}

		if listDepth > 0 {
			switch tok {
			case json.Delim('['), json.Delim('{'):
				listDepth++
			case json.Delim(']'), json.Delim('}'):
				listDepth--
				if listDepth == 0 {
					attach(domain.List())
				}
			}
			continue
		}

		if n := len(stack); n > 0 && !stack[n-1].hasKey {
			if key, ok := tok.(string); ok {
				stack[n-1].key = key
				stack[n-1].hasKey = true
				continue
			}
		}

		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				stack = append(stack, &openMapping{})
			case '[':
				listDepth = 1
			case '}':
				closed := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				attach(domain.Node{Kind: domain.KindMapping, Fields: closed.fields})
			}
		case string:
			attach(domain.String(t))
		case json.Number:
			attach(numberNode(t))
		default:
			attach(domain.Other())
		}
	}

	if !done {
		return domain.Node{}, ErrMalformedPayload
	}
	return root, nil
}

// numberNode solo acepta literales enteros: 94806.0 o 9.4806e4 no cuentan.
func numberNode(n json.Number) domain.Node {
	v, err := strconv.ParseInt(string(n), 10, 64)
	if err != nil {
		return domain.Other()
	}
	return domain.Integer(v)
}
