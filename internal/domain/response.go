package domain

import "net/http"

const (
	ContentTypeJSON  = "application/json"
	ContentTypePlain = "text/plain"
)

// Response es el resultado a nivel transporte de una invocacion.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// Success arma la respuesta 200 con el registro serializado.
func Success(body []byte) Response {
	return Response{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": ContentTypeJSON},
		Body:       string(body),
	}
}

// BadRequest arma la respuesta 400 con un mensaje en texto plano.
func BadRequest(message string) Response {
	return Response{
		StatusCode: http.StatusBadRequest,
		Headers:    map[string]string{"Content-Type": ContentTypePlain},
		Body:       message,
	}
}

// ContentType devuelve el Content-Type de la respuesta.
func (r Response) ContentType() string {
	return r.Headers["Content-Type"]
}
