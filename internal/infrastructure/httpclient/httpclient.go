package httpclient

import (
	"net/http"
	"time"
)

// HTTPClient abstrae el cliente HTTP para poder inyectar fakes en los tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewDefault devuelve el cliente HTTP usado contra los endpoints de OAuth.
func NewDefault() HTTPClient {
	return &http.Client{Timeout: 30 * time.Second}
}
