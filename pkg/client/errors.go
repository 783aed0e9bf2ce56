package client

import (
	"errors"
	"fmt"
	"net/http"
)

// User-facing failure messages. The chat front end shows them verbatim.
const (
	EmptyQuestionMessage  = "Pertanyaan tidak boleh kosong."
	ServerErrorMessage    = "Terjadi kesalahan pada server. Silakan coba lagi nanti."
	UnavailableMessage    = "Server sedang tidak tersedia. Silakan coba lagi nanti."
	NotFoundMessage       = "Endpoint tidak ditemukan. Periksa konfigurasi backend."
	MissingResultMessage  = "Server tidak mengembalikan jawaban untuk pertanyaan ini."
	statusMessageFormat   = "Terjadi kesalahan pada server: %d. Silakan coba lagi nanti."
	networkMessageFormat  = "Tidak dapat terhubung ke server. Pastikan backend berjalan di %s."
	unexpectedMessageForm = "Terjadi kesalahan yang tidak terduga: %s"
)

// APIError is a classified backend failure. Transient errors are retried.
type APIError struct {
	Message    string
	StatusCode int
	Transient  bool
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%v)", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// statusError classifies a non-2xx response.
func statusError(code int) *APIError {
	var msg string
	switch code {
	case http.StatusInternalServerError:
		msg = ServerErrorMessage
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		msg = UnavailableMessage
	case http.StatusNotFound:
		msg = NotFoundMessage
	default:
		msg = fmt.Sprintf(statusMessageFormat, code)
	}
	return &APIError{Message: msg, StatusCode: code, Transient: isTransientStatus(code)}
}

// isTransientStatus reports whether a status code is worth retrying.
func isTransientStatus(code int) bool {
	if code >= 500 {
		return true
	}
	return code == http.StatusRequestTimeout || code == http.StatusTooManyRequests
}

func networkError(baseURL string, err error) *APIError {
	return &APIError{Message: fmt.Sprintf(networkMessageFormat, baseURL), Transient: true, Err: err}
}

func unexpectedError(err error, transient bool) *APIError {
	return &APIError{Message: fmt.Sprintf(unexpectedMessageForm, err), Transient: transient, Err: err}
}

// messageOf extracts the user-facing message from a client failure.
func messageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return fmt.Sprintf(unexpectedMessageForm, err)
}
