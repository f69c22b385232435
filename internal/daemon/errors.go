package daemon

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ServiceError is a failure with a message safe to show to the user and
// the HTTP status it is reported with.
type ServiceError struct {
	Status  int
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func badRequest(message string) *ServiceError {
	return &ServiceError{Status: http.StatusBadRequest, Message: message}
}

func noteNotFound(err error) *ServiceError {
	return &ServiceError{Status: http.StatusNotFound, Message: "note not found", Err: err}
}

// storageFailure hides the storage error from clients; it stays reachable
// through Unwrap for logging.
func storageFailure(op string, err error) *ServiceError {
	return &ServiceError{Status: http.StatusInternalServerError, Message: "failed to " + op + " note", Err: err}
}

var errNoStore = &ServiceError{Status: http.StatusInternalServerError, Message: "note store not available"}

// respond writes payload as JSON. A nil payload writes only the status.
func respond(w http.ResponseWriter, status int, payload any) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, err error) {
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		svcErr = &ServiceError{Status: http.StatusInternalServerError, Message: err.Error(), Err: err}
	}
	respond(w, svcErr.Status, map[string]string{"error": svcErr.Message})
}
