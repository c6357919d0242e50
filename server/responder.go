package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// Responder centralizes JSON responses and error logging for the handlers.
type Responder struct {
	log *slog.Logger
}

func NewResponder(log *slog.Logger) *Responder {
	return &Responder{log: log}
}

func (rr *Responder) JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		rr.log.Error("encoding response", "error", err)
	}
}

// Error sends a JSON error with a correlation id and logs the underlying
// cause at error level. The client only sees the public message.
func (rr *Responder) Error(w http.ResponseWriter, status int, msg string, err error) {
	errID := uuid.NewString()
	rr.log.Error(msg, "error", err, "errId", errID, "status", status)
	rr.JSON(w, status, map[string]string{
		"message": msg,
		"errId":   errID,
	})
}
