package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Sivakumarraj/Music-Mesh-Studio/internal/domain"
	"github.com/Sivakumarraj/Music-Mesh-Studio/pkg/rest"
)

func (c controller) idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

func (c controller) writeInvalidParam(w http.ResponseWriter, name string) {
	rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"message": "invalid " + name})
}

// writeError maps the service error taxonomy onto HTTP statuses. Store
// failures get a generic 500 message; internal detail stays in the logs.
func (c controller) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"message": validationErr.Message})
	case errors.Is(err, domain.ErrUsernameTaken):
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"message": "username already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		rest.WriteJSON(w, http.StatusUnauthorized, rest.Envelope{"message": "invalid credentials"})
	case errors.Is(err, domain.ErrRoomNotFound):
		rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"message": "room not found"})
	case errors.Is(err, domain.ErrLoopNotFound):
		rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"message": "loop not found"})
	case errors.Is(err, domain.ErrUserNotFound):
		rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"message": "user not found"})
	default:
		c.logger.ErrorContext(r.Context(), "internal error", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"message": "internal server error"})
	}
}

func (c controller) readAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := rest.ReadJSON(w, r, dst); err != nil {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"message": err.Error()})
		return false
	}

	if validationErrors, ok := c.validate.Validate(dst); !ok {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{
			"message": validationErrors[0].Message,
			"errors":  validationErrors,
		})
		return false
	}

	return true
}
