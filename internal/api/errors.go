package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/wordsmith-api/internal/api/shared"
	"github.com/phrazzld/wordsmith-api/internal/domain"
)

// InternalErrorMessage is the only message a client sees for unexpected failures.
const InternalErrorMessage = "An unexpected error occurred."

// MapError maps an error to its HTTP status and client-visible body. Only
// messages carried by domain errors are exposed; anything else is reported
// as an internal error.
func MapError(err error) (int, shared.ErrorBody) {
	var (
		notFound *domain.NotFoundError
		exists   *domain.AlreadyExistsError
		invalid  *domain.InvalidArgumentError
		verr     *domain.ValidationError
	)

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, shared.ErrorBody{
			Error:   "Validation Error",
			Message: "Bad Request",
			Errors:  verr.Messages(),
		}
	case errors.As(err, &notFound):
		return http.StatusNotFound, shared.ErrorBody{Error: "Not Found", Message: notFound.Error()}
	case errors.As(err, &exists):
		return http.StatusConflict, shared.ErrorBody{Error: "Conflict", Message: exists.Error()}
	case errors.Is(err, domain.ErrBadCredentials):
		return http.StatusUnauthorized, shared.ErrorBody{Error: "Unauthorized", Message: "Bad credentials"}
	case errors.As(err, &invalid):
		return http.StatusBadRequest, shared.ErrorBody{Error: "Bad Request", Message: invalid.Message}
	default:
		return http.StatusInternalServerError, shared.ErrorBody{
			Error:   "Internal Server Error",
			Message: InternalErrorMessage,
		}
	}
}

// HandleAPIError writes the error response for err and logs it. Internal
// errors are logged at ERROR with the cause redacted.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := MapError(err)
	shared.RespondWithErrorAndLog(w, r, status, body, err)
}
