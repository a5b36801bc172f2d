package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/wordsmith-api/internal/api/shared"
	"github.com/phrazzld/wordsmith-api/internal/platform/logger"
	"github.com/phrazzld/wordsmith-api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService auth.Service
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService auth.Service, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}
	return &AuthHandler{
		authService: authService,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /api/auth/register.
// It responds 201 with a confirmation string naming the new user id.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	id, err := h.authService.Register(r.Context(), req.toInput())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("user registered", slog.Int64("user_id", id))
	shared.RespondWithJSON(w, r, http.StatusCreated,
		fmt.Sprintf("User registered successfully with id: %d", id))
}

// Authenticate handles POST /api/auth/authenticate.
// It exchanges a username and password for an identity token.
func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req AuthenticationRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	token, err := h.authService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthenticationResponse{Token: token})
}

// decodeAndValidate decodes the JSON body into v and checks its validate tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) error {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		return err
	}
	return shared.ValidateRequest(v)
}
