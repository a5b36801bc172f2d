package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/wordsmith-api/internal/api/shared"
	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/service"
)

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	commentService service.CommentService
	logger         *slog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService service.CommentService, logger *slog.Logger) *CommentHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CommentHandler")
	}
	return &CommentHandler{
		commentService: commentService,
		logger:         logger.With(slog.String("component", "comment_handler")),
	}
}

// Routes mounts the comment endpoints on r.
func (h *CommentHandler) Routes(r chi.Router) {
	r.Get("/", h.ListComments)
	r.Post("/", h.CreateComment)
	r.Get("/{commentId}", h.GetComment)
	r.Put("/{commentId}", h.UpdateComment)
	r.Delete("/{commentId}", h.DeleteComment)
	r.Get("/post/{postId}", h.ListCommentsByPost)
	r.Get("/user/{userId}", h.ListCommentsByUser)
}

// ListComments handles GET /api/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r)(h.commentService.ListComments(r.Context()))
}

// GetComment handles GET /api/comments/{commentId}
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := getPathInt64(r, "commentId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	comment, err := h.commentService.GetComment(r.Context(), commentID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, commentToResponse(*comment))
}

// CreateComment handles POST /api/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	comment, err := h.commentService.CreateComment(r.Context(), req.toInput())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, commentToResponse(*comment))
}

// UpdateComment handles PUT /api/comments/{commentId}
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := getPathInt64(r, "commentId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req CommentRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	comment, err := h.commentService.UpdateComment(r.Context(), commentID, req.Content)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, commentToResponse(*comment))
}

// DeleteComment handles DELETE /api/comments/{commentId}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := getPathInt64(r, "commentId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.commentService.DeleteComment(r.Context(), commentID); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCommentsByPost handles GET /api/comments/post/{postId}
func (h *CommentHandler) ListCommentsByPost(w http.ResponseWriter, r *http.Request) {
	postID, err := getPathInt64(r, "postId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.respondList(w, r)(h.commentService.ListCommentsByPost(r.Context(), postID))
}

// ListCommentsByUser handles GET /api/comments/user/{userId}
func (h *CommentHandler) ListCommentsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathInt64(r, "userId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.respondList(w, r)(h.commentService.ListCommentsByUser(r.Context(), userID))
}

func (h *CommentHandler) respondList(w http.ResponseWriter, r *http.Request) func([]domain.Comment, error) {
	return func(comments []domain.Comment, err error) {
		if err != nil {
			HandleAPIError(w, r, err)
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, mapSlice(comments, commentToResponse))
	}
}
