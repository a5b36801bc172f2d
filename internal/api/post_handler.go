package api

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/wordsmith-api/internal/api/shared"
	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/paging"
	"github.com/phrazzld/wordsmith-api/internal/platform/logger"
	"github.com/phrazzld/wordsmith-api/internal/service"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	postService service.PostService
	logger      *slog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService service.PostService, logger *slog.Logger) *PostHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PostHandler")
	}
	return &PostHandler{
		postService: postService,
		logger:      logger.With(slog.String("component", "post_handler")),
	}
}

// Routes mounts the post endpoints on r.
func (h *PostHandler) Routes(r chi.Router) {
	r.Get("/", h.ListPosts)
	r.Post("/", h.CreatePost)
	r.Get("/{postId}", h.GetPost)
	r.Put("/{postId}", h.UpdatePost)
	r.Delete("/{postId}", h.DeletePost)
	r.Get("/category/{categoryId}", h.ListPostsByCategory)
	r.Get("/user/{userId}", h.ListPostsByUser)
	r.Get("/user/{userId}/category/{categoryId}", h.ListPostsByUserAndCategory)
	r.Get("/search/{searchTerm}", h.SearchPosts)
}

// ListPosts handles GET /api/posts
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q, err := getPageQuery(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.respondPage(w, r)(h.postService.ListPosts(r.Context(), q))
}

// GetPost handles GET /api/posts/{postId}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := getPathInt64(r, "postId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	post, err := h.postService.GetPost(r.Context(), postID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(*post))
}

// CreatePost handles POST /api/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req PostRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	post, err := h.postService.CreatePost(r.Context(), req.toInput())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("post created", slog.Int64("post_id", post.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, postToResponse(*post))
}

// UpdatePost handles PUT /api/posts/{postId}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID, err := getPathInt64(r, "postId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req PostRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	post, err := h.postService.UpdatePost(r.Context(), postID, req.toInput())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(*post))
}

// DeletePost handles DELETE /api/posts/{postId}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := getPathInt64(r, "postId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.postService.DeletePost(r.Context(), postID); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPostsByCategory handles GET /api/posts/category/{categoryId}
func (h *PostHandler) ListPostsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getPathInt(r, "categoryId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	q, err := getPageQuery(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.respondPage(w, r)(h.postService.ListPostsByCategory(r.Context(), categoryID, q))
}

// ListPostsByUser handles GET /api/posts/user/{userId}
func (h *PostHandler) ListPostsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathInt64(r, "userId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	q, err := getPageQuery(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.respondPage(w, r)(h.postService.ListPostsByUser(r.Context(), userID, q))
}

// ListPostsByUserAndCategory handles GET /api/posts/user/{userId}/category/{categoryId}
func (h *PostHandler) ListPostsByUserAndCategory(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathInt64(r, "userId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	categoryID, err := getPathInt(r, "categoryId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	q, err := getPageQuery(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.respondPage(w, r)(h.postService.ListPostsByUserAndCategory(r.Context(), userID, categoryID, q))
}

// SearchPosts handles GET /api/posts/search/{searchTerm}
func (h *PostHandler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	q, err := getPageQuery(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	term, err := searchTerm(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.respondPage(w, r)(h.postService.SearchPosts(r.Context(), term, q))
}

// searchTerm returns the decoded {searchTerm} segment. The router matches on
// the raw path only when it differs from the decoded one, so the segment is
// unescaped only in that case.
func searchTerm(r *http.Request) (string, error) {
	term := chi.URLParam(r, "searchTerm")
	if r.URL.RawPath == "" {
		return term, nil
	}
	decoded, err := url.PathUnescape(term)
	if err != nil {
		return "", domain.NewInvalidArgumentError("Invalid search term")
	}
	return decoded, nil
}

// respondPage returns a function that writes a page of posts or the error
// that prevented it.
func (h *PostHandler) respondPage(
	w http.ResponseWriter,
	r *http.Request,
) func(paging.Envelope[domain.Post], error) {
	return func(page paging.Envelope[domain.Post], err error) {
		if err != nil {
			HandleAPIError(w, r, err)
			return
		}
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("listed posts",
			slog.Int("page", page.PageNumber),
			slog.Int("returned", len(page.Content)),
			slog.Int64("total", page.TotalElements))
		shared.RespondWithJSON(w, r, http.StatusOK, paging.MapContent(page, postToResponse))
	}
}
