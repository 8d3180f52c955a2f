package sellers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pasalo-app/pasalo/internal/platform/httpx"
)

// Handler exposes the seller directory over JSON.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// Routes mounts the seller endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/stats", h.ListWithStats)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Patch("/", h.Update)
		r.Delete("/", h.Delete)
	})
	return r
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.service.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("list sellers failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	if sellers == nil {
		sellers = []Seller{}
	}
	httpx.JSON(w, http.StatusOK, sellers)
}

func (h *Handler) ListWithStats(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.service.ListWithStats(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("list sellers with stats failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	if sellers == nil {
		sellers = []SellerWithStats{}
	}
	httpx.JSON(w, http.StatusOK, sellers)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSellerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}

	seller, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create seller failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, seller)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "seller id must be a UUID")
		return
	}

	seller, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, seller)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "seller id must be a UUID")
		return
	}

	var req UpdateSellerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}

	seller, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update seller failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, seller)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "seller id must be a UUID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete seller failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}
