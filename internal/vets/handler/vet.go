package handler

import (
	"encoding/json"
	"net/http"

	"vetconnect/internal/vets/service"
	httputil "vetconnect/pkg/http"
	"vetconnect/pkg/logger"
	"vetconnect/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type VetHandler struct {
	service service.VetService
	log     *logger.Logger
}

func NewVetHandler(service service.VetService, log *logger.Logger) *VetHandler {
	return &VetHandler{
		service: service,
		log:     log,
	}
}

func (h *VetHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var vet model.Vet
	if err := json.NewDecoder(r.Body).Decode(&vet); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &vet); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, vet); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *VetHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	vet, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, vet); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *VetHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	vets, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WritePaginated(w, vets, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *VetHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.VetUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "error", writeErr)
		}
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &updates); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *VetHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *VetHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	vets, total, err := h.service.Search(r.Context(), query.Get("city"), query.Get("specialization"), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WritePaginated(w, vets, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "Search", "error", err)
	}
}

func (h *VetHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/vets", h.Create)
	router.GET("/api/v1/vets", h.GetAll)
	router.GET("/api/v1/vets/search", h.Search)
	router.GET("/api/v1/vets/id/:id", h.GetByID)
	router.PATCH("/api/v1/vets/id/:id", h.Update)
	router.DELETE("/api/v1/vets/id/:id", h.Delete)
}
