package handler

import (
	"encoding/json"
	"net/http"

	"vetconnect/internal/pets/service"
	httputil "vetconnect/pkg/http"
	"vetconnect/pkg/logger"
	"vetconnect/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type PetHandler struct {
	service service.PetService
	log     *logger.Logger
}

func NewPetHandler(service service.PetService, log *logger.Logger) *PetHandler {
	return &PetHandler{
		service: service,
		log:     log,
	}
}

func (h *PetHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var pet model.Pet
	if err := json.NewDecoder(r.Body).Decode(&pet); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &pet); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, pet); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *PetHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	pet, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, pet); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *PetHandler) GetByOwner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	pets, total, err := h.service.GetByOwner(r.Context(), ps.ByName("owner_id"), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WritePaginated(w, pets, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetByOwner", "error", err)
	}
}

func (h *PetHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.PetUpdate
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

func (h *PetHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *PetHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/pets", h.Create)
	router.GET("/api/v1/pets/id/:id", h.GetByID)
	router.PATCH("/api/v1/pets/id/:id", h.Update)
	router.DELETE("/api/v1/pets/id/:id", h.Delete)
	router.GET("/api/v1/pets/owner/:owner_id", h.GetByOwner)
}
