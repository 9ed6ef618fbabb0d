package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"vetconnect/internal/payments/service"
	"vetconnect/pkg/config"
	httputil "vetconnect/pkg/http"
	"vetconnect/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

type PaymentHandler struct {
	service service.PaymentService
	cfg     *config.Config
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, cfg *config.Config) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		cfg:     cfg,
		log:     cfg.Log,
	}
}

type createPaymentRequest struct {
	AppointmentID string `json:"appointment_id"`
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	payment, err := h.service.CreateForAppointment(r.Context(), req.AppointmentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, payment); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *PaymentHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	payment, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, payment); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *PaymentHandler) GetByAppointment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	payments, err := h.service.GetByAppointment(r.Context(), ps.ByName("appointment_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, payments); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByAppointment", "error", err)
	}
}

// StripeWebhook applies provider events. There is no other auth on this
// route; the signature verification is the auth.
func (h *PaymentHandler) StripeWebhook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if strings.TrimSpace(h.cfg.StripeWebhookSecret) == "" {
		http.Error(w, "stripe webhook not configured", http.StatusServiceUnavailable)
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	if strings.TrimSpace(sigHeader) == "" {
		http.Error(w, "missing Stripe-Signature header", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	evt, err := webhook.ConstructEventWithTolerance(body, sigHeader, h.cfg.StripeWebhookSecret, h.cfg.StripeWebhookTolerance)
	if err != nil {
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	eventType := string(evt.Type)
	h.log.Info("Provider event received",
		"provider", "stripe",
		"event_id", evt.ID,
		"event_type", eventType,
	)

	var intentID string
	if strings.HasPrefix(eventType, "payment_intent.") {
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(evt.Data.Raw, &intent); err != nil {
			h.log.Error("Invalid payment intent payload", "event_id", evt.ID, "error", err)
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		intentID = intent.ID
	}

	if err := h.service.HandleProviderEvent(r.Context(), evt.ID, eventType, intentID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "StripeWebhook", "error", err)
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/payments", h.Create)
	router.GET("/api/v1/payments/id/:id", h.GetByID)
	router.GET("/api/v1/payments/appointment/:appointment_id", h.GetByAppointment)
	router.POST("/api/v1/payments/webhook/stripe", h.StripeWebhook)
}
