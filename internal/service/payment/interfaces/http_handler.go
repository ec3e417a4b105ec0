// internal/service/payment/interfaces/http_handler.go
package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"commerce/internal/service/payment/application"
)

// PaymentHandler 封装了 payment 服务的 HTTP 处理器
type PaymentHandler struct {
	service *application.PaymentService
}

func NewPaymentHandler(service *application.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *PaymentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/payments/process", h.handleProcess)
	mux.HandleFunc("GET /api/v1/payments/{paymentId}", h.handleGet)
}

type processPaymentRequest struct {
	OrderID       string  `json:"orderId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	PaymentMethod string  `json:"paymentMethod"`
}

func (h *PaymentHandler) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.OrderID == "" || req.Amount <= 0 {
		http.Error(w, "orderId and a positive amount are required", http.StatusBadRequest)
		return
	}

	payment := h.service.Process(extractCtx(r), req.OrderID, req.Amount, req.Currency, req.PaymentMethod)
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	payment, ok := h.service.Get(r.PathValue("paymentId"))
	if !ok {
		http.Error(w, "payment not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func extractCtx(r *http.Request) context.Context {
	propagator := otel.GetTextMapPropagator()
	return propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
