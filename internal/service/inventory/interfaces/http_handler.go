// internal/service/inventory/interfaces/http_handler.go
package interfaces

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"commerce/internal/service/inventory/application"
	"commerce/internal/service/inventory/domain"
)

// InventoryHandler 封装了 inventory 服务的 HTTP 处理器
type InventoryHandler struct {
	service *application.InventoryService
}

// NewInventoryHandler 创建一个新的 HTTP 处理器实例
func NewInventoryHandler(service *application.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *InventoryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/inventory/reserve", h.handleReserve)
	mux.HandleFunc("POST /api/v1/inventory/release", h.handleRelease)
	mux.HandleFunc("POST /api/v1/inventory/confirm", h.handleConfirm)
	mux.HandleFunc("GET /api/v1/inventory/availability", h.handleAvailability)
	mux.HandleFunc("GET /api/v1/inventory/low-stock", h.handleLowStock)
	mux.HandleFunc("GET /api/v1/inventory/{productId}", h.handleGet)
	mux.HandleFunc("PUT /api/v1/inventory/{productId}", h.handleUpdate)
}

// stockMutationRequest 是 reserve/release/confirm 三个动作共用的请求体。
type stockMutationRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	OrderID   string `json:"orderId"`
}

type stockMutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (h *InventoryHandler) handleReserve(w http.ResponseWriter, r *http.Request) {
	h.handleMutation(w, r, "reserved", func(req *stockMutationRequest) (*domain.StockRecord, error) {
		return h.service.Reserve(extractCtx(r), req.ProductID, req.Quantity, req.OrderID)
	})
}

func (h *InventoryHandler) handleRelease(w http.ResponseWriter, r *http.Request) {
	h.handleMutation(w, r, "released", func(req *stockMutationRequest) (*domain.StockRecord, error) {
		return h.service.Release(extractCtx(r), req.ProductID, req.Quantity, req.OrderID)
	})
}

func (h *InventoryHandler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	h.handleMutation(w, r, "confirmed", func(req *stockMutationRequest) (*domain.StockRecord, error) {
		return h.service.Confirm(extractCtx(r), req.ProductID, req.Quantity, req.OrderID)
	})
}

func (h *InventoryHandler) handleMutation(w http.ResponseWriter, r *http.Request, verb string, fn func(*stockMutationRequest) (*domain.StockRecord, error)) {
	var req stockMutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ProductID == "" || req.Quantity <= 0 {
		writeJSON(w, http.StatusBadRequest, stockMutationResponse{Success: false, Message: "productId and a positive quantity are required"})
		return
	}

	if _, err := fn(&req); err != nil {
		writeJSON(w, mutationStatusCode(err), stockMutationResponse{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stockMutationResponse{Success: true, Message: "stock " + verb})
}

// mutationStatusCode 根据错误类型返回不同的 HTTP 状态码
func mutationStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		// 重试次数耗尽后的冲突，调用方可以稍后再试
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *InventoryHandler) handleAvailability(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("productId")
	qty, _ := strconv.Atoi(r.URL.Query().Get("quantity"))
	if productID == "" || qty <= 0 {
		http.Error(w, "productId and a positive quantity are required", http.StatusBadRequest)
		return
	}

	available, err := h.service.Availability(extractCtx(r), productID, qty)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

func (h *InventoryHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.Get(extractCtx(r), r.PathValue("productId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// handleUpdate 是管理员补货接口，body 只带新的总量。
func (h *InventoryHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	record, err := h.service.SetQuantity(extractCtx(r), r.PathValue("productId"), req.Quantity)
	if err != nil {
		writeJSON(w, mutationStatusCode(err), stockMutationResponse{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *InventoryHandler) handleLowStock(w http.ResponseWriter, r *http.Request) {
	threshold, err := strconv.Atoi(r.URL.Query().Get("threshold"))
	if err != nil || threshold < 0 {
		threshold = 10
	}
	records, err := h.service.LowStock(extractCtx(r), threshold)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
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
