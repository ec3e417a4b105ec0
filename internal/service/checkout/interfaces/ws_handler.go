// internal/service/checkout/interfaces/ws_handler.go
package interfaces

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"commerce/internal/pkg/logger"
	"commerce/internal/service/checkout/application"
)

const statusPollInterval = 200 * time.Millisecond

// StatusStreamHandler 通过 WebSocket 推送 checkout 状态变化，
// 前端不用轮询 REST 接口就能看到流程推进。
type StatusStreamHandler struct {
	service  statusReader
	upgrader websocket.Upgrader
}

type statusReader interface {
	CheckoutStatus(checkoutID string) (application.StatusResponse, bool)
}

func NewStatusStreamHandler(service statusReader) *StatusStreamHandler {
	return &StatusStreamHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 演示环境不校验来源
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// RegisterRoutes 在 ServeMux 上注册 WebSocket 路由
func (h *StatusStreamHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/checkout/stream/{checkoutId}", h.handleStream)
}

func (h *StatusStreamHandler) handleStream(w http.ResponseWriter, r *http.Request) {
	checkoutID := r.PathValue("checkoutId")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Ctx(r.Context()).Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(statusPollInterval)
	defer ticker.Stop()

	var lastPhase string
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			status, ok := h.service.CheckoutStatus(checkoutID)
			if !ok {
				conn.WriteJSON(map[string]string{"error": "checkout not found"})
				return
			}
			// 只推送有变化的快照
			if status.Phase != lastPhase {
				lastPhase = status.Phase
				if err := conn.WriteJSON(status); err != nil {
					return
				}
			}
			if status.Terminal {
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "checkout finished"))
				return
			}
		}
	}
}
