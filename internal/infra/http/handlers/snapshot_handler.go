package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/xavierca1/green-crm/internal/entity"
	"github.com/xavierca1/green-crm/internal/infra/http/middleware"
	"github.com/xavierca1/green-crm/internal/usecase"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// a origem já passou pelo CORS e pelo token
	CheckOrigin: func(r *http.Request) bool { return true },
}

type SnapshotHandler struct {
	SyncUC *usecase.SyncTenantUseCase
}

func NewSnapshotHandler(uc *usecase.SyncTenantUseCase) *SnapshotHandler {
	return &SnapshotHandler{SyncUC: uc}
}

// Get (GET /api/snapshot) devolve o estado atual do tenant; null antes do seed.
func (h *SnapshotHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.SyncUC.Load(r.Context(), middleware.TenantID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Stream (GET /api/ws) empurra um snapshot completo a cada mudança do tenant.
func (h *SnapshotHandler) Stream(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.TenantID(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ [WebSocket] Upgrade falhou: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()

	// só o snapshot mais recente importa
	latest := make(chan *entity.Snapshot, 1)
	unsubscribe, err := h.SyncUC.Execute(ctx, tenantID, func(snap *entity.Snapshot) {
		select {
		case <-latest:
		default:
		}
		latest <- snap
	})
	if err != nil {
		log.Printf("❌ [WebSocket] Erro ao assinar tenant %s: %v", tenantID, err)
		return
	}
	defer unsubscribe()

	go readPump(conn, cancel)

	log.Printf("🔗 [WebSocket] Tenant %s conectado", tenantID)
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("🔌 [WebSocket] Tenant %s desconectado", tenantID)
			return
		case snap := <-latest:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump só existe para processar pongs e detectar o fechamento pelo cliente.
func readPump(conn *websocket.Conn, done context.CancelFunc) {
	defer done()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WebSocket] erro de leitura: %v", err)
			}
			return
		}
	}
}
