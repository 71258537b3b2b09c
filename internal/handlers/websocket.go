package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"cardviz/internal/board"
	"cardviz/internal/config"
	"cardviz/internal/middleware"
	ws "cardviz/pkg/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	msgBoardUpdate = "board_update"
	msgWarning     = "warning"
)

func newUpgrader(cfg config.Config) websocket.Upgrader {
	allowed := map[string]bool{}
	for _, o := range cfg.WSAllowedOrigins {
		allowed[o] = true
	}
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" {
				// Non-browser clients send no Origin.
				return true
			}
			if allowed[origin] || sameHost(origin, r.Host) {
				return true
			}
			if cfg.IsDev() {
				return cfg.DevWebSocketsAllowAll || middleware.IsLoopbackOrigin(origin)
			}
			return false
		},
	}
}

func sameHost(origin, host string) bool {
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, host)
}

// BoardBroadcaster pushes every board change to the current hub. Register
// it with Board.OnChange.
func BoardBroadcaster(d Deps) func(board.Snapshot) {
	return func(s board.Snapshot) {
		h, ok := d.Hub()
		if !ok {
			return
		}
		h.Broadcast(msgBoardUpdate, NewBoardView(s, d.Board.Columns()))
	}
}

// WebSocketHandler upgrades the connection, registers the client and sends
// it the current board.
func WebSocketHandler(d Deps) gin.HandlerFunc {
	upgrader := newUpgrader(d.Config)
	return func(c *gin.Context) {
		hub, ok := d.Hub()
		if !ok {
			writeAPIError(c, d.Log, ErrHubUnavailable)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			d.Log.Warn("ws upgrade failed",
				zap.String("remote", c.ClientIP()),
				zap.String("origin", c.Request.Header.Get("Origin")),
				zap.Error(err),
			)
			return
		}

		client := ws.NewClient(conn, hub, d.Log)
		hub.Register(client)
		d.Log.Debug("ws connected", zap.String("client_id", client.ID))

		go client.WritePump()
		go client.ReadPump(func(msg []byte) {
			handleWSMessage(d, client, msg)
		})

		sendDirect(d.Log, client, msgBoardUpdate, NewBoardView(d.Board.Snapshot(), d.Board.Columns()))
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// handleWSMessage applies select/confirm/reset requests. Successful changes
// reach every client through BoardBroadcaster; problems are answered to the
// sender only.
func handleWSMessage(d Deps, client *ws.Client, msg []byte) {
	var in inboundMessage
	if err := json.Unmarshal(msg, &in); err != nil {
		sendWarning(d.Log, client, "invalid json")
		return
	}

	ctx := context.Background()
	var err error
	switch in.Type {
	case "select":
		var req selectRequest
		if err = unmarshalPayload(in.Payload, &req); err == nil {
			_, err = selectCard(ctx, d.Board, req)
		}
	case "confirm":
		var req confirmRequest
		if err = unmarshalPayload(in.Payload, &req); err == nil {
			_, err = confirmText(ctx, d.Board, req.Text)
		}
	case "reset":
		d.Board.Reset()
	case "sync":
		sendDirect(d.Log, client, msgBoardUpdate, NewBoardView(d.Board.Snapshot(), d.Board.Columns()))
	default:
		err = fmt.Errorf("%w: unknown message type %q", ErrInvalidRequest, in.Type)
	}
	if err != nil {
		sendWarning(d.Log, client, err.Error())
	}
}

func unmarshalPayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: missing payload", ErrInvalidRequest)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

func sendWarning(log *zap.Logger, c *ws.Client, warning string) {
	sendDirect(log, c, msgWarning, gin.H{"warning": warning})
}

func sendDirect(log *zap.Logger, c *ws.Client, typ string, payload any) {
	b, err := ws.Encode(typ, payload)
	if err != nil {
		log.Error("ws encode failed", zap.String("type", typ), zap.Error(err))
		return
	}
	if !c.Enqueue(b) {
		log.Warn("ws send drop", zap.String("client_id", c.ID), zap.String("type", typ))
	}
}
