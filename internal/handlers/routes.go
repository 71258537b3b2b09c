package handlers

import (
	"net/http"

	"cardviz/internal/board"
	"cardviz/internal/config"
	"cardviz/internal/images"
	"cardviz/internal/middleware"
	"cardviz/internal/tracing"
	ws "cardviz/pkg/websocket"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Deps are the collaborators shared by every handler.
type Deps struct {
	Config config.Config
	Board  *board.Board
	Images *images.Store
	Hub    func() (*ws.Hub, bool)
	Log    *zap.Logger
}

// NewRouter builds the complete HTTP surface: the UI page, the JSON API and
// the websocket endpoint.
func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.Recovery(d.Log))
	r.Use(otelgin.Middleware(tracing.ServiceName))
	r.Use(middleware.DevCORS(d.Config))

	RegisterPage(r, d)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	api := r.Group("/api")
	RegisterBoardRoutes(api, d)
	RegisterCardRoutes(api, d)

	r.GET("/ws", WebSocketHandler(d))
	return r
}

func RegisterBoardRoutes(rg *gin.RouterGroup, d Deps) {
	rg.GET("/board", GetBoardHandler(d))
	rg.POST("/board/select", SelectHandler(d))
	rg.POST("/board/confirm", ConfirmHandler(d))
	rg.POST("/board/reset", ResetHandler(d))
}

func RegisterCardRoutes(rg *gin.RouterGroup, d Deps) {
	rg.GET("/grid", GridHandler())
	rg.GET("/decode", DecodeHandler(d))
	rg.GET("/encode", EncodeHandler(d))
	rg.GET("/cards/:code/image", CardImageHandler(d))
}
