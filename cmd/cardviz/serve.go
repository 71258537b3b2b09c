package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"cardviz/internal/board"
	"cardviz/internal/config"
	"cardviz/internal/handlers"
	"cardviz/internal/images"
	"cardviz/internal/tracing"
	"cardviz/pkg/websocket"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	serveAddr    string
	serveRes     string
	gridScale    float64
	boardScale   float64
	boardColumns int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI",
	Long: `Serves the card picker, the code text box and the rendered board on a
local address. Every open tab sees the same board and updates live.

Card art is read from the resource directory (<value><suit>.jpg, with
black_joker.jpg and red_joker.jpg); missing files are drawn as placeholders.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveAddr, "addr", config.DefaultAddr, "listen address (env CARDVIZ_ADDR)")
	f.StringVar(&serveRes, "res", config.DefaultResourceDir, "card art directory (env CARDVIZ_RES_DIR)")
	f.Float64Var(&gridScale, "grid-scale", config.DefaultGridScale, "picker image scale")
	f.Float64Var(&boardScale, "board-scale", config.DefaultBoardScale, "board image scale")
	f.IntVar(&boardColumns, "columns", config.DefaultBoardColumns, "board cards per row")
}

// applyServeFlags lets explicitly set flags win over the environment.
func applyServeFlags(cmd *cobra.Command, c config.Config) (config.Config, error) {
	if cmd.Flags().Changed("addr") {
		c.Addr = serveAddr
	}
	if cmd.Flags().Changed("res") {
		c.ResourceDir = serveRes
	}
	if cmd.Flags().Changed("grid-scale") {
		c.GridScale = gridScale
	}
	if cmd.Flags().Changed("board-scale") {
		c.BoardScale = boardScale
	}
	if cmd.Flags().Changed("columns") {
		c.BoardColumns = boardColumns
	}
	return c, c.Validate()
}

func runServe(cmd *cobra.Command, args []string) error {
	c, err := applyServeFlags(cmd, cfg)
	if err != nil {
		return err
	}
	if !c.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:  tracing.ServiceName,
		Environment:  c.AppEnv,
		TracesExport: c.TracesExport,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("tracing shutdown error", zap.Error(err))
		}
	}()

	hubRef := websocket.NewHubRef(websocket.NewHub(logger))
	deps := handlers.Deps{
		Config: c,
		Board:  board.New(c.BoardColumns),
		Images: images.NewStore(c.ResourceDir, logger),
		Hub:    hubRef.Get,
		Log:    logger,
	}
	deps.Board.OnChange(handlers.BoardBroadcaster(deps))

	srv := &http.Server{
		Addr:         c.Addr,
		Handler:      handlers.NewRouter(deps),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", c.Addr, err)
	}
	logger.Info("listening",
		zap.String("url", "http://"+ln.Addr().String()+"/"),
		zap.String("res", c.ResourceDir),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		superviseHub(gctx, hubRef)
		return nil
	})
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		if h, ok := hubRef.Get(); ok {
			h.Stop()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// superviseHub runs the current hub and replaces it after a panic. It
// returns once a hub stops normally or ctx is done.
func superviseHub(ctx context.Context, ref *websocket.HubRef) {
	for {
		h, ok := ref.Get()
		if !ok {
			ref.Set(websocket.NewHub(logger))
			continue
		}

		panicked := false
		func() {
			defer func() {
				if r := recover(); r != nil {
					panicked = true
					logger.Error("hub panic", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				}
			}()
			h.Run()
		}()

		if !panicked || ctx.Err() != nil {
			return
		}
		// Make the dead hub's methods no-ops before swapping in a fresh one.
		h.Stop()
		ref.Set(websocket.NewHub(logger))

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}
