package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cardviz/internal/cards"
	"cardviz/internal/config"
	"cardviz/pkg/websocket"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup(t *testing.T) *bytes.Buffer {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.Default()
	cfg.ResourceDir = t.TempDir()
	var buf bytes.Buffer
	return &buf
}

func TestDecodeCmd(t *testing.T) {
	out := setup(t)
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	require.NoError(t, runDecode(cmd, []string{"[0, 1, 11, 12, 13]"}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "3♦")
	assert.Contains(t, lines[2], "A♦")
	assert.Contains(t, lines[2], "1d.jpg")
	assert.Contains(t, lines[4], "3♣")

	out.Reset()
	require.NoError(t, runDecode(cmd, []string{"52", "53"}))
	assert.Contains(t, out.String(), "small joker")
	assert.Contains(t, out.String(), "red_joker.jpg")
}

func TestDecodeCmdRejectsBadInput(t *testing.T) {
	out := setup(t)
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	assert.ErrorIs(t, runDecode(cmd, []string{"[1, 2"}), cards.ErrInvalidJSON)
	assert.ErrorIs(t, runDecode(cmd, []string{"x"}), cards.ErrInvalidCode)
	assert.ErrorIs(t, runDecode(cmd, []string{"54"}), cards.ErrInvalidCode)
	assert.Empty(t, out.String())
}

func TestEncodeCmd(t *testing.T) {
	out := setup(t)
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	require.NoError(t, runEncode(cmd, []string{"3d", "4d", "Ad", "2d", "3c", "2s", "small", "big"}))
	assert.Equal(t, "[0,1,11,12,13,51,52,53]\n", out.String())

	assert.ErrorIs(t, runEncode(cmd, []string{"1x"}), cards.ErrInvalidCard)
}

func TestRenderCmd(t *testing.T) {
	setup(t)
	renderOut = filepath.Join(t.TempDir(), "board.png")
	renderScale = config.DefaultBoardScale
	renderColumns = config.DefaultBoardColumns

	require.NoError(t, runRender(&cobra.Command{}, []string{"[0, 53]"}))
	img, err := imaging.Open(renderOut)
	require.NoError(t, err)
	assert.Equal(t, 4+2*(60+4), img.Bounds().Dx())
	assert.Equal(t, 4+84+4, img.Bounds().Dy())

	assert.ErrorIs(t, runRender(&cobra.Command{}, []string{"not json"}), cards.ErrInvalidJSON)
}

func TestApplyServeFlags(t *testing.T) {
	setup(t)
	cmd := &cobra.Command{}
	cmd.Flags().IntVar(&boardColumns, "columns", config.DefaultBoardColumns, "")
	cmd.Flags().StringVar(&serveAddr, "addr", config.DefaultAddr, "")
	require.NoError(t, cmd.Flags().Set("columns", "5"))

	got, err := applyServeFlags(cmd, cfg)
	require.NoError(t, err)
	assert.Equal(t, 5, got.BoardColumns)
	assert.Equal(t, config.DefaultAddr, got.Addr)

	require.NoError(t, cmd.Flags().Set("columns", "0"))
	_, err = applyServeFlags(cmd, cfg)
	assert.Error(t, err)
}

func TestSuperviseHubReturnsWhenHubStops(t *testing.T) {
	setup(t)
	hub := websocket.NewHub(nil)
	ref := websocket.NewHubRef(hub)

	done := make(chan struct{})
	go func() {
		superviseHub(context.Background(), ref)
		close(done)
	}()
	hub.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("superviseHub did not return")
	}
}
