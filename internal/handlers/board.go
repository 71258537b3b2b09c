package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"cardviz/internal/board"
	"cardviz/internal/cards"
	"cardviz/internal/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// selectRequest names a card either by code or by its short form ("As").
type selectRequest struct {
	Code *int   `json:"code"`
	Card string `json:"card"`
}

func (r selectRequest) resolve() (cards.Card, error) {
	switch {
	case r.Code != nil:
		return cards.Decode(*r.Code)
	case strings.TrimSpace(r.Card) != "":
		return cards.ParseCard(r.Card)
	}
	return cards.Card{}, fmt.Errorf("%w: code or card is required", ErrInvalidRequest)
}

type confirmRequest struct {
	Text string `json:"text"`
}

func GetBoardHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, NewBoardView(d.Board.Snapshot(), d.Board.Columns()))
	}
}

func SelectHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req selectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeAPIError(c, d.Log, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
			return
		}
		snap, err := selectCard(c.Request.Context(), d.Board, req)
		if err != nil {
			writeAPIError(c, d.Log, err)
			return
		}
		c.JSON(http.StatusOK, NewBoardView(snap, d.Board.Columns()))
	}
}

func ConfirmHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req confirmRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeAPIError(c, d.Log, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
			return
		}
		snap, err := confirmText(c.Request.Context(), d.Board, req.Text)
		if err != nil {
			writeAPIError(c, d.Log, err)
			return
		}
		c.JSON(http.StatusOK, NewBoardView(snap, d.Board.Columns()))
	}
}

func ResetHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "board.reset")
		defer span.End()
		c.JSON(http.StatusOK, NewBoardView(d.Board.Reset(), d.Board.Columns()))
	}
}

// selectCard and confirmText are shared by the HTTP and websocket paths.
func selectCard(ctx context.Context, b *board.Board, req selectRequest) (board.Snapshot, error) {
	_, span := tracing.StartSpan(ctx, "board.select")
	defer span.End()

	card, err := req.resolve()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return board.Snapshot{}, err
	}
	snap, err := b.Select(card)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return board.Snapshot{}, err
	}
	span.SetAttributes(attribute.String("card", card.Short()), attribute.Int("board.count", snap.Count()))
	return snap, nil
}

func confirmText(ctx context.Context, b *board.Board, text string) (board.Snapshot, error) {
	_, span := tracing.StartSpan(ctx, "board.confirm")
	defer span.End()

	snap, err := b.Confirm(text)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return board.Snapshot{}, err
	}
	span.SetAttributes(attribute.Int("board.count", snap.Count()))
	return snap, nil
}
