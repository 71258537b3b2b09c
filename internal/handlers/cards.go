package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"cardviz/internal/cards"

	"github.com/gin-gonic/gin"
)

func GridHandler() gin.HandlerFunc {
	rows := gridView()
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rows": rows})
	}
}

// DecodeHandler renders ?codes=[..] without touching the board.
func DecodeHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		codes, err := cards.ParseCodes(c.Query("codes"))
		if err != nil {
			writeAPIError(c, d.Log, err)
			return
		}
		views := make([]CardView, 0, len(codes))
		for _, cv := range codes {
			views = append(views, newCardView(cards.MustDecode(cv), cv, sizeBoard))
		}
		c.JSON(http.StatusOK, gin.H{"codes": codes, "cards": views})
	}
}

// EncodeHandler turns ?cards=3d,As,big into codes.
func EncodeHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cs []cards.Card
		for _, part := range strings.Split(c.Query("cards"), ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			card, err := cards.ParseCard(part)
			if err != nil {
				writeAPIError(c, d.Log, err)
				return
			}
			cs = append(cs, card)
		}
		codes, err := cards.EncodeAll(cs)
		if err != nil {
			writeAPIError(c, d.Log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"codes": codes, "text": cards.FormatCodes(codes)})
	}
}

func CardImageHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cv, err := strconv.Atoi(c.Param("code"))
		if err != nil {
			writeAPIError(c, d.Log, fmt.Errorf("%w: %q", cards.ErrInvalidCode, c.Param("code")))
			return
		}
		card, err := cards.Decode(cv)
		if err != nil {
			writeAPIError(c, d.Log, err)
			return
		}
		scale, err := scaleFor(d, c.DefaultQuery("size", sizeBoard))
		if err != nil {
			writeAPIError(c, d.Log, err)
			return
		}
		data, err := d.Images.PNG(card, scale)
		if err != nil {
			writeAPIError(c, d.Log, err)
			return
		}
		c.Header("Cache-Control", "max-age=3600")
		c.Data(http.StatusOK, "image/png", data)
	}
}

func scaleFor(d Deps, size string) (float64, error) {
	switch size {
	case sizeGrid:
		return d.Config.GridScale, nil
	case sizeBoard:
		return d.Config.BoardScale, nil
	case sizeFull:
		return 1, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSize, size)
}
