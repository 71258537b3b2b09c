package main

import (
	"fmt"
	"strconv"
	"strings"

	"cardviz/internal/cards"
	"cardviz/internal/config"
	"cardviz/internal/images"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [codes-json | code...]",
	Short: "Print the card for each code",
	Long: `Accepts either one JSON array or separate integer arguments.

Example:
  cardviz decode '[0, 1, 11, 12, 13]'
  cardviz decode 52 53`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDecode,
}

var encodeCmd = &cobra.Command{
	Use:   "encode [card...]",
	Short: "Print the JSON code array for cards",
	Long: `Cards are written rank then suit letter (d, c, h, s): 3d, 10s, Ah, 2c.
Jokers are "small" and "big".

Example:
  cardviz encode 3d 4d Ad 2d 3c`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEncode,
}

var (
	renderOut     string
	renderRes     string
	renderScale   float64
	renderColumns int
)

var renderCmd = &cobra.Command{
	Use:   "render [codes-json]",
	Short: "Compose the cards for a code array into one PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOut, "output", "o", "board.png", "output file; the extension picks the format")
	f.StringVar(&renderRes, "res", config.DefaultResourceDir, "card art directory (env CARDVIZ_RES_DIR)")
	f.Float64Var(&renderScale, "scale", config.DefaultBoardScale, "image scale")
	f.IntVar(&renderColumns, "columns", config.DefaultBoardColumns, "cards per row")
}

// codesFromArgs reads a single JSON array or a list of integers.
func codesFromArgs(args []string) ([]int, error) {
	if len(args) == 1 && strings.HasPrefix(strings.TrimSpace(args[0]), "[") {
		return cards.ParseCodes(args[0])
	}
	codes := make([]int, 0, len(args))
	for _, a := range args {
		cv, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", cards.ErrInvalidCode, a)
		}
		if _, err := cards.Decode(cv); err != nil {
			return nil, err
		}
		codes = append(codes, cv)
	}
	return codes, nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	codes, err := codesFromArgs(args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, cv := range codes {
		c := cards.MustDecode(cv)
		fmt.Fprintf(out, "%2d  %-5s  %-11s  %s\n", cv, c.Short(), c.String(), c.ImageName())
	}
	return nil
}

func runEncode(cmd *cobra.Command, args []string) error {
	cs := make([]cards.Card, 0, len(args))
	for _, a := range args {
		c, err := cards.ParseCard(a)
		if err != nil {
			return err
		}
		cs = append(cs, c)
	}
	codes, err := cards.EncodeAll(cs)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cards.FormatCodes(codes))
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	codes, err := cards.ParseCodes(args[0])
	if err != nil {
		return err
	}
	cs, err := cards.DecodeAll(codes)
	if err != nil {
		return err
	}

	res := cfg.ResourceDir
	if cmd.Flags().Changed("res") || res == "" {
		res = renderRes
	}
	store := images.NewStore(res, logger)
	img, err := store.ComposeBoard(cs, renderScale, renderColumns)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, renderOut); err != nil {
		return fmt.Errorf("save %s: %w", renderOut, err)
	}
	logger.Info("rendered board", zap.Int("cards", len(cs)), zap.String("output", renderOut))
	return nil
}
