// Package images loads card artwork and scales it for the picker and the
// board.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"math"
	"path/filepath"
	"sync"

	"cardviz/internal/cards"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

var ErrInvalidScale = errors.New("invalid scale")

type cacheKey struct {
	name  string
	scale float64
}

// Store caches decoded artwork and scaled PNG encodings. Cards without a
// readable file under dir get a generated placeholder.
type Store struct {
	dir string
	log *zap.Logger

	mu        sync.Mutex
	originals map[string]image.Image
	encoded   map[cacheKey][]byte
}

func NewStore(dir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		dir:       dir,
		log:       log,
		originals: map[string]image.Image{},
		encoded:   map[cacheKey][]byte{},
	}
}

// Original returns the unscaled artwork for c.
func (s *Store) Original(c cards.Card) image.Image {
	name := c.ImageName()

	s.mu.Lock()
	defer s.mu.Unlock()
	if img, ok := s.originals[name]; ok {
		return img
	}
	img := s.load(c, name)
	s.originals[name] = img
	return img
}

func (s *Store) load(c cards.Card, name string) image.Image {
	if s.dir == "" {
		return Placeholder(c)
	}
	path := filepath.Join(s.dir, name)
	img, err := imaging.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug("card art missing, using placeholder", zap.String("path", path))
		} else {
			s.log.Warn("card art unreadable, using placeholder", zap.String("path", path), zap.Error(err))
		}
		return Placeholder(c)
	}
	return img
}

// Scaled resizes the artwork for c proportionally by factor.
func (s *Store) Scaled(c cards.Card, factor float64) (image.Image, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScale, factor)
	}
	src := s.Original(c)
	if factor == 1 {
		return src, nil
	}
	w, h := ScaledSize(src.Bounds(), factor)
	return imaging.Resize(src, w, h, imaging.Lanczos), nil
}

// PNG returns the PNG encoding of Scaled(c, factor).
func (s *Store) PNG(c cards.Card, factor float64) ([]byte, error) {
	key := cacheKey{name: c.ImageName(), scale: factor}
	s.mu.Lock()
	if b, ok := s.encoded[key]; ok {
		s.mu.Unlock()
		return b, nil
	}
	s.mu.Unlock()

	img, err := s.Scaled(c, factor)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode %s: %w", key.name, err)
	}

	s.mu.Lock()
	s.encoded[key] = buf.Bytes()
	s.mu.Unlock()
	return buf.Bytes(), nil
}

// ScaledSize truncates each dimension, never below 1px.
func ScaledSize(r image.Rectangle, factor float64) (int, int) {
	w := int(float64(r.Dx()) * factor)
	h := int(float64(r.Dy()) * factor)
	return max(w, 1), max(h, 1)
}
