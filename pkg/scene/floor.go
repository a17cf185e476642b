package scene

import (
	"cmp"
	"fmt"
	"image/color"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/taigrr/bazaar/internal/logger"
	"github.com/taigrr/bazaar/pkg/math3d"
	"github.com/taigrr/bazaar/pkg/shapes"
)

// Floor defaults.
const (
	DefaultTileSize       = 400.0
	DefaultRenderDistance = 20
	DefaultRefreshFrames  = 5
	DefaultMoveThreshold  = 100.0
	tileColorSwing        = 20.0
)

// DefaultFloorColor is the base tile color before per-tile variation.
var DefaultFloorColor = color.RGBA{80, 120, 60, 255}

// TileKey is an integer tile coordinate.
type TileKey struct {
	X, Z int
}

func compareKeys(a, b TileKey) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Z, b.Z)
}

// TiledFloor is a camera-following grid of horizontal plane tiles. Tile
// (tx, tz) covers [tx·size, (tx+1)·size) on X and the same on Z. After an
// update exactly the tiles within RenderDistance (Chebyshev) of the
// camera's tile are present.
type TiledFloor struct {
	TileSize       float64
	RenderDistance int
	Subdivisions   int
	Y              float64
	Color          color.RGBA

	tiles   map[TileKey]*shapes.Shape
	ordered []*shapes.Shape
	keys    []TileKey

	lastX, lastZ float64
	primed       bool
	generation   int
}

// NewTiledFloor creates an empty floor. Tiles appear on the first Update.
func NewTiledFloor(tileSize float64, renderDistance int) *TiledFloor {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return &TiledFloor{
		TileSize:       tileSize,
		RenderDistance: max(0, renderDistance),
		Subdivisions:   1,
		Color:          DefaultFloorColor,
		tiles:          make(map[TileKey]*shapes.Shape),
	}
}

// TileAt returns the key of the tile containing world (x, z).
func (f *TiledFloor) TileAt(x, z float64) TileKey {
	return TileKey{
		X: int(math.Floor(x / f.TileSize)),
		Z: int(math.Floor(z / f.TileSize)),
	}
}

// Update regenerates tiles around (camX, camZ) if this is the first call
// or the camera moved at least half a tile along X or Z since the last
// regeneration.
// It reports whether tiles were regenerated.
func (f *TiledFloor) Update(camX, camZ float64) bool {
	if f.primed {
		half := f.TileSize / 2
		if math.Abs(camX-f.lastX) < half && math.Abs(camZ-f.lastZ) < half {
			return false
		}
	}
	f.regenerate(camX, camZ)
	return true
}

func (f *TiledFloor) regenerate(camX, camZ float64) {
	f.lastX, f.lastZ = camX, camZ
	f.primed = true
	f.generation++

	center := f.TileAt(camX, camZ)
	rd := f.RenderDistance

	removed := 0
	for k := range f.tiles {
		if chebyshev(k, center) > rd {
			delete(f.tiles, k)
			removed++
		}
	}

	added := 0
	for tx := center.X - rd; tx <= center.X+rd; tx++ {
		for tz := center.Z - rd; tz <= center.Z+rd; tz++ {
			k := TileKey{tx, tz}
			if _, ok := f.tiles[k]; ok {
				continue
			}
			f.tiles[k] = f.newTile(k)
			added++
		}
	}

	f.keys = f.keys[:0]
	for k := range f.tiles {
		f.keys = append(f.keys, k)
	}
	slices.SortFunc(f.keys, compareKeys)
	f.ordered = f.ordered[:0]
	for _, k := range f.keys {
		f.ordered = append(f.ordered, f.tiles[k])
	}

	logger.Debug("floor tiles regenerated",
		zap.Int("tile_x", center.X),
		zap.Int("tile_z", center.Z),
		zap.Int("added", added),
		zap.Int("removed", removed),
		zap.Int("total", len(f.tiles)),
	)
}

func (f *TiledFloor) newTile(k TileKey) *shapes.Shape {
	pos := math3d.V3(
		(float64(k.X)+0.5)*f.TileSize,
		f.Y,
		(float64(k.Z)+0.5)*f.TileSize,
	)
	tile := shapes.NewPlane(
		fmt.Sprintf("tile_%d_%d", k.X, k.Z),
		pos, f.TileSize, f.TileSize, f.Subdivisions, shapes.Horizontal,
		tileColor(f.Color, k),
	)
	tile.Tile = true
	return tile
}

// tileColor shifts the base color by a smooth pattern so neighboring
// tiles are distinguishable.
func tileColor(base color.RGBA, k TileKey) color.RGBA {
	v := math.Sin(float64(k.X)*0.1) * math.Cos(float64(k.Z)*0.1) * tileColorSwing
	shift := func(c uint8) uint8 {
		return uint8(max(0, min(255, math.Floor(float64(c)+v))))
	}
	return color.RGBA{shift(base.R), shift(base.G), shift(base.B), base.A}
}

func chebyshev(a, b TileKey) int {
	return max(abs(a.X-b.X), abs(a.Z-b.Z))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Tiles returns the present tiles ordered by key. The slice is reused by
// the next regeneration.
func (f *TiledFloor) Tiles() []*shapes.Shape {
	return f.ordered
}

// Keys returns the present tile keys in ascending (X, Z) order.
func (f *TiledFloor) Keys() []TileKey {
	return f.keys
}

// Len returns the number of present tiles.
func (f *TiledFloor) Len() int {
	return len(f.tiles)
}

// Tile returns the tile at k, or nil.
func (f *TiledFloor) Tile(k TileKey) *shapes.Shape {
	return f.tiles[k]
}

// Generation counts regenerations.
func (f *TiledFloor) Generation() int {
	return f.generation
}

// Reset drops every tile; the next Update regenerates.
func (f *TiledFloor) Reset() {
	clear(f.tiles)
	f.keys = f.keys[:0]
	f.ordered = f.ordered[:0]
	f.primed = false
}
