// Package render turns a scene into ordered, flat-shaded triangles.
//
// Each frame every shape is transformed into camera space, projected,
// culled and collected into one buffer, which is sorted farthest first and
// handed to a Surface. There is no depth buffer; draw order is the only
// visibility mechanism.
package render

import (
	"cmp"
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/taigrr/bazaar/pkg/math3d"
	"github.com/taigrr/bazaar/pkg/scene"
	"github.com/taigrr/bazaar/pkg/shapes"
)

// TileLighting selects the shading path for floor tiles.
type TileLighting int

const (
	TileFlat        TileLighting = iota // darkened base color
	TileSingleLight                     // first enabled light, no shadows
)

func (m TileLighting) String() string {
	switch m {
	case TileFlat:
		return "flat"
	case TileSingleLight:
		return "single"
	}
	return fmt.Sprintf("TileLighting(%d)", int(m))
}

// Settings tunes the quality and cost of a frame.
type Settings struct {
	Margin       float64 // off-screen slack before a triangle is rejected, in pixels
	FarCutoff    float64 // triangles at or beyond this average depth are skipped
	MaxTriangles int     // keep only the nearest N after sorting; 0 means no limit

	Ambient              float64
	AttenuationLinear    float64
	AttenuationQuadratic float64

	// ShadowSamples is 0 for no shadows, 1 for hard shadows and up to 8 for
	// soft shadows sampled across each light's radius.
	ShadowSamples int
	ShadowBias    float64

	TileLighting   TileLighting
	TileFlatFactor float64

	DisableBackfaceCulling bool
}

// DefaultSettings returns the interactive defaults: no shadows, flat tiles.
func DefaultSettings() Settings {
	return Settings{
		Margin:               500,
		FarCutoff:            5000,
		Ambient:              0.2,
		AttenuationLinear:    0,
		AttenuationQuadratic: 0.0001,
		ShadowBias:           0.1,
		TileLighting:         TileFlat,
		TileFlatFactor:       0.8,
	}
}

// RenderTriangle is a visible triangle of the current frame.
type RenderTriangle struct {
	Screen [3]math3d.Vec2
	World  [3]math3d.Vec3
	Normal math3d.Vec3 // outward unit normal, world space
	Depth  float64     // mean camera-space z
	Shape  int         // index into the frame's shape list
	Color  color.RGBA  // material color before lighting
	Tile   bool
}

// FrameStats describes the work done for one frame.
type FrameStats struct {
	Shapes       int // shapes considered
	ShapesCulled int // rejected by the bounding-sphere test
	Triangles    int // triangles examined
	Behind       int // a vertex at or behind the camera
	Far          int // beyond FarCutoff
	Offscreen    int // outside the viewport plus margin
	Backfaces    int
	Dropped      int // cut by MaxTriangles
	Drawn        int
	Shadow       ShadowStats
	Duration     time.Duration
}

// Renderer runs the per-frame pipeline. Its scratch buffers are reused
// across frames and carry no state between them.
type Renderer struct {
	Settings Settings

	rng *rand.Rand
	log *zap.Logger

	shapes []*shapes.Shape
	tris   []RenderTriangle
	camv   []math3d.Vec3
	screen []math3d.Vec2
	valid  []bool
	occ    Occluders
	stats  FrameStats
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSettings replaces the default settings.
func WithSettings(s Settings) Option {
	return func(r *Renderer) { r.Settings = s }
}

// WithRand sets the random source used for soft shadow jitter.
func WithRand(rng *rand.Rand) Option {
	return func(r *Renderer) { r.rng = rng }
}

// WithLogger sets the logger used for per-frame debug output.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) { r.log = l }
}

// NewRenderer creates a renderer with DefaultSettings.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		Settings: DefaultSettings(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return r
}

// Stats returns the statistics of the last frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// Collect transforms, culls and sorts the scene's triangles for a
// width × height viewport. The result is ordered farthest first and is
// overwritten by the next call. ShadeTriangle shades against the scene of
// the latest Collect.
func (r *Renderer) Collect(sc *scene.Scene, width, height int) []RenderTriangle {
	r.stats = FrameStats{}
	r.tris = r.tris[:0]

	cam := sc.Camera
	r.shapes = sc.Shapes()
	center := math3d.V2(float64(width)/2, float64(height)/2)
	view := viewport{
		minX: -r.Settings.Margin,
		minY: -r.Settings.Margin,
		maxX: float64(width) + r.Settings.Margin,
		maxY: float64(height) + r.Settings.Margin,
	}

	for si, sh := range r.shapes {
		r.stats.Shapes++
		if !r.sphereVisible(cam, sh, width, height) {
			r.stats.ShapesCulled++
			continue
		}
		r.transformShape(cam, sh, center)
		r.collectShape(si, sh, view)
	}

	slices.SortStableFunc(r.tris, compareDepth)

	if n := r.Settings.MaxTriangles; n > 0 && len(r.tris) > n {
		r.stats.Dropped = len(r.tris) - n
		r.tris = r.tris[len(r.tris)-n:]
	}

	// Shape indices in r.tris refer to this frame's shape list.
	r.occ = Occluders{Shapes: r.shapes, Bias: r.Settings.ShadowBias}
	return r.tris
}

// compareDepth orders farthest first. Equal depths fall back to the screen
// centroid so the order does not depend on insertion order.
func compareDepth(a, b RenderTriangle) int {
	if c := cmp.Compare(b.Depth, a.Depth); c != 0 {
		return c
	}
	ca, cb := screenCentroid(a.Screen), screenCentroid(b.Screen)
	if c := cmp.Compare(ca.X, cb.X); c != 0 {
		return c
	}
	return cmp.Compare(ca.Y, cb.Y)
}

func screenCentroid(p [3]math3d.Vec2) math3d.Vec2 {
	return math3d.V2((p[0].X+p[1].X+p[2].X)/3, (p[0].Y+p[1].Y+p[2].Y)/3)
}

type viewport struct {
	minX, minY, maxX, maxY float64
}

// sphereVisible rejects shapes whose bounding sphere is entirely behind the
// camera, beyond the far cutoff, or off one side of the widened viewport.
func (r *Renderer) sphereVisible(cam *scene.Camera, sh *shapes.Shape, width, height int) bool {
	b := sh.Bounds()
	c := cam.ToCamera(b.Center())
	rad := b.Radius()

	if c.Z+rad <= 0 || c.Z-rad >= r.farCutoff() {
		return false
	}

	focal := cam.Focal()
	limX := (float64(width)/2 + r.Settings.Margin) / focal
	limY := (float64(height)/2 + r.Settings.Margin) / focal
	far := c.Z + rad
	switch {
	case c.X-rad > 0 && (c.X-rad)/far > limX:
		return false
	case c.X+rad < 0 && -(c.X+rad)/far > limX:
		return false
	case c.Y-rad > 0 && (c.Y-rad)/far > limY:
		return false
	case c.Y+rad < 0 && -(c.Y+rad)/far > limY:
		return false
	}
	return true
}

func (r *Renderer) transformShape(cam *scene.Camera, sh *shapes.Shape, center math3d.Vec2) {
	n := len(sh.Vertices)
	r.camv = slices.Grow(r.camv[:0], n)[:n]
	r.screen = slices.Grow(r.screen[:0], n)[:n]
	r.valid = slices.Grow(r.valid[:0], n)[:n]

	for i, v := range sh.Vertices {
		cv := cam.ToCamera(v)
		r.camv[i] = cv
		r.screen[i], r.valid[i] = cam.Project(cv, center)
	}
}

func (r *Renderer) collectShape(si int, sh *shapes.Shape, view viewport) {
	for ti, t := range sh.Triangles {
		r.stats.Triangles++

		// A triangle with any vertex behind the camera cannot be projected.
		if !r.valid[t[0]] || !r.valid[t[1]] || !r.valid[t[2]] {
			r.stats.Behind++
			continue
		}

		depth := (r.camv[t[0]].Z + r.camv[t[1]].Z + r.camv[t[2]].Z) / 3
		if depth >= r.farCutoff() {
			r.stats.Far++
			continue
		}

		p := [3]math3d.Vec2{r.screen[t[0]], r.screen[t[1]], r.screen[t[2]]}
		if offscreen(p, view) {
			r.stats.Offscreen++
			continue
		}

		// Outward normals facing the camera wind with negative screen area.
		if !r.Settings.DisableBackfaceCulling && math3d.SignedArea2(p[0], p[1], p[2]) >= 0 {
			r.stats.Backfaces++
			continue
		}

		w := [3]math3d.Vec3{sh.Vertices[t[0]], sh.Vertices[t[1]], sh.Vertices[t[2]]}
		normal := math3d.FaceNormal(w[0], w[1], w[2])
		if normal.IsZero() {
			continue
		}

		r.tris = append(r.tris, RenderTriangle{
			Screen: p,
			World:  w,
			Normal: normal,
			Depth:  depth,
			Shape:  si,
			Color:  sh.TriangleColor(ti),
			Tile:   sh.Tile,
		})
	}
}

func (r *Renderer) farCutoff() float64 {
	if r.Settings.FarCutoff <= 0 {
		return math.Inf(1)
	}
	return r.Settings.FarCutoff
}

func offscreen(p [3]math3d.Vec2, v viewport) bool {
	minX := min(p[0].X, p[1].X, p[2].X)
	maxX := max(p[0].X, p[1].X, p[2].X)
	minY := min(p[0].Y, p[1].Y, p[2].Y)
	maxY := max(p[0].Y, p[1].Y, p[2].Y)
	return maxX < v.minX || minX > v.maxX || maxY < v.minY || minY > v.maxY
}

// ShadeTriangle lights one collected triangle at its centroid.
func (r *Renderer) ShadeTriangle(sc *scene.Scene, t *RenderTriangle) color.RGBA {
	p := math3d.Centroid(t.World[0], t.World[1], t.World[2])
	if t.Tile {
		return ShadeTile(p, t.Normal, t.Color, sc.Lights, r.Settings)
	}

	var shadow ShadowFunc
	if r.Settings.ShadowSamples > 0 && r.occ.Enabled() {
		shadow = func(_ int, l *scene.Light) float64 {
			return r.occ.Shadow(p, t.Normal, l, r.Settings.ShadowSamples, r.rng, t.Shape)
		}
	}
	return Shade(p, t.Normal, t.Color, sc.Lights, r.Settings, shadow)
}

// Render draws one frame of sc onto dst and returns its statistics.
func (r *Renderer) Render(sc *scene.Scene, dst Surface) FrameStats {
	start := time.Now()
	width, height := dst.Size()
	tris := r.Collect(sc, width, height)

	for i := range tris {
		dst.DrawTriangle(tris[i].Screen, r.ShadeTriangle(sc, &tris[i]))
	}

	r.stats.Drawn = len(tris)
	r.stats.Shadow = r.occ.Stats
	r.stats.Duration = time.Since(start)

	r.log.Debug("frame rendered",
		zap.Int("shapes", r.stats.Shapes),
		zap.Int("triangles", r.stats.Triangles),
		zap.Int("drawn", r.stats.Drawn),
		zap.Int("backfaces", r.stats.Backfaces),
		zap.Int("shadow_rays", r.stats.Shadow.Rays),
		zap.Duration("took", r.stats.Duration),
	)
	return r.stats
}

// ShadowSamples clamps a requested sample count to the supported range.
func ShadowSamples(n int) int {
	return max(0, min(maxShadowSample, n))
}
