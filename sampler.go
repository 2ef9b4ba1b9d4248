package heart

import (
	"math"
	"sync"

	"github.com/soypat/heart/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// SamplerConfig controls the ray marching and root refinement of a Sampler.
type SamplerConfig struct {
	// Step is the coarse scan increment along each ray.
	Step float64 `json:"step"`
	// MaxRadius is the exclusive upper bound of the scanned radius.
	MaxRadius float64 `json:"max_radius"`
	// Iterations is the number of bisection halvings applied to
	// every bracket found by the coarse scan.
	Iterations int `json:"iterations"`
	// Concurrency is the number of goroutines rays are spread across.
	// Values below 1 mean sequential sampling.
	Concurrency int `json:"concurrency"`
}

// DefaultSamplerConfig returns the configuration used by Sample:
// 0.05 scan step, radius 5, 10 bisection iterations, sequential.
func DefaultSamplerConfig() SamplerConfig {
	return SamplerConfig{
		Step:        0.05,
		MaxRadius:   5,
		Iterations:  10,
		Concurrency: 1,
	}
}

// Validate checks the configuration for values that would make
// the coarse scan ill-defined.
func (cfg SamplerConfig) Validate() error {
	switch {
	case !(cfg.Step > 0) || math.IsInf(cfg.Step, 0):
		return errMsg("scan step must be positive and finite")
	case !(cfg.MaxRadius > 0) || math.IsInf(cfg.MaxRadius, 0):
		return errMsg("max radius must be positive and finite")
	case cfg.Iterations < 0:
		return errMsg("negative bisection iterations")
	}
	return nil
}

// Sampler finds the points where rays cast from the origin cross the
// zero set of a field. A Sampler holds no mutable state and is safe
// for concurrent use.
type Sampler struct {
	field Field3
	cfg   SamplerConfig
}

// NewSampler returns a sampler for field f.
func NewSampler(f Field3, cfg SamplerConfig) (*Sampler, error) {
	if f == nil {
		return nil, errMsg("nil field")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Sampler{field: f, cfg: cfg}, nil
}

// Sample returns the heart surface point cloud using the default configuration.
// See Sampler.Sample.
func Sample(requested int) Cloud {
	s := Sampler{field: Heart(), cfg: DefaultSamplerConfig()}
	return s.Sample(requested)
}

// Config returns the sampler's configuration.
func (s *Sampler) Config() SamplerConfig { return s.cfg }

// Sample casts floor(sqrt(requested))² rays from the origin and returns
// every zero crossing found. requested is a density hint, the resulting
// number of points depends on how many times each ray crosses the surface.
// Points are ordered by ray (theta-major, then phi) and by increasing radius
// within a ray. The result for a given requested value is always identical.
// A requested value <= 0 returns an empty cloud.
func (s *Sampler) Sample(requested int) Cloud {
	steps := GridSteps(requested)
	if steps == 0 {
		return nil
	}
	rows := make([]Cloud, steps)
	workers := s.cfg.Concurrency
	if workers > steps {
		workers = steps
	}
	if workers <= 1 {
		var roots []float64
		for i := range rows {
			rows[i], roots = s.sampleRow(nil, roots, i, steps)
		}
		return joinRows(rows)
	}
	var wg sync.WaitGroup
	next := make(chan int)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			var roots []float64
			for i := range next {
				rows[i], roots = s.sampleRow(nil, roots, i, steps)
			}
		}()
	}
	for i := 0; i < steps; i++ {
		next <- i
	}
	close(next)
	wg.Wait()
	return joinRows(rows)
}

// sampleRow appends the points of all rays at polar index i to dst.
// roots is scratch space and is returned for reuse.
func (s *Sampler) sampleRow(dst Cloud, roots []float64, i, steps int) (Cloud, []float64) {
	theta := float64(i) * pi / float64(steps)
	for j := 0; j < steps; j++ {
		phi := float64(j) * tau / float64(steps)
		dir := d3.Spherical(theta, phi)
		roots = s.AppendRoots(roots[:0], dir)
		for _, r := range roots {
			dst = append(dst, r3.Scale(r, dir))
		}
	}
	return dst, roots
}

func joinRows(rows []Cloud) Cloud {
	n := 0
	for _, row := range rows {
		n += len(row)
	}
	c := make(Cloud, 0, n)
	for _, row := range rows {
		c = append(c, row...)
	}
	return c
}

// GridSteps returns the number of polar and azimuthal steps used to
// sample a requested point density.
func GridSteps(requested int) int {
	if requested <= 0 {
		return 0
	}
	return int(math.Floor(math.Sqrt(float64(requested))))
}

// Directions returns the steps² unit ray directions in sampling order.
// The polar angle theta spans [0, π) measured from +Y and is the
// outer loop; the azimuth phi spans [0, 2π) and is the inner loop.
func Directions(steps int) []r3.Vec {
	if steps <= 0 {
		return nil
	}
	dirs := make([]r3.Vec, 0, steps*steps)
	for i := 0; i < steps; i++ {
		theta := float64(i) * pi / float64(steps)
		for j := 0; j < steps; j++ {
			phi := float64(j) * tau / float64(steps)
			dirs = append(dirs, d3.Spherical(theta, phi))
		}
	}
	return dirs
}

// AppendRoots appends to dst the radii r in [0, MaxRadius) at which the
// field crosses zero along dir, in increasing order.
//
// The ray is scanned by adding Step to the radius, starting at the origin.
// A crossing is a strictly negative product of consecutive samples, so a
// sample that lands exactly on zero does not count. Each crossing is refined
// with a fixed number of bisections of [r-Step, r] and reported as the
// midpoint of the final bracket.
func (s *Sampler) AppendRoots(dst []float64, dir r3.Vec) []float64 {
	step := s.cfg.Step
	prev := s.eval(0, dir)
	for r := step; r < s.cfg.MaxRadius; r += step {
		val := s.eval(r, dir)
		if prev*val < 0 {
			dst = append(dst, s.bisect(r-step, r, prev, dir))
		}
		prev = val
	}
	return dst
}

// bisect refines the bracket [a, b] where fa is the field value at a and
// f(b) has the opposite sign.
func (s *Sampler) bisect(a, b, fa float64, dir r3.Vec) float64 {
	for k := 0; k < s.cfg.Iterations; k++ {
		mid := (a + b) / 2
		fmid := s.eval(mid, dir)
		if fmid*fa < 0 {
			b = mid
		} else {
			a = mid
			fa = fmid
		}
	}
	return (a + b) / 2
}

func (s *Sampler) eval(r float64, dir r3.Vec) float64 {
	return s.field.Evaluate(r3.Scale(r, dir))
}
