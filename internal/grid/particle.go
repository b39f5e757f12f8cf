package grid

import "math"

// State is the lifecycle stage of a particle.
type State uint8

const (
	Resting State = iota
	Excited
	Settling
)

func (s State) String() string {
	switch s {
	case Resting:
		return "resting"
	case Excited:
		return "excited"
	case Settling:
		return "settling"
	default:
		return "unknown"
	}
}

// Particle is one point of the lattice.
//
// A resting particle sits exactly on its rest coordinate with zero velocity.
type Particle struct {
	RestX, RestY float64
	X, Y         float64
	VX, VY       float64
	State        State

	// settle tween: start point and time spent so far
	fromX, fromY float64
	elapsed      float64
}

// Excited reports whether the particle is still moving or settling.
func (p *Particle) Excited() bool {
	return p.State != Resting
}

// AtRest reports whether the particle satisfies the resting invariant.
func (p *Particle) AtRest() bool {
	return p.X == p.RestX && p.Y == p.RestY && p.VX == 0 && p.VY == 0
}

// push adds an impulse and makes sure the particle takes part in the next step.
func (p *Particle) push(dx, dy float64) {
	p.VX += dx
	p.VY += dy
	p.State = Excited
	p.elapsed = 0
}

func (p *Particle) distanceTo(x, y float64) float64 {
	return math.Hypot(p.X-x, p.Y-y)
}

// maxParticles bounds the lattice. A gap too fine for the box is widened until
// the grid fits.
const maxParticles = 100_000

// Generate tiles a width x height box with particles spaced gap apart,
// plus one extra row and column past the far edges.
func Generate(width, height, gap float64) []Particle {
	if !(width > 0) || !(height > 0) || !(gap > 0) ||
		math.IsInf(width, 0) || math.IsInf(height, 0) || math.IsInf(gap, 0) {
		return nil
	}
	gap = fitGap(width, height, gap)
	cols := int(math.Ceil(width/gap)) + 1
	rows := int(math.Ceil(height/gap)) + 1

	particles := make([]Particle, 0, cols*rows)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			x := float64(i) * gap
			y := float64(j) * gap
			particles = append(particles, Particle{RestX: x, RestY: y, X: x, Y: y})
		}
	}
	return particles
}

// latticeSize is the particle count for a gap, computed in float64 so it
// cannot overflow.
func latticeSize(width, height, gap float64) float64 {
	return (math.Ceil(width/gap) + 1) * (math.Ceil(height/gap) + 1)
}

// fitGap returns gap, widened when needed so the lattice holds at most
// maxParticles.
func fitGap(width, height, gap float64) float64 {
	if latticeSize(width, height, gap) <= maxParticles {
		return gap
	}
	gap = math.Max(gap, math.Sqrt(width)*math.Sqrt(height/maxParticles))
	gap = math.Max(gap, math.Max(width, height)/(maxParticles/2))
	for latticeSize(width, height, gap) > maxParticles {
		gap *= 1.05
	}
	return gap
}

// CountExcited returns how many particles are not resting.
func CountExcited(ps []Particle) int {
	n := 0
	for i := range ps {
		if ps[i].Excited() {
			n++
		}
	}
	return n
}
