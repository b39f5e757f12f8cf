package grid

// ApplyInertia pushes particles within the proximity radius of (x, y) away from
// the pointer. The push scales with pointer speed and fades linearly to zero at
// the radius. It returns the number of particles affected.
func ApplyInertia(ps []Particle, x, y, speed float64, p Params) int {
	radius := p.ProximityRadius
	if radius <= 0 {
		return 0
	}
	speedFactor := p.speedFactor(speed)
	n := 0
	for i := range ps {
		d := ps[i].distanceTo(x, y)
		if !(d < radius) {
			continue
		}
		force := speedFactor * (1 - d/radius) * p.ShockStrength
		dx, dy := direction(ps[i].X-x, ps[i].Y-y, d)
		ps[i].push(dx*force, dy*force)
		n++
	}
	return n
}

// ApplyShockwave pushes particles within the shock radius of (x, y) outward.
// It returns the number of particles affected.
func ApplyShockwave(ps []Particle, x, y float64, p Params) int {
	radius := p.ShockRadius
	if radius <= 0 {
		return 0
	}
	n := 0
	for i := range ps {
		d := ps[i].distanceTo(x, y)
		if !(d < radius) {
			continue
		}
		force := (1 - d/radius) * p.ShockStrength
		dx, dy := direction(ps[i].X-x, ps[i].Y-y, d)
		ps[i].push(dx*force, dy*force)
		n++
	}
	return n
}

// direction returns the unit vector of (dx, dy). A zero vector points along +X.
func direction(dx, dy, d float64) (float64, float64) {
	if d == 0 {
		return 1, 0
	}
	return dx / d, dy / d
}
