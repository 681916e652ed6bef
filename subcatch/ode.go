package subcatch

import "math"

// integrateODE advances the ponded-depth ODE (spec §4.4):
//
//	dD/dt = i - alpha*max(D-dStore,0)^(5/3)
//
// over one sub-area step. i is treated as step-constant. The dry portion of
// the step (while D <= dStore) is handled linearly; the integrator below is
// invoked only for the remaining duration tx during which D > dStore. depth
// is clamped to >= 0 on return.
func integrateODE(depth, inflow, alpha, dStore, tStep float64) (newDepth, tx float64) {
	if tStep <= 0 {
		return depth, 0
	}

	// dry portion: time (clamped to [0,tStep]) for depth to reach dStore
	// under a constant inflow rate, moving linearly.
	var tWet float64
	switch {
	case depth >= dStore:
		tWet = 0
	case inflow <= 0:
		// never reaches dStore this step; integrate nothing, drain linearly
		d := depth + inflow*tStep
		if d < 0 {
			d = 0
		}
		return d, 0
	default:
		tWet = (dStore - depth) / inflow
		if tWet >= tStep {
			d := depth + inflow*tStep
			if d < 0 {
				d = 0
			}
			return d, 0
		}
	}

	tx = tStep - tWet
	d0 := dStore
	if tWet == 0 {
		d0 = depth
	}

	d := rungeKuttaAdaptive(d0, inflow, alpha, dStore, tx)
	if d < 0 {
		d = 0
	}
	return d, tx
}

// derivative of the ponded-depth ODE.
func ponded(d, inflow, alpha, dStore float64) float64 {
	excess := d - dStore
	if excess <= 0 {
		return inflow
	}
	return inflow - alpha*math.Pow(excess, 5.0/3.0)
}

// rungeKuttaAdaptive integrates ponded() over [0,tx] starting at d0 using a
// classical RK4 step with step-doubling error control against ODETol, a
// fixed-point generalization of the Runge-Kutta family referenced by spec
// §4.4 as "collaborator" — kept in-core here since the ODE is itself a
// named component (§2).
func rungeKuttaAdaptive(d0, inflow, alpha, dStore, tx float64) float64 {
	if tx <= 0 {
		return d0
	}
	const maxHalvings = 20
	h := tx
	d := d0
	remaining := tx
	for remaining > 1e-12 {
		if h > remaining {
			h = remaining
		}
		full := rk4Step(d, inflow, alpha, dStore, h)
		half1 := rk4Step(d, inflow, alpha, dStore, h/2)
		half2 := rk4Step(half1, inflow, alpha, dStore, h/2)
		err := math.Abs(half2 - full)
		tol := ODETol * (1 + math.Abs(d))
		halvings := 0
		for err > tol && halvings < maxHalvings {
			h /= 2
			full = rk4Step(d, inflow, alpha, dStore, h)
			half1 = rk4Step(d, inflow, alpha, dStore, h/2)
			half2 = rk4Step(half1, inflow, alpha, dStore, h/2)
			err = math.Abs(half2 - full)
			tol = ODETol * (1 + math.Abs(d))
			halvings++
		}
		d = half2
		remaining -= h
		if halvings == 0 {
			h *= 2 // widen back out when convergence was easy
		}
	}
	return d
}

func rk4Step(d, inflow, alpha, dStore, h float64) float64 {
	k1 := ponded(d, inflow, alpha, dStore)
	k2 := ponded(d+h/2*k1, inflow, alpha, dStore)
	k3 := ponded(d+h/2*k2, inflow, alpha, dStore)
	k4 := ponded(d+h*k3, inflow, alpha, dStore)
	return d + h/6*(k1+2*k2+2*k3+k4)
}
