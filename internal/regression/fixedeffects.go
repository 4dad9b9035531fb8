package regression

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"cspspay/internal/dataset"
)

// PanelObservation is one (entity, period) data point of a panel.
type PanelObservation struct {
	Entity string
	Period int
	X      float64
	Y      float64
}

// FixedEffectsResult holds the statistics of a two-way fixed-effects fit.
type FixedEffectsResult struct {
	Coefficient  float64
	StdErr       float64
	TStat        float64
	PValue       float64
	WithinR2     float64
	NObs         int
	NEntities    int
	NPeriods     int
	Insufficient bool
}

// TwoWayFixedEffects regresses y on x controlling for entity and period
// fixed effects, using the within transformation: both variables are
// demeaned by entity and by period with the grand mean added back, which is
// algebraically equivalent to including a dummy per entity and per period.
// Observations with a missing x or y are dropped first. Degrees of freedom
// are n - N - T + 1 for N entities and T periods; a fit without positive
// degrees of freedom, or with no within-variation in x, reports
// Insufficient.
func TwoWayFixedEffects(observations []PanelObservation) FixedEffectsResult {
	var obs []PanelObservation
	for _, o := range observations {
		if dataset.IsMissing(o.X) || dataset.IsMissing(o.Y) {
			continue
		}
		obs = append(obs, o)
	}

	n := len(obs)
	if n < 2 {
		return FixedEffectsResult{NObs: n, Insufficient: true}
	}

	entitySumX := make(map[string]float64)
	entitySumY := make(map[string]float64)
	entityN := make(map[string]int)
	periodSumX := make(map[int]float64)
	periodSumY := make(map[int]float64)
	periodN := make(map[int]int)
	var grandX, grandY float64

	for _, o := range obs {
		entitySumX[o.Entity] += o.X
		entitySumY[o.Entity] += o.Y
		entityN[o.Entity]++
		periodSumX[o.Period] += o.X
		periodSumY[o.Period] += o.Y
		periodN[o.Period]++
		grandX += o.X
		grandY += o.Y
	}
	grandX /= float64(n)
	grandY /= float64(n)

	nEntities := len(entityN)
	nPeriods := len(periodN)
	df := n - nEntities - nPeriods + 1

	if df < 1 {
		return FixedEffectsResult{
			NObs: n, NEntities: nEntities, NPeriods: nPeriods, Insufficient: true,
		}
	}

	var sxx, sxy, syy float64
	demeaned := make([][2]float64, n)
	for i, o := range obs {
		xt := o.X - entitySumX[o.Entity]/float64(entityN[o.Entity]) -
			periodSumX[o.Period]/float64(periodN[o.Period]) + grandX
		yt := o.Y - entitySumY[o.Entity]/float64(entityN[o.Entity]) -
			periodSumY[o.Period]/float64(periodN[o.Period]) + grandY
		demeaned[i] = [2]float64{xt, yt}
		sxx += xt * xt
		sxy += xt * yt
		syy += yt * yt
	}

	if sxx == 0 {
		// x has no variation net of the fixed effects; the coefficient is
		// unidentified.
		return FixedEffectsResult{
			NObs: n, NEntities: nEntities, NPeriods: nPeriods, Insufficient: true,
		}
	}

	beta := sxy / sxx

	var rss float64
	for _, d := range demeaned {
		resid := d[1] - beta*d[0]
		rss += resid * resid
	}

	sigma2 := rss / float64(df)
	se := math.Sqrt(sigma2 / sxx)

	tStat := beta / se
	pValue := dataset.Missing()
	if se > 0 {
		dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
		pValue = 2 * dist.Survival(math.Abs(tStat))
	}

	withinR2 := 0.0
	if syy > 0 {
		withinR2 = 1 - rss/syy
	}

	return FixedEffectsResult{
		Coefficient: beta,
		StdErr:      se,
		TStat:       tStat,
		PValue:      pValue,
		WithinR2:    withinR2,
		NObs:        n,
		NEntities:   nEntities,
		NPeriods:    nPeriods,
	}
}
