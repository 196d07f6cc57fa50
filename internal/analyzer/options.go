package analyzer

// Options provides the full tuning surface of one analysis invocation. Every
// invocation receives its own copy; there is no ambient global state, so two
// concurrent analyses with different plot-specific rates never interfere.
type Options struct {
	// Structural extraction
	SaturationCeiling  uint8   // max saturation (0-255) for a built-surface tone
	ValueFloor         uint8   // min value/brightness (0-255) for a built-surface tone
	EdgeSigma          float64 // spread around the median gray level for edge thresholds
	MinEdgeThreshold   float64 // floor for the weak-edge threshold
	CloseKernel        int     // closing kernel size, odd
	CloseIterations    int
	OpenKernel         int // opening kernel size, odd
	OpenIterations     int
	UniformVarianceEps float64 // gray variance at/below which a frame counts as uniform

	// Region extraction
	MinRegionAreaPx int // components below this area are speckle, not violations

	// Severity cut points, percent encroachment
	CriticalThreshold float64
	MajorThreshold    float64
	ModerateThreshold float64

	// Compliance score shaping: penalty grows quadratically past the
	// moderate threshold so large deviations crater the score.
	QuadraticPenaltyGain float64

	// Status labeling
	VacantDominanceFraction float64 // vacant-deviation fraction at which "vacant" wins
	VacantUtilizationMax    float64 // percent utilization below which a plot reads vacant
	UnderConstructionMax    float64 // percent utilization below which a plot reads under construction

	// Industrial health index weights
	ComplianceWeight  float64
	UtilizationWeight float64

	// Economics. ApprovedAreaSqm of zero means the pixels-per-sqm scale is
	// undefined and financial figures are omitted.
	ApprovedAreaSqm   float64
	LeakageRatePerSqm float64
	PenaltyRatePerSqm float64
	Currency          string
}

// DefaultOptions returns the documented default tuning.
func DefaultOptions() Options {
	return Options{
		SaturationCeiling:  64,
		ValueFloor:         96,
		EdgeSigma:          0.33,
		MinEdgeThreshold:   10,
		CloseKernel:        5,
		CloseIterations:    2,
		OpenKernel:         3,
		OpenIterations:     1,
		UniformVarianceEps: 0.5,

		MinRegionAreaPx: 48,

		CriticalThreshold: 25.0,
		MajorThreshold:    10.0,
		ModerateThreshold: 3.0,

		QuadraticPenaltyGain: 0.05,

		VacantDominanceFraction: 0.5,
		VacantUtilizationMax:    5.0,
		UnderConstructionMax:    30.0,

		ComplianceWeight:  0.6,
		UtilizationWeight: 0.4,

		ApprovedAreaSqm:   0,
		LeakageRatePerSqm: 500,
		PenaltyRatePerSqm: 2000,
		Currency:          "INR",
	}
}

// WithSeverityThresholds overrides the severity cut points.
func (o Options) WithSeverityThresholds(critical, major, moderate float64) Options {
	o.CriticalThreshold = critical
	o.MajorThreshold = major
	o.ModerateThreshold = moderate
	return o
}

// WithEconomicRates overrides the per-sqm currency rates.
func (o Options) WithEconomicRates(leakagePerSqm, penaltyPerSqm float64) Options {
	o.LeakageRatePerSqm = leakagePerSqm
	o.PenaltyRatePerSqm = penaltyPerSqm
	return o
}

// WithPlotScale sets the approved plot area in sqm, enabling financial
// estimates.
func (o Options) WithPlotScale(approvedAreaSqm float64) Options {
	o.ApprovedAreaSqm = approvedAreaSqm
	return o
}

// WithMinRegionArea overrides the speckle noise floor.
func (o Options) WithMinRegionArea(px int) Options {
	o.MinRegionAreaPx = px
	return o
}
