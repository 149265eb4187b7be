package params

// Version28x2506 labels the calibration shipped with the binary: SIMM 2.8
// risk weights effective from the 2506 cycle. Later calibrations are loaded
// from the parameter store, never patched into this file.
const Version28x2506 = "2.8+2506"

// Default returns the built-in 2.8+2506 snapshot. Callers get a fresh copy
// of the maps so a misbehaving caller cannot poison the fixture.
func Default() *Set {
	return &Set{
		Version: Version28x2506,

		IRRiskWeightsRegular: map[string]float64{
			"2W": 0.0117, "1M": 0.0168, "3M": 0.0214, "6M": 0.0269,
			"1Y": 0.0314, "2Y": 0.0355, "3Y": 0.0392, "5Y": 0.0441,
			"10Y": 0.0519, "15Y": 0.0555, "20Y": 0.0571, "30Y": 0.0587,
		},
		IRRiskWeightsLow: map[string]float64{
			"2W": 0.0015, "1M": 0.0018, "3M": 0.0102, "6M": 0.0159,
			"1Y": 0.0215, "2Y": 0.0257, "3Y": 0.0283, "5Y": 0.0322,
			"10Y": 0.0385, "15Y": 0.0420, "20Y": 0.0436, "30Y": 0.0454,
		},
		IRRiskWeightsHigh: map[string]float64{
			"2W": 0.0163, "1M": 0.0109, "3M": 0.0096, "6M": 0.0121,
			"1Y": 0.0167, "2Y": 0.0219, "3Y": 0.0259, "5Y": 0.0323,
			"10Y": 0.0403, "15Y": 0.0447, "20Y": 0.0472, "30Y": 0.0497,
		},
		LowVolCurrencies:  []string{"JPY"},
		HighVolCurrencies: []string{"TRY", "ARS", "RUB", "BRL", "ZAR", "MXN"},

		FXRiskWeightRegular: 0.071,
		FXRiskWeightHighVol: 0.180,

		CRQRiskWeights: map[int]float64{
			1: 0.67, 2: 0.78, 3: 0.78, 4: 0.49, 5: 0.56, 6: 0.46,
		},
		CRNQRiskWeights: map[int]float64{
			7: 1.72, 8: 3.27, 9: 1.59, 10: 1.54, 11: 1.64, 12: 1.30,
		},

		QualifyingRatings: []string{
			"AAA", "AA+", "AA", "AA-", "A+", "A", "A-", "BBB+", "BBB", "BBB-",
		},
		DistressedRatings: []string{"CCC+", "CCC", "CCC-", "CC", "C"},

		Correlations: map[string]float64{
			ClassIR:   0.97,
			ClassFX:   0.97,
			ClassCRQ:  0.97,
			ClassCRNQ: 0.97,
		},
		ConcentrationThresholds: map[string]float64{
			ClassIR:   35e9,
			ClassFX:   23e9,
			ClassCRQ:  0.55e9,
			ClassCRNQ: 0.55e9,
		},

		TolerancesPct: map[string]float64{
			ToleranceAggregation: 1.0,
			ToleranceGreeks:      5.0,
			ToleranceCurvature:   10.0,
		},

		// Conservative upper-range schedule factors for the fallback margin.
		ScheduleFactors: map[string]float64{
			"IR": 0.02,
			"FX": 0.03,
			"PM": 0.15,
			"CR": 0.05,
			"ST": 0.03,
		},

		Breaker: BreakerThresholds{
			BarrierProximityKO:   0.02,
			BarrierProximityRKO:  0.03,
			BarrierProximityKIKO: 0.025,
			PinVegaNotionalRatio: 0.5,
			DigitalProximity:     0.01,
			RangeProximity:       0.02,
			TARFCompletionRatio:  0.8,
			TARFVegaDeltaRatio:   0.5,
			TARFOvershootRatio:   1.10,
		},

		ARRAddOn:         0.02,
		RecoveryRate:     0.40,
		JTDCoverageRatio: 0.5,
	}
}
