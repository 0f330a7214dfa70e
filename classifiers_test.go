package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		category FlightCategory
		detail   string
	}{
		{
			name:     "rain with low broken layer",
			raw:      "KJFK 291851Z 27015G25KT 3SM RA BKN008 OVC015 12/08 Q1013",
			category: IFR,
			detail:   "IFR (Vis: 3.0 SM, Ceil: 800 ft)",
		},
		{
			name:     "clear skies",
			raw:      "KLAX 291853Z 25008KT 10SM CLR 21/12 A2992",
			category: VFR,
			detail:   "VFR (Vis: 10.0 SM)",
		},
		{
			name:     "cavok hides cloud layers",
			raw:      "EGLL 181750Z 22012KT CAVOK BKN005 11/06 Q1018",
			category: VFR,
			detail:   "VFR (Vis: 10.0 SM)",
		},
		{
			name:     "marginal visibility, low ceiling",
			raw:      "KBOS 291854Z 04012KT 4SM BR OVC009 08/07 A2998",
			category: IFR,
			detail:   "IFR (Vis: 4.0 SM, Ceil: 900 ft)",
		},
		{
			name:     "good visibility, marginal ceiling",
			raw:      "KSEA 291853Z 18006KT 10SM BKN025 OVC040 11/08 A3001",
			category: MVFR,
			detail:   "MVFR (Vis: 10.0 SM, Ceil: 2500 ft)",
		},
		{
			name:     "fog in meters",
			raw:      "EDDM 290950Z 00000KT 0400 FG VV001 M01/M01 Q1021",
			category: LIFR,
			detail:   "LIFR (Vis: 0.2 SM)",
		},
		{
			name:     "ceiling only",
			raw:      "XXXX 010000Z OVC004",
			category: LIFR,
			detail:   "LIFR (Ceil: 400 ft)",
		},
		{
			name:     "greater than 10 km",
			raw:      "LFPG 291900Z 24010KT 9999 FEW030 14/09 Q1015",
			category: VFR,
			detail:   "VFR (Vis: 6.2 SM)",
		},
		{
			name:     "missing signals",
			raw:      "XXXX 010000Z 27010KT 12/08",
			category: VFR,
			detail:   "VFR",
		},
		{
			name:     "visibility boundary",
			raw:      "XXXX 010000Z 3SM SKC",
			category: MVFR,
			detail:   "MVFR (Vis: 3.0 SM)",
		},
		{
			name:     "ceiling boundary",
			raw:      "XXXX 010000Z 10SM OVC010",
			category: MVFR,
			detail:   "MVFR (Vis: 10.0 SM, Ceil: 1000 ft)",
		},
		{
			name:     "statute miles override meters",
			raw:      "XXXX 010000Z 9999 1/2SM OVC050",
			category: LIFR,
			detail:   "LIFR (Vis: 0.5 SM, Ceil: 5000 ft)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, detail := Classify(tt.raw, DefaultThresholds())
			assert.Equal(t, tt.category, category)
			assert.Equal(t, tt.detail, detail)
		})
	}
}

func TestClassify_worseAxisWins(t *testing.T) {
	t.Parallel()

	visibilities := map[string]FlightCategory{
		"1/2SM": LIFR,
		"2SM":   IFR,
		"4SM":   MVFR,
		"10SM":  VFR,
	}
	ceilings := map[string]FlightCategory{
		"OVC003": LIFR,
		"OVC007": IFR,
		"OVC020": MVFR,
		"CLR":    VFR,
	}

	for vis, byVis := range visibilities {
		for ceil, byCeil := range ceilings {
			raw := fmt.Sprintf("XXXX 010000Z %s %s", vis, ceil)
			category, _ := Classify(raw, DefaultThresholds())
			assert.Equal(t, max(byVis, byCeil), category, raw)
		}
	}
}

func TestClassify_monotonic(t *testing.T) {
	t.Parallel()
	th := DefaultThresholds()

	// Visibility in sixteenths of a mile, ceiling clear
	prev := LIFR
	for sixteenths := 1; sixteenths <= 160; sixteenths++ {
		raw := fmt.Sprintf("XXXX 010000Z %d/16SM CLR", sixteenths)
		category, _ := Classify(raw, th)
		assert.LessOrEqual(t, category, prev, "more visibility must never be more restrictive: %s", raw)
		prev = category
	}
	assert.Equal(t, VFR, prev)

	prev = LIFR
	for hundreds := 0; hundreds <= 50; hundreds++ {
		raw := fmt.Sprintf("XXXX 010000Z 10SM OVC%03d", hundreds)
		category, _ := Classify(raw, th)
		assert.LessOrEqual(t, category, prev, "a higher ceiling must never be more restrictive: %s", raw)
		prev = category
	}
	assert.Equal(t, VFR, prev)
}

func TestClassify_customThresholds(t *testing.T) {
	t.Parallel()

	// Stricter private minimums
	th := Thresholds{
		VFRVisibility: 8, VFRCeiling: 5000,
		MVFRVisibility: 5, MVFRCeiling: 3000,
		IFRVisibility: 2, IFRCeiling: 1000,
	}

	category, detail := Classify("XXXX 010000Z 6SM BKN045", th)
	assert.Equal(t, MVFR, category)
	assert.Equal(t, "MVFR (Vis: 6.0 SM, Ceil: 4500 ft)", detail)

	category, _ = Classify("XXXX 010000Z 6SM BKN045", DefaultThresholds())
	assert.Equal(t, VFR, category)
}

func TestClassify_unorderedThresholds(t *testing.T) {
	t.Parallel()

	// Nothing enforces VFR > MVFR > IFR; the checks run most restrictive first
	th := Thresholds{
		VFRVisibility: 1, VFRCeiling: 500,
		MVFRVisibility: 3, MVFRCeiling: 1000,
		IFRVisibility: 5, IFRCeiling: 3000,
	}

	raw := "XXXX 010000Z 4SM OVC020"
	category, detail := Classify(raw, th)
	assert.Equal(t, LIFR, category)

	again, againDetail := Classify(raw, th)
	assert.Equal(t, category, again)
	assert.Equal(t, detail, againDetail)

	category, _ = Classify("XXXX 010000Z 10SM CLR", th)
	assert.Equal(t, VFR, category)
}

func TestClassify_corpusIdempotent(t *testing.T) {
	t.Parallel()
	th := DefaultThresholds()
	for line := range decodeMETARList(t) {
		category, detail := Classify(line, th)
		again, againDetail := Classify(line, th)
		assert.Equal(t, category, again, line)
		assert.Equal(t, detail, againDetail, line)
		assert.Contains(t, detail, category.String(), line)
	}
}

func TestVisibilityMiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw   string
		miles float64
		found bool
	}{
		{"XXXX 010000Z 3SM", 3, true},
		{"XXXX 010000Z 1 1/2SM", 0.5, true},
		{"XXXX 010000Z P6SM", 10, true},
		{"XXXX 010000Z 1609 BR", 1609 / 1609.34, true},
		{"XXXX 010000Z 9999 CAVOK", 10, true},
		{"XXXX 010000Z 2SM CAVOK", 10, true},
		{"XXXX 010000Z OVC010", 0, false},
	}

	for _, tt := range tests {
		miles, found := visibilityMiles(tt.raw)
		assert.Equal(t, tt.found, found, tt.raw)
		assert.InDelta(t, tt.miles, miles, 1e-9, tt.raw)
	}
}
