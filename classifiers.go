package main

import (
	"fmt"
	"strings"
)

// Classify determines the flight category of a raw report against the
// given thresholds. Visibility and ceiling are read straight from the raw
// text; the worse of the two wins. A missing signal counts as VFR.
func Classify(raw string, th Thresholds) (FlightCategory, string) {
	visMiles, hasVis := visibilityMiles(raw)

	ceilFeet, hasCeil := 0, false
	if ceiling := parseCeiling(raw); ceiling != nil {
		ceilFeet, hasCeil = ceiling.Feet, true
	}

	byVis := VFR
	if hasVis {
		byVis = categoryByVisibility(visMiles, th)
	}

	byCeil := VFR
	if hasCeil {
		byCeil = categoryByCeiling(ceilFeet, th)
	}

	category := max(byVis, byCeil)

	return category, classificationDetail(category, visMiles, hasVis, ceilFeet, hasCeil)
}

// visibilityMiles reads visibility in statute miles. A statute mile group
// overrides a meters group, and CAVOK overrides both.
func visibilityMiles(raw string) (float64, bool) {
	var miles float64
	found := false

	if meters, ok := parseVisibilityMeters(raw); ok {
		miles = MetersToStatuteMiles(meters)
		found = true
	}

	if sm, _, ok := parseVisibilityMiles(raw); ok {
		miles = sm
		found = true
	}

	if strings.Contains(raw, "CAVOK") {
		miles = maxReportedSM
		found = true
	}

	return miles, found
}

func categoryByVisibility(miles float64, th Thresholds) FlightCategory {
	switch {
	case miles < th.IFRVisibility:
		return LIFR
	case miles < th.MVFRVisibility:
		return IFR
	case miles < th.VFRVisibility:
		return MVFR
	}
	return VFR
}

func categoryByCeiling(feet int, th Thresholds) FlightCategory {
	switch {
	case feet < th.IFRCeiling:
		return LIFR
	case feet < th.MVFRCeiling:
		return IFR
	case feet < th.VFRCeiling:
		return MVFR
	}
	return VFR
}

// classificationDetail renders e.g. "IFR (Vis: 3.0 SM, Ceil: 800 ft)".
// An unlimited ceiling is left out.
func classificationDetail(category FlightCategory, visMiles float64, hasVis bool, ceilFeet int, hasCeil bool) string {
	showCeil := hasCeil && ceilFeet < UnlimitedCeilingFeet

	switch {
	case hasVis && showCeil:
		return fmt.Sprintf("%s (Vis: %.1f SM, Ceil: %d ft)", category, visMiles, ceilFeet)
	case hasVis:
		return fmt.Sprintf("%s (Vis: %.1f SM)", category, visMiles)
	case showCeil:
		return fmt.Sprintf("%s (Ceil: %d ft)", category, ceilFeet)
	}
	return category.String()
}
