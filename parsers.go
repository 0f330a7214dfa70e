package main

import (
	"strconv"
	"strings"

	"k8s.io/utils/ptr"
)

// parseSignedTemp converts a two-digit temperature with an optional M prefix
func parseSignedTemp(prefix, digits string) int {
	value, _ := strconv.Atoi(digits)
	if prefix == "M" {
		value = -value
	}
	return value
}

// parseTemperature finds the first TT/DD group, e.g. "12/08" or "M02/M05"
func parseTemperature(raw string) (*int, *int) {
	matches := tempRegex.FindStringSubmatch(raw)
	if matches == nil {
		return nil, nil
	}

	temp := parseSignedTemp(matches[1], matches[2])
	dewPoint := parseSignedTemp(matches[3], matches[4])
	return &temp, &dewPoint
}

// parseWind parses a wind group in the format "DDDSSKT", "DDDSSGGKT" or "VRBSSKT"
func parseWind(raw string) *Wind {
	matches := windRegex.FindStringSubmatch(raw)
	if matches == nil {
		// A calm group that is glued to something else still counts
		if strings.Contains(raw, "00000KT") {
			return &Wind{Calm: true}
		}
		return nil
	}

	wind := &Wind{}
	wind.Speed, _ = strconv.Atoi(matches[2])
	if matches[3] != "" {
		gust, _ := strconv.Atoi(matches[3])
		wind.Gust = &gust
	}

	if matches[1] == "VRB" {
		wind.Variable = true
		return wind
	}

	direction, _ := strconv.Atoi(matches[1])
	if direction == 0 && wind.Speed == 0 && wind.Gust == nil {
		return &Wind{Calm: true}
	}
	wind.Direction = &direction

	return wind
}

// parseVisibility reports prevailing visibility. The first encoding found
// wins: CAVOK, then meters, then statute miles.
func parseVisibility(raw string) *Visibility {
	if strings.Contains(raw, "CAVOK") {
		return &Visibility{CAVOK: true}
	}

	if meters, ok := parseVisibilityMeters(raw); ok {
		return &Visibility{
			Meters:      &meters,
			GreaterThan: meters >= greaterThanVis,
		}
	}

	if miles, greater, ok := parseVisibilityMiles(raw); ok {
		return &Visibility{
			StatuteMiles: &miles,
			GreaterThan:  greater,
		}
	}

	return nil
}

// parseVisibilityMeters finds a four digit group such as "0800" or "9999"
func parseVisibilityMeters(raw string) (int, bool) {
	matches := visRegexMeters.FindStringSubmatch(raw)
	if matches == nil {
		return 0, false
	}
	meters, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, false
	}
	return meters, true
}

// parseVisibilityMiles finds a statute mile group such as "3SM", "1/2SM" or "P6SM".
// A P prefix is reported as 10 miles.
func parseVisibilityMiles(raw string) (float64, bool, bool) {
	matches := visRegexSM.FindStringSubmatch(raw)
	if matches == nil {
		return 0, false, false
	}

	if matches[1] == "P" {
		return maxReportedSM, true, true
	}

	if matches[2] == "" {
		return 0, false, false
	}
	whole, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0, false, false
	}

	if matches[3] != "" {
		denominator, err := strconv.Atoi(matches[3])
		if err != nil || denominator == 0 {
			return 0, false, false
		}
		return float64(whole) / float64(denominator), false, true
	}

	return float64(whole), false, true
}

// parsePressure prefers a Q group (hPa) over an A group (hundredths of inHg)
func parsePressure(raw string) *Pressure {
	if matches := qnhRegex.FindStringSubmatch(raw); matches != nil {
		hpa, _ := strconv.Atoi(matches[1])
		return &Pressure{
			Hectopascals: hpa,
			Unit:         PressureQNH,
		}
	}

	if matches := altimeterRegex.FindStringSubmatch(raw); matches != nil {
		hundredths, _ := strconv.Atoi(matches[1])
		inHg := float64(hundredths) / 100.0
		return &Pressure{
			Hectopascals: InHgToHectopascals(inHg),
			Unit:         PressureAltimeter,
			InchesHg:     inHg,
		}
	}

	return nil
}

// parseCeiling returns the lowest BKN or OVC layer. CLR, SKC or CAVOK
// anywhere in the report means unlimited, whatever layers are also present.
func parseCeiling(raw string) *Ceiling {
	if strings.Contains(raw, "CLR") || strings.Contains(raw, "SKC") || strings.Contains(raw, "CAVOK") {
		return &Ceiling{Feet: UnlimitedCeilingFeet, Unlimited: true}
	}

	var lowest *int
	for _, matches := range ceilingRegex.FindAllStringSubmatch(raw, -1) {
		hundreds, _ := strconv.Atoi(matches[2])
		height := hundreds * 100
		if lowest == nil || height < *lowest {
			lowest = ptr.To(height)
		}
	}

	if lowest == nil {
		return nil
	}
	return &Ceiling{Feet: *lowest}
}

// parsePhenomena lists every condition keyword found in the report, in
// condition priority order
func parsePhenomena(raw string) []string {
	var found []string
	for _, group := range conditionKeywords {
		for _, code := range group.Codes {
			if strings.Contains(raw, code) {
				found = append(found, code)
			}
		}
	}
	return found
}
