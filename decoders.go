package main

import (
	"strings"
)

// Decode decodes a raw METAR string into a DecodedReport. Each field is
// extracted independently, so an unrecognised group only leaves its own
// field empty.
func Decode(raw string) (DecodedReport, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return DecodedReport{}, ErrEmptyInput
	}

	r := DecodedReport{Raw: cleaned}

	// Station code, not validated against the requested airport
	r.Station = strings.Fields(cleaned)[0]

	r.Temperature, r.DewPoint = parseTemperature(cleaned)
	r.Wind = parseWind(cleaned)
	r.Visibility = parseVisibility(cleaned)
	r.Pressure = parsePressure(cleaned)
	r.Ceiling = parseCeiling(cleaned)
	r.Phenomena = parsePhenomena(cleaned)

	return r, nil
}

// Observe decodes, classifies and tags a raw report in one go
func Observe(raw string, th Thresholds) (Observation, error) {
	report, err := Decode(raw)
	if err != nil {
		return Observation{}, err
	}

	category, detail := Classify(report.Raw, th)

	return Observation{
		Report:    report,
		Category:  category,
		Detail:    detail,
		Condition: ConditionFor(report.Raw),
		Observed:  clock.Now().UTC(),
	}, nil
}
