package main

import (
	"fmt"
	"math"
	"time"
)

// CelsiusToFahrenheit converts temperature from Celsius to Fahrenheit
func CelsiusToFahrenheit(celsius int) int {
	return (celsius * 9 / 5) + 32
}

// InHgToHectopascals converts inches of mercury to whole hectopascals,
// rounding half away from zero
func InHgToHectopascals(inHg float64) int {
	return int(math.Round(inHg * hPaPerInHg))
}

// MetersToStatuteMiles converts a visibility in meters to statute miles
func MetersToStatuteMiles(meters int) float64 {
	return float64(meters) / metersPerMile
}

// Calculate the relative time string
func relativeTimeString(t time.Time) string {
	now := clock.Now().UTC()
	diff := now.Sub(t)

	// Convert to minutes for easier comparisons
	minutes := int(diff.Minutes())

	if minutes < 0 {
		return "(in the future)"
	} else if minutes < 1 {
		return "(just now)"
	} else if minutes < 60 {
		return fmt.Sprintf("(%d minutes ago)", minutes)
	} else if minutes < 1440 { // less than 24 hours
		hours := minutes / 60
		mins := minutes % 60
		if mins == 0 {
			return fmt.Sprintf("(%d hours ago)", hours)
		}
		return fmt.Sprintf("(%d hours, %d minutes ago)", hours, mins)
	} else {
		days := minutes / 1440
		hours := (minutes % 1440) / 60
		if hours == 0 {
			return fmt.Sprintf("(%d days ago)", days)
		}
		return fmt.Sprintf("(%d days, %d hours ago)", days, hours)
	}
}
