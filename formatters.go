package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Color definitions using fatih/color
var (
	labelColor   = color.New(color.FgCyan)
	rawColor     = color.New(color.FgWhite)
	sectionColor = color.New(color.FgBlue)
	numberColor  = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)

	// Age-based colors
	freshColor   = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	expiredColor = color.New(color.FgRed)
)

// Flight category colors (FAA standard)
var categoryColors = map[FlightCategory]*color.Color{
	VFR:  color.New(color.FgGreen, color.Bold),
	MVFR: color.New(color.FgBlue, color.Bold),
	IFR:  color.New(color.FgRed, color.Bold),
	LIFR: color.New(color.FgMagenta, color.Bold),
}

var categoryHexColors = map[FlightCategory]string{
	VFR:  "#00ff00",
	MVFR: "#0080ff",
	IFR:  "#ff0000",
	LIFR: "#ff00ff",
}

// Symbolic icon names per condition, for clients that draw icons
var conditionIcons = map[ConditionTag]string{
	ConditionThunderstorm: "weather-storm-symbolic",
	ConditionSnow:         "weather-snow-symbolic",
	ConditionRain:         "weather-showers-symbolic",
	ConditionFog:          "weather-fog-symbolic",
	ConditionOvercast:     "weather-overcast-symbolic",
	ConditionFewClouds:    "weather-few-clouds-symbolic",
	ConditionClear:        "weather-clear-symbolic",
}

// formatTemperature renders a Celsius value with its Fahrenheit equivalent
func formatTemperature(celsius int) string {
	return fmt.Sprintf("%d°C | %d°F", celsius, CelsiusToFahrenheit(celsius))
}

// formatWind converts a Wind to e.g. "270° at 15 gusting 25 kt"
func formatWind(wind *Wind) string {
	if wind == nil {
		return ""
	}
	if wind.Calm {
		return "Calm"
	}

	windStr := "Variable"
	if !wind.Variable && wind.Direction != nil {
		windStr = fmt.Sprintf("%03d°", *wind.Direction)
	}

	windStr += fmt.Sprintf(" at %d", wind.Speed)
	if wind.Gust != nil {
		windStr += fmt.Sprintf(" gusting %d", *wind.Gust)
	}

	return windStr + " kt"
}

// formatVisibility converts a Visibility to a human-readable string
func formatVisibility(vis *Visibility) string {
	if vis == nil {
		return ""
	}

	// CAVOK (Ceiling And Visibility OK)
	if vis.CAVOK {
		return "CAVOK (>10 km)"
	}

	if vis.Meters != nil {
		if vis.GreaterThan {
			return ">10 km"
		}
		return fmt.Sprintf("%d m", *vis.Meters)
	}

	if vis.StatuteMiles != nil {
		if vis.GreaterThan {
			return fmt.Sprintf(">%.1f SM", *vis.StatuteMiles)
		}
		return fmt.Sprintf("%.1f SM", *vis.StatuteMiles)
	}

	return ""
}

// formatPressure shows hPa, plus the reported inHg for altimeter groups
func formatPressure(p *Pressure) string {
	if p == nil {
		return ""
	}
	if p.Unit == PressureAltimeter {
		return fmt.Sprintf("%d hPa (%.2f inHg)", p.Hectopascals, p.InchesHg)
	}
	return fmt.Sprintf("%d hPa", p.Hectopascals)
}

func formatCeiling(c *Ceiling) string {
	if c == nil {
		return ""
	}
	if c.Unlimited {
		return "Unlimited"
	}
	return formatNumberWithCommas(c.Feet) + " ft"
}

// formatPhenomena converts matched codes to their descriptions
func formatPhenomena(codes []string) string {
	if len(codes) == 0 {
		return ""
	}

	var descriptions []string
	for _, code := range codes {
		if desc, ok := weatherCodes[code]; ok {
			descriptions = append(descriptions, desc)
		} else {
			descriptions = append(descriptions, code)
		}
	}

	return strings.Join(descriptions, ", ")
}

// getObservationAgeColor returns the appropriate color based on observation age
func getObservationAgeColor(t time.Time) *color.Color {
	minutes := int(clock.Since(t).Minutes())
	if minutes > 60 {
		return expiredColor
	} else if minutes > 30 {
		return warningColor
	}
	return freshColor
}

// FormatCategory renders the category detail in the category's color
func FormatCategory(category FlightCategory, detail string) string {
	c, ok := categoryColors[category]
	if !ok {
		return detail
	}
	return c.Sprint(detail)
}

// FormatObservation formats an Observation for display with colors
func FormatObservation(obs Observation, showRaw bool) string {
	var sb strings.Builder
	r := obs.Report

	sectionColor.Fprint(&sb, "METAR ")
	sb.WriteString(r.Station)
	sb.WriteString("\n")

	if showRaw {
		rawColor.Fprint(&sb, r.Raw)
		sb.WriteString("\n")
	}

	// Temperature with Fahrenheit conversion
	if r.Temperature != nil && r.DewPoint != nil {
		labelColor.Fprint(&sb, "Temperature: ")
		sb.WriteString(formatTemperature(*r.Temperature) + "\n")
		labelColor.Fprint(&sb, "Dew Point: ")
		sb.WriteString(formatTemperature(*r.DewPoint) + "\n")
	}

	if windStr := formatWind(r.Wind); windStr != "" {
		labelColor.Fprint(&sb, "Wind: ")
		sb.WriteString(windStr + "\n")
	}

	if visStr := formatVisibility(r.Visibility); visStr != "" {
		labelColor.Fprint(&sb, "Visibility: ")
		sb.WriteString(visStr + "\n")
	}

	if ceilStr := formatCeiling(r.Ceiling); ceilStr != "" {
		labelColor.Fprint(&sb, "Ceiling: ")
		sb.WriteString(ceilStr + "\n")
	}

	if pressureStr := formatPressure(r.Pressure); pressureStr != "" {
		labelColor.Fprint(&sb, "Pressure: ")
		sb.WriteString(pressureStr + "\n")
	}

	if wxStr := formatPhenomena(r.Phenomena); wxStr != "" {
		labelColor.Fprint(&sb, "Weather: ")
		sb.WriteString(capitalizeFirst(wxStr) + "\n")
	}

	labelColor.Fprint(&sb, "Conditions: ")
	sb.WriteString(string(obs.Condition) + "\n")

	labelColor.Fprint(&sb, "Flight Rules: ")
	sb.WriteString(FormatCategory(obs.Category, obs.Detail) + "\n")

	if !obs.Observed.IsZero() {
		labelColor.Fprint(&sb, "Last update: ")
		numberColor.Fprint(&sb, obs.Observed.Local().Format("15:04:05"))
		sb.WriteString(" ")
		getObservationAgeColor(obs.Observed).Fprint(&sb, relativeTimeString(obs.Observed))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatError renders a fetch or decode failure the way the panel showed it
func FormatError(station string, err error) string {
	var sb strings.Builder
	sectionColor.Fprint(&sb, "METAR ")
	sb.WriteString(station + "\n")
	errorColor.Fprintf(&sb, "Error: %v\n", err)
	return sb.String()
}

func capitalizeFirst(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// formatNumberWithCommas adds thousands separators to a number
func formatNumberWithCommas(n int) string {
	// Convert to string first
	numStr := strconv.Itoa(n)

	// Add commas for thousands
	result := ""
	for i, c := range numStr {
		if i > 0 && (len(numStr)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}

	return result
}
