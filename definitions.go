package main

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrEmptyInput is returned when a report is empty or whitespace only
var ErrEmptyInput = errors.New("empty METAR report")

// UnlimitedCeilingFeet stands in for "no ceiling" when comparing against thresholds
const UnlimitedCeilingFeet = 99999

// Unit conversion constants
const (
	hPaPerInHg     = 33.8639
	metersPerMile  = 1609.34
	maxReportedSM  = 10.0
	greaterThanVis = 9999
)

// Common weather phenomena mapping used across the application
var weatherCodes = map[string]string{
	"TS":    "thunderstorm",
	"SN":    "snow",
	"SG":    "snow grains",
	"RA":    "rain",
	"DZ":    "drizzle",
	"SH":    "showers",
	"FG":    "fog",
	"BR":    "mist",
	"HZ":    "haze",
	"OVC":   "overcast",
	"BKN":   "broken clouds",
	"SCT":   "scattered clouds",
	"FEW":   "few clouds",
	"CLR":   "clear",
	"SKC":   "sky clear",
	"CAVOK": "ceiling and visibility OK",
}

// Commonly used regular expressions
var (
	tempRegex        = regexp.MustCompile(`(?:^|\s)(M?)(\d{2})/(M?)(\d{2})(?:\s|$)`)
	windRegex        = regexp.MustCompile(`(?:^|\s)(\d{3}|VRB)(\d{2,3})(?:G(\d{2,3}))?KT(?:\s|$)`)
	visRegexMeters   = regexp.MustCompile(`\s(\d{4})(?:\s|[A-Z]|$)`)
	visRegexSM       = regexp.MustCompile(`\s(P)?(\d+)?(?:/(\d+))?SM(?:\s|$)`)
	qnhRegex         = regexp.MustCompile(`(?:^|\s)Q(\d{4})`)
	altimeterRegex   = regexp.MustCompile(`(?:^|\s)A(\d{4})`)
	ceilingRegex     = regexp.MustCompile(`(BKN|OVC)(\d{3})`)
	stationCodeRegex = regexp.MustCompile(`^[A-Z]{4}$`)
)

// FlightCategory is the FAA flight rules category, ordered from least to most restrictive
type FlightCategory int

const (
	VFR FlightCategory = iota
	MVFR
	IFR
	LIFR
)

var flightCategoryNames = []string{"VFR", "MVFR", "IFR", "LIFR"}

func (c FlightCategory) String() string {
	if c < VFR || c > LIFR {
		return fmt.Sprintf("FlightCategory(%d)", int(c))
	}
	return flightCategoryNames[c]
}

// MarshalText renders the category label so JSON carries "IFR" rather than 2
func (c FlightCategory) MarshalText() ([]byte, error) {
	if c < VFR || c > LIFR {
		return nil, fmt.Errorf("invalid flight category: %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText accepts the labels produced by MarshalText
func (c *FlightCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseFlightCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseFlightCategory parses a category label, case-insensitively
func ParseFlightCategory(s string) (FlightCategory, error) {
	for i, name := range flightCategoryNames {
		if strings.EqualFold(s, name) {
			return FlightCategory(i), nil
		}
	}
	return VFR, fmt.Errorf("unknown flight category: %q", s)
}

// ConditionTag is the coarse weather condition used to pick an icon
type ConditionTag string

const (
	ConditionThunderstorm ConditionTag = "thunderstorm"
	ConditionSnow         ConditionTag = "snow"
	ConditionRain         ConditionTag = "rain"
	ConditionFog          ConditionTag = "fog"
	ConditionOvercast     ConditionTag = "overcast"
	ConditionFewClouds    ConditionTag = "few-clouds"
	ConditionClear        ConditionTag = "clear"
)

// conditionKeywords lists condition tags in priority order with the codes that select them
var conditionKeywords = []struct {
	Tag   ConditionTag
	Codes []string
}{
	{ConditionThunderstorm, []string{"TS"}},
	{ConditionSnow, []string{"SN", "SG"}},
	{ConditionRain, []string{"RA", "DZ", "SH"}},
	{ConditionFog, []string{"FG", "BR", "HZ"}},
	{ConditionOvercast, []string{"OVC", "BKN"}},
	{ConditionFewClouds, []string{"SCT", "FEW"}},
	{ConditionClear, []string{"CLR", "SKC", "CAVOK"}},
}

// Thresholds holds the six flight rules limits. Visibility is in statute
// miles, ceilings in feet. No ordering between them is assumed.
type Thresholds struct {
	VFRVisibility  float64 `toml:"vfr_visibility" json:"vfrVisibility"`
	VFRCeiling     int     `toml:"vfr_ceiling" json:"vfrCeiling"`
	MVFRVisibility float64 `toml:"mvfr_visibility" json:"mvfrVisibility"`
	MVFRCeiling    int     `toml:"mvfr_ceiling" json:"mvfrCeiling"`
	IFRVisibility  float64 `toml:"ifr_visibility" json:"ifrVisibility"`
	IFRCeiling     int     `toml:"ifr_ceiling" json:"ifrCeiling"`
}

// DefaultThresholds returns the FAA limits
func DefaultThresholds() Thresholds {
	return Thresholds{
		VFRVisibility:  5,
		VFRCeiling:     3000,
		MVFRVisibility: 3,
		MVFRCeiling:    1000,
		IFRVisibility:  1,
		IFRCeiling:     500,
	}
}

// Wind represents wind information in a weather report
type Wind struct {
	Direction *int `json:"direction,omitempty"` // nil when variable or calm
	Variable  bool `json:"variable,omitempty"`
	Speed     int  `json:"speed"`
	Gust      *int `json:"gust,omitempty"`
	Calm      bool `json:"calm,omitempty"`
}

// Visibility represents prevailing visibility. At most one of Meters and
// StatuteMiles is set; CAVOK implies more than 10 km.
type Visibility struct {
	Meters       *int     `json:"meters,omitempty"`
	StatuteMiles *float64 `json:"statuteMiles,omitempty"`
	GreaterThan  bool     `json:"greaterThan,omitempty"` // 9999 or P prefix
	CAVOK        bool     `json:"cavok,omitempty"`
}

// Miles returns the visibility in statute miles
func (v Visibility) Miles() (float64, bool) {
	switch {
	case v.CAVOK:
		return maxReportedSM, true
	case v.StatuteMiles != nil:
		return *v.StatuteMiles, true
	case v.Meters != nil:
		return MetersToStatuteMiles(*v.Meters), true
	}
	return 0, false
}

// PressureUnit is the group letter the pressure was reported with
type PressureUnit string

const (
	PressureQNH       PressureUnit = "Q"
	PressureAltimeter PressureUnit = "A"
)

// Pressure represents the altimeter setting, always carried in hectopascals
type Pressure struct {
	Hectopascals int          `json:"hPa"`
	Unit         PressureUnit `json:"sourceUnit"`
	InchesHg     float64      `json:"inHg,omitempty"` // only for A groups
}

// Ceiling is the lowest broken or overcast layer
type Ceiling struct {
	Feet      int  `json:"feet"`
	Unlimited bool `json:"unlimited,omitempty"`
}

// DecodedReport is the structured form of a raw METAR. Every field is optional.
type DecodedReport struct {
	Raw         string      `json:"raw"`
	Station     string      `json:"station,omitempty"`
	Temperature *int        `json:"temperatureC,omitempty"`
	DewPoint    *int        `json:"dewpointC,omitempty"`
	Wind        *Wind       `json:"wind,omitempty"`
	Visibility  *Visibility `json:"visibility,omitempty"`
	Pressure    *Pressure   `json:"pressure,omitempty"`
	Ceiling     *Ceiling    `json:"ceiling,omitempty"`
	Phenomena   []string    `json:"phenomena,omitempty"`
}

// Observation bundles a decoded report with its classification and condition
type Observation struct {
	Report    DecodedReport  `json:"report"`
	Category  FlightCategory `json:"category"`
	Detail    string         `json:"detail"`
	Condition ConditionTag   `json:"condition"`
	Observed  time.Time      `json:"observed"`
}
