package method

import (
	"fmt"
	"strconv"
	"strings"
)

// AsrFactor is the shadow-length multiplier that defines the start of Asr.
type AsrFactor int

const (
	// Standard is the Shafi, Maliki and Hanbali definition (shadow = 1x).
	Standard AsrFactor = 1
	// Hanafi delays Asr until the shadow is twice the object's length.
	Hanafi AsrFactor = 2
)

// String returns the madhab name for the factor.
func (f AsrFactor) String() string {
	switch f {
	case Standard:
		return "shafi"
	case Hanafi:
		return "hanafi"
	default:
		return strconv.Itoa(int(f))
	}
}

// ParseMadhab accepts a madhab name or a numeric factor.
func ParseMadhab(s string) (AsrFactor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shafi", "standard", "maliki", "hanbali", "1":
		return Standard, nil
	case "hanafi", "2":
		return Hanafi, nil
	default:
		return 0, fmt.Errorf("invalid madhab %q: must be shafi (1) or hanafi (2)", s)
	}
}

// HighLatitudeRule picks the fallback used for Fajr and Isha when the
// twilight angle is never reached.
type HighLatitudeRule int

const (
	// None fails the computation instead of substituting a time.
	None HighLatitudeRule = iota
	// AngleBased uses angle/60 of the night.
	AngleBased
	// OneSeventhOfNight uses a seventh of the night.
	OneSeventhOfNight
	// MiddleOfNight uses half of the night.
	MiddleOfNight
)

var ruleNames = map[HighLatitudeRule]string{
	None:              "none",
	AngleBased:        "angle-based",
	OneSeventhOfNight: "one-seventh",
	MiddleOfNight:     "middle-of-night",
}

func (r HighLatitudeRule) String() string {
	if s, ok := ruleNames[r]; ok {
		return s
	}
	return fmt.Sprintf("HighLatitudeRule(%d)", int(r))
}

// ParseHighLatitudeRule accepts the names produced by String as well as a
// few spellings seen in other prayer-time tools.
func ParseHighLatitudeRule(s string) (HighLatitudeRule, error) {
	switch normalizeKey(s) {
	case "none", "off":
		return None, nil
	case "anglebased", "angle", "twilightangle":
		return AngleBased, nil
	case "oneseventh", "oneseventhofnight", "seventhofnight", "seventh":
		return OneSeventhOfNight, nil
	case "middleofnight", "middleofthenight", "midnight", "half":
		return MiddleOfNight, nil
	default:
		return None, fmt.Errorf("invalid high latitude rule %q: must be one of none, angle-based, one-seventh, middle-of-night", s)
	}
}

// NightPortion returns the fraction of the night that the rule places
// between Fajr and sunrise (or sunset and Isha) for a twilight angle.
func (r HighLatitudeRule) NightPortion(angle float64) float64 {
	switch r {
	case AngleBased:
		return angle / 60
	case OneSeventhOfNight:
		return 1.0 / 7
	case MiddleOfNight:
		return 0.5
	default:
		return 0
	}
}

// CalculationMethod is an immutable set of parameters for the engine.
// Either IshaAngle or IshaInterval is set, never both.
type CalculationMethod struct {
	Name         string
	FajrAngle    float64 // degrees below the horizon
	IshaAngle    float64 // degrees below the horizon; zero when IshaInterval is used
	IshaInterval int     // minutes after Maghrib; zero when IshaAngle is used
	AsrFactor    AsrFactor
	HighLatRule  HighLatitudeRule
}

// UsesInterval reports whether Isha is a fixed delay after Maghrib.
func (m CalculationMethod) UsesInterval() bool {
	return m.IshaInterval > 0
}

// WithAsrFactor returns a copy with the Asr factor replaced.
func (m CalculationMethod) WithAsrFactor(f AsrFactor) CalculationMethod {
	m.AsrFactor = f
	return m
}

// WithHighLatitudeRule returns a copy with the fallback rule replaced.
func (m CalculationMethod) WithHighLatitudeRule(r HighLatitudeRule) CalculationMethod {
	m.HighLatRule = r
	return m
}

// Validate checks that the method can drive the engine.
func (m CalculationMethod) Validate() error {
	if m.FajrAngle <= 0 || m.FajrAngle >= 90 {
		return fmt.Errorf("method %q: fajr angle %v must be between 0 and 90", m.Name, m.FajrAngle)
	}
	switch {
	case m.IshaInterval < 0:
		return fmt.Errorf("method %q: isha interval %d must not be negative", m.Name, m.IshaInterval)
	case m.IshaInterval > 0 && m.IshaAngle != 0:
		return fmt.Errorf("method %q: isha angle and isha interval are mutually exclusive", m.Name)
	case m.IshaInterval == 0 && (m.IshaAngle <= 0 || m.IshaAngle >= 90):
		return fmt.Errorf("method %q: isha angle %v must be between 0 and 90", m.Name, m.IshaAngle)
	}
	if m.AsrFactor != Standard && m.AsrFactor != Hanafi {
		return fmt.Errorf("method %q: asr factor %d must be 1 or 2", m.Name, int(m.AsrFactor))
	}
	if _, ok := ruleNames[m.HighLatRule]; !ok {
		return fmt.Errorf("method %q: unknown high latitude rule %d", m.Name, int(m.HighLatRule))
	}
	return nil
}

// Fingerprint returns a stable string of every parameter, suitable as a
// cache key component.
func (m CalculationMethod) Fingerprint() string {
	return fmt.Sprintf("%s|%g|%g|%d|%d|%d",
		m.Name, m.FajrAngle, m.IshaAngle, m.IshaInterval, int(m.AsrFactor), int(m.HighLatRule))
}
