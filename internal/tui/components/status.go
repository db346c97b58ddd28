package components

import "f2bsentinel/internal/color"

// Indicator is a "label: value" chip shown in the status bar.
type Indicator struct {
	Label  string
	Value  string
	Active bool
}

// NewIndicator creates an indicator.
func NewIndicator(label, value string, active bool) Indicator {
	return Indicator{Label: label, Value: value, Active: active}
}

// OnOff creates an indicator showing "on" or "off".
func OnOff(label string, on bool) Indicator {
	if on {
		return NewIndicator(label, "on", true)
	}
	return NewIndicator(label, "off", false)
}

// Render styles the value by state.
func (i Indicator) Render() string {
	value := color.SubtleStyle.Render(i.Value)
	if i.Active {
		value = color.SuccessStyle.Render(i.Value)
	}
	if i.Label == "" {
		return value
	}
	return color.LabelStyle.Render(i.Label+": ") + value
}
