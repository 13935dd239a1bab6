package preferences

import (
	"slices"

	"github.com/nonutti-ng/web/internal/timezone"
)

// TimezoneOption is an entry of the timezone picker.
type TimezoneOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var commonTimezones = []TimezoneOption{
	{Value: "America/New_York", Label: "Eastern Time (EST/EDT)"},
	{Value: "America/Chicago", Label: "Central Time (CST/CDT)"},
	{Value: "America/Denver", Label: "Mountain Time (MST/MDT)"},
	{Value: "America/Los_Angeles", Label: "Pacific Time (PST/PDT)"},
	{Value: "America/Anchorage", Label: "Alaska Time (AKST/AKDT)"},
	{Value: "Pacific/Honolulu", Label: "Hawaii Time (HST)"},
	{Value: "Europe/London", Label: "London (GMT/BST)"},
	{Value: "Europe/Paris", Label: "Central European Time (CET/CEST)"},
	{Value: "Asia/Tokyo", Label: "Japan Time (JST)"},
	{Value: "Australia/Sydney", Label: "Australian Eastern Time (AEST/AEDT)"},
}

// CommonTimezones returns the zones offered by the picker.
func CommonTimezones() []TimezoneOption {
	return slices.Clone(commonTimezones)
}

// Label returns a display name for spec: "UTC ±HH:MM" for offsets, the
// picker label for common zones and the name itself otherwise.
func Label(spec string) string {
	if timezone.IsUTCOffset(spec) {
		return "UTC " + timezone.NormalizeUTCOffset(spec)
	}
	for _, o := range commonTimezones {
		if o.Value == spec {
			return o.Label
		}
	}
	return spec
}
