package features

import (
	"strconv"
	"strings"
)

// MultiSelectSeparator joins the selections of a multi-select field.
const MultiSelectSeparator = ", "

// Form is the raw submission as seen by the normalizer.
type Form interface {
	// Value returns the first submitted value for key.
	Value(key string) (string, bool)
	// Values returns every submitted value for key in submission order.
	Values(key string) []string
}

// Values is a map-backed Form, shaped like url.Values.
type Values map[string][]string

func (v Values) Value(key string) (string, bool) {
	vs := v[key]
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func (v Values) Values(key string) []string {
	return v[key]
}

// Add appends value to key.
func (v Values) Add(key, value string) {
	v[key] = append(v[key], value)
}

// Normalize maps a raw form into a FeatureRecord. It never fails: absent or
// malformed fields are replaced by their defaults.
func Normalize(form Form) FeatureRecord {
	return FeatureRecord{
		Age:                intOrZero(form, ColAge),
		Gender:             stringOrEmpty(form, ColGender),
		Jobs:               stringOrEmpty(form, ColJobs),
		DailyUsageHours:    stringOrEmpty(form, ColDailyUsageHours),
		ActiveTime:         stringOrEmpty(form, ColActiveTime),
		UsageYears:         stringOrEmpty(form, ColUsageYears),
		SocialMediaReasons: joined(form, ColSocialMediaReason),
		AppReasons:         joined(form, ColAppReason),
	}
}

// intOrZero substitutes 0 for an absent or non-integer value. The 0 is a
// placeholder, not a dataset mean.
func intOrZero(form Form, key string) int {
	raw, ok := form.Value(key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func stringOrEmpty(form Form, key string) string {
	v, _ := form.Value(key)
	return v
}

func joined(form Form, key string) string {
	return strings.Join(form.Values(key), MultiSelectSeparator)
}
