package features

// Training column names. The model was fitted on exactly these columns, in this order.
const (
	ColAge               = "Age"
	ColGender            = "Gender"
	ColJobs              = "Jobs"
	ColDailyUsageHours   = "DailyUsageHours"
	ColActiveTime        = "ActiveTimeClean"
	ColUsageYears        = "UsageYears"
	ColSocialMediaReason = "SocialMediaReason"
	ColAppReason         = "AppReason"
)

var columns = []string{
	ColAge,
	ColGender,
	ColJobs,
	ColDailyUsageHours,
	ColActiveTime,
	ColUsageYears,
	ColSocialMediaReason,
	ColAppReason,
}

// FeatureRecord is the canonical model input for one request.
type FeatureRecord struct {
	Age                int    `json:"Age"`
	Gender             string `json:"Gender"`
	Jobs               string `json:"Jobs"`
	DailyUsageHours    string `json:"DailyUsageHours"`
	ActiveTime         string `json:"ActiveTimeClean"`
	UsageYears         string `json:"UsageYears"`
	SocialMediaReasons string `json:"SocialMediaReason"`
	AppReasons         string `json:"AppReason"`
}

// Columns returns the schema column names in training order.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// Row returns the record's values aligned with Columns.
func (r FeatureRecord) Row() []any {
	return []any{
		r.Age,
		r.Gender,
		r.Jobs,
		r.DailyUsageHours,
		r.ActiveTime,
		r.UsageYears,
		r.SocialMediaReasons,
		r.AppReasons,
	}
}
