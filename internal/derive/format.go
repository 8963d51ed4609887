package derive

import "fmt"

// FormatDate renders an ISO date for display, e.g. "Mon, Jan 2 2006".
// Unparseable input is returned as-is.
func FormatDate(dateString string) string {
	day, ok := parseDay(dateString)
	if !ok {
		return dateString
	}
	return day.Format("Mon, Jan 2 2006")
}

// FormatMinutes renders a duration in minutes as "h:mm", or "N min"
// under an hour.
func FormatMinutes(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d", hours, mins)
	}
	return fmt.Sprintf("%d min", mins)
}

// FormatTimer renders elapsed seconds as "hh:mm:ss".
func FormatTimer(seconds int) string {
	hours := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
}
