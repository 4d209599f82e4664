package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ExportCSV serializes the current stats into the comma-delimited report the
// UI offers for download: a summary section, the per-day history in
// chronological order, and the full response-time history. The layout is
// load-bearing for consumers of previously exported reports.
func (a *Aggregator) ExportCSV() string {
	stats := a.Snapshot()

	var b strings.Builder

	b.WriteString("Summary Statistics\n")
	b.WriteString("Metric,Value\n")
	fmt.Fprintf(&b, "Total Messages,%d\n", stats.TotalMessages)
	fmt.Fprintf(&b, "User Messages,%d\n", stats.UserMessages)
	fmt.Fprintf(&b, "AI Messages,%d\n", stats.AIMessages)
	fmt.Fprintf(&b, "Images Uploaded,%d\n", stats.ImagesUploaded)
	fmt.Fprintf(&b, "User Characters,%d\n", stats.UserChars)
	fmt.Fprintf(&b, "AI Characters,%d\n", stats.AIChars)
	fmt.Fprintf(&b, "Input Tokens (est),%d\n", stats.TokensUsed.Input)
	fmt.Fprintf(&b, "Output Tokens (est),%d\n", stats.TokensUsed.Output)
	fmt.Fprintf(&b, "Total Tokens (est),%d\n", stats.TokensUsed.Total)
	fmt.Fprintf(&b, "Average Response Time (s),%.2f\n", stats.AvgResponseTime)
	fmt.Fprintf(&b, "Total Response Time (s),%.2f\n", stats.TotalResponseTime)

	b.WriteString("\nDaily Message History\n")
	b.WriteString("Date,User,AI,Total\n")
	days := make([]string, 0, len(stats.DailyMessages))
	for day := range stats.DailyMessages {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		count := stats.DailyMessages[day]
		fmt.Fprintf(&b, "%s,%d,%d,%d\n", day, count.User, count.AI, count.User+count.AI)
	}

	b.WriteString("\nResponse Time History\n")
	b.WriteString("Timestamp,Duration\n")
	for _, sample := range stats.ResponseTimeHistory {
		fmt.Fprintf(&b, "%s,%.2f\n", sample.Timestamp.Format(time.RFC3339), sample.Duration)
	}

	return b.String()
}
