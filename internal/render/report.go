// Package render formats reports as fixed-width text tables for the console.
package render

import (
	"fmt"
	"strings"

	"logpulse/internal/models"
)

const rule = "======================================="

// Summary renders the per-interval summary. The header line always appears; the section
// and error tables only when they have rows.
func Summary(r models.SummaryReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Read %d log lines in the interval %s to %s",
		r.Processed, r.From.Format(timeLayout), r.To.Format(timeLayout))
	if r.LateRecords > 0 {
		fmt.Fprintf(&b, " (%d late)", r.LateRecords)
	}
	b.WriteString("\n")

	if len(r.TopSections) > 0 {
		b.WriteString("Requests by Path:\n")
		writeTable(&b, "Path", len(r.TopSections), func(i int) (string, int) {
			return r.TopSections[i].Key, r.TopSections[i].Count
		})
	}

	if len(r.ErrorCodes) > 0 {
		b.WriteString("BAD STATUS CODES:\n")
		writeTable(&b, "Code", len(r.ErrorCodes), func(i int) (string, int) {
			return fmt.Sprint(r.ErrorCodes[i].Key), r.ErrorCodes[i].Count
		})
	} else {
		b.WriteString("No bad status codes in this interval...\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Alert renders an alert or recovery transition. It returns "" when the report carries no
// transition.
func Alert(r models.AlertReport) string {
	switch r.Transition {
	case models.TransitionAlert:
		return fmt.Sprintf("%s\n| ALERT ALERT ALERT!!! High traffic generated an alert\n| Events in past %s: %d (threshold %d), triggered at %s\n%s",
			rule, window(r), r.Count, r.Threshold, r.To.Format(timeLayout), rule)
	case models.TransitionRecovered:
		return fmt.Sprintf("%s\n| Traffic recovered: events in past %s: %d (threshold %d), at %s\n%s",
			rule, window(r), r.Count, r.Threshold, r.To.Format(timeLayout), rule)
	default:
		return ""
	}
}

const timeLayout = "2006-01-02 15:04:05"

func window(r models.AlertReport) string {
	return r.To.Sub(r.From).String()
}

func writeTable(b *strings.Builder, label string, rows int, row func(i int) (string, int)) {
	b.WriteString(rule + "\n")
	fmt.Fprintf(b, "| %4s | %-20s | %5s |\n", "Item", label, "Count")
	b.WriteString(rule + "\n")
	for i := 0; i < rows; i++ {
		key, count := row(i)
		fmt.Fprintf(b, "| %4d | %-20s | %5d |\n", i, key, count)
	}
	b.WriteString(rule + "\n")
}
