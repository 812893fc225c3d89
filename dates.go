package main

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// Epoch values below this are taken to be seconds, not milliseconds.
const epochMillisCutoff = 1e12

// Layouts tried for general calendar parsing, most specific first. Zoneless
// layouts parse in the server's local zone so that "2024-08-15" and
// "15 Agustus 2024" land on the same instant.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

var localizedDateRe = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3,})\s+(\d{4})$`)

// Indonesian month names and the abbreviations seen in stored records.
var monthNames = map[string]time.Month{
	"jan": time.January, "januari": time.January,
	"feb": time.February, "februari": time.February,
	"mar": time.March, "maret": time.March,
	"apr": time.April, "april": time.April,
	"mei": time.May,
	"jun": time.June, "juni": time.June,
	"jul": time.July, "juli": time.July,
	"agu": time.August, "agustus": time.August,
	"sep": time.September, "september": time.September,
	"okt": time.October, "oktober": time.October,
	"nov": time.November, "november": time.November,
	"des": time.December, "desember": time.December,
}

var monthShort = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

var monthLong = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// parseInstant converts a raw date-ish value into milliseconds since epoch.
// Accepted, in order: epoch numbers (seconds below 1e12, milliseconds above),
// calendar strings matching one of dateLayouts, and the localized
// "D MonthName YYYY" form. Anything else is unparseable (ok=false).
func parseInstant(raw any) (int64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return epochToMillis(v), true
	case int:
		return epochToMillis(float64(v)), true
	case int64:
		return epochToMillis(float64(v)), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return epochToMillis(f), true
	}

	s := strings.TrimSpace(asString(raw))
	if s == "" {
		return 0, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.UnixMilli(), true
		}
	}

	if m := localizedDateRe.FindStringSubmatch(s); m != nil {
		if mon, ok := monthNames[strings.ToLower(m[2])]; ok {
			day := mustAtoi(m[1])
			year := mustAtoi(m[3])
			return time.Date(year, mon, day, 0, 0, 0, 0, time.Local).UnixMilli(), true
		}
	}

	return 0, false
}

func epochToMillis(v float64) int64 {
	if v < epochMillisCutoff {
		return int64(v * 1000)
	}
	return int64(v)
}

func mustAtoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// dateLabel renders an instant as "09 Jan 2026".
func dateLabel(ms int64) string {
	t := time.UnixMilli(ms).In(time.Local)
	return fmt.Sprintf("%02d %s %d", t.Day(), monthShort[t.Month()-1], t.Year())
}

// dateTimeLabel is the full variant used on detail views,
// e.g. "09 Januari 2026 Jam 14:05".
func dateTimeLabel(ms int64) string {
	t := time.UnixMilli(ms).In(time.Local)
	return fmt.Sprintf("%02d %s %d Jam %02d:%02d", t.Day(), monthLong[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
