package stats

import (
	"sort"
	"strings"
)

const (
	statusSubmitted    = "Submitted"
	statusAcknowledged = "Acknowledged"
	statusResolved     = "Resolved"
)

// StatusCounts is the /stats payload: one counter per status plus the
// grand total, recomputed from a full scan on every request.
type StatusCounts struct {
	Total        int `json:"total"`
	Submitted    int `json:"submitted"`
	Acknowledged int `json:"acknowledged"`
	Resolved     int `json:"resolved"`
}

// IssueRow is the slice of an issue the aggregations read.
type IssueRow struct {
	Status    string   `db:"status"`
	Location  string   `db:"location"`
	Latitude  *float64 `db:"latitude"`
	Longitude *float64 `db:"longitude"`
}

// AreaReport is one map marker: an area bucket with totals, share of all
// located issues, resolution rate and the color band for rendering.
type AreaReport struct {
	Area           string  `json:"area"`
	Total          int     `json:"total"`
	Submitted      int     `json:"submitted"`
	Acknowledged   int     `json:"acknowledged"`
	Resolved       int     `json:"resolved"`
	Percentage     float64 `json:"percentage"`
	ResolutionRate float64 `json:"resolution_rate"`
	Color          string  `json:"color"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
}

// CountStatuses tallies occurrences per status. Statuses outside the
// canonical three still count toward the total; nothing here validates.
func CountStatuses(statuses []string) StatusCounts {
	counts := StatusCounts{Total: len(statuses)}
	for _, status := range statuses {
		switch status {
		case statusSubmitted:
			counts.Submitted++
		case statusAcknowledged:
			counts.Acknowledged++
		case statusResolved:
			counts.Resolved++
		}
	}
	return counts
}

const fallbackKeyRunes = 20

// AreaKey derives the bucket name from a free-text location. Comma-separated
// locations use the second-to-last token ("5th Ave, Springfield, IL" →
// "Springfield"); anything else falls back to the first 20 runes. A key
// that trims to nothing becomes "Unknown".
func AreaKey(location string) string {
	var key string
	if strings.Contains(location, ",") {
		parts := strings.Split(location, ",")
		key = strings.TrimSpace(parts[len(parts)-2])
	} else {
		runes := []rune(location)
		if len(runes) > fallbackKeyRunes {
			runes = runes[:fallbackKeyRunes]
		}
		key = strings.TrimSpace(string(runes))
	}
	if key == "" {
		return "Unknown"
	}
	return key
}

// colorFor classifies a resolution rate: above 70 green, 40 through 70
// inclusive yellow, below 40 red.
func colorFor(resolutionRate float64) string {
	switch {
	case resolutionRate > 70:
		return "green"
	case resolutionRate >= 40:
		return "yellow"
	default:
		return "red"
	}
}

type areaAccumulator struct {
	total        int
	submitted    int
	acknowledged int
	resolved     int
	latSum       float64
	lngSum       float64
}

// AggregateAreas buckets located issues by area key and derives the map
// marker reports. Issues without coordinates are excluded entirely; marker
// positions are the mean of each bucket's coordinates. Results are sorted
// by total descending, ties by area name.
func AggregateAreas(rows []IssueRow) []AreaReport {
	buckets := make(map[string]*areaAccumulator)
	located := 0

	for _, row := range rows {
		if row.Latitude == nil || row.Longitude == nil {
			continue
		}
		located++

		key := AreaKey(row.Location)
		acc, ok := buckets[key]
		if !ok {
			acc = &areaAccumulator{}
			buckets[key] = acc
		}

		acc.total++
		acc.latSum += *row.Latitude
		acc.lngSum += *row.Longitude
		switch row.Status {
		case statusSubmitted:
			acc.submitted++
		case statusAcknowledged:
			acc.acknowledged++
		case statusResolved:
			acc.resolved++
		}
	}

	reports := make([]AreaReport, 0, len(buckets))
	for key, acc := range buckets {
		resolutionRate := float64(acc.resolved) / float64(acc.total) * 100
		reports = append(reports, AreaReport{
			Area:           key,
			Total:          acc.total,
			Submitted:      acc.submitted,
			Acknowledged:   acc.acknowledged,
			Resolved:       acc.resolved,
			Percentage:     float64(acc.total) / float64(located) * 100,
			ResolutionRate: resolutionRate,
			Color:          colorFor(resolutionRate),
			Lat:            acc.latSum / float64(acc.total),
			Lng:            acc.lngSum / float64(acc.total),
		})
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].Total != reports[j].Total {
			return reports[i].Total > reports[j].Total
		}
		return reports[i].Area < reports[j].Area
	})

	return reports
}
