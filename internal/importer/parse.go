package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cinefilmes/catalog/internal/catalog/domain"
)

// dateLayouts are the accepted textual renderings of the release date cell.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"02/01/2006 15:04:05",
}

// SplitList splits a comma-separated cell into trimmed, non-empty names.
// Repeated names keep their first occurrence only, so the result is a set
// in first-seen order.
func SplitList(cell string) []string {
	parts := strings.Split(cell, ",")
	names := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// ParseCast splits a semicolon-separated cell into cast members. Each entry
// splits on the first hyphen into (actor, role); entries without a hyphen
// are skipped, and a repeated actor keeps the first entry only.
func ParseCast(cell string) []domain.CastMember {
	entries := strings.Split(cell, ";")
	cast := make([]domain.CastMember, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		actor, role, found := strings.Cut(entry, "-")
		if !found {
			continue
		}
		actor = strings.TrimSpace(actor)
		if actor == "" {
			continue
		}
		if _, ok := seen[actor]; ok {
			continue
		}
		seen[actor] = struct{}{}
		cast = append(cast, domain.CastMember{
			Actor: actor,
			Role:  strings.TrimSpace(role),
		})
	}
	return cast
}

// ParseReleaseDate converts a release date cell to a calendar date. Both
// textual renderings and raw Excel serial numbers are accepted.
func ParseReleaseDate(cell string) (time.Time, error) {
	value := strings.TrimSpace(cell)
	if value == "" {
		return time.Time{}, fmt.Errorf("release date is empty")
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable release date %q", cell)
}

// parseOptionalInt converts a numeric cell, empty meaning absent.
func parseOptionalInt(cell string) (*int, error) {
	value := strings.TrimSpace(cell)
	if value == "" {
		return nil, nil
	}
	// Excel renders integers as floats often enough ("14.0").
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", cell)
	}
	n := int(f)
	return &n, nil
}

// parseOptionalFloat converts a numeric cell, empty meaning absent.
func parseOptionalFloat(cell string) (*float64, error) {
	value := strings.TrimSpace(cell)
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", cell)
	}
	return &f, nil
}
