package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Binary unit factors (base 1024).
const (
	unitB  uint64 = 1
	unitKB        = 1024 * unitB
	unitMB        = 1024 * unitKB
	unitGB        = 1024 * unitMB
	unitTB        = 1024 * unitGB
)

type sizeUnit struct {
	factor uint64
	suffix string
}

// unitMap maps -u/--unit values to their factor and display suffix.
var unitMap = map[string]sizeUnit{
	"b":  {unitB, "B"},
	"kb": {unitKB, "KB"},
	"mb": {unitMB, "MB"},
	"gb": {unitGB, "GB"},
	"tb": {unitTB, "TB"},
}

// autoUnits is the auto-detect search order, largest first.
var autoUnits = []string{"tb", "gb", "mb", "kb", "b"}

func validUnits() string {
	names := make([]string, 0, len(unitMap))
	for name := range unitMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// parseUnit validates a -u/--unit value. The empty string selects auto-detect.
func parseUnit(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := unitMap[strings.ToLower(name)]; !ok {
		return fmt.Errorf("invalid unit %q (valid: %s)", name, validUnits())
	}
	return nil
}

// formatSize renders a byte count for display. With clean set it returns the
// bare integer, intended for machine consumption. A non-empty unit forces that
// unit; otherwise the largest unit giving a value >= 1 is chosen.
func formatSize(bytes uint64, unit string, clean bool) (string, error) {
	if clean {
		return strconv.FormatUint(bytes, 10), nil
	}

	if unit != "" {
		u, ok := unitMap[strings.ToLower(unit)]
		if !ok {
			return "", fmt.Errorf("invalid unit %q (valid: %s)", unit, validUnits())
		}
		return renderUnit(bytes, u), nil
	}

	for _, name := range autoUnits {
		if u := unitMap[name]; bytes >= u.factor {
			return renderUnit(bytes, u), nil
		}
	}
	return "0 B", nil
}

// renderUnit converts bytes into u and formats the number: 0 decimals for
// bytes, 2 decimals otherwise, thousands separators in both cases.
func renderUnit(bytes uint64, u sizeUnit) string {
	if u.factor == unitB {
		return humanize.Comma(int64(bytes)) + " " + u.suffix
	}
	value := float64(bytes) / float64(u.factor)
	return humanize.FormatFloat("#,###.##", value) + " " + u.suffix
}
