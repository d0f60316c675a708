// Package roster serializes the apartment registry to CSV text and parses
// it back into validated records.
//
// The wire format is fixed: 14 comma-separated columns, no quoting or
// escaping. A field containing a comma corrupts its row; the format is a
// data-exchange convenience for the building manager, not a general CSV
// dialect.
package roster

import (
	"strconv"
	"strings"

	"taksa/internal/core"
)

// Columns is the required header, in encode order.
var Columns = []string{
	"apt_id", "type", "area_m2", "ideal_parts_pct", "has_garage", "pin",
	"base_common", "elevator", "cleaning", "security", "fund_repair",
	"garage_clean", "garage_light", "misc",
}

// truthy is the accepted set for the has_garage column, matched
// case-insensitively. Anything else decodes to false.
var truthy = map[string]bool{"1": true, "да": true, "true": true, "yes": true}

// SchemaError reports required columns absent from an import header. The
// prior registry state stays untouched when it is returned.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "csv header missing required columns: " + strings.Join(e.Missing, ", ")
}

// Options carries the default-filling constants applied while decoding.
type Options struct {
	// FundDefault fills a blank or non-numeric fund_repair field. Every
	// other numeric field defaults to zero.
	FundDefault float64
	// PINPlaceholder fills a blank pin field.
	PINPlaceholder string
}

func DefaultOptions() Options {
	return Options{FundDefault: 12, PINPlaceholder: "0000"}
}

// Result is a successful decode: the replacement registry plus the number
// of data rows dropped for having the wrong field count.
type Result struct {
	Apartments  []core.Apartment
	SkippedRows int
}

// Encode renders the registry in roster order, newline-terminated, booleans
// as 1/0.
func Encode(apts []core.Apartment) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(Columns, ","))
	b.WriteByte('\n')
	for _, a := range apts {
		garage := "0"
		if a.HasGarage {
			garage = "1"
		}
		fields := []string{
			a.ID,
			string(a.Type),
			num(a.AreaM2),
			num(a.IdealPartsPct),
			garage,
			a.PIN,
			num(a.BaseCommon),
			num(a.Elevator),
			num(a.Cleaning),
			num(a.Security),
			num(a.FundRepair),
			num(a.GarageClean),
			num(a.GarageLight),
			num(a.Misc),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// Decode parses CSV text into apartment records. The first non-empty line
// is the header; names match case-insensitively and columns may appear in
// any order. A header missing required columns fails with a *SchemaError.
// Data rows whose field count differs from the header's are skipped and
// counted, not surfaced as errors.
func Decode(data []byte, opts Options) (Result, error) {
	var res Result

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i == len(lines) {
		return res, &SchemaError{Missing: append([]string(nil), Columns...)}
	}

	header := strings.Split(lines[i], ",")
	index := make(map[string]int, len(header))
	for pos, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = pos
	}

	var missing []string
	for _, name := range Columns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return res, &SchemaError{Missing: missing}
	}

	for _, line := range lines[i+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != len(header) {
			res.SkippedRows++
			continue
		}
		res.Apartments = append(res.Apartments, decodeRow(fields, index, opts))
	}
	return res, nil
}

func decodeRow(fields []string, index map[string]int, opts Options) core.Apartment {
	get := func(name string) string {
		return strings.TrimSpace(fields[index[name]])
	}
	pin := get("pin")
	if pin == "" {
		pin = opts.PINPlaceholder
	}
	typ := core.ApartmentType(strings.ToLower(get("type")))
	if !typ.IsValid() {
		typ = core.Home
	}
	// fund_repair is the one numeric field that defaults to the fund
	// constant instead of zero.
	fund := opts.FundDefault
	if v, err := core.ParseDecimal(get("fund_repair")); err == nil {
		fund = v
	}
	return core.Apartment{
		ID:            get("apt_id"),
		Type:          typ,
		AreaM2:        core.ParseDecimalOrZero(get("area_m2")),
		IdealPartsPct: core.ParseDecimalOrZero(get("ideal_parts_pct")),
		HasGarage:     truthy[strings.ToLower(get("has_garage"))],
		PIN:           pin,
		BaseCommon:    core.ParseDecimalOrZero(get("base_common")),
		Elevator:      core.ParseDecimalOrZero(get("elevator")),
		Cleaning:      core.ParseDecimalOrZero(get("cleaning")),
		Security:      core.ParseDecimalOrZero(get("security")),
		FundRepair:    fund,
		GarageClean:   core.ParseDecimalOrZero(get("garage_clean")),
		GarageLight:   core.ParseDecimalOrZero(get("garage_light")),
		Misc:          core.ParseDecimalOrZero(get("misc")),
	}
}

// num renders a numeric field without forced decimals, so
// decode(encode(x)) round-trips.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
