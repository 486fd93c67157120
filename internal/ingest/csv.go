package ingest

import (
	"strconv"
	"strings"
	"time"

	"sofhub/internal/domain"
)

// Fixed numeric defaults substituted when no header synonym matches.
const (
	DefaultDemurragePerDay = 5000
	DefaultDispatchPerDay  = 2500
	DefaultLoadRatePerDay  = 10000
	DefaultCargoQtyMt      = 47000
)

// vesselRowScanLimit bounds the vessel-row scan to the first rows of the
// table.
const vesselRowScanLimit = 5

// Ordered synonym lists per logical field, checked in sequence against the
// header row. The two producers never agreed on a schema, so each field
// accumulates every header variant seen in real statements.
var (
	vesselSynonyms     = []string{"Vessel", "vessel", "VESSEL", "Vessel Name", "vessel_name"}
	voyageFromSynonyms = []string{"Voyage From", "voyage_from", "From", "from", "Origin"}
	voyageToSynonyms   = []string{"Voyage To", "voyage_to", "To", "to", "Destination"}
	cargoSynonyms      = []string{"Cargo", "cargo", "CARGO", "Cargo Type", "cargo_type"}
	portSynonyms       = []string{"Port", "port", "PORT", "Port Name", "port_name"}
	operationSynonyms  = []string{"Operation", "operation", "Operation Type", "operation_type"}
	demurrageSynonyms  = []string{"Demurrage", "demurrage", "Demurrage Rate", "demurrage_rate", "Demurrage/Day"}
	dispatchSynonyms   = []string{"Dispatch", "dispatch", "Dispatch Rate", "dispatch_rate", "Dispatch/Day"}
	loadRateSynonyms   = []string{"Load Rate", "load_rate", "Loading Rate", "loading_rate", "Rate"}
	cargoQtySynonyms   = []string{"Cargo Qty", "Cargo Quantity", "cargo_qty", "cargo_quantity", "Quantity", "Qty"}
	eventSynonyms      = []string{"Event", "event", "Event Name"}
	startSynonyms      = []string{"Start Time", "start_time", "Start", "start"}
	endSynonyms        = []string{"End Time", "end_time", "End", "end"}
)

// Row maps header names to cell values.
type Row map[string]string

// ParseTable splits raw delimited text into header-keyed rows. Lines are
// split on newlines, cells on commas; there is no quoted-field awareness, so
// embedded commas or quotes in source data corrupt columns. That is a known
// limitation of the input format, not corrected here.
func ParseTable(text string) []Row {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil
	}

	header := splitCells(lines[0])
	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := splitCells(line)
		row := make(Row, len(header))
		for i, h := range header {
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func splitCells(line string) []string {
	cells := strings.Split(line, ",")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// lookup resolves the first non-empty value among the synonym keys of a row.
func lookup(row Row, synonyms []string) (string, bool) {
	for _, key := range synonyms {
		if v, ok := row[key]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

func lookupNumeric(row Row, synonyms []string, fallback float64) float64 {
	raw, ok := lookup(row, synonyms)
	if !ok {
		return fallback
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return fallback
	}
	return v
}

// ExtractFromRows runs the header-synonym heuristic over parsed rows and
// builds an ExtractionResult. Returns nil when the table has no data rows;
// the caller surfaces that as ErrNoExtractableVesselRow.
func ExtractFromRows(rows []Row, sourceFile string) *domain.ExtractionResult {
	if len(rows) == 0 {
		return nil
	}

	vesselRow := resolveVesselRow(rows)

	res := &domain.ExtractionResult{
		SourceFile:  sourceFile,
		ExtractedAt: time.Now().UTC(),
	}
	res.Vessel, _ = lookup(vesselRow, vesselSynonyms)
	res.VoyageFrom, _ = lookup(vesselRow, voyageFromSynonyms)
	res.VoyageTo, _ = lookup(vesselRow, voyageToSynonyms)
	res.Cargo, _ = lookup(vesselRow, cargoSynonyms)
	res.Port, _ = lookup(vesselRow, portSynonyms)
	res.Operation, _ = lookup(vesselRow, operationSynonyms)
	res.DemurragePerDay = lookupNumeric(vesselRow, demurrageSynonyms, DefaultDemurragePerDay)
	res.DispatchPerDay = lookupNumeric(vesselRow, dispatchSynonyms, DefaultDispatchPerDay)
	res.LoadRatePerDay = lookupNumeric(vesselRow, loadRateSynonyms, DefaultLoadRatePerDay)
	res.CargoQtyMt = lookupNumeric(vesselRow, cargoQtySynonyms, DefaultCargoQtyMt)
	res.Events = extractEvents(rows)

	return res
}

// resolveVesselRow scans the first min(5, rowCount) rows and returns the
// first one carrying a value under any vessel synonym. Row 0 is the fallback
// when none match.
func resolveVesselRow(rows []Row) Row {
	limit := vesselRowScanLimit
	if len(rows) < limit {
		limit = len(rows)
	}
	for i := 0; i < limit; i++ {
		if _, ok := lookup(rows[i], vesselSynonyms); ok {
			return rows[i]
		}
	}
	return rows[0]
}

// extractEvents walks every row of the table independently of vessel-row
// selection: any row carrying an event-name synonym becomes one event, with
// "00:00" substituted for absent times.
func extractEvents(rows []Row) []domain.Event {
	var events []domain.Event
	for _, row := range rows {
		name, ok := lookup(row, eventSynonyms)
		if !ok {
			continue
		}
		start, ok := lookup(row, startSynonyms)
		if !ok {
			start = "00:00"
		}
		end, ok := lookup(row, endSynonyms)
		if !ok {
			end = "00:00"
		}
		events = append(events, domain.Event{Name: name, Start: start, End: end})
	}
	return events
}
