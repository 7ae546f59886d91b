package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/user/pq_analyzer_go/internal/config"
)

// spreadsheet serial day-counts are anchored at 1899-12-30 (vendor quirk)
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// timeLayouts are tried in order when parsing timestamp values.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"02-Jan-2006 15:04:05",
	"02-Jan-2006",
}

// LoadCSV parses a vendor export into canonical readings. mapName selects a
// template from KnownMaps or "auto" for detection. Rows whose timestamp or
// current cannot be coerced are dropped; the result is sorted by timestamp.
func LoadCSV(path, mapName string, cfg config.Settings) ([]Reading, error) {
	log.Info().Str("path", path).Str("map", mapName).Msg("loading CSV")

	header, rows, err := readTable(path)
	if err != nil {
		return nil, err
	}

	// Wide per-phase current columns are checked before name scoring.
	if mapName == "auto" {
		if wide := pivotWideColumns(header, rows); wide != nil {
			out := finishReadings(wide)
			if len(out) == 0 {
				return nil, &NoValidRowsError{Found: header}
			}
			log.Info().Int("rows", len(out)).Msg("detected wide per-phase columns; converted to long format")
			return out, nil
		}
	}

	var cmap ColumnMap
	if mapName == "auto" {
		cmap, err = autodetectMap(header)
		if err != nil {
			return nil, err
		}
		log.Info().
			Str("timestamp", cmap.Timestamp).
			Str("current", cmap.Current).
			Str("phase", cmap.Phase).
			Msg("auto-detected columns")
	} else {
		known, ok := KnownMaps[mapName]
		if !ok {
			names := make([]string, 0, len(KnownMaps)+1)
			names = append(names, "auto")
			for k := range KnownMaps {
				names = append(names, k)
			}
			sort.Strings(names)
			return nil, fmt.Errorf("unknown map_name %q; options: %s", mapName, strings.Join(names, ", "))
		}
		cmap = known
		var missing []string
		for _, want := range []string{cmap.Timestamp, cmap.Current} {
			if columnIndex(header, want) < 0 {
				missing = append(missing, want)
			}
		}
		if len(missing) > 0 {
			log.Warn().Strs("columns", header).Msg("CSV columns found")
			return nil, &MissingColumnsError{MapName: mapName, Missing: missing, Found: header}
		}
	}

	tsIdx := columnIndex(header, cmap.Timestamp)
	curIdx := columnIndex(header, cmap.Current)
	phaseIdx := -1
	if cmap.Phase != "" {
		phaseIdx = columnIndex(header, cmap.Phase)
	}

	times, timesOK := parseTimestampColumn(columnValues(rows, tsIdx))

	readings := make([]Reading, 0, len(rows))
	for i, row := range rows {
		if !timesOK[i] {
			continue
		}
		cur, ok := coerceCurrent(cellAt(row, curIdx))
		if !ok {
			continue
		}
		phase := cfg.DefaultPhase
		if phaseIdx >= 0 {
			phase = CleanPhaseLabel(cellAt(row, phaseIdx), cfg.DefaultPhase)
		}
		readings = append(readings, Reading{Timestamp: times[i], Phase: phase, Current: cur})
	}

	out := finishReadings(readings)
	if len(out) == 0 {
		return nil, &NoValidRowsError{Found: header}
	}
	log.Info().Int("rows", len(out)).Msg("loaded valid rows")
	return out, nil
}

// finishReadings applies the shared post-processing: stable timestamp sort.
func finishReadings(readings []Reading) []Reading {
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].Timestamp.Before(readings[j].Timestamp)
	})
	return readings
}

// readTable reads the file as a delimited table. Strategies, in order:
// plain comma-delimited, delimiter sniffing, then alternate text encodings.
func readTable(path string) ([]string, [][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &ReadError{Path: path, Err: err}
	}

	if h, r, err := parseDelimited(data, ','); err == nil {
		return h, r, nil
	}

	if comma := sniffDelimiter(data); comma != 0 && comma != ',' {
		if h, r, err := parseDelimited(data, comma); err == nil {
			return h, r, nil
		}
	}

	var lastErr error
	for _, dec := range []*encoding.Decoder{
		unicode.UTF8BOM.NewDecoder(),
		charmap.ISO8859_1.NewDecoder(),
	} {
		decoded, derr := io.ReadAll(transform.NewReader(bytes.NewReader(data), dec))
		if derr != nil {
			lastErr = derr
			continue
		}
		h, r, perr := parseDelimited(decoded, ',')
		if perr == nil {
			return h, r, nil
		}
		if comma := sniffDelimiter(decoded); comma != 0 && comma != ',' {
			if h, r, perr := parseDelimited(decoded, comma); perr == nil {
				return h, r, nil
			}
		}
		lastErr = perr
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no delimiter strategy produced a table")
	}
	return nil, nil, &ReadError{Path: path, Err: lastErr}
}

// parseDelimited parses data with the given delimiter. A table with fewer
// than two columns is treated as a failed parse so the caller can try the
// next strategy.
func parseDelimited(data []byte, comma rune) ([]string, [][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) < 1 || len(all[0]) < 2 {
		return nil, nil, fmt.Errorf("delimiter %q yields fewer than two columns", comma)
	}

	header := make([]string, len(all[0]))
	for i, c := range all[0] {
		header[i] = strings.TrimSpace(c)
	}
	return header, all[1:], nil
}

// sniffDelimiter picks the candidate delimiter occurring most often in the
// first non-empty line, or 0 when none occurs.
func sniffDelimiter(data []byte) rune {
	line := ""
	for _, l := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(l) != "" {
			line = l
			break
		}
	}
	best, bestCount := rune(0), 0
	for _, cand := range []rune{';', '\t', '|', ','} {
		if n := strings.Count(line, string(cand)); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}

// autodetectMap resolves the timestamp/current/phase roles by exact
// case-insensitive lookup first, then by name scoring. Timestamp and
// current are mandatory; phase is optional.
func autodetectMap(header []string) (ColumnMap, error) {
	ts := findColumn(header, timestampCandidates)
	if ts == "" {
		ts = bestMatch(header, timestampCandidates)
	}
	cur := findColumn(header, currentCandidates)
	if cur == "" {
		cur = bestMatch(header, currentCandidates)
	}
	ph := findColumn(header, phaseCandidates)
	if ph == "" {
		ph = bestMatch(header, phaseCandidates)
	}

	if ts == "" || cur == "" {
		return ColumnMap{}, &AutoDetectError{Found: header}
	}
	return ColumnMap{Timestamp: ts, Current: cur, Phase: ph}, nil
}

// findColumn returns the header column exactly matching one of the
// candidates, ignoring case, or "".
func findColumn(header []string, candidates []string) string {
	for _, cand := range candidates {
		key := strings.ToLower(strings.TrimSpace(cand))
		for _, col := range header {
			if strings.ToLower(strings.TrimSpace(col)) == key {
				return col
			}
		}
	}
	return ""
}

// scoreColumnName scores a column name against a candidate list: exact
// case-insensitive match counts 10, a candidate contained in the name
// counts 3. Scores sum over all candidates.
func scoreColumnName(name string, candidates []string) int {
	n := strings.ToLower(strings.TrimSpace(name))
	score := 0
	for _, cand := range candidates {
		c := strings.ToLower(strings.TrimSpace(cand))
		if n == c {
			score += 10
		} else if strings.Contains(n, c) {
			score += 3
		}
	}
	return score
}

// bestMatch returns the highest positively-scoring header column, or "".
func bestMatch(header []string, candidates []string) string {
	best, bestScore := "", 0
	for _, col := range header {
		if s := scoreColumnName(col, candidates); s > bestScore {
			best, bestScore = col, s
		}
	}
	return best
}

// pivotWideColumns converts wide exports (one current column per phase, no
// phase column) into long-format readings. At least two phase-keyed
// columns are required; otherwise nil is returned and detection falls
// through to name scoring.
func pivotWideColumns(header []string, rows [][]string) []Reading {
	tsName := findColumn(header, timestampCandidates)
	if tsName == "" {
		tsName = bestMatch(header, timestampCandidates)
	}
	if tsName == "" {
		return nil
	}
	tsIdx := columnIndex(header, tsName)

	type phaseCol struct {
		phase string
		idx   int
	}
	var found []phaseCol
	for _, wp := range widePhasePatterns {
		for _, pat := range wp.Patterns {
			if idx := columnIndex(header, pat); idx >= 0 {
				found = append(found, phaseCol{phase: wp.Phase, idx: idx})
				break
			}
		}
	}
	if len(found) < 2 {
		return nil
	}

	times, timesOK := parseTimestampColumn(columnValues(rows, tsIdx))

	var out []Reading
	for _, pc := range found {
		for i, row := range rows {
			if !timesOK[i] {
				continue
			}
			cur, ok := coerceCurrent(cellAt(row, pc.idx))
			if !ok {
				continue
			}
			out = append(out, Reading{Timestamp: times[i], Phase: pc.phase, Current: cur})
		}
	}
	return out
}

// coerceCurrent turns values like "11.2 A" or "11,2" into a float. The
// second return is false when the value is not numeric.
func coerceCurrent(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, "A", "")
	s = strings.ReplaceAll(s, "amps", "")
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseTimestampColumn parses a whole timestamp column. When every value
// fails the layout list, the column is retried as spreadsheet serial
// day-counts anchored at serialEpoch.
func parseTimestampColumn(values []string) ([]time.Time, []bool) {
	times := make([]time.Time, len(values))
	ok := make([]bool, len(values))
	anyOK := false
	for i, v := range values {
		if t, good := parseTimestamp(v); good {
			times[i], ok[i] = t, true
			anyOK = true
		}
	}
	if anyOK {
		return times, ok
	}

	for i, v := range values {
		num, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			continue
		}
		times[i] = serialEpoch.Add(time.Duration(num * 24 * float64(time.Hour)))
		ok[i] = true
	}
	return times, ok
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CleanPhaseLabel strips the word "phase" and surrounding whitespace from a
// phase value, so "Phase A" becomes "A". Values left empty fall back to the
// default phase.
func CleanPhaseLabel(s, defaultPhase string) string {
	out := strings.TrimSpace(s)
	lower := strings.ToLower(out)
	if idx := strings.Index(lower, "phase"); idx >= 0 {
		out = out[:idx] + out[idx+len("phase"):]
		out = strings.TrimSpace(out)
	}
	if out == "" {
		return defaultPhase
	}
	return out
}

func columnIndex(header []string, name string) int {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, col := range header {
		if strings.ToLower(strings.TrimSpace(col)) == want {
			return i
		}
	}
	return -1
}

func columnValues(rows [][]string, idx int) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = cellAt(row, idx)
	}
	return out
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
