// Package csvio serializes the ledger to the fixed 11-column CSV interchange
// format and parses that same format back into trade records.
//
// The format is the one byte-exact external contract of the journal: a
// literal header line, comma-joined fields with no quoting, empty strings
// for the exit fields of open trades, and numbers in their natural decimal
// form. Decoding is deliberately permissive: body lines that do not split
// into exactly 11 fields are dropped, and malformed numeric text decodes to
// NaN (0 for the integer share count) rather than aborting the import.
package csvio

import (
	"math"
	"strconv"
	"strings"
	"time"

	"tradelog/internal/errors"
	"tradelog/internal/models"
)

// Header is the fixed CSV header line. Column order is part of the contract.
const Header = "Ticker,Entry Date,Entry Price,Shares,Stop Loss,Target,Exit Price,Exit Date,P&L,Status,Risk Level"

const columns = 11

// Encode renders the snapshot as CSV text: the header line plus one line
// per record. An empty snapshot encodes to just the header.
func Encode(trades []models.Trade) string {
	lines := make([]string, 0, len(trades)+1)
	lines = append(lines, Header)
	for _, t := range trades {
		lines = append(lines, encodeRecord(t))
	}
	return strings.Join(lines, "\n")
}

func encodeRecord(t models.Trade) string {
	exitPrice := ""
	if t.ExitPrice != nil {
		exitPrice = formatFloat(*t.ExitPrice)
	}
	exitDate := ""
	if t.ExitDate != nil {
		exitDate = t.ExitDate.Format(models.DateLayout)
	}
	fields := []string{
		t.Ticker,
		t.EntryDate.Format(models.DateLayout),
		formatFloat(t.EntryPrice),
		strconv.Itoa(t.Shares),
		formatFloat(t.StopLoss),
		formatFloat(t.TargetPrice),
		exitPrice,
		exitDate,
		formatFloat(t.PL),
		string(t.Status),
		string(t.RiskLevel),
	}
	return strings.Join(fields, ",")
}

// Decode parses CSV text previously produced by Encode. It fails with a
// FormatError when the document has fewer than 2 non-blank lines or when
// the first line is not exactly the expected header, and with
// ErrEmptyImport when no body line survives filtering. Decoded records
// carry no ids; the ledger assigns them on replace or merge.
func Decode(text string) ([]models.Trade, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < 2 {
		return nil, errors.NewFormatError(0, "csv document is empty or invalid")
	}
	if strings.TrimSpace(lines[0]) != Header {
		return nil, errors.NewFormatError(1, "header does not match the expected format")
	}

	var records []models.Trade
	for _, line := range lines[1:] {
		if t, ok := decodeRecord(line); ok {
			records = append(records, t)
		}
	}

	if len(records) == 0 {
		return nil, errors.ErrEmptyImport
	}
	return records, nil
}

// decodeRecord parses one body line. Lines with the wrong field count and
// lines whose dates do not parse are dropped; see the package comment for
// the numeric salvage rules.
func decodeRecord(line string) (models.Trade, bool) {
	fields := strings.Split(line, ",")
	if len(fields) != columns {
		return models.Trade{}, false
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	entryDate, err := time.Parse(models.DateLayout, fields[1])
	if err != nil {
		return models.Trade{}, false
	}

	t := models.Trade{
		Ticker:      fields[0],
		EntryDate:   entryDate,
		EntryPrice:  parseFloat(fields[2]),
		Shares:      parseInt(fields[3]),
		StopLoss:    parseFloat(fields[4]),
		TargetPrice: parseFloat(fields[5]),
		PL:          parseFloat(fields[8]),
		Status:      models.TradeStatus(fields[9]),
		RiskLevel:   models.RiskLevel(fields[10]),
	}

	if fields[6] != "" {
		price := parseFloat(fields[6])
		t.ExitPrice = &price
	}
	if fields[7] != "" {
		exitDate, err := time.Parse(models.DateLayout, fields[7])
		if err != nil {
			return models.Trade{}, false
		}
		t.ExitDate = &exitDate
	}

	return t, true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
