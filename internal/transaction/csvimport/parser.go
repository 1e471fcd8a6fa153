// Package csvimport reads transactions from spreadsheet CSV exports, the
// way small shops keep their cash books.
package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/catatusaha/internal/encoding"
	"github.com/MrJamesThe3rd/catatusaha/internal/transaction"
	"github.com/MrJamesThe3rd/catatusaha/internal/validate"
)

// ErrInvalidFile is wrapped by every error caused by the file content.
var ErrInvalidFile = errors.New("invalid import file")

// DefaultPaymentMethod is used when a row has no payment method.
const DefaultPaymentMethod = "cash"

var dateLayouts = []string{
	time.DateOnly,
	"02/01/2006",
	"02-01-2006",
	"2/1/2006",
}

// Parser turns a CSV file into transaction params. The header row may be
// preceded by title lines; the first row matching a known profile is used.
type Parser struct {
	loc *time.Location
}

// NewParser returns a parser that reads dates in loc (UTC when nil).
func NewParser(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.UTC
	}

	return &Parser{loc: loc}
}

// Parse reads every data row. It fails on the first bad row, reporting the
// file line it starts on, so a caller never persists a partial file.
func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := readRows(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("%w: no header row with date, description and amount columns", ErrInvalidFile)
	}

	slog.Debug("parsing transaction import",
		"charset", charset, "profile", profile.Name, "rows", len(rows)-headerIdx-1)

	return p.parseRows(profile, cols, rows[headerIdx+1:])
}

// record is one CSV row with the file line it starts on. encoding/csv drops
// empty lines, so record indexes do not match line numbers.
type record struct {
	line  int
	cells []string
}

func readRows(reader *csv.Reader) ([]record, error) {
	var rows []record

	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}

		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, record{line: line, cells: cells})
	}
}

// sniffDelimiter picks the separator that occurs most in the first
// non-empty line. Indonesian-locale spreadsheets export with ';'.
func sniffDelimiter(data []byte) rune {
	sc := bufio.NewScanner(bytes.NewReader(data))

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		best, bestCount := ',', strings.Count(line, ",")
		for _, d := range []rune{';', '\t'} {
			if n := strings.Count(line, string(d)); n > bestCount {
				best, bestCount = d, n
			}
		}

		// A title line without separators says nothing; keep looking.
		if bestCount > 0 {
			return best
		}
	}

	return ','
}

func detectProfile(rows []record) (*Profile, colIndex, int) {
	for rowIdx, r := range rows {
		cols := headerIndex(r.cells)

		for i := range profiles {
			if profiles[i].matches(cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func (p *Parser) parseRows(profile *Profile, cols colIndex, rows []record) ([]transaction.CreateParams, error) {
	var out []transaction.CreateParams

	for _, r := range rows {
		if blank(r.cells) {
			continue
		}

		// Footer rows such as totals carry no date.
		rawDate := cellValue(r.cells, cols, fieldDate)
		if rawDate == "" {
			continue
		}

		params, err := p.parseRow(profile, cols, r.cells, rawDate)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrInvalidFile, r.line, err)
		}

		if err := validate.Struct(params); err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrInvalidFile, r.line, err)
		}

		out = append(out, params)
	}

	return out, nil
}

func (p *Parser) parseRow(profile *Profile, cols colIndex, row []string, rawDate string) (transaction.CreateParams, error) {
	date, err := p.parseDate(rawDate)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	params := transaction.CreateParams{
		Date:          date,
		Description:   cellValue(row, cols, fieldDescription),
		PaymentMethod: cellValue(row, cols, fieldPaymentMethod),
	}

	if params.PaymentMethod == "" {
		params.PaymentMethod = DefaultPaymentMethod
	}

	if notes := cellValue(row, cols, fieldNotes); notes != "" {
		params.Notes = &notes
	}

	switch profile.AmountMode {
	case amountTyped:
		err = parseTyped(&params, row, cols)
	case amountSigned:
		err = parseSigned(&params, row, cols)
	case amountSplit:
		err = parseSplit(&params, row, cols)
	}

	return params, err
}

func (p *Parser) parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, p.loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, validate.Field("date", fmt.Sprintf("unrecognized date %q", s))
}

func parseTyped(params *transaction.CreateParams, row []string, cols colIndex) error {
	raw := cellValue(row, cols, fieldType)

	typ, ok := parseType(raw)
	if !ok {
		return validate.Field("type", fmt.Sprintf("unknown type %q", raw))
	}

	amount, err := parseAmount(cellValue(row, cols, fieldAmount))
	if err != nil {
		return validate.Field("amount", err.Error())
	}

	params.Type = typ
	params.Amount = amount

	return nil
}

func parseSigned(params *transaction.CreateParams, row []string, cols colIndex) error {
	amount, err := parseAmount(cellValue(row, cols, fieldAmount))
	if err != nil {
		return validate.Field("amount", err.Error())
	}

	params.Type = transaction.TypeIncome
	if amount.IsNegative() {
		params.Type = transaction.TypeExpense
		amount = amount.Abs()
	}

	params.Amount = amount

	return nil
}

func parseSplit(params *transaction.CreateParams, row []string, cols colIndex) error {
	income, err := splitCell(cellValue(row, cols, fieldIncome))
	if err != nil {
		return validate.Field("income", err.Error())
	}

	expense, err := splitCell(cellValue(row, cols, fieldExpense))
	if err != nil {
		return validate.Field("expense", err.Error())
	}

	switch {
	case !income.IsZero() && !expense.IsZero():
		return validate.Field("amount", "both income and expense are filled")
	case !income.IsZero():
		params.Type, params.Amount = transaction.TypeIncome, income
	case !expense.IsZero():
		params.Type, params.Amount = transaction.TypeExpense, expense
	default:
		return validate.Field("amount", "income or expense is required")
	}

	return nil
}

// splitCell parses one side of a cash book row. Empty cells, "-" and zero
// all mean the side is unused.
func splitCell(s string) (decimal.Decimal, error) {
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}

	return parseAmount(s)
}

func cellValue(row []string, cols colIndex, f field) string {
	idx, ok := cols[f]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
