package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/MrJamesThe3rd/catatusaha/internal/transaction"
)

// Header is the first row of every export. The amount column uses a decimal
// comma and no grouping so the file can be imported back unchanged.
var Header = []string{"date", "type", "description", "amount", "amountFormatted", "paymentMethod", "notes"}

// Lister returns the transactions matching a filter.
type Lister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

// Service writes transaction history as CSV for spreadsheets and
// accountants.
type Service struct {
	transactions Lister
	loc          *time.Location
	printer      *message.Printer
}

// NewService creates an export service. Dates are written in loc.
func NewService(transactions Lister, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}

	return &Service{
		transactions: transactions,
		loc:          loc,
		printer:      message.NewPrinter(language.Indonesian),
	}
}

// WriteCSV writes every transaction matching filter, newest first, and
// returns how many rows were written.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, filter transaction.ListFilter) (int, error) {
	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("listing transactions: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		if err := cw.Write(s.row(tx)); err != nil {
			return 0, fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}

	return len(txs), nil
}

func (s *Service) row(tx *transaction.Transaction) []string {
	notes := ""
	if tx.Notes != nil {
		notes = *tx.Notes
	}

	return []string{
		tx.Date.In(s.loc).Format(time.DateOnly),
		string(tx.Type),
		tx.Description,
		strings.Replace(tx.Amount.String(), ".", ",", 1),
		s.FormatIDR(tx.Amount),
		tx.PaymentMethod,
		notes,
	}
}

// FormatIDR renders an amount the way Indonesian receipts do, e.g.
// "Rp 25.000,50". It is for display only; the float conversion may drop
// digits beyond the cent.
func (s *Service) FormatIDR(amount decimal.Decimal) string {
	symbol := s.printer.Sprint(currency.Symbol(currency.IDR))
	value := s.printer.Sprint(number.Decimal(amount.InexactFloat64(), number.Scale(2)))

	return symbol + " " + value
}
