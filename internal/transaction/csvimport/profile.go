package csvimport

import (
	"strings"

	"github.com/MrJamesThe3rd/catatusaha/internal/transaction"
)

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountTyped means one amount column plus a type column.
	amountTyped amountMode = iota
	// amountSigned means one signed amount column; negatives are expenses.
	amountSigned
	// amountSplit means separate income and expense columns, as in a
	// handwritten cash book ("Pemasukan"/"Pengeluaran").
	amountSplit
)

// field is a logical column. Each field accepts several header spellings,
// English or Indonesian, matched case-insensitively.
type field string

const (
	fieldDate          field = "date"
	fieldType          field = "type"
	fieldDescription   field = "description"
	fieldAmount        field = "amount"
	fieldIncome        field = "income"
	fieldExpense       field = "expense"
	fieldPaymentMethod field = "paymentMethod"
	fieldNotes         field = "notes"
)

var aliases = map[field][]string{
	fieldDate:          {"date", "tanggal", "tgl"},
	fieldType:          {"type", "jenis", "tipe"},
	fieldDescription:   {"description", "keterangan", "deskripsi", "uraian"},
	fieldAmount:        {"amount", "jumlah", "nominal"},
	fieldIncome:        {"income", "pemasukan", "masuk"},
	fieldExpense:       {"expense", "pengeluaran", "keluar"},
	fieldPaymentMethod: {"paymentmethod", "payment_method", "payment method", "metode pembayaran", "metode", "pembayaran"},
	fieldNotes:         {"notes", "catatan"},
}

// Profile describes one accepted column layout. More specific profiles come
// first so a file with both an amount and a type column is not read as
// signed.
type Profile struct {
	Name       string
	AmountMode amountMode
	Required   []field
}

var profiles = []Profile{
	{Name: "typed", AmountMode: amountTyped, Required: []field{fieldDate, fieldType, fieldDescription, fieldAmount}},
	{Name: "cashbook", AmountMode: amountSplit, Required: []field{fieldDate, fieldDescription, fieldIncome, fieldExpense}},
	{Name: "signed", AmountMode: amountSigned, Required: []field{fieldDate, fieldDescription, fieldAmount}},
}

// colIndex maps logical fields to their index in a row.
type colIndex map[field]int

func headerIndex(row []string) colIndex {
	cols := make(colIndex)

	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name == "" {
			continue
		}

		for f, names := range aliases {
			if _, seen := cols[f]; seen {
				continue
			}

			for _, alias := range names {
				if name == alias {
					cols[f] = i
					break
				}
			}
		}
	}

	return cols
}

func (p *Profile) matches(cols colIndex) bool {
	for _, f := range p.Required {
		if _, ok := cols[f]; !ok {
			return false
		}
	}

	return true
}

// parseType accepts the English enum values and common Indonesian words.
func parseType(s string) (transaction.Type, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "pemasukan", "masuk", "penjualan":
		return transaction.TypeIncome, true
	case "expense", "pengeluaran", "keluar", "pembelian", "biaya":
		return transaction.TypeExpense, true
	}

	return "", false
}
