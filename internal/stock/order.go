package stock

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortByName orders items the way shop owners read a stock list: Indonesian
// collation ignoring case, then exact name, then kind. Every RecordStore
// backend sorts with it so listings agree whatever the database collation.
func SortByName(items []*Item) {
	// A Collator is not safe for concurrent use.
	c := collate.New(language.Indonesian, collate.IgnoreCase)

	slices.SortStableFunc(items, func(a, b *Item) int {
		if r := c.CompareString(a.ItemName, b.ItemName); r != 0 {
			return r
		}

		return cmp.Or(
			strings.Compare(a.ItemName, b.ItemName),
			strings.Compare(string(a.Kind), string(b.Kind)),
		)
	})
}
