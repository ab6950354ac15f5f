package core

// LoadResult contains the surviving transactions of a read along with the
// number of rows skipped for data-quality reasons.
type LoadResult struct {
	Transactions []Transaction
	Dropped      int
}

// Empty reports whether the read produced no transactions.
func (r LoadResult) Empty() bool {
	return len(r.Transactions) == 0
}
