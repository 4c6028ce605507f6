package models

// Kind is the direction of a ledger entry and also selects which category set
// (expense or income) a category belongs to.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

func (k Kind) Valid() bool {
	return k == KindExpense || k == KindIncome
}
