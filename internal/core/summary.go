package core

// CategoryTotal is an absolute expense total aggregated by category name.
type CategoryTotal struct {
	Name  string `json:"name"`
	Value Money  `json:"value"`
}

// DayTotal carries income and expense subtotals for one date.
// Expenses is an absolute value.
type DayTotal struct {
	Date     Date  `json:"date"`
	Income   Money `json:"income"`
	Expenses Money `json:"expenses"`
}

// Summary is the filtered financial overview for one principal.
// RemainingAmount is always IncomeAmount - ExpensesAmount, computed in
// integer minor units.
type Summary struct {
	IncomeAmount    Money           `json:"incomeAmount"`
	ExpensesAmount  Money           `json:"expensesAmount"`
	RemainingAmount Money           `json:"remainingAmount"`
	Categories      []CategoryTotal `json:"categories"`
	Days            []DayTotal      `json:"days"`
}

// EmptySummary returns a zeroed summary with non-nil collections so the
// zero case serializes as empty arrays, never null.
func EmptySummary() Summary {
	return Summary{
		Categories: []CategoryTotal{},
		Days:       []DayTotal{},
	}
}
