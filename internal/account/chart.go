package account

// Well-known account codes. Leaves under 1xxx are assets, 2xxx liabilities,
// 3xxx equity, 4xxx income, 5xxx expenses. Client liability accounts live
// under the 6000 group, one per client.
const (
	CodeAssetsGroup      = "1"
	CodeLiabilitiesGroup = "2"
	CodeEquityGroup      = "3"
	CodeIncomeGroup      = "4"
	CodeExpensesGroup    = "5"
	CodeClientsGroup     = "6000"

	CodeCashBox      = "1000"
	CodeBank         = "1100"
	CodeUSDTWallet   = "1200"
	CodeCashSuspense = "2100"
	CodeUSDTSuspense = "2200"
)

// DefaultChart is the chart seeded into an empty registry. Order matters:
// groups come before the leaves that reference them.
var DefaultChart = []CreateParams{
	{ID: CodeAssetsGroup, Name: "Assets", Type: TypeAssets, IsGroup: true},
	{ID: CodeLiabilitiesGroup, Name: "Liabilities", Type: TypeLiabilities, IsGroup: true},
	{ID: CodeEquityGroup, Name: "Equity", Type: TypeEquity, IsGroup: true},
	{ID: CodeIncomeGroup, Name: "Income", Type: TypeIncome, IsGroup: true},
	{ID: CodeExpensesGroup, Name: "Expenses", Type: TypeExpenses, IsGroup: true},

	{ID: CodeCashBox, Name: "Cash Box", Type: TypeAssets, Currency: "YER", ParentID: CodeAssetsGroup},
	{ID: CodeBank, Name: "Bank", Type: TypeAssets, Currency: "YER", ParentID: CodeAssetsGroup},
	{ID: CodeUSDTWallet, Name: "USDT Wallet", Type: TypeAssets, Currency: "USDT", ParentID: CodeAssetsGroup},

	{ID: CodeCashSuspense, Name: "Cash Suspense", Type: TypeLiabilities, Currency: "YER", ParentID: CodeLiabilitiesGroup},
	{ID: CodeUSDTSuspense, Name: "USDT Suspense", Type: TypeLiabilities, Currency: "USDT", ParentID: CodeLiabilitiesGroup},

	{ID: CodeClientsGroup, Name: "Clients", Type: TypeLiabilities, IsGroup: true, ParentID: CodeLiabilitiesGroup},
}
