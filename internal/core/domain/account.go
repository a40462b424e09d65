package domain

// AccountType defines the fundamental accounting classification of a bank account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// AccountRole names the semantic function ("used for") of an account within a
// project. Workflows resolve postings legs through these roles; an account
// with an empty role is an ordinary bank/cash account.
type AccountRole string

const (
	RoleAccountReceivable  AccountRole = "Account_Receivable"
	RoleSaleAccount        AccountRole = "Sale_Account"
	RoleCostOfGoodSold     AccountRole = "Cost_of_Good_Sold"
	RoleLandInventory      AccountRole = "Land_Inventory"
	RoleAccountPayable     AccountRole = "Account_Payable"
	RoleDealerExpense      AccountRole = "Dealer_Expense"
	RoleExtraRefundIncome  AccountRole = "Extra_Refund_Income"
	RoleExtraRefundExpense AccountRole = "Extra_Refund_Expense"
	RoleUndepositedFunds   AccountRole = "Undeposited_Funds"
)

// DetailTypeUndepositedFunds marks an account holding cash/cheques received
// but not yet deposited into a bank. Postings against such an account carry
// is_deposit=false until a bank deposit clears them.
const DetailTypeUndepositedFunds = "Undeposited_Funds"

// BankAccount represents a ledger account within a project. Accounts form a
// tree of at most one roll-up level via ParentAccountID. Balances are never
// cached here; they are computed on demand by summing postings.
type BankAccount struct {
	AccountID       string      `json:"accountID"`
	ProjectID       string      `json:"projectID"`
	Name            string      `json:"name"`
	UsedFor         AccountRole `json:"usedFor"`
	MainType        AccountType `json:"mainType"`
	DetailType      string      `json:"detailType"`
	ParentAccountID *string     `json:"parentAccountID,omitempty"`
	IsActive        bool        `json:"isActive"`
	AuditFields
}

// IsUndepositedFunds reports whether funds received into this account are
// held as undeposited funds rather than considered banked.
func (a *BankAccount) IsUndepositedFunds() bool {
	return a.DetailType == DetailTypeUndepositedFunds
}
