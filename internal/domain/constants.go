package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Transaction types.
const (
	TxTypeInvestment         = "investment"
	TxTypeROIClaim           = "roi_claim"
	TxTypeDeposit            = "deposit"
	TxTypeWithdrawal         = "withdrawal"
	TxTypeRefund             = "refund"
	TxTypeReferralCommission = "referral_commission"
	TxTypeReferralBonus      = "referral_bonus"
	TxTypeAdminCredit        = "admin_credit"
	TxTypeAdminDebit         = "admin_debit"
)

// Transaction amounts are always stored positive; direction carries the sign.
const (
	DirectionCredit = "credit"
	DirectionDebit  = "debit"
)

const (
	TxStatusPending   = "pending"
	TxStatusCompleted = "completed"
	TxStatusRejected  = "rejected"
)

// Deposit/withdrawal request statuses.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// Referral commission system types. Matching and career settings are
// stored and admin-editable but no distributor evaluates them yet.
const (
	SystemTypeDeposit    = "deposit"
	SystemTypeInvestment = "investment"
	SystemTypeInterest   = "interest"
	SystemTypeMatching   = "matching"
	SystemTypeCareer     = "career"
)

// MaxReferralDepth bounds every upline walk regardless of how many levels
// the referral settings configure, so a malformed (cyclic or
// self-referential) referral chain can never loop.
const MaxReferralDepth = 10

const (
	AdjustTypeCredit = "credit"
	AdjustTypeDebit  = "debit"
)
