package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Accounts() AccountRepository
	Purchases() PurchaseRepository
	Transactions() TransactionRepository
	Calendar() CalendarRepository
	Variants() VariantRepository
	Carts() CartRepository
}
