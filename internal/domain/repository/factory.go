package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Accounts() AccountRepository
	Orders() OrderRepository
	Profiles() ProfileRepository
}
