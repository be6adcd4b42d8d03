package test

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/eatery/internal/domain/errors"
	"github.com/polkiloo/eatery/internal/domain/model"
	"github.com/polkiloo/eatery/internal/domain/repository"
)

// AccountRepositoryStub stores accounts in-memory for tests.
type AccountRepositoryStub struct {
	mu      sync.Mutex
	ByEmail map[string]*model.Account
	Next    int
	Err     error
}

// NewAccountRepositoryStub constructs stub repository with initialized maps.
func NewAccountRepositoryStub() *AccountRepositoryStub {
	return &AccountRepositoryStub{ByEmail: make(map[string]*model.Account), Next: 1}
}

// Create registers account unless already exists or stub has explicit error.
func (s *AccountRepositoryStub) Create(_ context.Context, email, passwordHash string) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ByEmail == nil {
		s.ByEmail = make(map[string]*model.Account)
	}
	if _, exists := s.ByEmail[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	account := &model.Account{
		UID:          "uid-" + strconv.Itoa(s.Next),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.Next++
	s.ByEmail[email] = account
	return account, nil
}

// GetByEmail fetches account by email or returns not found.
func (s *AccountRepositoryStub) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if account, ok := s.ByEmail[email]; ok {
		return account, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByUID fetches account by uid or returns not found.
func (s *AccountRepositoryStub) GetByUID(_ context.Context, uid string) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.ByEmail {
		if account.UID == uid {
			return account, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub keeps orders in memory. Fn overrides take precedence.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) error
	GetFn          func(context.Context, string) (*model.Order, error)
	ListAllFn      func(context.Context) ([]model.Order, error)
	ListByUserFn   func(context.Context, string) ([]model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus, repository.StatusCheck) (model.OrderStatus, time.Time, error)

	// Now and Day stamp created orders.
	Now func() time.Time
	Day string

	mu     sync.Mutex
	Orders []model.Order
}

func (s *OrderRepositoryStub) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

// Create stamps the order and stores a copy.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	order.Date = s.now()
	order.Day = s.Day
	if order.Day == "" {
		order.Day = order.Date.Format("2006-01-02")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Orders = append(s.Orders, *order)
	return nil
}

// Get returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) Get(ctx context.Context, id string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListAll returns stored orders newest first.
func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	if s.ListAllFn != nil {
		return s.ListAllFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := append([]model.Order(nil), s.Orders...)
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].Date.After(orders[j].Date) })
	return orders, nil
}

// ListByUser returns stored orders owned by uid.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, uid string) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, uid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var orders []model.Order
	for _, o := range s.Orders {
		if o.UserID != nil && *o.UserID == uid {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// UpdateStatus runs check against the stored status before overwriting it.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, check repository.StatusCheck) (model.OrderStatus, time.Time, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status, check)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Orders {
		if s.Orders[i].ID != id {
			continue
		}
		previous := s.Orders[i].Status
		if check != nil {
			if err := check(previous); err != nil {
				return "", time.Time{}, err
			}
		}
		updatedAt := s.now()
		s.Orders[i].Status = status
		s.Orders[i].UpdatedAt = &updatedAt
		return previous, updatedAt, nil
	}
	return "", time.Time{}, domainErrors.ErrNotFound
}

// ProfileRepositoryStub keeps profiles in memory.
type ProfileRepositoryStub struct {
	mu       sync.Mutex
	Profiles map[string]*model.Profile
	Logins   []string

	GetErr    error
	EnsureErr error
	UpdateErr error
	TouchErr  error
}

// NewProfileRepositoryStub constructs stub repository with initialized maps.
func NewProfileRepositoryStub() *ProfileRepositoryStub {
	return &ProfileRepositoryStub{Profiles: make(map[string]*model.Profile)}
}

func (s *ProfileRepositoryStub) Get(_ context.Context, uid string) (*model.Profile, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.Profiles[uid]; ok {
		profile := *p
		return &profile, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ProfileRepositoryStub) Ensure(_ context.Context, identity model.Identity) (*model.Profile, error) {
	if s.EnsureErr != nil {
		return nil, s.EnsureErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLocked(identity), nil
}

func (s *ProfileRepositoryStub) ensureLocked(identity model.Identity) *model.Profile {
	if s.Profiles == nil {
		s.Profiles = make(map[string]*model.Profile)
	}
	p, ok := s.Profiles[identity.UID]
	if !ok {
		p = &model.Profile{UID: identity.UID, Email: identity.Email, CreatedAt: time.Now()}
		s.Profiles[identity.UID] = p
	}
	profile := *p
	return &profile
}

func (s *ProfileRepositoryStub) Update(_ context.Context, uid string, update model.ProfileUpdate) (*model.Profile, error) {
	if s.UpdateErr != nil {
		return nil, s.UpdateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Profiles[uid]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if update.DisplayName != nil {
		p.DisplayName = *update.DisplayName
	}
	if update.PhoneNumber != nil {
		p.PhoneNumber = *update.PhoneNumber
	}
	if update.Address != nil {
		p.Address = *update.Address
	}
	if update.PhotoURL != nil {
		p.PhotoURL = *update.PhotoURL
	}
	now := time.Now()
	p.UpdatedAt = &now
	profile := *p
	return &profile, nil
}

func (s *ProfileRepositoryStub) TouchLogin(_ context.Context, identity model.Identity) error {
	if s.TouchErr != nil {
		return s.TouchErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked(identity)
	now := time.Now()
	s.Profiles[identity.UID].LastLogin = &now
	s.Logins = append(s.Logins, identity.UID)
	return nil
}

// NotifierStub counts change notifications.
type NotifierStub struct {
	mu    sync.Mutex
	Calls int
}

func (n *NotifierStub) Notify() {
	n.mu.Lock()
	n.Calls++
	n.mu.Unlock()
}

// Count returns the number of notifications so far.
func (n *NotifierStub) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.Calls
}

// StatusChange is one recorded transition.
type StatusChange struct {
	From, To model.OrderStatus
}

// RecorderStub records order events.
type RecorderStub struct {
	mu          sync.Mutex
	Submitted   []decimal.Decimal
	Transitions []StatusChange
}

func (r *RecorderStub) OrderSubmitted(total decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Submitted = append(r.Submitted, total)
}

func (r *RecorderStub) StatusChanged(from, to model.OrderStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Transitions = append(r.Transitions, StatusChange{From: from, To: to})
}

var (
	_ repository.AccountRepository = (*AccountRepositoryStub)(nil)
	_ repository.OrderRepository   = (*OrderRepositoryStub)(nil)
	_ repository.ProfileRepository = (*ProfileRepositoryStub)(nil)
)
