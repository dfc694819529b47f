package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/souq-labs/backend-souq/internal/pricing"
)

// ErrNotFound indicates the requested cart could not be located or expired.
var ErrNotFound = errors.New("cart not found")

// Line is one product entry in a cart.
type Line struct {
	ID        uuid.UUID              `json:"id"`
	ProductID string                 `json:"productId"`
	Title     string                 `json:"title"`
	Slug      string                 `json:"slug"`
	Qty       int                    `json:"qty"`
	UnitPrice pricing.Money          `json:"unitPrice"`
	WeightKg  float64                `json:"weightKg"`
	Method    pricing.ShippingMethod `json:"shippingMethod"`
	Subtotal  pricing.Money          `json:"subtotal"`
}

// Cart is the mutable state guarded by the store. Callers outside this
// package only ever observe Snapshots.
type Cart struct {
	ID         uuid.UUID
	AnonID     string
	CouponCode string
	Lines      []Line
	UpdatedAt  time.Time
	ExpiresAt  time.Time
}

// Subtotal sums the line subtotals.
func (c *Cart) Subtotal() pricing.Money {
	var total pricing.Money
	for _, line := range c.Lines {
		total += line.Subtotal
	}
	return total
}

// LineIndex locates a line by identifier, -1 when absent.
func (c *Cart) LineIndex(lineID uuid.UUID) int {
	for i, line := range c.Lines {
		if line.ID == lineID {
			return i
		}
	}
	return -1
}

// LineIndexByProduct locates a line by product identifier, -1 when absent.
func (c *Cart) LineIndexByProduct(productID string) int {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

// Snapshot is an immutable copy of one cart's state. Mutating a snapshot has
// no effect on the store.
type Snapshot struct {
	ID         uuid.UUID `json:"id"`
	AnonID     string    `json:"anonId"`
	CouponCode string    `json:"coupon,omitempty"`
	Lines      []Line    `json:"items"`
	UpdatedAt  time.Time `json:"updatedAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// Subtotal sums the snapshot's line subtotals.
func (s Snapshot) Subtotal() pricing.Money {
	var total pricing.Money
	for _, line := range s.Lines {
		total += line.Subtotal
	}
	return total
}

// Store serialises all cart mutations through a single lock and hands out
// deep-copied snapshots, so readers never observe in-place mutation.
type Store struct {
	// Now is overridable for tests.
	Now func() time.Time

	mu     sync.Mutex
	ttl    time.Duration
	carts  map[uuid.UUID]*Cart
	byAnon map[string]uuid.UUID
}

// NewStore constructs an empty store with the provided cart lifetime.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Store{
		ttl:    ttl,
		carts:  make(map[uuid.UUID]*Cart),
		byAnon: make(map[string]uuid.UUID),
	}
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Ensure returns the live cart for an anonymous identifier, creating one when
// none exists or the previous cart expired.
func (s *Store) Ensure(anonID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if id, ok := s.byAnon[anonID]; ok {
		if cart, live := s.carts[id]; live && cart.ExpiresAt.After(now) {
			cart.ExpiresAt = now.Add(s.ttl)
			return snapshotOf(cart)
		}
		delete(s.carts, id)
	}
	cart := &Cart{
		ID:        uuid.New(),
		AnonID:    anonID,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.carts[cart.ID] = cart
	s.byAnon[anonID] = cart.ID
	return snapshotOf(cart)
}

// Get returns a snapshot of the identified cart.
func (s *Store) Get(id uuid.UUID) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, err := s.live(id)
	if err != nil {
		return Snapshot{}, err
	}
	return snapshotOf(cart), nil
}

// Update applies fn to the identified cart under the store lock and returns
// the resulting snapshot. When fn errors the cart is left untouched.
func (s *Store) Update(id uuid.UUID, fn func(*Cart) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, err := s.live(id)
	if err != nil {
		return Snapshot{}, err
	}
	scratch := copyCart(cart)
	if err := fn(scratch); err != nil {
		return Snapshot{}, err
	}
	now := s.now()
	scratch.UpdatedAt = now
	scratch.ExpiresAt = now.Add(s.ttl)
	s.carts[id] = scratch
	return snapshotOf(scratch), nil
}

func (s *Store) live(id uuid.UUID) (*Cart, error) {
	cart, ok := s.carts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !cart.ExpiresAt.After(s.now()) {
		delete(s.carts, id)
		delete(s.byAnon, cart.AnonID)
		return nil, ErrNotFound
	}
	return cart, nil
}

func copyCart(c *Cart) *Cart {
	dup := *c
	dup.Lines = make([]Line, len(c.Lines))
	copy(dup.Lines, c.Lines)
	return &dup
}

func snapshotOf(c *Cart) Snapshot {
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return Snapshot{
		ID:         c.ID,
		AnonID:     c.AnonID,
		CouponCode: c.CouponCode,
		Lines:      lines,
		UpdatedAt:  c.UpdatedAt,
		ExpiresAt:  c.ExpiresAt,
	}
}
