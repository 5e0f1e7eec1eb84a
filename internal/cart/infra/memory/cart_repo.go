package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

type entry struct {
	cart    domain.Cart
	touched time.Time
}

// CartRepo keeps carts in process memory, keyed by session id. A zero ttl
// keeps sessions until the process exits.
type CartRepo struct {
	mu    sync.Mutex
	carts map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

func NewCartRepo(ttl time.Duration) *CartRepo {
	return &CartRepo{
		carts: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (r *CartRepo) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.live(sessionID)
	if !ok {
		return domain.Empty(), nil
	}
	return e.cart, nil
}

func (r *CartRepo) Update(ctx context.Context, sessionID string, fn func(domain.Cart) domain.Cart) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur := domain.Empty()
	if e, ok := r.live(sessionID); ok {
		cur = e.cart
	}

	next := fn(cur)
	r.carts[sessionID] = entry{cart: next, touched: r.now()}
	return next, nil
}

// Sweep evicts sessions idle for longer than the ttl and returns how many
// were removed.
func (r *CartRepo) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id := range r.carts {
		if _, ok := r.live(id); !ok {
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *CartRepo) Run(ctx context.Context, interval time.Duration) error {
	if r.ttl <= 0 || interval <= 0 {
		<-ctx.Done()
		return nil
	}

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			r.Sweep()
		}
	}
}

func (r *CartRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}

// live returns the session entry, deleting it if it has expired.
// Callers hold r.mu.
func (r *CartRepo) live(sessionID string) (entry, bool) {
	e, ok := r.carts[sessionID]
	if !ok {
		return entry{}, false
	}
	if r.ttl > 0 && r.now().Sub(e.touched) > r.ttl {
		delete(r.carts, sessionID)
		return entry{}, false
	}
	return e, true
}
