package local

import (
	"context"
	"sync"

	"github.com/Freeeeeet/sampark_kvk/internal/auth"
)

// Client сессия одного пользователя. Слушатели вызываются синхронно,
// в порядке изменений состояния.
type Client struct {
	provider *Provider

	mu        sync.Mutex
	current   *auth.Identity
	listeners map[int]auth.Listener
	nextID    int

	// сериализует уведомления, чтобы слушатели видели изменения по порядку
	notifyMu sync.Mutex
}

var _ auth.Client = (*Client)(nil)

// SignIn выполняет вход и уведомляет слушателей
func (c *Client) SignIn(ctx context.Context, email, password string) (*auth.Identity, error) {
	id, err := c.provider.verify(ctx, email, password)
	if err != nil {
		return nil, err
	}

	c.set(id)
	return id, nil
}

// SignOut завершает сессию
func (c *Client) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.set(nil)
	return nil
}

// Current возвращает текущую личность
func (c *Client) Current() *auth.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyIdentity(c.current)
}

// OnAuthStateChanged подписывает слушателя
func (c *Client) OnAuthStateChanged(fn auth.Listener) func() {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	if c.listeners == nil {
		c.listeners = make(map[int]auth.Listener)
	}
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	current := copyIdentity(c.current)
	c.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

func (c *Client) set(id *auth.Identity) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	c.current = id
	listeners := make([]auth.Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(copyIdentity(id))
	}
}

func copyIdentity(id *auth.Identity) *auth.Identity {
	if id == nil {
		return nil
	}
	cp := *id
	return &cp
}
