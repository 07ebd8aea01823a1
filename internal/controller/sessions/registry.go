package sessions

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/auth"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/state"
	"github.com/Freeeeeet/sampark_kvk/internal/dashboard"
	"github.com/Freeeeeet/sampark_kvk/internal/session"
)

// Notifier вызывается после каждого изменения сессии чата
type Notifier func(ctx context.Context, chatID int64, prev session.State, data state.UserData)

// Chat сессия одного чата: клиент провайдера, резолвер и панель роли
type Chat struct {
	ChatID   int64
	Client   auth.Client
	Resolver *session.Resolver

	mu       sync.RWMutex
	dash     dashboard.Dashboard
	lastSeen time.Time

	done chan struct{}
}

// Dashboard панель текущего пользователя или nil без входа
func (c *Chat) Dashboard() dashboard.Dashboard {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dash
}

func (c *Chat) setDashboard(d dashboard.Dashboard) {
	c.mu.Lock()
	c.dash = d
	c.mu.Unlock()
}

func (c *Chat) touch(now time.Time) {
	c.mu.Lock()
	c.lastSeen = now
	c.mu.Unlock()
}

func (c *Chat) idleSince() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSeen
}

// Registry держит сессии чатов
type Registry struct {
	ctx      context.Context
	provider auth.Provider
	profiles session.ProfileSource
	states   *state.Manager
	deps     dashboard.Deps
	logger   *zap.Logger
	now      func() time.Time

	mu     sync.Mutex
	chats  map[int64]*Chat
	notify Notifier
}

// NewRegistry создаёт реестр. Резолверы живут не дольше ctx.
func NewRegistry(
	ctx context.Context,
	provider auth.Provider,
	profiles session.ProfileSource,
	states *state.Manager,
	deps dashboard.Deps,
	logger *zap.Logger,
) *Registry {
	return &Registry{
		ctx:      ctx,
		provider: provider,
		profiles: profiles,
		states:   states,
		deps:     deps,
		logger:   logger,
		now:      time.Now,
		chats:    make(map[int64]*Chat),
	}
}

// SetNotifier задаёт получателя изменений сессий
func (r *Registry) SetNotifier(n Notifier) {
	r.mu.Lock()
	r.notify = n
	r.mu.Unlock()
}

// Open возвращает сессию чата, создавая её при первом обращении
func (r *Registry) Open(chatID int64) (*Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.chats[chatID]; ok {
		c.touch(r.now())
		return c, nil
	}

	client := r.provider.NewClient()
	resolver := session.NewResolver(client, r.profiles, r.logger.With(zap.Int64("chat_id", chatID)))

	states, err := resolver.Resolve(r.ctx)
	if err != nil {
		return nil, err
	}

	c := &Chat{
		ChatID:   chatID,
		Client:   client,
		Resolver: resolver,
		lastSeen: r.now(),
		done:     make(chan struct{}),
	}
	r.chats[chatID] = c

	go r.consume(c, states)

	r.logger.Debug("Chat session opened", zap.Int64("chat_id", chatID))
	return c, nil
}

// Get возвращает открытую сессию чата
func (r *Registry) Get(chatID int64) (*Chat, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.chats[chatID]
	if ok {
		c.touch(r.now())
	}
	return c, ok
}

// Close закрывает сессию чата и забывает её состояние
func (r *Registry) Close(chatID int64) {
	r.mu.Lock()
	c, ok := r.chats[chatID]
	delete(r.chats, chatID)
	r.mu.Unlock()

	if ok {
		r.shutdown(c)
	}
}

// CloseIdle закрывает сессии без активности дольше maxIdle
func (r *Registry) CloseIdle(maxIdle time.Duration) int {
	deadline := r.now().Add(-maxIdle)

	r.mu.Lock()
	var idle []*Chat
	for id, c := range r.chats {
		if c.idleSince().Before(deadline) {
			idle = append(idle, c)
			delete(r.chats, id)
		}
	}
	r.mu.Unlock()

	for _, c := range idle {
		r.shutdown(c)
	}
	return len(idle)
}

// CloseAll закрывает все сессии
func (r *Registry) CloseAll() {
	r.mu.Lock()
	chats := r.chats
	r.chats = make(map[int64]*Chat)
	r.mu.Unlock()

	for _, c := range chats {
		r.shutdown(c)
	}
}

// Len количество открытых сессий
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.chats)
}

func (r *Registry) shutdown(c *Chat) {
	c.Resolver.Close()
	<-c.done
	r.states.ClearState(c.ChatID)
	r.logger.Debug("Chat session closed", zap.Int64("chat_id", c.ChatID))
}

// consume применяет состояния резолвера к состоянию чата
func (r *Registry) consume(c *Chat, states <-chan session.State) {
	defer close(c.done)

	for st := range states {
		prev := r.states.Get(c.ChatID).Session

		switch {
		case st.IsSignedIn():
			current := c.Dashboard()
			if current == nil || current.Profile().ID != st.Profile.ID {
				c.setDashboard(dashboard.For(*st.Profile, r.deps))
			}
		case st.Status == session.StatusSignedOut:
			c.setDashboard(nil)
		}

		data := r.states.Dispatch(c.ChatID, state.SessionChanged{State: st})

		r.logger.Info("Session changed",
			zap.Int64("chat_id", c.ChatID),
			zap.Stringer("from", prev.Status),
			zap.Stringer("to", st.Status))

		r.mu.Lock()
		notify := r.notify
		r.mu.Unlock()

		if notify != nil {
			notify(r.ctx, c.ChatID, prev, data)
		}
	}
}
