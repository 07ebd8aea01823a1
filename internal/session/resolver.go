package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/auth"
	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/repository/base"
)

// ErrAlreadyResolving Resolve уже вызывался для этого резолвера
var ErrAlreadyResolving = errors.New("session is already being resolved")

// ProfileSource источник профилей пользователей
type ProfileSource interface {
	FetchProfile(ctx context.Context, id string) base.Result[model.UserProfile]
}

// event уведомление провайдера; identity nil означает выход
type event struct {
	identity *auth.Identity
	forced   bool
}

// Resolver превращает уведомления провайдера личностей в последовательность
// состояний сессии: Loading, затем чередование SignedOut и SignedIn.
// Уведомления обрабатываются по одному, в порядке поступления.
type Resolver struct {
	client   auth.Client
	profiles ProfileSource
	logger   *zap.Logger

	mu      sync.Mutex
	started bool
	queue   []event
	notify  chan struct{}
	last    State

	out         chan State
	done        chan struct{}
	cancel      context.CancelFunc
	unsubscribe func()
	closeOnce   sync.Once

	emitMu sync.Mutex
	closed bool
}

// NewResolver создаёт резолвер для одной сессии провайдера
func NewResolver(client auth.Client, profiles ProfileSource, logger *zap.Logger) *Resolver {
	return &Resolver{
		client:   client,
		profiles: profiles,
		logger:   logger,
		notify:   make(chan struct{}, 1),
		done:     make(chan struct{}),
		last:     Loading(),
	}
}

// Resolve подписывается на провайдера и возвращает канал состояний.
// Первым всегда приходит Loading. Канал закрывается после Close или отмены ctx.
func (r *Resolver) Resolve(ctx context.Context) (<-chan State, error) {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return nil, ErrAlreadyResolving
	}
	r.started = true
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.out = make(chan State, 1)
	r.out <- Loading()
	r.mu.Unlock()

	go r.run(ctx)

	unsubscribe := r.client.OnAuthStateChanged(func(id *auth.Identity) {
		r.enqueue(event{identity: id})
	})

	r.mu.Lock()
	r.unsubscribe = unsubscribe
	closed := r.isClosed()
	r.mu.Unlock()

	// Close мог случиться до того, как подписка вернула функцию отписки
	if closed {
		unsubscribe()
	}

	return r.out, nil
}

// SignOut завершает сессию у провайдера и в любом случае переводит
// локальное состояние в SignedOut. Ошибка провайдера только логируется.
func (r *Resolver) SignOut(ctx context.Context) {
	if err := r.client.SignOut(ctx); err != nil {
		r.logger.Warn("Identity provider sign-out failed", zap.Error(err))
	}
	r.enqueue(event{forced: true})
}

// Current последнее выданное состояние
func (r *Resolver) Current() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Close отписывается от провайдера ровно один раз. После возврата состояний больше нет.
func (r *Resolver) Close() {
	r.closeOnce.Do(func() {
		close(r.done)

		r.emitMu.Lock()
		r.closed = true
		r.emitMu.Unlock()

		r.mu.Lock()
		unsubscribe, cancel := r.unsubscribe, r.cancel
		r.mu.Unlock()

		if unsubscribe != nil {
			unsubscribe()
		}
		if cancel != nil {
			cancel()
		}
	})
}

func (r *Resolver) isClosed() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

func (r *Resolver) enqueue(ev event) {
	r.mu.Lock()
	r.queue = append(r.queue, ev)
	r.mu.Unlock()

	select {
	case r.notify <- struct{}{}:
	default:
	}
}

func (r *Resolver) next() (event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.queue) == 0 {
		return event{}, false
	}
	ev := r.queue[0]
	r.queue = r.queue[1:]
	return ev, true
}

func (r *Resolver) run(ctx context.Context) {
	defer close(r.out)

	for {
		select {
		case <-r.done:
			return
		case <-ctx.Done():
			r.Close()
			return
		case <-r.notify:
		}

		for {
			ev, ok := r.next()
			if !ok {
				break
			}
			if r.isClosed() {
				return
			}
			r.handle(ctx, ev)
		}
	}
}

func (r *Resolver) handle(ctx context.Context, ev event) {
	if ev.identity == nil {
		r.mu.Lock()
		already := r.last.Status == StatusSignedOut
		r.mu.Unlock()
		if already {
			return
		}
		r.emit(SignedOut())
		return
	}

	r.emit(SignedIn(r.profileFor(ctx, ev.identity)))
}

// profileFor ищет профиль; если его нет или чтение упало, собирает
// минимальный профиль с ролью teacher
func (r *Resolver) profileFor(ctx context.Context, id *auth.Identity) model.UserProfile {
	res := r.profiles.FetchProfile(ctx, id.UID)
	if profile, ok := res.First(); ok {
		return profile
	}

	if res.Failed() {
		r.logger.Warn("Profile lookup failed, using default profile",
			zap.String("uid", id.UID),
			zap.Error(res.Err()))
	} else {
		r.logger.Info("No profile for identity, using default profile", zap.String("uid", id.UID))
	}

	return Synthesize(id)
}

// Synthesize минимальный профиль для личности без записи в хранилище
func Synthesize(id *auth.Identity) model.UserProfile {
	return model.UserProfile{
		ID:    id.UID,
		Name:  model.NameFromIdentity(id.DisplayName, id.Email),
		Email: id.Email,
		Role:  model.DefaultRole,
	}
}

func (r *Resolver) emit(s State) {
	r.emitMu.Lock()
	defer r.emitMu.Unlock()

	if r.closed {
		return
	}

	select {
	case r.out <- s:
		r.mu.Lock()
		r.last = s
		r.mu.Unlock()
	case <-r.done:
	}
}
