package docstore

import (
	"log"
	"sync"
)

type hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]*subscription
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[int]*subscription)}
}

type subscription struct {
	hub    *hub
	key    string
	id     int
	read   func() (any, error)
	fn     func(any)
	signal chan struct{}
	done   chan struct{}
	once   sync.Once
}

func (h *hub) subscribe(key string, read func() (any, error), fn func(any)) *subscription {
	h.mu.Lock()
	h.nextID++
	sub := &subscription{
		hub:    h,
		key:    key,
		id:     h.nextID,
		read:   read,
		fn:     fn,
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	if h.subs[key] == nil {
		h.subs[key] = make(map[int]*subscription)
	}
	h.subs[key][sub.id] = sub
	h.mu.Unlock()

	sub.notify()
	go sub.run()
	return sub
}

func (h *hub) publish(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs[key] {
		sub.notify()
	}
}

// publishAll é usado quando notificações podem ter sido perdidas (reconexão).
func (h *hub) publishAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, subs := range h.subs {
		for _, sub := range subs {
			sub.notify()
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	var all []*subscription
	for _, subs := range h.subs {
		for _, sub := range subs {
			all = append(all, sub)
		}
	}
	h.mu.Unlock()
	for _, sub := range all {
		sub.cancel()
	}
}

func (h *hub) remove(sub *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[sub.key], sub.id)
	if len(h.subs[sub.key]) == 0 {
		delete(h.subs, sub.key)
	}
}

// notify coalesce sinais: o leitor sempre busca o valor mais recente.
func (s *subscription) notify() {
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *subscription) run() {
	for {
		select {
		case <-s.done:
			return
		case <-s.signal:
		}
		value, err := s.read()
		if err != nil {
			log.Printf("❌ [DocStore] Erro ao ler %s para assinante: %v", s.key, err)
			continue
		}
		select {
		case <-s.done:
			return
		default:
		}
		s.fn(value)
	}
}

func (s *subscription) cancel() {
	s.once.Do(func() {
		close(s.done)
		s.hub.remove(s)
	})
}
