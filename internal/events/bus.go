// Package events содержит шину сигналов для синхронизации независимых экранов
package events

import "sync"

// Kind определяет тип сигнала
type Kind int

// Типы сигналов об изменении социальных флагов трека
const (
	// FavoritesChanged - изменился состав избранного
	FavoritesChanged Kind = iota
	// DislikesChanged - изменился состав дизлайков
	DislikesChanged
)

// Signal описывает изменение, о котором должны узнать все экраны,
// держащие собственные копии данных трека
type Signal struct {
	Kind    Kind
	TrackID int
}

// Bus рассылает сигналы всем подписчикам.
// Доставка неблокирующая: медленный подписчик теряет сигнал,
// но не задерживает остальных.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Signal
}

// NewBus создает новую шину сигналов
func NewBus() *Bus {
	return &Bus{
		subs: make(map[int]chan Signal),
	}
}

// Subscribe регистрирует подписчика и возвращает канал сигналов
// вместе с функцией отписки
func (b *Bus) Subscribe() (<-chan Signal, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	// Буфер позволяет подписчику не потерять сигнал, пришедший
	// между двумя чтениями
	ch := make(chan Signal, 8)
	b.subs[id] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

// Publish рассылает сигнал всем подписчикам
func (b *Bus) Publish(signal Signal) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- signal:
		default:
			// Переполненный канал пропускаем
		}
	}
}
