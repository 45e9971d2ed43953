// Package keylock взаимное исключение по ключу: события одного пользователя
// обрабатываются последовательно, разные пользователи друг друга не ждут.
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Locker набор мьютексов по int64-ключу. Нулевое значение готово к работе.
type Locker struct {
	mu    sync.Mutex
	locks map[int64]*entry
}

func New() *Locker {
	return &Locker{locks: make(map[int64]*entry)}
}

// Lock блокирует ключ и возвращает функцию разблокировки
func (l *Locker) Lock(key int64) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[int64]*entry)
	}
	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			l.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(l.locks, key)
			}
			l.mu.Unlock()
		})
	}
}

// Len количество ключей, которые сейчас заблокированы или ожидают
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
