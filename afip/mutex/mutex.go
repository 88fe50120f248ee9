package mutex

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyedMutex exclusión mutua por clave. La entrada se descarta cuando nadie
// la referencia, el mapa no crece sin límite.
type KeyedMutex[K comparable] struct {
	mu    sync.Mutex
	table map[K]*entry
}

func (m *KeyedMutex[K]) Lock(key K) {
	m.mu.Lock()
	if m.table == nil {
		m.table = make(map[K]*entry)
	}
	e, ok := m.table[key]
	if !ok {
		e = &entry{}
		m.table[key] = e
	}
	e.refs++
	m.mu.Unlock()

	e.mu.Lock()
}

// Unlock libera la clave. Llamarlo sin un Lock previo es un error de
// programación y entra en pánico.
func (m *KeyedMutex[K]) Unlock(key K) {
	m.mu.Lock()
	e := m.table[key]
	e.refs--
	if e.refs == 0 {
		delete(m.table, key)
	}
	m.mu.Unlock()

	e.mu.Unlock()
}
