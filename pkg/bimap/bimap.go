package bimap

// Bimap двусторонний словарь: прямое и обратное отображение хранятся вместе,
// поэтому таблица перевода задается один раз
type Bimap[K comparable, V comparable] struct {
	forward  map[K]V
	backward map[V]K
	order    []K
}

// Pair пара ключ-значение для инициализации
type Pair[K comparable, V comparable] struct {
	Key   K
	Value V
}

// New строит словарь из пар. Повторяющиеся ключи или значения приводят к панике,
// т.к. таблица перестает быть взаимно однозначной
func New[K comparable, V comparable](pairs ...Pair[K, V]) *Bimap[K, V] {
	m := &Bimap[K, V]{
		forward:  make(map[K]V, len(pairs)),
		backward: make(map[V]K, len(pairs)),
		order:    make([]K, 0, len(pairs)),
	}
	for _, p := range pairs {
		if _, ok := m.forward[p.Key]; ok {
			panic("bimap: duplicate key")
		}
		if _, ok := m.backward[p.Value]; ok {
			panic("bimap: duplicate value")
		}
		m.forward[p.Key] = p.Value
		m.backward[p.Value] = p.Key
		m.order = append(m.order, p.Key)
	}
	return m
}

// Get возвращает значение по ключу
func (m *Bimap[K, V]) Get(key K) (V, bool) {
	v, ok := m.forward[key]
	return v, ok
}

// Inverse возвращает ключ по значению
func (m *Bimap[K, V]) Inverse(value V) (K, bool) {
	k, ok := m.backward[value]
	return k, ok
}

// Keys возвращает ключи в порядке объявления
func (m *Bimap[K, V]) Keys() []K {
	out := make([]K, len(m.order))
	copy(out, m.order)
	return out
}

// Values возвращает значения в порядке объявления ключей
func (m *Bimap[K, V]) Values() []V {
	out := make([]V, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.forward[k])
	}
	return out
}
