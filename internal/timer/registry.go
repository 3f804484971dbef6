package timer

import (
	"container/heap"
	"log/slog"
)

// Handle идентифицирует запланированный callback. Нулевой Handle никогда не выдаётся.
type Handle uint64

// Registry запускает callbacks через заданное число тиков.
// Двигается вызовом Advance из горутины симуляции, не потокобезопасен;
// callbacks всегда выполняются в горутине, вызвавшей Advance.
type Registry struct {
	now     uint64
	seq     Handle
	pending map[Handle]*entry
	queue   entryQueue
}

type entry struct {
	handle Handle
	due    uint64
	fn     func()
	index  int
}

// New создаёт пустой Registry на тике 0.
func New() *Registry {
	return &Registry{
		pending: make(map[Handle]*entry),
	}
}

// Now возвращает текущий тик.
func (r *Registry) Now() uint64 {
	return r.now
}

// Schedule запускает fn один раз через delay тиков. delay 0 считается как 1:
// callback никогда не выполняется внутри Advance, который его запланировал.
func (r *Registry) Schedule(delay uint64, fn func()) Handle {
	if delay == 0 {
		delay = 1
	}
	r.seq++
	e := &entry{handle: r.seq, due: r.now + delay, fn: fn}
	r.pending[e.handle] = e
	heap.Push(&r.queue, e)
	return e.handle
}

// Cancel отменяет ожидающий callback. Для уже сработавшего или
// неизвестного handle это no-op.
func (r *Registry) Cancel(h Handle) {
	e, ok := r.pending[h]
	if !ok {
		return
	}
	delete(r.pending, h)
	heap.Remove(&r.queue, e.index)
}

// Pending сообщает, ждёт ли h срабатывания.
func (r *Registry) Pending(h Handle) bool {
	_, ok := r.pending[h]
	return ok
}

// Len возвращает число ожидающих callbacks.
func (r *Registry) Len() int {
	return len(r.pending)
}

// Advance сдвигает время на один тик и выполняет все наступившие callbacks
// в порядке (тик, порядок планирования). Возвращает число выполненных.
func (r *Registry) Advance() int {
	r.now++
	fired := 0
	for r.queue.Len() > 0 {
		next := r.queue[0]
		if next.due > r.now {
			break
		}
		heap.Pop(&r.queue)
		delete(r.pending, next.handle)
		r.run(next)
		fired++
	}
	return fired
}

// AdvanceBy вызывает Advance n раз.
func (r *Registry) AdvanceBy(n uint64) int {
	fired := 0
	for range n {
		fired += r.Advance()
	}
	return fired
}

// run изолирует паникующий callback, остальные наступившие всё равно срабатывают.
func (r *Registry) run(e *entry) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("timer callback panicked",
				"handle", e.handle,
				"tick", r.now,
				"panic", rec)
		}
	}()
	e.fn()
}

// entryQueue: min-heap по (due, handle).
type entryQueue []*entry

func (q entryQueue) Len() int { return len(q) }

func (q entryQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].handle < q[j].handle
}

func (q entryQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *entryQueue) Push(x any) {
	e := x.(*entry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *entryQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}
