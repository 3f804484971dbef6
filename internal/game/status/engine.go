package status

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/rpgcore/internal/assert"
	"github.com/udisondev/rpgcore/internal/model"
	"github.com/udisondev/rpgcore/internal/timer"
)

// ErrInvalidApplication возвращается Apply для некорректных аргументов.
var ErrInvalidApplication = errors.New("invalid status application")

// Engine хранит накапливаемые статус-эффекты по ключу (entity, kind).
//
// Не потокобезопасен: принадлежит горутине симуляции, истечения приходят
// в той же горутине через timer.Registry.
type Engine struct {
	timers   *timer.Registry
	entities map[model.EntityID]map[Kind]*Status
}

// NewEngine создаёт Engine, планирующий истечения через timers.
func NewEngine(timers *timer.Registry) *Engine {
	return &Engine{
		timers:   timers,
		entities: make(map[model.EntityID]map[Kind]*Status),
	}
}

// Apply добавляет новое временное применение kind к сущности.
// Размер стака пересчитывается сразу.
func (e *Engine) Apply(id model.EntityID, kind Kind, magnitude int32, duration uint64) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidApplication, kind)
	}
	if magnitude <= 0 {
		return fmt.Errorf("%w: magnitude %d must be positive", ErrInvalidApplication, magnitude)
	}
	if duration == 0 {
		return fmt.Errorf("%w: zero duration", ErrInvalidApplication)
	}

	kinds, ok := e.entities[id]
	if !ok {
		kinds = make(map[Kind]*Status)
		e.entities[id] = kinds
	}
	st, ok := kinds[kind]
	if !ok {
		st = &Status{kind: kind}
		kinds[kind] = st
	}

	app := &application{Application: Application{
		Magnitude: magnitude,
		ExpiresAt: e.timers.Now() + duration,
	}}
	app.handle = e.timers.Schedule(duration, func() { e.expire(id, kind, app) })
	st.apps = append(st.apps, app)

	if kind.Cumulative() {
		st.stack += magnitude
	} else {
		st.stack = st.max()
	}

	slog.Debug("status applied",
		"entity", id,
		"kind", kind,
		"magnitude", magnitude,
		"duration", duration,
		"stack", st.stack)
	return nil
}

// Clear отменяет все живые применения kind и удаляет статус.
// Для отсутствующего статуса это no-op.
func (e *Engine) Clear(id model.EntityID, kind Kind) {
	kinds, ok := e.entities[id]
	if !ok {
		return
	}
	st, ok := kinds[kind]
	if !ok {
		return
	}
	e.cancel(st)
	e.remove(id, kind)
	slog.Debug("status cleared", "entity", id, "kind", kind)
}

// ClearAll снимает все статусы сущности (смерть, выход).
func (e *Engine) ClearAll(id model.EntityID) {
	kinds, ok := e.entities[id]
	if !ok {
		return
	}
	for _, st := range kinds {
		e.cancel(st)
	}
	delete(e.entities, id)
	slog.Debug("statuses cleared", "entity", id)
}

// StackAmount возвращает размер стака kind или 0.
func (e *Engine) StackAmount(id model.EntityID, kind Kind) int32 {
	if st := e.lookup(id, kind); st != nil {
		return st.stack
	}
	return 0
}

// Has reports whether the entity carries kind.
func (e *Engine) Has(id model.EntityID, kind Kind) bool {
	return e.lookup(id, kind) != nil
}

// Status returns the live status of kind, or nil. The returned value must not
// be retained across ticks.
func (e *Engine) Status(id model.EntityID, kind Kind) *Status {
	return e.lookup(id, kind)
}

// Stacks returns every stack amount carried by the entity.
func (e *Engine) Stacks(id model.EntityID) map[Kind]int32 {
	kinds := e.entities[id]
	out := make(map[Kind]int32, len(kinds))
	for k, st := range kinds {
		out[k] = st.stack
	}
	return out
}

// Tracked reports whether the entity has any status entry at all.
func (e *Engine) Tracked(id model.EntityID) bool {
	_, ok := e.entities[id]
	return ok
}

// Carriers returns the entities carrying at least one of kinds, sorted.
func (e *Engine) Carriers(kinds ...Kind) []model.EntityID {
	out := make([]model.EntityID, 0, len(e.entities))
	for id, carried := range e.entities {
		for _, k := range kinds {
			if _, ok := carried[k]; ok {
				out = append(out, id)
				break
			}
		}
	}
	return model.SortEntityIDs(out)
}

// Count returns the number of entities with at least one status.
func (e *Engine) Count() int {
	return len(e.entities)
}

func (e *Engine) lookup(id model.EntityID, kind Kind) *Status {
	kinds, ok := e.entities[id]
	if !ok {
		return nil
	}
	return kinds[kind]
}

// expire вызывается по истечении одного применения.
func (e *Engine) expire(id model.EntityID, kind Kind, app *application) {
	st := e.lookup(id, kind)
	if !assert.Invariant(st != nil, "expiry for missing status", "entity", id, "kind", kind) {
		return
	}
	idx := slices.Index(st.apps, app)
	if !assert.Invariant(idx >= 0, "expiry for unknown application", "entity", id, "kind", kind) {
		return
	}
	st.apps = slices.Delete(st.apps, idx, idx+1)

	if kind.Cumulative() {
		st.stack -= app.Magnitude
		assert.Invariant(st.stack == st.sum(), "cumulative stack drifted",
			"entity", id, "kind", kind, "stack", st.stack, "sum", st.sum())
		if len(st.apps) == 0 {
			e.remove(id, kind)
		}
		return
	}

	// Некумулятивные виды пересчитываются на следующем тике: все истечения
	// одного тика сливаются в один пересчёт.
	if st.recompute == 0 {
		st.recompute = e.timers.Schedule(1, func() { e.recomputeMax(id, kind, st) })
	}
}

func (e *Engine) recomputeMax(id model.EntityID, kind Kind, st *Status) {
	if !assert.Invariant(e.lookup(id, kind) == st, "recompute for replaced status", "entity", id, "kind", kind) {
		return
	}
	st.recompute = 0
	if len(st.apps) == 0 {
		e.remove(id, kind)
		return
	}
	st.stack = st.max()
}

func (e *Engine) cancel(st *Status) {
	for _, a := range st.apps {
		e.timers.Cancel(a.handle)
	}
	if st.recompute != 0 {
		e.timers.Cancel(st.recompute)
		st.recompute = 0
	}
	st.apps = nil
	st.stack = 0
}

func (e *Engine) remove(id model.EntityID, kind Kind) {
	kinds, ok := e.entities[id]
	if !ok {
		return
	}
	delete(kinds, kind)
	if len(kinds) == 0 {
		delete(e.entities, id)
	}
}
