package buff

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/udisondev/rpgcore/internal/model"
	"github.com/udisondev/rpgcore/internal/timer"
)

// ErrRejected is returned when a buff would push a live attribute into a
// value the host cannot handle. Nothing is applied and no timers are scheduled.
var ErrRejected = errors.New("buff rejected")

// zeroEpsilon absorbs float drift when summing and reversing deltas.
const zeroEpsilon = 1e-9

type contribution struct {
	attr   model.Attribute
	delta  float64
	expiry timer.Handle
}

type record struct {
	deltas   map[model.Attribute]float64
	live     []*contribution
	cleanups map[timer.Handle]struct{}
}

func (r *record) empty() bool {
	return len(r.deltas) == 0 && len(r.live) == 0 && len(r.cleanups) == 0
}

// Engine applies temporary additive attribute modifiers.
//
// Every contribution is applied to the live attribute immediately and
// reversed by its own expiry timer. A second timer one tick later prunes the
// attribute entry once its net delta is zero.
type Engine struct {
	timers  *timer.Registry
	attrs   model.Attributes
	records map[model.EntityID]*record
}

// NewEngine creates a buff engine writing live values through attrs.
func NewEngine(timers *timer.Registry, attrs model.Attributes) *Engine {
	return &Engine{
		timers:  timers,
		attrs:   attrs,
		records: make(map[model.EntityID]*record),
	}
}

// Add применяет delta к атрибуту на duration тиков.
func (e *Engine) Add(id model.EntityID, attr model.Attribute, delta float64, duration uint64) error {
	if !attr.Valid() {
		return fmt.Errorf("%w: unknown attribute %q", ErrRejected, attr)
	}
	if duration == 0 || delta == 0 {
		return fmt.Errorf("%w: zero delta or duration for %q", ErrRejected, attr)
	}

	current := e.attrs.Attribute(id, attr)
	if attr.MustStayPositive() {
		if low := e.lowest(id, attr, current, delta); low <= 0 {
			slog.Debug("buff rejected",
				"entity", id,
				"attribute", attr,
				"current", current,
				"delta", delta,
				"lowest", low)
			return fmt.Errorf("%w: %q could drop to %.2f", ErrRejected, attr, low)
		}
	}
	e.attrs.SetAttribute(id, attr, current+delta)

	rec, ok := e.records[id]
	if !ok {
		rec = &record{
			deltas:   make(map[model.Attribute]float64),
			cleanups: make(map[timer.Handle]struct{}),
		}
		e.records[id] = rec
	}
	rec.deltas[attr] += delta

	c := &contribution{attr: attr, delta: delta}
	c.expiry = e.timers.Schedule(duration, func() { e.expire(id, rec, c) })
	rec.live = append(rec.live, c)

	var cleanup timer.Handle
	cleanup = e.timers.Schedule(duration+1, func() { e.cleanup(id, rec, attr, cleanup) })
	rec.cleanups[cleanup] = struct{}{}

	slog.Debug("buff added",
		"entity", id,
		"attribute", attr,
		"delta", delta,
		"duration", duration)
	return nil
}

// RemoveAll отменяет все таймеры, откатывает живые delta и удаляет запись сущности.
func (e *Engine) RemoveAll(id model.EntityID) {
	rec, ok := e.records[id]
	if !ok {
		return
	}
	for _, c := range rec.live {
		e.timers.Cancel(c.expiry)
	}
	for h := range rec.cleanups {
		e.timers.Cancel(h)
	}
	for attr, delta := range rec.deltas {
		if delta == 0 {
			continue
		}
		e.revert(id, attr, delta)
	}
	delete(e.records, id)
	slog.Debug("buffs removed", "entity", id)
}

// Get возвращает суммарный delta атрибута или 0.
func (e *Engine) Get(id model.EntityID, attr model.Attribute) float64 {
	rec, ok := e.records[id]
	if !ok {
		return 0
	}
	return rec.deltas[attr]
}

// Attributes returns a copy of the entity's net deltas.
func (e *Engine) Attributes(id model.EntityID) map[model.Attribute]float64 {
	rec, ok := e.records[id]
	if !ok {
		return nil
	}
	out := make(map[model.Attribute]float64, len(rec.deltas))
	for k, v := range rec.deltas {
		out[k] = v
	}
	return out
}

// Has reports whether the entity has a buff record.
func (e *Engine) Has(id model.EntityID) bool {
	_, ok := e.records[id]
	return ok
}

// Count returns the number of buffed entities.
func (e *Engine) Count() int {
	return len(e.records)
}

// lowest возвращает минимальное значение атрибута, достижимое при любом
// порядке истечения живых вкладов, с учётом нового delta.
func (e *Engine) lowest(id model.EntityID, attr model.Attribute, current, delta float64) float64 {
	negative := min(delta, 0)
	var net float64
	if rec, ok := e.records[id]; ok {
		net = rec.deltas[attr]
		for _, c := range rec.live {
			if c.attr == attr && c.delta < 0 {
				negative += c.delta
			}
		}
	}
	if negative == 0 {
		return current + delta
	}
	// Все положительные вклады истекли, все отрицательные ещё действуют.
	return current - net + negative
}

func (e *Engine) revert(id model.EntityID, attr model.Attribute, delta float64) {
	v := e.attrs.Attribute(id, attr) - delta
	if attr.Consumable() {
		v = max(v, 0)
	}
	e.attrs.SetAttribute(id, attr, v)
}

func (e *Engine) expire(id model.EntityID, rec *record, c *contribution) {
	if e.records[id] != rec {
		return
	}
	idx := slices.Index(rec.live, c)
	if idx < 0 {
		return
	}
	rec.live = slices.Delete(rec.live, idx, idx+1)
	rec.deltas[c.attr] -= c.delta
	e.revert(id, c.attr, c.delta)

	slog.Debug("buff expired",
		"entity", id,
		"attribute", c.attr,
		"delta", c.delta)
}

func (e *Engine) cleanup(id model.EntityID, rec *record, attr model.Attribute, h timer.Handle) {
	if e.records[id] != rec {
		return
	}
	delete(rec.cleanups, h)
	if delta, ok := rec.deltas[attr]; ok && math.Abs(delta) < zeroEpsilon {
		delete(rec.deltas, attr)
	}
	if rec.empty() {
		delete(e.records, id)
	}
}
