// Package sim is the authoritative simulation loop. It owns the timer
// registry and every engine, and is the only goroutine that mutates them.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/udisondev/rpgcore/internal/config"
	"github.com/udisondev/rpgcore/internal/game/ability"
	"github.com/udisondev/rpgcore/internal/game/attr"
	"github.com/udisondev/rpgcore/internal/game/buff"
	"github.com/udisondev/rpgcore/internal/game/combat"
	"github.com/udisondev/rpgcore/internal/game/status"
	"github.com/udisondev/rpgcore/internal/model"
	"github.com/udisondev/rpgcore/internal/tick"
	"github.com/udisondev/rpgcore/internal/timer"
)

var (
	// ErrIngressFull is returned by Submit when the queue is at capacity.
	ErrIngressFull = errors.New("ingress queue full")
	// ErrStopped is returned by Submit after the simulation stopped.
	ErrStopped = errors.New("simulation stopped")
)

// Sink receives the extended attributes of an entity leaving the simulation.
// It runs on the simulation goroutine and must not block.
type Sink func(id model.EntityID, attrs map[string]float64)

type death struct {
	victim model.EntityID
	killer model.EntityID
}

// Simulation runs the tick loop over the engines.
type Simulation struct {
	cfg  config.Simulation
	host model.Host
	ext  *attr.Store

	timers    *timer.Registry
	statuses  *status.Engine
	buffs     *buff.Engine
	pipeline  *combat.Pipeline
	abilities *ability.Engine
	scheduler *tick.Scheduler

	ingress chan Command
	stopped atomic.Bool
	sink    Sink

	members map[model.EntityID]struct{}
	wounded map[model.EntityID]struct{}
	deaths  []death
}

// New creates a Simulation over host. ext is the extended-attribute store
// the host routes "rpg." attributes to.
func New(cfg config.Simulation, host model.Host, ext *attr.Store) (*Simulation, error) {
	if cfg.IngressSize <= 0 {
		return nil, fmt.Errorf("creating simulation: ingress size %d must be positive", cfg.IngressSize)
	}

	timers := timer.New()
	statuses := status.NewEngine(timers)
	buffs := buff.NewEngine(timers, host)
	pipeline := combat.NewPipeline(host, statuses, buffs)

	s := &Simulation{
		cfg:       cfg,
		host:      host,
		ext:       ext,
		timers:    timers,
		statuses:  statuses,
		buffs:     buffs,
		pipeline:  pipeline,
		abilities: ability.NewEngine(timers, host, statuses, buffs, pipeline),
		scheduler: tick.NewScheduler(cfg.Stagger),
		ingress:   make(chan Command, cfg.IngressSize),
		members:   make(map[model.EntityID]struct{}),
		wounded:   make(map[model.EntityID]struct{}),
	}
	s.abilities.SetKillHandler(s.queueDeath)
	// Любой урон, включая урон от способностей, перепроверяет порог здоровья.
	pipeline.SetObserver(func(res combat.Result) { s.refreshWounded(res.Entity) })

	// Status decay first so ability triggers see the tick's resolved health.
	jobs := []tick.Job{
		{Name: "dot", Period: cfg.Periods.DamageOverTime, Run: s.damageOverTime},
		{Name: "interval", Period: cfg.Periods.Interval, Run: s.intervalAbilities},
		{Name: "below_health", Period: cfg.Periods.BelowHealth, Run: s.belowHealthAbilities},
		{Name: "shield_decay", Period: cfg.Periods.ShieldDecay, Run: s.shieldDecay},
		{Name: "hud", Period: cfg.Periods.HUD, Run: s.refreshHUD},
	}
	for _, job := range jobs {
		run := job.Run
		job.Run = func(t uint64) {
			run(t)
			s.flushDeaths()
		}
		if _, err := s.scheduler.Register(job); err != nil {
			return nil, fmt.Errorf("creating simulation: %w", err)
		}
	}

	return s, nil
}

// SetSink installs the persistence sink for leaving entities.
func (s *Simulation) SetSink(fn Sink) {
	s.sink = fn
}

// Now returns the current tick.
func (s *Simulation) Now() uint64 { return s.timers.Now() }

// Timers returns the timer registry.
func (s *Simulation) Timers() *timer.Registry { return s.timers }

// Statuses returns the status engine.
func (s *Simulation) Statuses() *status.Engine { return s.statuses }

// Buffs returns the buff engine.
func (s *Simulation) Buffs() *buff.Engine { return s.buffs }

// Abilities returns the ability engine.
func (s *Simulation) Abilities() *ability.Engine { return s.abilities }

// Pipeline returns the damage pipeline.
func (s *Simulation) Pipeline() *combat.Pipeline { return s.pipeline }

// Scheduler returns the job scheduler.
func (s *Simulation) Scheduler() *tick.Scheduler { return s.scheduler }

// Members returns the number of joined entities.
func (s *Simulation) Members() int { return len(s.members) }

// Joined reports whether the entity is in the simulation.
func (s *Simulation) Joined(id model.EntityID) bool {
	_, ok := s.members[id]
	return ok
}

// Wounded reports whether the entity is in the below-health watch set.
func (s *Simulation) Wounded(id model.EntityID) bool {
	_, ok := s.wounded[id]
	return ok
}

// Submit ставит команду в очередь на следующий тик. Потокобезопасен,
// никогда не блокирует.
func (s *Simulation) Submit(cmd Command) error {
	if s.stopped.Load() {
		return ErrStopped
	}
	select {
	case s.ingress <- cmd:
		return nil
	default:
		return ErrIngressFull
	}
}

// Close запрещает дальнейшие Submit.
func (s *Simulation) Close() {
	s.stopped.Store(true)
}

// Exec applies a command immediately. Only the simulation goroutine may call it.
func (s *Simulation) Exec(cmd Command) error {
	err := cmd.apply(s)
	s.flushDeaths()
	return err
}

// Step advances the simulation by one tick: queued commands are applied,
// timers fire, then due jobs run.
func (s *Simulation) Step() {
	s.drain()
	s.timers.Advance()
	s.flushDeaths()
	s.scheduler.RunDue(s.timers.Now())
}

// StepN calls Step n times.
func (s *Simulation) StepN(n int) {
	for range n {
		s.Step()
	}
}

// Run steps the simulation on the configured interval until ctx is done.
func (s *Simulation) Run(ctx context.Context) error {
	defer s.Close()
	slog.Info("simulation started",
		"tick_interval", s.cfg.TickInterval,
		"jobs", len(s.scheduler.Jobs()))
	return tick.NewLoop(s.cfg.TickInterval, s.Step).Start(ctx)
}

// drain applies the commands queued before this tick began, in FIFO order.
func (s *Simulation) drain() {
	for range len(s.ingress) {
		cmd := <-s.ingress
		if err := s.Exec(cmd); err != nil {
			slog.Warn("ingress command failed",
				"command", fmt.Sprintf("%T", cmd),
				"tick", s.timers.Now(),
				"error", err)
		}
	}
}

func (s *Simulation) queueDeath(victim, killer model.EntityID) {
	s.deaths = append(s.deaths, death{victim: victim, killer: killer})
}

// flushDeaths handles queued deaths, including deaths caused while handling them.
func (s *Simulation) flushDeaths() {
	for len(s.deaths) > 0 {
		d := s.deaths[0]
		s.deaths = s.deaths[1:]
		s.died(d.victim, d.killer)
	}
	s.deaths = nil
}

func (s *Simulation) died(victim, killer model.EntityID) {
	s.statuses.ClearAll(victim)
	delete(s.wounded, victim)
	slog.Debug("entity died", "entity", victim, "killer", killer, "tick", s.timers.Now())

	if !killer.IsZero() && killer != victim {
		s.abilities.Evaluate(ability.TriggerOnKill, killer, ability.Context{Other: victim})
	}
}

// refreshWounded синхронизирует множество раненых со здоровьем сущности
// и её наибольшим порогом.
func (s *Simulation) refreshWounded(id model.EntityID) {
	threshold := s.abilities.WoundedThreshold(id)
	maxHealth := s.host.MaxHealth(id)
	if threshold <= 0 || maxHealth <= 0 || !s.host.IsAlive(id) {
		delete(s.wounded, id)
		return
	}
	if s.host.Health(id)/maxHealth*100 <= threshold {
		s.wounded[id] = struct{}{}
		return
	}
	delete(s.wounded, id)
}
