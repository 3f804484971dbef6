// Package tick runs periodic sweeps on a fixed heartbeat.
package tick

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/rpgcore/internal/model"
)

// DefaultStagger: сдвиг между задачами с одинаковым периодом.
const DefaultStagger = 5

// Job is a periodic sweep.
type Job struct {
	Name   string
	Period uint64
	Run    func(tick uint64)
}

// JobInfo describes a registered job.
type JobInfo struct {
	Name   string
	Period uint64
	Offset uint64
}

type scheduled struct {
	Job
	offset uint64
}

func (s *scheduled) due(tick uint64) bool {
	return tick >= s.offset && (tick-s.offset)%s.Period == 0
}

// Scheduler запускает задачи в порядке регистрации. Задачи с одинаковым
// периодом сдвинуты на stagger и никогда не выполняются в одном тике.
type Scheduler struct {
	stagger uint64
	jobs    []*scheduled
}

// NewScheduler creates a Scheduler. A zero stagger uses DefaultStagger.
func NewScheduler(stagger uint64) *Scheduler {
	if stagger == 0 {
		stagger = DefaultStagger
	}
	return &Scheduler{stagger: stagger}
}

// Register добавляет задачу и возвращает выданный ей сдвиг.
func (s *Scheduler) Register(job Job) (uint64, error) {
	if job.Period == 0 {
		return 0, fmt.Errorf("registering job %q: zero period", job.Name)
	}
	if job.Run == nil {
		return 0, fmt.Errorf("registering job %q: nil run func", job.Name)
	}

	var offset uint64
	for _, other := range s.jobs {
		if other.Period == job.Period {
			offset += s.stagger
		}
	}
	for _, other := range s.jobs {
		if other.Period == job.Period && other.offset%job.Period == offset%job.Period {
			slog.Warn("tick jobs collide despite stagger",
				"job", job.Name,
				"other", other.Name,
				"period", job.Period,
				"stagger", s.stagger)
		}
	}

	s.jobs = append(s.jobs, &scheduled{Job: job, offset: offset})
	slog.Debug("tick job registered", "job", job.Name, "period", job.Period, "offset", offset)
	return offset, nil
}

// RunDue выполняет все задачи, наступившие на tick. Паника задачи логируется,
// остальные выполняются. Возвращает число выполненных задач.
func (s *Scheduler) RunDue(tick uint64) int {
	ran := 0
	for _, j := range s.jobs {
		if !j.due(tick) {
			continue
		}
		s.run(j, tick)
		ran++
	}
	return ran
}

func (s *Scheduler) run(j *scheduled, tick uint64) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("tick job panicked", "job", j.Name, "tick", tick, "panic", rec)
		}
	}()
	j.Run(tick)
}

// Jobs lists the registered jobs in run order.
func (s *Scheduler) Jobs() []JobInfo {
	out := make([]JobInfo, len(s.jobs))
	for i, j := range s.jobs {
		out[i] = JobInfo{Name: j.Name, Period: j.Period, Offset: j.offset}
	}
	return out
}

// ErrEntityFailed marks a per-entity failure reported by Each.
var ErrEntityFailed = errors.New("entity sweep failed")

// Each calls fn for every id. A panic or error for one entity is logged with
// the job name and the sweep moves on. Returns the number of failures.
func Each(job string, ids []model.EntityID, fn func(id model.EntityID) error) int {
	failed := 0
	for _, id := range ids {
		if err := guard(id, fn); err != nil {
			slog.Error("sweep entity failed", "job", job, "entity", id, "error", err)
			failed++
		}
	}
	return failed
}

func guard(id model.EntityID, fn func(id model.EntityID) error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: panic: %v", ErrEntityFailed, rec)
		}
	}()
	return fn(id)
}
