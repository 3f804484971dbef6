package sim

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/udisondev/rpgcore/internal/config"
	"github.com/udisondev/rpgcore/internal/game/ability"
	"github.com/udisondev/rpgcore/internal/game/combat"
	"github.com/udisondev/rpgcore/internal/game/status"
	"github.com/udisondev/rpgcore/internal/model"
	"github.com/udisondev/rpgcore/internal/world"
)

type fixedRoller float64

func (r fixedRoller) Roll() float64 { return float64(r) }

type SimulationTestSuite struct {
	suite.Suite
	world *world.World
	sim   *Simulation
	cues  []string
}

func TestSimulationSuite(t *testing.T) {
	suite.Run(t, new(SimulationTestSuite))
}

func (s *SimulationTestSuite) SetupTest() {
	s.world = world.New(nil)
	s.cues = nil
	s.world.OnCue(func(_ model.EntityID, cue string) { s.cues = append(s.cues, cue) })

	sim, err := New(config.DefaultSimulation(), s.world, s.world.Extended())
	s.Require().NoError(err)
	sim.Abilities().SetRoller(fixedRoller(0))
	s.world.SetClock(sim.Now)
	s.sim = sim
}

func (s *SimulationTestSuite) join(spawn world.Spawn, items ...ability.Item) model.EntityID {
	if spawn.MaxHealth == 0 {
		spawn.MaxHealth = 20
	}
	id := s.world.Spawn(spawn)
	s.Require().NoError(s.sim.Exec(Join{Entity: id, Items: items}))
	return id
}

func (s *SimulationTestSuite) TestJobOffsets() {
	jobs := s.sim.Scheduler().Jobs()
	s.Require().Len(jobs, 5)
	s.Equal("dot", jobs[0].Name)
	s.Equal(uint64(0), jobs[0].Offset)
	s.Equal("interval", jobs[1].Name)
	s.Equal(uint64(5), jobs[1].Offset)
	s.Equal("below_health", jobs[2].Name)
	s.Equal(uint64(10), jobs[2].Offset)
}

func (s *SimulationTestSuite) TestBleedTickDealsExactDamage() {
	id := s.join(world.Spawn{MaxHealth: 20})
	s.Require().NoError(s.sim.Exec(ApplyStatus{Entity: id, Kind: status.KindBleed, Magnitude: 10, Duration: 100}))

	s.sim.StepN(19)
	s.Equal(20.0, s.world.Health(id))

	s.sim.Step() // tick 20
	s.Equal(18.0, s.world.Health(id))
	s.Contains(s.cues, "status.bleed")
}

func (s *SimulationTestSuite) TestSoakedOnlyEmitsCue() {
	id := s.join(world.Spawn{MaxHealth: 20})
	s.Require().NoError(s.sim.Exec(ApplyStatus{Entity: id, Kind: status.KindSoaked, Magnitude: 10, Duration: 100}))

	s.sim.StepN(20)
	s.Equal(20.0, s.world.Health(id))
	s.Equal([]string{"status.soaked"}, s.cues)
}

func (s *SimulationTestSuite) TestElectrocuteOverkillSpreads() {
	dying := s.join(world.Spawn{MaxHealth: 20, Health: 1, Location: model.NewLocation(0, 64, 0)})
	left := s.join(world.Spawn{Location: model.NewLocation(1, 64, 0)})
	right := s.join(world.Spawn{Location: model.NewLocation(0, 64, 2)})
	far := s.join(world.Spawn{Location: model.NewLocation(10, 64, 0)})

	s.Require().NoError(s.sim.Exec(ApplyStatus{Entity: dying, Kind: status.KindElectrocute, Magnitude: 15, Duration: 100}))
	s.sim.StepN(20)

	s.False(s.world.IsAlive(dying))
	s.False(s.sim.Statuses().Tracked(dying), "death clears statuses")

	for _, id := range []model.EntityID{left, right} {
		s.Equal(int32(5), s.sim.Statuses().StackAmount(id, status.KindElectrocute))
		apps := s.sim.Statuses().Status(id, status.KindElectrocute).Applications()
		s.Require().Len(apps, 1)
		s.Equal(uint64(20+60), apps[0].ExpiresAt)
	}
	s.False(s.sim.Statuses().Has(far, status.KindElectrocute))
}

func (s *SimulationTestSuite) TestElectrocuteOverkillWithoutNeighboursDiscarded() {
	dying := s.join(world.Spawn{MaxHealth: 20, Health: 1})
	s.Require().NoError(s.sim.Exec(ApplyStatus{Entity: dying, Kind: status.KindElectrocute, Magnitude: 15, Duration: 100}))

	s.sim.StepN(20)
	s.False(s.world.IsAlive(dying))
	s.Zero(s.sim.Statuses().Count())
}

func (s *SimulationTestSuite) TestElectrocuteSpreadsAtLeastOneStack() {
	dying := s.join(world.Spawn{MaxHealth: 20, Health: 1, Location: model.NewLocation(0, 64, 0)})
	var nearby []model.EntityID
	for i := range 3 {
		nearby = append(nearby, s.join(world.Spawn{Location: model.NewLocation(float64(i)-1, 64, 1)}))
	}

	// 6 stacks deal 1.2: overkill 0.2 is one stack for three neighbours
	s.Require().NoError(s.sim.Exec(ApplyStatus{Entity: dying, Kind: status.KindElectrocute, Magnitude: 6, Duration: 100}))
	s.sim.StepN(20)

	for _, id := range nearby {
		s.Equal(int32(1), s.sim.Statuses().StackAmount(id, status.KindElectrocute))
	}
}

func (s *SimulationTestSuite) TestBelowHealthUsesWoundedSet() {
	item := ability.Item{
		ID:   "troll_amulet",
		Slot: model.SlotChest,
		Passives: []ability.Passive{{
			ID:        "second_wind",
			Trigger:   ability.TriggerBelowHealth,
			Condition: ability.Condition{HealthThreshold: 30, Cooldown: 200},
			Effect:    ability.PotionEffect{Self: true, Potion: model.PotionRegeneration, Amplifier: 2, Duration: 100},
		}},
	}
	id := s.join(world.Spawn{MaxHealth: 100}, item)
	s.False(s.sim.Wounded(id))

	s.Require().NoError(s.sim.Exec(Damaged{Victim: id, Amount: 71, Cause: combat.CausePhysical}))
	s.True(s.sim.Wounded(id))

	s.sim.StepN(10) // below_health runs at tick 10
	amp, ok := s.world.PotionAmplifier(id, model.PotionRegeneration)
	s.True(ok)
	s.Equal(2, amp)
	s.Equal(1, s.sim.Abilities().Cooldowns(id))

	s.world.Heal(id, 100)
	s.Require().NoError(s.sim.Exec(HealthChanged{Entity: id}))
	s.False(s.sim.Wounded(id))
}

func (s *SimulationTestSuite) TestAbilityDamageMarksVictimWounded() {
	caster := s.join(world.Spawn{Location: model.NewLocation(0, 64, 0)}, ability.Item{
		ID:      "quake_boots",
		Slot:    model.SlotFeet,
		Actives: []ability.Active{{ID: "quake", Cooldown: 100, Effect: ability.DistanceDamageEffect{Radius: 5, Damage: 20}}},
	})
	victim := s.join(world.Spawn{Location: model.NewLocation(1, 64, 0)}, ability.Item{
		ID:   "troll_amulet",
		Slot: model.SlotChest,
		Passives: []ability.Passive{{
			ID:        "second_wind",
			Trigger:   ability.TriggerBelowHealth,
			Condition: ability.Condition{HealthThreshold: 50, Cooldown: 200},
			Effect:    ability.PotionEffect{Self: true, Potion: model.PotionRegeneration, Amplifier: 1, Duration: 100},
		}},
	})

	s.Require().NoError(s.sim.Exec(Activate{Entity: caster, Slot: model.SlotFeet}))
	s.InDelta(4.0, s.world.Health(victim), 1e-9) // 20 * (1 - 1/5)
	s.True(s.sim.Wounded(victim))

	s.sim.StepN(10)
	amp, ok := s.world.PotionAmplifier(victim, model.PotionRegeneration)
	s.True(ok)
	s.Equal(1, amp)
}

func (s *SimulationTestSuite) TestIntervalAbility() {
	id := s.join(world.Spawn{}, ability.Item{
		ID:   "ward",
		Slot: model.SlotHead,
		Passives: []ability.Passive{{
			ID:        "ward_pulse",
			Trigger:   ability.TriggerInterval,
			Condition: ability.Condition{Cooldown: 30},
			Effect:    ability.BuffEffect{Self: true, Attribute: model.AttrOvershield, Delta: 4, Duration: 200},
		}},
	})

	s.sim.StepN(5)
	s.Equal(4.0, s.world.Attribute(id, model.AttrOvershield))
	s.sim.StepN(20) // tick 25: still cooling down
	s.Equal(4.0, s.world.Attribute(id, model.AttrOvershield))
}

func (s *SimulationTestSuite) TestKillFiresOnKill() {
	killer := s.join(world.Spawn{}, ability.Item{
		ID:   "reaper",
		Slot: model.SlotMainHand,
		Passives: []ability.Passive{{
			ID:        "harvest",
			Trigger:   ability.TriggerOnKill,
			Condition: ability.Condition{Chance: 100},
			Effect:    ability.PotionEffect{Self: true, Potion: model.PotionStrength, Amplifier: 1, Duration: 60},
		}},
	})
	victim := s.join(world.Spawn{MaxHealth: 20, Health: 5})
	s.Require().NoError(s.sim.Exec(ApplyStatus{Entity: victim, Kind: status.KindBleed, Magnitude: 1, Duration: 100}))

	s.Require().NoError(s.sim.Exec(Damaged{Victim: victim, Attacker: killer, Amount: 10, Cause: combat.CausePhysical}))

	s.False(s.world.IsAlive(victim))
	s.False(s.sim.Statuses().Tracked(victim))
	_, ok := s.world.PotionAmplifier(killer, model.PotionStrength)
	s.True(ok)
}

func (s *SimulationTestSuite) TestDamagedTriggersBothSides() {
	victim := s.join(world.Spawn{}, ability.Item{
		ID:   "thorn_mail",
		Slot: model.SlotChest,
		Passives: []ability.Passive{{
			ID:        "thorns",
			Trigger:   ability.TriggerDamageTaken,
			Condition: ability.Condition{Chance: 100},
			Effect:    ability.StackEffect{Kind: status.KindBleed, Magnitude: 2, Duration: 40},
		}},
	})
	attacker := s.join(world.Spawn{}, ability.Item{
		ID:   "frost_blade",
		Slot: model.SlotMainHand,
		Passives: []ability.Passive{{
			ID:        "frostbite",
			Trigger:   ability.TriggerDamageDealt,
			Condition: ability.Condition{Chance: 100},
			Effect:    ability.StackEffect{Kind: status.KindBrittle, Magnitude: 3, Duration: 40},
		}},
	})

	s.Require().NoError(s.sim.Exec(Damaged{Victim: victim, Attacker: attacker, Amount: 2, Cause: combat.CausePhysical}))

	s.Equal(int32(2), s.sim.Statuses().StackAmount(attacker, status.KindBleed))
	s.Equal(int32(3), s.sim.Statuses().StackAmount(victim, status.KindBrittle))
}

func (s *SimulationTestSuite) TestActivateCommand() {
	id := s.join(world.Spawn{Facing: model.Vec3{X: 1}}, ability.Item{
		ID:      "blink_boots",
		Slot:    model.SlotFeet,
		Actives: []ability.Active{{ID: "blink", Cooldown: 40, Effect: ability.TeleportEffect{Distance: 3}}},
	})

	s.Require().NoError(s.sim.Exec(Activate{Entity: id, Slot: model.SlotFeet}))
	s.ErrorIs(s.sim.Exec(Activate{Entity: id, Slot: model.SlotFeet}), ability.ErrOnCooldown)
	s.InDelta(3.0, s.world.Location(id).X, 1e-9)
}

func (s *SimulationTestSuite) TestShieldDecay() {
	id := s.join(world.Spawn{Attributes: map[model.Attribute]float64{model.AttrOvershield: 10}})

	s.sim.StepN(40)
	s.InDelta(9.0, s.world.Attribute(id, model.AttrOvershield), 1e-9) // max(1, 0.5)

	s.world.SetAttribute(id, model.AttrOvershield, 100)
	s.sim.StepN(40)
	s.InDelta(95.0, s.world.Attribute(id, model.AttrOvershield), 1e-9) // max(1, 5)
}

func (s *SimulationTestSuite) TestAbsorbedShieldBuffExpiresToZero() {
	id := s.join(world.Spawn{MaxHealth: 20})
	s.Require().NoError(s.sim.Exec(AddBuff{Entity: id, Attribute: model.AttrOvershield, Delta: 10, Duration: 30}))
	s.Require().NoError(s.sim.Exec(Damaged{Victim: id, Amount: 8, Cause: combat.CauseMagic}))
	s.InDelta(2.0, s.world.Attribute(id, model.AttrOvershield), 1e-9)
	s.Equal(20.0, s.world.Health(id))

	s.sim.StepN(30)
	s.Equal(0.0, s.world.Attribute(id, model.AttrOvershield))
}

func (s *SimulationTestSuite) TestHUDRefresh() {
	id := s.join(world.Spawn{MaxHealth: 20})
	s.Require().NoError(s.sim.Exec(ApplyStatus{Entity: id, Kind: status.KindSoaked, Magnitude: 3, Duration: 500}))

	s.sim.StepN(100)
	snap, ok := s.world.LastHUD(id)
	s.Require().True(ok)
	s.Equal(20.0, snap.Health)
	s.Equal(int32(3), snap.Stacks["soaked"])
}

func (s *SimulationTestSuite) TestLeaveCancelsTimersAndPersists() {
	var saved map[string]float64
	s.sim.SetSink(func(_ model.EntityID, attrs map[string]float64) { saved = attrs })

	id := s.join(world.Spawn{Attributes: map[model.Attribute]float64{model.AttrExtArmor: 6}})
	s.Require().NoError(s.sim.Exec(ApplyStatus{Entity: id, Kind: status.KindBleed, Magnitude: 2, Duration: 100}))
	s.Require().NoError(s.sim.Exec(AddBuff{Entity: id, Attribute: model.AttrBuffArmor, Delta: 3, Duration: 100}))
	s.Equal(3.0, s.world.Attribute(id, model.AttrBuffArmor))

	s.Require().NoError(s.sim.Exec(Leave{Entity: id}))

	s.Zero(s.sim.Timers().Len())
	s.False(s.sim.Joined(id))
	s.Equal(map[string]float64{"rpg.armor": 6}, saved)
	s.Zero(s.world.Extended().Len(), "extended attributes dropped after the snapshot")
	s.ErrorIs(s.sim.Exec(Leave{Entity: id}), ability.ErrUnknownEntity)
}

func (s *SimulationTestSuite) TestJoinRestoresAttributes() {
	id := s.world.Spawn(world.Spawn{MaxHealth: 20})
	s.Require().NoError(s.sim.Exec(Join{Entity: id, Attributes: map[string]float64{"rpg.armor": 4, "generic.armor": 99}}))

	s.Equal(4.0, s.world.Attribute(id, model.AttrExtArmor))
	s.Zero(s.world.Attribute(id, model.AttrArmor))
	s.Error(s.sim.Exec(Join{Entity: id}))
}

func (s *SimulationTestSuite) TestCleanseAndClearStatus() {
	id := s.join(world.Spawn{})
	s.Require().NoError(s.sim.Exec(AddBuff{Entity: id, Attribute: model.AttrArmor, Delta: 5, Duration: 100}))
	s.Require().NoError(s.sim.Exec(ApplyStatus{Entity: id, Kind: status.KindBrittle, Magnitude: 2, Duration: 100}))

	s.Require().NoError(s.sim.Exec(Cleanse{Entity: id}))
	s.Zero(s.world.Attribute(id, model.AttrArmor))
	s.False(s.sim.Buffs().Has(id))

	s.Require().NoError(s.sim.Exec(ClearStatus{Entity: id, Kind: status.KindBrittle}))
	s.Require().NoError(s.sim.Exec(ClearStatus{Entity: id, Kind: status.KindBrittle}))
	s.Zero(s.sim.Timers().Len())
}

func (s *SimulationTestSuite) TestIngressDrainedInOrder() {
	id := s.join(world.Spawn{})

	s.Require().NoError(s.sim.Submit(ApplyStatus{Entity: id, Kind: status.KindVulnerable, Magnitude: 5, Duration: 10}))
	s.Require().NoError(s.sim.Submit(ClearStatus{Entity: id, Kind: status.KindVulnerable}))
	s.Require().NoError(s.sim.Submit(ApplyStatus{Entity: id, Kind: status.KindVulnerable, Magnitude: 2, Duration: 10}))
	s.False(s.sim.Statuses().Has(id, status.KindVulnerable), "nothing applied before the tick")

	s.sim.Step()
	s.Equal(int32(2), s.sim.Statuses().StackAmount(id, status.KindVulnerable))
}

func (s *SimulationTestSuite) TestIngressFullAndStopped() {
	cfg := config.DefaultSimulation()
	cfg.IngressSize = 2
	sim, err := New(cfg, s.world, s.world.Extended())
	s.Require().NoError(err)

	id := model.NewEntityID()
	s.NoError(sim.Submit(HealthChanged{Entity: id}))
	s.NoError(sim.Submit(HealthChanged{Entity: id}))
	s.ErrorIs(sim.Submit(HealthChanged{Entity: id}), ErrIngressFull)

	sim.Step()
	s.NoError(sim.Submit(HealthChanged{Entity: id}))

	sim.Close()
	s.ErrorIs(sim.Submit(HealthChanged{Entity: id}), ErrStopped)
}

func (s *SimulationTestSuite) TestConcurrentSubmit() {
	id := s.join(world.Spawn{})
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				_ = s.sim.Submit(ApplyStatus{Entity: id, Kind: status.KindSoaked, Magnitude: 1, Duration: 50})
			}
		}()
	}
	wg.Wait()

	s.sim.Step()
	s.Equal(int32(80), s.sim.Statuses().StackAmount(id, status.KindSoaked))
}

func (s *SimulationTestSuite) TestRunStopsOnCancel() {
	cfg := config.DefaultSimulation()
	cfg.TickInterval = time.Millisecond
	sim, err := New(cfg, s.world, s.world.Extended())
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sim.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		s.ErrorIs(err, context.Canceled)
	case <-time.After(time.Second):
		s.Fail("simulation did not stop")
	}
	s.ErrorIs(sim.Submit(HealthChanged{}), ErrStopped)
}
