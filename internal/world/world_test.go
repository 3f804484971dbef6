package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/rpgcore/internal/model"
)

func TestWorld_SpawnDespawn(t *testing.T) {
	w := New(nil)
	id := w.Spawn(Spawn{Name: "zombie", MaxHealth: 20, Location: model.NewLocation(5, 64, 5)})

	require.True(t, w.Exists(id))
	assert.Equal(t, 20.0, w.Health(id))
	assert.Equal(t, 20.0, w.MaxHealth(id))
	assert.Equal(t, 1, w.RegionCount())

	w.Despawn(id)
	assert.False(t, w.Exists(id))
	assert.Equal(t, 0, w.RegionCount())
}

func TestWorld_DamageAndHeal(t *testing.T) {
	w := New(nil)
	id := w.Spawn(Spawn{MaxHealth: 20, Health: 10})

	w.ApplyDamage(id, 4)
	assert.Equal(t, 6.0, w.Health(id))

	w.Heal(id, 100)
	assert.Equal(t, 20.0, w.Health(id))

	w.ApplyDamage(id, 25)
	assert.Equal(t, 0.0, w.Health(id))
	assert.False(t, w.IsAlive(id))

	// Мёртвых не лечим
	w.Heal(id, 5)
	assert.Equal(t, 0.0, w.Health(id))
}

func TestWorld_NearbyLiving(t *testing.T) {
	w := New(nil)
	center := w.Spawn(Spawn{MaxHealth: 20, Location: model.NewLocation(15, 64, 15)})
	near := w.Spawn(Spawn{MaxHealth: 20, Location: model.NewLocation(17, 64, 16)}) // соседняя ячейка
	far := w.Spawn(Spawn{MaxHealth: 20, Location: model.NewLocation(30, 64, 30)})
	dead := w.Spawn(Spawn{MaxHealth: 20, Location: model.NewLocation(14, 64, 14)})
	w.ApplyDamage(dead, 100)

	got := w.NearbyLiving(center, 3)
	assert.Equal(t, []model.EntityID{near}, got)
	assert.NotContains(t, got, far)
	assert.NotContains(t, got, center)
}

func TestWorld_TeleportMovesRegion(t *testing.T) {
	w := New(nil)
	a := w.Spawn(Spawn{MaxHealth: 20, Location: model.NewLocation(0, 64, 0)})
	b := w.Spawn(Spawn{MaxHealth: 20, Location: model.NewLocation(100, 64, 100)})
	assert.Empty(t, w.NearbyLiving(a, 3))

	w.Teleport(b, model.NewLocation(1, 64, 1))
	assert.Equal(t, []model.EntityID{b}, w.NearbyLiving(a, 3))
	assert.Equal(t, 1, w.RegionCount())
}

func TestWorld_Attributes(t *testing.T) {
	w := New(nil)
	id := w.Spawn(Spawn{MaxHealth: 20, Armor: 5, Attributes: map[model.Attribute]float64{
		model.AttrExtArmor: 3,
	}})

	assert.Equal(t, 5.0, w.Attribute(id, model.AttrArmor))
	assert.Equal(t, 3.0, w.Attribute(id, model.AttrExtArmor))
	assert.Equal(t, 3.0, w.Extended().Get(id, model.AttrExtArmor))

	w.SetAttribute(id, model.AttrMaxHealth, 10)
	assert.Equal(t, 10.0, w.Health(id), "health clamps to the lowered max")
}

func TestWorld_Potions(t *testing.T) {
	w := New(nil)
	var now uint64
	w.SetClock(func() uint64 { return now })
	id := w.Spawn(Spawn{MaxHealth: 20})

	w.AddPotionEffect(id, model.PotionResistance, 2, 10)
	amp, ok := w.PotionAmplifier(id, model.PotionResistance)
	require.True(t, ok)
	assert.Equal(t, 2, amp)

	// Слабее не перезаписывает
	w.AddPotionEffect(id, model.PotionResistance, 1, 100)
	amp, _ = w.PotionAmplifier(id, model.PotionResistance)
	assert.Equal(t, 2, amp)

	now = 10
	_, ok = w.PotionAmplifier(id, model.PotionResistance)
	assert.False(t, ok)
}

func TestWorld_Food(t *testing.T) {
	w := New(nil)
	hungry := w.Spawn(Spawn{MaxHealth: 20, TracksFood: true})
	golem := w.Spawn(Spawn{MaxHealth: 20})

	w.SetFood(hungry, 3)
	assert.True(t, w.ResetFood(hungry))
	assert.Equal(t, MaxFood, w.Food(hungry))
	assert.False(t, w.ResetFood(golem))
}
