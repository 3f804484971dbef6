package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/rpgcore/internal/model"
)

func TestStore_SetGet(t *testing.T) {
	s := NewStore()
	id := model.NewEntityID()

	assert.Equal(t, 0.0, s.Get(id, model.AttrExtArmor))

	s.Set(id, model.AttrExtArmor, 6)
	assert.Equal(t, 6.0, s.Get(id, model.AttrExtArmor))

	s.Set(id, model.AttrExtArmor, 0)
	assert.Equal(t, 0, s.Len(), "zero value removes the key and the empty entity")
}

func TestStore_SnapshotRestore(t *testing.T) {
	s := NewStore()
	id := model.NewEntityID()
	s.Set(id, model.AttrExtArmor, 4)
	s.Set(id, model.AttrOvershield, 10)

	snap := s.Snapshot(id)
	assert.Equal(t, map[string]float64{"rpg.armor": 4, "rpg.overshield": 10}, snap)

	s.Delete(id)
	assert.Equal(t, 0, s.Len())

	snap["generic.armor"] = 3 // не расширенный атрибут, игнорируется
	s.Restore(id, snap)
	assert.Equal(t, 4.0, s.Get(id, model.AttrExtArmor))
	assert.Equal(t, 0.0, s.Get(id, model.AttrArmor))
}
