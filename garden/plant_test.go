package garden

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFeatured(t *testing.T) {
	_, ok := Featured(nil)
	assert.False(t, ok)

	plants := []Plant{
		{ID: 3, LastWateredTime: 500},
		{ID: 2, LastWateredTime: 100},
		{ID: 1, LastWateredTime: 900},
		{ID: 5, LastWateredTime: 100},
	}
	p, ok := Featured(plants)
	assert.True(t, ok)
	assert.Equal(t, uint64(2), p.ID)
}

func TestFeaturedTieBreaksOnSmallestID(t *testing.T) {
	plants := []Plant{
		{ID: 9, LastWateredTime: 10},
		{ID: 4, LastWateredTime: 10},
		{ID: 6, LastWateredTime: 10},
	}
	p, _ := Featured(plants)
	assert.Equal(t, uint64(4), p.ID)
}

func TestStages(t *testing.T) {
	s := DefaultStages
	assert.Equal(t, Stage("tree_1"), s.Resolve(time.Hour, time.Hour, Tree))
	assert.Equal(t, Stage("tree_2"), s.Resolve(30*time.Hour, time.Hour, Tree))
	assert.Equal(t, Stage("tree_3_danger"), s.Resolve(50*time.Hour, 7*time.Hour, Tree))
	assert.Equal(t, Stage("tree_dead"), s.Resolve(50*time.Hour, 12*time.Hour, Tree))
	assert.Equal(t, EmptyGarden, s.Resolve(time.Hour, time.Hour, PlantType(42)))
}

func TestParsePlantType(t *testing.T) {
	pt, ok := ParsePlantType("Flower")
	assert.True(t, ok)
	assert.Equal(t, Flower, pt)

	_, ok = ParsePlantType("weed")
	assert.False(t, ok)
}
