package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBMR(t *testing.T) {
	now := time.Now()

	t.Run("male", func(t *testing.T) {
		bmr, ok := ComputeBMR(NewUserProfile(1, SexMale, 25, 180, 75, now))
		require.True(t, ok)
		assert.Equal(t, 1755.0, bmr)
	})

	t.Run("female", func(t *testing.T) {
		bmr, ok := ComputeBMR(NewUserProfile(1, SexFemale, 30, 165, 60, now))
		require.True(t, ok)
		assert.Equal(t, 1320.25, bmr)
	})

	t.Run("nil profile", func(t *testing.T) {
		_, ok := ComputeBMR(nil)
		assert.False(t, ok)
	})

	t.Run("missing weight", func(t *testing.T) {
		p := NewUserProfile(1, SexMale, 25, 180, 75, now)
		p.WeightKg = nil
		_, ok := ComputeBMR(p)
		assert.False(t, ok)
	})

	t.Run("unknown sex", func(t *testing.T) {
		p := NewUserProfile(1, Sex("other"), 25, 180, 75, now)
		_, ok := ComputeBMR(p)
		assert.False(t, ok)
	})

	t.Run("legacy row without sex", func(t *testing.T) {
		p := NewUserProfile(1, "", 25, 180, 75, now)
		_, ok := ComputeBMR(p)
		assert.False(t, ok)
	})
}

func TestSexTitle(t *testing.T) {
	assert.Equal(t, "Male", SexMale.Title())
	assert.Equal(t, "Female", SexFemale.Title())
	assert.Equal(t, "", Sex("").Title())
}

func TestLargestPhoto(t *testing.T) {
	msg := &Message{Photo: []PhotoSize{{FileID: "small"}, {FileID: "mid"}, {FileID: "big"}}}
	require.NotNil(t, msg.LargestPhoto())
	assert.Equal(t, "big", msg.LargestPhoto().FileID)

	assert.Nil(t, (&Message{}).LargestPhoto())
}
