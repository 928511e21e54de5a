package profile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddSaturating(t *testing.T) {
	assert.EqualValues(t, 7, AddSaturating(3, 4))
	assert.EqualValues(t, int64(math.MaxInt64), AddSaturating(math.MaxInt64-1, 10))
	assert.EqualValues(t, int64(math.MinInt64), AddSaturating(math.MinInt64+1, -10))
	assert.EqualValues(t, -1, AddSaturating(3, -4))
}

func TestValid(t *testing.T) {
	assert.True(t, Default().Valid())
	assert.False(t, Profile{RewardCurrency: -1}.Valid())
	assert.False(t, Profile{Level: -2}.Valid())
}
