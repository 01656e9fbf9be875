package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanRating(t *testing.T) {
	assert.Equal(t, 0.0, MeanRating(nil))
	assert.Equal(t, 4.0, MeanRating([]Review{{Rating: 4}}))
	assert.InDelta(t, 3.6667, MeanRating([]Review{{Rating: 5}, {Rating: 4}, {Rating: 2}}), 0.0001)
}
