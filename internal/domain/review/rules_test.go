package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func TestValidate(t *testing.T) {
	for _, rating := range []int{-1, 0, 6, 10} {
		_, err := Validate(rating, "güzel")
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
	}

	for _, comment := range []string{"", "   ", "\n\t"} {
		_, err := Validate(4, comment)
		assert.ErrorIs(t, err, ErrEmptyComment)
	}

	c, err := Validate(5, "  Harika hizmet  ")
	require.NoError(t, err)
	assert.Equal(t, "Harika hizmet", c)
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))
	assert.Equal(t, 4.3, Average([]models.Review{{Rating: 5}, {Rating: 4}, {Rating: 4}}))
	assert.Equal(t, 1.0, Average([]models.Review{{Rating: 1}}))
}
