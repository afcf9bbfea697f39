package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPassword(t *testing.T) {
	var u User
	require.NoError(t, u.SetPassword("secret1"))
	assert.NoError(t, u.CheckPassword("secret1"))
	assert.Error(t, u.CheckPassword("secret2"))
}

func TestProfileCompletion(t *testing.T) {
	u := User{Name: "Asha", Email: "asha@example.com"}
	assert.False(t, u.HasCompleteProfile())
	assert.Equal(t, 33, u.ProfileCompletion())

	u.Phone, u.Location, u.Aadhar = "1", "Pune", "doc"
	assert.True(t, u.HasCompleteProfile())
	assert.Equal(t, 83, u.ProfileCompletion())

	u.ProfileImage = "me.png"
	assert.Equal(t, 100, u.ProfileCompletion())
}

func TestRatingDistributionBucket(t *testing.T) {
	var d RatingDistribution
	*d.Bucket(5) += 2
	*d.Bucket(1)++
	assert.Nil(t, d.Bucket(0))
	assert.Nil(t, d.Bucket(6))
	assert.Equal(t, int64(3), d.Total())
	assert.Equal(t, RatingDistribution{One: 1, Five: 2}, d)
}

func TestEffectivePrice(t *testing.T) {
	discounted := 7.5
	p := Product{Price: 10}
	assert.Equal(t, 10.0, p.EffectivePrice())
	p.DiscountedPrice = &discounted
	assert.Equal(t, 7.5, p.EffectivePrice())
}

func TestHelpfulCount(t *testing.T) {
	r := Review{Helpful: []HelpfulVote{{UserID: "a", Helpful: true}, {UserID: "b"}, {UserID: "c", Helpful: true}}}
	assert.Equal(t, 2, r.HelpfulCount())
}
