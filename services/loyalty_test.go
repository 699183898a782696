package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"heaven-palace/models"
	"heaven-palace/services"
)

func TestTierFor(t *testing.T) {
	cases := []struct {
		points int64
		want   services.Tier
	}{
		{0, services.TierMember},
		{4999, services.TierMember},
		{5000, services.TierSilver},
		{9999, services.TierSilver},
		{10000, services.TierGold},
		{14999, services.TierGold},
		{15000, services.TierPlatinum},
		{250000, services.TierPlatinum},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, services.TierFor(c.points), "points=%d", c.points)
	}
}

func TestPointsFor(t *testing.T) {
	assert.Equal(t, int64(895), services.PointsFor(89500))
	assert.Equal(t, int64(0), services.PointsFor(99))
	assert.Equal(t, int64(0), services.PointsFor(-500))
}

func TestLoyalty_ProgressAndUnlocks(t *testing.T) {
	rewards := []models.Reward{
		{ID: 1, Title: "Welcome Drink", PointsCost: 500, Active: true},
		{ID: 2, Title: "Free Spa Access", PointsCost: 15000, Active: true},
	}

	st := services.Loyalty(12000, rewards)

	assert.Equal(t, services.TierGold, st.Tier)
	assert.Equal(t, services.TierPlatinum, st.NextTier)
	assert.Equal(t, int64(3000), st.PointsToNext)
	assert.Equal(t, 80, st.Progress)
	if assert.Len(t, st.Rewards, 2) {
		assert.True(t, st.Rewards[0].Unlocked)
		assert.False(t, st.Rewards[1].Unlocked)
	}
}

func TestLoyalty_TopTierCapsProgress(t *testing.T) {
	st := services.Loyalty(40000, nil)

	assert.Equal(t, services.TierPlatinum, st.Tier)
	assert.Empty(t, st.NextTier)
	assert.Equal(t, int64(0), st.PointsToNext)
	assert.Equal(t, 100, st.Progress)
	assert.NotNil(t, st.Rewards)
}

func TestCheckRedemption_IsAdvisory(t *testing.T) {
	spa := models.Reward{ID: 2, Title: "Free Spa Access", PointsCost: 15000, Active: true}

	r := services.CheckRedemption(12000, spa)
	assert.False(t, r.Eligible)
	assert.Equal(t, int64(3000), r.Shortfall)
	assert.Equal(t, int64(12000), r.Points)

	r = services.CheckRedemption(20000, spa)
	assert.True(t, r.Eligible)
	assert.Zero(t, r.Shortfall)

	spa.Active = false
	assert.False(t, services.CheckRedemption(20000, spa).Eligible)
}
