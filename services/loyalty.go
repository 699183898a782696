package services

import "heaven-palace/models"

// PointsPerLKR is the accrual rate: one point per this many rupees spent.
const PointsPerLKR = 100

type Tier string

const (
	TierMember   Tier = "Member"
	TierSilver   Tier = "Silver"
	TierGold     Tier = "Gold"
	TierPlatinum Tier = "Platinum"
)

var tierFloors = []struct {
	tier  Tier
	floor int64
}{
	{TierMember, 0},
	{TierSilver, 5000},
	{TierGold, 10000},
	{TierPlatinum, 15000},
}

// PointsFor is what a confirmed stay of total LKR earns.
func PointsFor(total int64) int64 {
	if total <= 0 {
		return 0
	}
	return total / PointsPerLKR
}

func TierFor(points int64) Tier {
	t := TierMember
	for _, f := range tierFloors {
		if points >= f.floor {
			t = f.tier
		}
	}
	return t
}

type RewardView struct {
	models.Reward
	Unlocked bool `json:"unlocked"`
}

type LoyaltyStatus struct {
	Points       int64        `json:"points"`
	Tier         Tier         `json:"tier"`
	NextTier     Tier         `json:"next_tier,omitempty"`
	PointsToNext int64        `json:"points_to_next"`
	Progress     int          `json:"progress"`
	Rewards      []RewardView `json:"rewards"`
}

// Loyalty summarises a points balance against the tier ladder. Progress is
// points as a percentage of the next tier's floor, capped at 100.
func Loyalty(points int64, rewards []models.Reward) LoyaltyStatus {
	if points < 0 {
		points = 0
	}
	st := LoyaltyStatus{Points: points, Tier: TierFor(points), Progress: 100}

	for i, f := range tierFloors {
		if f.tier != st.Tier || i == len(tierFloors)-1 {
			continue
		}
		next := tierFloors[i+1]
		st.NextTier = next.tier
		st.PointsToNext = next.floor - points
		st.Progress = int(points * 100 / next.floor)
	}
	if st.Progress > 100 {
		st.Progress = 100
	}

	st.Rewards = make([]RewardView, 0, len(rewards))
	for _, r := range rewards {
		st.Rewards = append(st.Rewards, RewardView{Reward: r, Unlocked: points >= r.PointsCost})
	}
	return st
}

// CanRedeem is advisory only; points are never deducted.
func CanRedeem(points int64, r models.Reward) bool {
	return r.Active && points >= r.PointsCost
}
