package destination

// TierInfo describes a distance tier as shown to users.
type TierInfo struct {
	Tier    int    `json:"tier"`
	Label   string `json:"label"`
	DayTrip bool   `json:"daytrip"`
}

// tierLabels are rough one-way travel times.
var tierLabels = map[int]string{
	1: "～1時間",
	2: "～2時間",
	3: "～4時間",
	4: "～6時間",
	5: "6時間以上",
}

// TierLabel returns the travel time label for tier, or "" outside 1-5.
func TierLabel(tier int) string {
	return tierLabels[tier]
}

// Tiers lists every distance tier in ascending order.
func Tiers() []TierInfo {
	out := make([]TierInfo, 0, MaxTier)
	for t := MinTier; t <= MaxTier; t++ {
		out = append(out, TierInfo{Tier: t, Label: TierLabel(t), DayTrip: t <= DayTripMaxTier})
	}
	return out
}
