package engine

// RankInfo grades a finished game against the category's par.
type RankInfo struct {
	Rank  string `json:"rank"`
	Label string `json:"label"`
}

// Rank buckets a final move count: at or under par is gold, within three
// over par is silver, anything slower is bronze.
func Rank(score, par int) RankInfo {
	switch {
	case score <= par:
		return RankInfo{Rank: "GOLD", Label: "Editorial Choice"}
	case score <= par+3:
		return RankInfo{Rank: "SILVER", Label: "Subscriber"}
	default:
		return RankInfo{Rank: "BRONZE", Label: "Casual Reader"}
	}
}
