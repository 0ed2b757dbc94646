package sport

import "fmt"

// SyncTarget names one ESPN sport/league pair to mirror.
type SyncTarget struct {
	Sport       string `yaml:"sport"`
	League      string `yaml:"league"`
	SeasonTypes []int  `yaml:"seasonTypes"`
}

func (t SyncTarget) Key() string {
	return t.Sport + "/" + t.League
}

func (t SyncTarget) Validate() error {
	if t.Sport == "" || t.League == "" {
		return fmt.Errorf("sync target requires sport and league, got %q", t.Key())
	}
	for _, st := range t.SeasonTypes {
		if st < SeasonTypePreseason || st > SeasonTypePostseason {
			return fmt.Errorf("sync target %s: unknown season type %d", t.Key(), st)
		}
	}
	return nil
}

// Matches reports whether l is the league this target mirrors.
func (t SyncTarget) Matches(l League) bool {
	return l.Sport == t.Sport && l.Slug == t.League
}

// DefaultSyncTargets mirrors NFL and college football regular and post seasons.
func DefaultSyncTargets() []SyncTarget {
	return []SyncTarget{
		{Sport: "football", League: "nfl", SeasonTypes: []int{SeasonTypeRegular, SeasonTypePostseason}},
		{Sport: "football", League: "college-football", SeasonTypes: []int{SeasonTypeRegular, SeasonTypePostseason}},
	}
}

// WeekESPNID builds the natural key of a week within its season.
func WeekESPNID(seasonType, number int) string {
	return fmt.Sprintf("%d-%d", seasonType, number)
}
