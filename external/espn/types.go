package espn

type refItem struct {
	Ref string `json:"$ref"`
}

// pageEnvelope is the paginated list shape of the core API.
type pageEnvelope[T any] struct {
	Count     int `json:"count"`
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Items     []T `json:"items"`
}

type logo struct {
	Href string   `json:"href"`
	Rel  []string `json:"rel"`
}

type leagueResource struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Slug         string `json:"slug"`
	Logos        []logo `json:"logos"`
}

type seasonResource struct {
	Year        int    `json:"year"`
	DisplayName string `json:"displayName"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

type teamResource struct {
	ID           string `json:"id"`
	Location     string `json:"location"`
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
	Logos        []logo `json:"logos"`
}

type weekResource struct {
	Number    int    `json:"number"`
	Text      string `json:"text"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type eventResource struct {
	ID           string                `json:"id"`
	Date         string                `json:"date"`
	Competitions []competitionResource `json:"competitions"`
}

type competitionResource struct {
	ID          string               `json:"id"`
	Date        string               `json:"date"`
	Competitors []competitorResource `json:"competitors"`
	Status      refItem              `json:"status"`
}

type competitorResource struct {
	ID       string  `json:"id"`
	HomeAway string  `json:"homeAway"`
	Score    refItem `json:"score"`
}

type scoreResource struct {
	Value        float64 `json:"value"`
	DisplayValue string  `json:"displayValue"`
}

type statusResource struct {
	Clock        float64 `json:"clock"`
	DisplayClock string  `json:"displayClock"`
	Period       int     `json:"period"`
	Type         struct {
		Name      string `json:"name"`
		State     string `json:"state"`
		Completed bool   `json:"completed"`
	} `json:"type"`
}

type oddsResource struct {
	Provider struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"provider"`
	Spread       float64       `json:"spread"`
	OverUnder    float64       `json:"overUnder"`
	HomeTeamOdds teamOddsEntry `json:"homeTeamOdds"`
	AwayTeamOdds teamOddsEntry `json:"awayTeamOdds"`
}

type teamOddsEntry struct {
	Favorite bool `json:"favorite"`
}
