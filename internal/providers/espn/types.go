package espn

// Upstream payload shapes. Only the fields the mapper consumes are
// declared; everything else in the feed is ignored.

type scoreboardResponse struct {
	Events []event `json:"events"`
}

type event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Competitions []competition `json:"competitions"`
}

type competition struct {
	Status      status       `json:"status"`
	Competitors []competitor `json:"competitors"`
	Situation   *situation   `json:"situation"`
	Odds        []odds       `json:"odds"`
}

type status struct {
	Period       int        `json:"period"`
	DisplayClock string     `json:"displayClock"`
	Type         statusType `json:"type"`
}

type statusType struct {
	Name        string `json:"name"`
	State       string `json:"state"`
	Detail      string `json:"detail"`
	ShortDetail string `json:"shortDetail"`
}

type competitor struct {
	HomeAway    string       `json:"homeAway"`
	Score       string       `json:"score"`
	Team        team         `json:"team"`
	Records     []record     `json:"records"`
	CuratedRank *curatedRank `json:"curatedRank"`
}

type team struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
}

type record struct {
	Summary string `json:"summary"`
}

type curatedRank struct {
	Current int `json:"current"`
}

type situation struct {
	ShortDownDistanceText string `json:"shortDownDistanceText"`
	Possession            string `json:"possession"`
	IsRedZone             bool   `json:"isRedZone"`
	HomeTimeouts          int    `json:"homeTimeouts"`
	AwayTimeouts          int    `json:"awayTimeouts"`
}

type odds struct {
	Details   string  `json:"details"`
	OverUnder float64 `json:"overUnder"`
	Spread    float64 `json:"spread"`
}

type rankingsResponse struct {
	Rankings []ranking `json:"rankings"`
}

type ranking struct {
	Name  string `json:"name"`
	Ranks []rank `json:"ranks"`
}

type rank struct {
	Current int  `json:"current"`
	Team    team `json:"team"`
}
