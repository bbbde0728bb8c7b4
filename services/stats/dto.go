package stats

import olympics "github.com/nvbf/olympic-feed/repos/olympics"

type Dataset struct {
	Countries []olympics.Country
	Events    []olympics.Event
}

type ContinentMedals struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Medals int    `json:"medals"`
}

type Distribution struct {
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
}

type Summary struct {
	TopCountries      []olympics.Country `json:"topCountries"`
	MedalsByContinent []ContinentMedals  `json:"medalsByContinent"`
	Distribution      Distribution       `json:"distribution"`
	Countries         int                `json:"countries"`
	Events            int                `json:"events"`
	MedalEvents       int                `json:"medalEvents"`
	Disciplines       int                `json:"disciplines"`
}
