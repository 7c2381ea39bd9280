package models

// ScenarioResult is returned once a scenario has finished firing traffic.
type ScenarioResult struct {
	Scenario string `json:"scenario"`
	Requests int    `json:"requests"`
}
