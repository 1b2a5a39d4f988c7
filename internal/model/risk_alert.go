package model

import "time"

// RiskAlert is queued when an assessment concludes high risk.
type RiskAlert struct {
	AssessmentID    string    `json:"assessmentId"`
	UserID          string    `json:"userId"`
	RiskLevel       RiskLevel `json:"riskLevel"`
	Recommendations []string  `json:"recommendations"`
	RaisedAt        time.Time `json:"raisedAt"`
}
