package model

import (
	"time"

	"gorm.io/datatypes"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// AnalysisStatus records how a risk level was obtained.
type AnalysisStatus string

const (
	// AnalysisCompleted means every field came from the model.
	AnalysisCompleted AnalysisStatus = "completed"
	// AnalysisDefaulted means the model answered but some fields were filled in.
	AnalysisDefaulted AnalysisStatus = "defaulted"
	// AnalysisIndeterminate means no usable answer was obtained; the stored
	// risk level is the fallback, not a conclusion.
	AnalysisIndeterminate AnalysisStatus = "indeterminate"
)

type HealthAssessment struct {
	ID              string                      `gorm:"primaryKey;size:36" json:"id"`
	UserID          string                      `gorm:"size:64;not null;index" json:"userId"`
	Responses       datatypes.JSONMap           `gorm:"not null" json:"responses"`
	RiskLevel       RiskLevel                   `gorm:"size:8" json:"riskLevel"`
	Recommendations datatypes.JSONSlice[string] `json:"recommendations"`
	AnalysisStatus  AnalysisStatus              `gorm:"size:16" json:"analysisStatus"`
	CompletedAt     time.Time                   `gorm:"not null;index" json:"completedAt"`
}
