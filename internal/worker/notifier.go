package worker

import (
	"context"

	"intelimed/internal/model"
	"intelimed/internal/observability"
)

// LogNotifier records alerts in the structured log. It stands in for an
// SMS or push gateway.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, contact model.EmergencyContact, alert model.RiskAlert) error {
	observability.LoggerFromContext(ctx).Warn("emergency contact alerted",
		"contact_id", contact.ID,
		"contact_name", contact.Name,
		"phone", contact.Phone,
		"primary", contact.IsPrimary,
		"user_id", alert.UserID,
		"risk_level", string(alert.RiskLevel),
		"assessment_id", alert.AssessmentID,
	)
	return nil
}
