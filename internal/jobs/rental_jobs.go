package jobs

import (
	"context"

	"rental-dashboard/internal/logger"
)

// RefreshRentalStates runs the lease-expiry scan: records whose lease
// end period falls within the warning window move to the warning state,
// and a summary email goes out for records that newly crossed over.
func (jr *JobRunner) RefreshRentalStates() {
	jr.runWithRecovery("RefreshRentalStates", func() {
		ctx := context.Background()

		newlyWarning, err := jr.services.Rental.RefreshStates(ctx)
		if err != nil {
			logger.Error("Failed to refresh rental states", "error", err)
			return
		}
		logger.Info("Rental state scan finished", "newly_warning", len(newlyWarning))

		if len(newlyWarning) == 0 {
			return
		}
		recipients := jr.config.SMTP.Recipients
		if len(recipients) == 0 {
			logger.Warn("No warning recipients configured; skipping summary email")
			return
		}
		if err := jr.services.Email.SendWarningSummary(ctx, recipients, newlyWarning); err != nil {
			logger.Error("Failed to send warning summary email", "error", err)
		}
	})
}
