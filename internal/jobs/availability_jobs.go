package jobs

import (
	"context"
	"fmt"
)

// PruneExpiredAvailability удаляет окна доступности, которые целиком в прошлом
// Такие окна уже нельзя забронировать, а журнал растет с каждым добавлением
func (r *Runner) PruneExpiredAvailability() {
	r.runWithRecovery("PruneExpiredAvailability", func(ctx context.Context) error {
		now := r.timeProvider.Now()

		deleted, err := r.windows.DeleteEndedBefore(ctx, now)
		if err != nil {
			return fmt.Errorf("delete windows ended before %s: %w", now.Format("2006-01-02T15:04:05Z07:00"), err)
		}

		r.logger.Info("PruneExpiredAvailability: deleted %d expired windows", deleted)
		return nil
	})
}
