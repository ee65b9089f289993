package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type countingJobs struct {
	pruned atomic.Int32
}

func (j *countingJobs) PruneExpiredAvailability() {
	j.pruned.Add(1)
}

func TestNew_InvalidSpec(t *testing.T) {
	_, err := New(&countingJobs{}, Config{PruneExpiredAvailability: "every day"}, logger.NewDiscard())
	assert.Error(t, err)
}

func TestScheduler_RunsJobs(t *testing.T) {
	jobs := &countingJobs{}
	s, err := New(jobs, Config{PruneExpiredAvailability: "* * * * * *"}, logger.NewDiscard())
	require.NoError(t, err)
	assert.Equal(t, 1, s.Entries())

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return jobs.pruned.Load() > 0
	}, 3*time.Second, 50*time.Millisecond)
}
