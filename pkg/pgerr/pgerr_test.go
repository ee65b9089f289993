package pgerr

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	unique := &pq.Error{Code: UniqueViolation, Constraint: "insurance_policies_policy_number_key"}
	wrapped := fmt.Errorf("repo: insert: %w", unique)

	assert.True(t, IsUniqueViolation(wrapped))
	assert.Equal(t, "insurance_policies_policy_number_key", Constraint(wrapped))
	assert.False(t, IsRetryable(wrapped))

	assert.True(t, IsRetryable(&pq.Error{Code: SerializationFailure}))
	assert.True(t, IsRetryable(fmt.Errorf("x: %w", &pq.Error{Code: DeadlockDetected})))
	assert.True(t, IsExclusionViolation(&pq.Error{Code: ExclusionViolation}))

	assert.Equal(t, "", Code(fmt.Errorf("plain")))
	assert.False(t, IsForeignKeyViolation(nil))
}
