package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"schoolhub/internal/domain/billing"
	domainErrors "schoolhub/internal/domain/errors"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    billing.Status
		action  billing.Action
		want    billing.Status
		wantErr bool
	}{
		{name: "trial activates", from: billing.StatusTrial, action: billing.ActionActivate, want: billing.StatusActive},
		{name: "trial cancels", from: billing.StatusTrial, action: billing.ActionCancel, want: billing.StatusCancelled},
		{name: "active suspends", from: billing.StatusActive, action: billing.ActionSuspend, want: billing.StatusSuspended},
		{name: "active cancels", from: billing.StatusActive, action: billing.ActionCancel, want: billing.StatusCancelled},
		{name: "active deactivates", from: billing.StatusActive, action: billing.ActionDeactivate, want: billing.StatusInactive},
		{name: "suspended reactivates", from: billing.StatusSuspended, action: billing.ActionReactivate, want: billing.StatusActive},
		{name: "suspended cancels", from: billing.StatusSuspended, action: billing.ActionCancel, want: billing.StatusCancelled},
		{name: "cancelled reactivates", from: billing.StatusCancelled, action: billing.ActionReactivate, want: billing.StatusActive},
		{name: "inactive activates", from: billing.StatusInactive, action: billing.ActionActivate, want: billing.StatusActive},

		{name: "suspend is not idempotent", from: billing.StatusSuspended, action: billing.ActionSuspend, wantErr: true},
		{name: "cancelled cannot cancel again", from: billing.StatusCancelled, action: billing.ActionCancel, wantErr: true},
		{name: "trial cannot suspend", from: billing.StatusTrial, action: billing.ActionSuspend, wantErr: true},
		{name: "active cannot activate", from: billing.StatusActive, action: billing.ActionActivate, wantErr: true},
		{name: "inactive cannot reactivate", from: billing.StatusInactive, action: billing.ActionReactivate, wantErr: true},
		{name: "unknown status", from: "paused", action: billing.ActionSuspend, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := billing.Transition(tt.from, tt.action)
			if tt.wantErr {
				var invalidErr *domainErrors.InvalidTransitionError
				assert.ErrorAs(t, err, &invalidErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Suspend followed by reactivate must be a round trip, so derived status
// counts net out to zero after the pair.
func TestSuspendReactivateRoundTrip(t *testing.T) {
	suspended, err := billing.Transition(billing.StatusActive, billing.ActionSuspend)
	assert.NoError(t, err)
	assert.Equal(t, billing.StatusSuspended, suspended)

	restored, err := billing.Transition(suspended, billing.ActionReactivate)
	assert.NoError(t, err)
	assert.Equal(t, billing.StatusActive, restored)
}

func TestValidStatus(t *testing.T) {
	for _, s := range []billing.Status{billing.StatusTrial, billing.StatusActive, billing.StatusSuspended, billing.StatusCancelled, billing.StatusInactive} {
		assert.True(t, billing.ValidStatus(s))
	}
	assert.False(t, billing.ValidStatus("paused"))
}
