package statemachine

import (
	"context"
	"testing"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadFunnel_FullWalk(t *testing.T) {
	ctx := context.Background()
	lead := &models.Lead{Status: models.LeadStatusNew}

	fsm := NewLeadFSM(lead)
	require.NoError(t, fsm.Contact(ctx))
	assert.Equal(t, models.LeadStatusContacted, lead.Status)
	assert.NotNil(t, lead.LastContact, "contacting a lead stamps last contact")

	require.NoError(t, fsm.Interest(ctx))
	assert.Equal(t, models.LeadStatusInterested, lead.Status)

	require.NoError(t, fsm.Quote(ctx))
	assert.Equal(t, models.LeadStatusQuoting, lead.Status)

	require.NoError(t, fsm.Negotiate(ctx))
	assert.Equal(t, models.LeadStatusNegotiating, lead.Status)

	require.NoError(t, fsm.Sell(ctx))
	assert.Equal(t, models.LeadStatusSold, lead.Status)
}

func TestLeadFunnel_SellFromAnyLiveState(t *testing.T) {
	ctx := context.Background()
	liveStates := []string{
		models.LeadStatusNew,
		models.LeadStatusContacted,
		models.LeadStatusInterested,
		models.LeadStatusQuoting,
		models.LeadStatusNegotiating,
	}

	for _, state := range liveStates {
		lead := &models.Lead{Status: state}
		err := NewLeadFSM(lead).Sell(ctx)
		assert.NoError(t, err, "selling from %s", state)
		assert.Equal(t, models.LeadStatusSold, lead.Status)
	}
}

func TestLeadFunnel_ReopenGoesToNegotiating(t *testing.T) {
	ctx := context.Background()
	lead := &models.Lead{Status: models.LeadStatusSold}

	require.NoError(t, NewLeadFSM(lead).Reopen(ctx))
	assert.Equal(t, models.LeadStatusNegotiating, lead.Status)
}

func TestLeadFunnel_InvalidTransitions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		state string
		run   func(f *LeadFSM) error
	}{
		{"reopen from live state", models.LeadStatusNegotiating, func(f *LeadFSM) error { return f.Reopen(ctx) }},
		{"reopen a lost lead", models.LeadStatusLost, func(f *LeadFSM) error { return f.Reopen(ctx) }},
		{"sell a sold lead", models.LeadStatusSold, func(f *LeadFSM) error { return f.Sell(ctx) }},
		{"sell a lost lead", models.LeadStatusLost, func(f *LeadFSM) error { return f.Sell(ctx) }},
		{"quote a sold lead", models.LeadStatusSold, func(f *LeadFSM) error { return f.Quote(ctx) }},
		{"contact a contacted lead", models.LeadStatusContacted, func(f *LeadFSM) error { return f.Contact(ctx) }},
		{"negotiate a lost lead", models.LeadStatusLost, func(f *LeadFSM) error { return f.Negotiate(ctx) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := &models.Lead{Status: tt.state}
			err := tt.run(NewLeadFSM(lead))
			assert.Error(t, err)
			assert.Equal(t, tt.state, lead.Status, "a failed transition must not move the lead")
		})
	}
}

func TestLeadFunnel_Can(t *testing.T) {
	fsm := NewLeadFSM(&models.Lead{Status: models.LeadStatusNew})
	assert.True(t, fsm.Can("contact"))
	assert.True(t, fsm.Can("sell"))
	assert.False(t, fsm.Can("reopen"))
	assert.False(t, fsm.Can("interest"))
}
