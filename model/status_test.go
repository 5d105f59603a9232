package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusActions(t *testing.T) {
	tests := []struct {
		from PartyStatus
		want []Transition
	}{
		{StatusPending, []Transition{
			{ActionStartProgress, StatusInProgress},
			{ActionCancel, StatusCancelled},
		}},
		{StatusInProgress, []Transition{
			{ActionMarkDone, StatusDone},
			{ActionCancel, StatusCancelled},
		}},
		{StatusDone, []Transition{
			{ActionCancel, StatusCancelled},
		}},
		{StatusCancelled, []Transition{
			{ActionReactivate, StatusPending},
		}},
		{PartyStatus("archived"), []Transition{
			{ActionCancel, StatusCancelled},
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.Actions())
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, PartyStatus("").Valid())
	assert.False(t, PartyStatus("PENDING").Valid())
	assert.Equal(t, "party.status.in_progress", StatusInProgress.I18nKey())
}
