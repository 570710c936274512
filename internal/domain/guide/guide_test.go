package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		words   []string
		outcome Outcome
		pages   []string
		topics  int
	}{
		{
			name:    "single page",
			words:   []string{"bus", "ink"},
			outcome: OutcomePages,
			pages:   []string{"virtual_circuits_bus_ink.png"},
			topics:  1,
		},
		{
			name:    "case insensitive",
			words:   []string{"Docking"},
			outcome: OutcomePages,
			pages:   []string{"user_interface_docking_system.png"},
			topics:  1,
		},
		{
			name:    "a few pages",
			words:   []string{"macros"},
			outcome: OutcomePages,
			pages:   []string{"assembly_macros_1.png", "assembly_macros_2.png"},
			topics:  2,
		},
		{
			name:    "listed",
			words:   []string{"ink"},
			outcome: OutcomeList,
			topics:  5,
		},
		{
			name:    "exact among many",
			words:   []string{"assembly", "primitives"},
			outcome: OutcomePages,
			pages:   []string{"assembly_primitives.png"},
			topics:  1,
		},
		{
			name:    "too many",
			words:   []string{"a"},
			outcome: OutcomeTooMany,
		},
		{
			name:    "nothing",
			words:   []string{"quantum"},
			outcome: OutcomeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Lookup(tt.words...)
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, res.Outcome)
			if tt.pages != nil {
				assert.Equal(t, tt.pages, res.Pages)
			}
			if tt.topics > 0 {
				assert.Len(t, res.Topics, tt.topics)
			}
		})
	}
}

func TestLookupEmpty(t *testing.T) {
	_, err := Lookup()
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Please be more specific", Result{Outcome: OutcomeTooMany}.Message())
	assert.Equal(t, "Sorry, I couldnt find anything in the user guide", Result{Outcome: OutcomeNotFound}.Message())
	assert.Equal(t, "``` a\n b ```", Result{Outcome: OutcomeList, Topics: []string{"a", "b"}}.Message())
	assert.Equal(t, "", Result{Outcome: OutcomePages}.Message())
}

func TestTopics(t *testing.T) {
	assert.Len(t, Topics(), 54)
	assert.Equal(t, "virtual_devices.png", Page("virtual devices"))
}
