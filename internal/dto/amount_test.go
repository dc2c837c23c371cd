package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{`25`, 25},
		{`25.5`, 25.5},
		{`"25.00"`, 25},
		{`"£25.00"`, 25},
		{`" 1,250.75 "`, 1250.75},
		{`"$ 10"`, 10},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var body struct {
				Amount *Amount `json:"amount"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"amount":`+tt.in+`}`), &body))
			require.NotNil(t, body.Amount.Float())
			assert.Equal(t, tt.want, *body.Amount.Float())
		})
	}
}

func TestAmount_Invalid(t *testing.T) {
	for _, in := range []string{`"abc"`, `"£"`, `true`, `{}`} {
		var body struct {
			Amount *Amount `json:"amount"`
		}
		err := json.Unmarshal([]byte(`{"amount":`+in+`}`), &body)
		assert.Error(t, err, in)
	}
}

func TestAmount_AbsentIsNil(t *testing.T) {
	var body struct {
		Amount *Amount `json:"amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &body))
	assert.Nil(t, body.Amount.Float())

	require.NoError(t, json.Unmarshal([]byte(`{"amount":null}`), &body))
	assert.Nil(t, body.Amount.Float())
}

func TestMatchSessionsRequest_DefaultsToDryRun(t *testing.T) {
	var req MatchSessionsRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.True(t, req.IsDryRun())

	require.NoError(t, json.Unmarshal([]byte(`{"dryRun":false}`), &req))
	assert.False(t, req.IsDryRun())
}
