package maintenance

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInput_FlatPayload(t *testing.T) {
	body := []byte(`{
		"machine_id": 7,
		"type": "supply",
		"description": "spring service",
		"performed_at": "2024-04-02",
		"motorOilUsed": true,
		"motorOilQuantity": 6.5,
		"oilFilter": "yes"
	}`)

	in, err := ParseInput(body)
	require.NoError(t, err)

	require.NotNil(t, in.MachineID)
	assert.Equal(t, uint(7), *in.MachineID)
	require.NotNil(t, in.Type)
	assert.Equal(t, "supply", *in.Type)
	require.NotNil(t, in.Description)
	assert.Equal(t, "spring service", *in.Description)
	require.NotNil(t, in.PerformedAt)
	assert.Equal(t, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), *in.PerformedAt)

	assert.Equal(t, true, in.Supplies["motorOilUsed"])
	assert.Equal(t, json.Number("6.5"), in.Supplies["motorOilQuantity"])
	assert.Equal(t, "yes", in.Supplies["oilFilter"])
	assert.NotContains(t, in.Supplies, "type")
}

func TestParseInput_NestedSupplies(t *testing.T) {
	in, err := ParseInput([]byte(`{"supplies": {"greaseUsed": true, "greaseQuantity": "0,5"}}`))
	require.NoError(t, err)

	assert.Nil(t, in.Type)
	assert.Nil(t, in.MachineID)
	assert.Equal(t, true, in.Supplies["greaseUsed"])
	assert.Equal(t, "0,5", in.Supplies["greaseQuantity"])
}

func TestParseInput_PartialUpdate(t *testing.T) {
	in, err := ParseInput([]byte(`{"motorOilQuantity": 4}`))
	require.NoError(t, err)

	assert.Nil(t, in.Type)
	assert.Nil(t, in.PerformedAt)
	assert.Len(t, in.Supplies, 1)
}

func TestParseInput_RFC3339(t *testing.T) {
	in, err := ParseInput([]byte(`{"performed_at": "2024-04-02T08:30:00Z"}`))
	require.NoError(t, err)
	require.NotNil(t, in.PerformedAt)
	assert.Equal(t, 8, in.PerformedAt.Hour())
}

func TestParseInput_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Not JSON", `{`},
		{"Array body", `[1, 2]`},
		{"Numeric type", `{"type": 3}`},
		{"Negative machine", `{"machine_id": -1}`},
		{"Garbage machine", `{"machine_id": "tractor"}`},
		{"Bad date", `{"performed_at": "yesterday"}`},
		{"Supplies not object", `{"supplies": [true]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInput([]byte(tt.body))
			assert.ErrorIs(t, err, ErrInvalidEvent)
		})
	}
}
