package utils

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToBool(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"Bool true", true, true},
		{"Bool false", false, false},
		{"Int one", 1, true},
		{"Int zero", 0, false},
		{"JSON number", float64(1), true},
		{"String true", "TRUE", true},
		{"String on", "on", true},
		{"String zero", "0", false},
		{"Stored JSON number", json.Number("1"), true},
		{"Nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToBool(tt.in))
		})
	}
}

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   string
		wantOK bool
	}{
		{"String", "6", "6", true},
		{"String with spaces", " 2.5 ", "2.5", true},
		{"Decimal comma", "2,5", "0", false},
		{"Thousands separator", "1,000", "0", false},
		{"JSON number", float64(4), "4", true},
		{"Int", 3, "3", true},
		{"Stored JSON number", json.Number("7.25"), "7.25", true},
		{"Empty", "", "0", false},
		{"Nil", nil, "0", false},
		{"Garbage", "a lot", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToDecimal(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "0.5", ToString(0.5))
	assert.Equal(t, "10", ToString(decimal.NewFromInt(10)))
	assert.Equal(t, "3.5", ToString(json.Number("3.5")))
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 12, ToInt("12"))
	assert.Equal(t, 4, ToInt(float64(4)))
	assert.Equal(t, 9, ToInt(json.Number("9")))
	assert.Equal(t, 0, ToInt("nine"))
}

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("Motor Oil")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}
