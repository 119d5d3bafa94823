package quantity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "2,5", want: 2.5},
		{in: "2.5", want: 2.5},
		{in: " 12 ", want: 12},
		{in: "0", want: 0},
		{in: "0,00", want: 0},
		{in: "-1", wantErr: true},
		{in: "+1", wantErr: true},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1e3", wantErr: true},
		{in: "1.2.3", wantErr: true},
		{in: ".5", wantErr: true},
		{in: "5.", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuantity(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLimit_ClearsThreshold(t *testing.T) {
	for _, in := range []string{"", " ", "-", "0", "0.0", "0.00", "0,0", "0.000"} {
		got, err := ParseLimit(in)
		require.NoError(t, err, "input %q", in)
		assert.Nil(t, got, "input %q", in)
	}
}

func TestParseLimit_Values(t *testing.T) {
	got, err := ParseLimit("3,75")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3.75, *got)

	_, err = ParseLimit("abc")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseLimit("-abc")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseLimit("--5")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseLimit_NegativeClears(t *testing.T) {
	for _, in := range []string{"-5", "-0.5", "-2,5", " -1 "} {
		got, err := ParseLimit(in)
		require.NoError(t, err, "input %q", in)
		assert.Nil(t, got, "input %q", in)
	}

	_, err := ParseQuantity("-5")
	assert.ErrorIs(t, err, ErrInvalidFormat, "quantities stay signless")
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "4", Format(4))
	assert.Equal(t, "2.5", Format(2.5))
	assert.Equal(t, "0", Format(0))
	assert.Equal(t, "-", FormatLimit(nil, "-"))
	v := 1.25
	assert.Equal(t, "1.25", FormatLimit(&v, "-"))
}
