package pricing

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Money
	}{
		{"1.99", 199},
		{"0.79", 79},
		{"999.99", 99999},
		{"1000.0", 100000},
		{"10", 1000},
		{" 2.5 ", 250},
		{"0.00", 0},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "-10.00", "1.999", "1,00", "99999999999999999999"} {
		_, err := Parse(in)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("Parse(%q): expected ErrInvalidAmount, got %v", in, err)
		}
	}
}

func TestString(t *testing.T) {
	require.Equal(t, "0.00", Zero.String())
	require.Equal(t, "7.74", Money(774).String())
	require.Equal(t, "16.00", Money(1600).String())
	require.Equal(t, "98999.01", MustParse("999.99").Mul(99).String())
}

func TestArithmetic(t *testing.T) {
	price := MustParse("0.99")
	require.Equal(t, MustParse("2.97"), price.Mul(3))
	require.Equal(t, Zero, price.Mul(0))
	require.Equal(t, MustParse("1.98"), price.Add(price))
	require.Equal(t, Zero, price.Sub(MustParse("10.00")))
	require.Equal(t, MustParse("0.50"), MustParse("1.49").Sub(price))
	require.Equal(t, price, price.Min(MustParse("5.00")))
}

func TestPercentOfRounding(t *testing.T) {
	// 11.96 * 20% = 2.392, 3.58 * 30% = 1.074, 39.07 * 10% = 3.907
	require.Equal(t, MustParse("2.39"), MustParse("11.96").PercentOf(20, RoundHalfUp))
	require.Equal(t, MustParse("1.07"), MustParse("3.58").PercentOf(30, RoundHalfUp))
	require.Equal(t, MustParse("3.91"), MustParse("39.07").PercentOf(10, RoundHalfUp))
	require.Equal(t, MustParse("3.90"), MustParse("39.07").PercentOf(10, RoundDown))
	require.Equal(t, MustParse("0.01"), MustParse("0.05").PercentOf(10, RoundHalfUp))
	require.Equal(t, Zero, MustParse("0.05").PercentOf(10, RoundDown))
	require.Equal(t, MustParse("12.00"), MustParse("12.00").PercentOf(100, RoundDown))
	require.Equal(t, Zero, MustParse("12.00").PercentOf(0, RoundHalfUp))
}

func TestJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Price Money `json:"price"`
	}{Price: MustParse("3.98")})
	require.NoError(t, err)
	require.JSONEq(t, `{"price":"3.98"}`, string(data))

	var decoded struct {
		A Money `json:"a"`
		B Money `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"1.25","b":2.5}`), &decoded))
	require.Equal(t, Money(125), decoded.A)
	require.Equal(t, Money(250), decoded.B)

	err = json.Unmarshal([]byte(`{"a":"-1"}`), &decoded)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestParseRounding(t *testing.T) {
	r, err := ParseRounding("down")
	require.NoError(t, err)
	require.Equal(t, RoundDown, r)

	r, err = ParseRounding("")
	require.NoError(t, err)
	require.Equal(t, RoundHalfUp, r)
	require.Equal(t, "half_up", r.String())

	_, err = ParseRounding("banker")
	require.Error(t, err)
}
