package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarStringAdd(t *testing.T) {
	got, err := Add(String("hello "), String("world"))
	require.NoError(t, err)
	require.Equal(t, String("hello world"), got)
}

func TestScalarStringConcatenatesNumberRendering(t *testing.T) {
	got, err := Add(String("n="), Int(42))
	require.NoError(t, err)
	require.Equal(t, String("n=42"), got)
}

func TestScalarStringSubFails(t *testing.T) {
	_, err := Sub(String("a"), String("b"))
	require.Error(t, err)
}

// P4: kind-left-wins. i + f is Int(i + trunc(f)); f + i is Float(f + float(i)).
func TestKindLeftWins(t *testing.T) {
	got, err := Add(Int(3), Float(1.9))
	require.NoError(t, err)
	require.Equal(t, Int(4), got)

	got, err = Add(Float(1.9), Int(3))
	require.NoError(t, err)
	require.Equal(t, Float(4.9), got)
}

func TestIntDivisionTruncatesTowardZero(t *testing.T) {
	got, err := Div(Int(-7), Int(2))
	require.NoError(t, err)
	require.Equal(t, Int(-3), got)
}

func TestIntDivisionByZeroFails(t *testing.T) {
	_, err := Div(Int(1), Int(0))
	require.Error(t, err)
}

func TestBoolNeverArithmetic(t *testing.T) {
	_, err := Add(Bool(true), Int(1))
	require.Error(t, err)
	_, err = Add(Int(1), Bool(true))
	require.Error(t, err)
}

// P2: array-scalar broadcast identity.
func TestArrayScalarBroadcast(t *testing.T) {
	a := Array{Float(1), Float(2), Float(3)}
	got, err := Add(a, Float(10))
	require.NoError(t, err)
	require.Equal(t, Array{Float(11), Float(12), Float(13)}, got)
}

func TestScalarArrayFails(t *testing.T) {
	_, err := Add(Float(10), Array{Float(1)})
	require.Error(t, err)
}

// P3: short-right fill.
func TestArrayArrayShortRightFillsAddIdentity(t *testing.T) {
	a := Array{Int(1), Int(2), Int(3)}
	b := Array{Int(10)}
	got, err := Add(a, b)
	require.NoError(t, err)
	require.Equal(t, Array{Int(11), Int(2), Int(3)}, got)
}

func TestArrayArrayShortRightFillsMulIdentity(t *testing.T) {
	a := Array{Int(2), Int(3), Int(4)}
	b := Array{Int(10)}
	got, err := Mul(a, b)
	require.NoError(t, err)
	require.Equal(t, Array{Int(20), Int(3), Int(4)}, got)
}

func TestArrayArrayLongerRightIgnoresExtra(t *testing.T) {
	a := Array{Int(1), Int(2)}
	b := Array{Int(10), Int(20), Int(30)}
	got, err := Add(a, b)
	require.NoError(t, err)
	require.Equal(t, Array{Int(11), Int(22)}, got)
}

func TestEqual(t *testing.T) {
	require.True(t, Equal(Int(1), Int(1)))
	require.False(t, Equal(Int(1), Float(1)))
	require.True(t, Equal(Array{Int(1), String("a")}, Array{Int(1), String("a")}))
}
