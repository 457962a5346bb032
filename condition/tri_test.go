package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnd_UnknownAndFalseIsFalse(t *testing.T) {
	assert.Equal(t, False, And(Unknown, False))
	assert.Equal(t, False, And(False, Unknown))
}

func TestOr_UnknownOrTrueIsTrue(t *testing.T) {
	assert.Equal(t, True, Or(Unknown, True))
	assert.Equal(t, True, Or(True, Unknown))
}

func TestAnd_OtherUnknownCasesStayUnknown(t *testing.T) {
	assert.Equal(t, Unknown, And(Unknown, True))
	assert.Equal(t, Unknown, And(Unknown, Unknown))
}

func TestOr_OtherUnknownCasesStayUnknown(t *testing.T) {
	assert.Equal(t, Unknown, Or(Unknown, False))
}

func TestXor(t *testing.T) {
	assert.Equal(t, False, Xor(True, True))
	assert.Equal(t, True, Xor(True, False))
	assert.Equal(t, Unknown, Xor(True, Unknown))
}

func TestNot(t *testing.T) {
	assert.Equal(t, False, Not(True))
	assert.Equal(t, True, Not(False))
	assert.Equal(t, Unknown, Not(Unknown))
}

func TestImplies(t *testing.T) {
	assert.Equal(t, True, Implies(False, False))
	assert.Equal(t, False, Implies(True, False))
	assert.Equal(t, True, Implies(True, True))
}
