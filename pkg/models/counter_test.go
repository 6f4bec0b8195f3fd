package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterAdd(t *testing.T) {
	a := Counter{Correct: 2, Total: 3}
	b := Counter{Correct: 1, Total: 4}

	assert.Equal(t, Counter{Correct: 3, Total: 7}, a.Add(b))
}

func TestCounterAddCommutative(t *testing.T) {
	a := Counter{Correct: 2, Total: 5}
	b := Counter{Correct: 4, Total: 4}

	assert.Equal(t, a.Add(b), b.Add(a))
}

func TestCounterAddAssociative(t *testing.T) {
	a := Counter{Correct: 1, Total: 2}
	b := Counter{Correct: 0, Total: 3}
	c := Counter{Correct: 5, Total: 5}

	assert.Equal(t, a.Add(b).Add(c), a.Add(b.Add(c)))
}

func TestCounterZeroIdentity(t *testing.T) {
	a := Counter{Correct: 3, Total: 8}

	assert.Equal(t, a, a.Add(Counter{}))
	assert.Equal(t, a, Counter{}.Add(a))
}

func TestCounterIncorrect(t *testing.T) {
	assert.Equal(t, 5, Counter{Correct: 3, Total: 8}.Incorrect())
	assert.Equal(t, 0, Counter{}.Incorrect())
}

func TestCounterAccepted(t *testing.T) {
	assert.True(t, Counter{Correct: 4, Total: 4}.Accepted())
	assert.True(t, Counter{}.Accepted())
	assert.False(t, Counter{Correct: 3, Total: 4}.Accepted())
}
