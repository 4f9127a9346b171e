package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtr(t *testing.T) {
	v := 5
	p := Ptr(v)
	v = 6

	assert.Equal(t, 5, *p)
}

func TestValue(t *testing.T) {
	assert.Equal(t, "cut", Value(Ptr("cut")))
	assert.Equal(t, "", Value[string](nil))
}
