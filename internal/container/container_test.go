package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClose_ReverseOrderOnce(t *testing.T) {
	var order []int
	c := &Container{}
	for i := 1; i <= 3; i++ {
		i := i
		c.closers = append(c.closers, func() { order = append(order, i) })
	}

	c.Close()
	c.Close()

	assert.Equal(t, []int{3, 2, 1}, order)
}
