package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductQtyLeft(t *testing.T) {
	p := &Product{TotalQty: 100, TotalSold: 37}
	assert.Equal(t, 63, p.QtyLeft())

	assert.Equal(t, 0, (&Product{TotalQty: 10, TotalSold: 10}).QtyLeft())
}
