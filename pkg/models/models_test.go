package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForHealth(t *testing.T) {
	cases := []struct {
		health float64
		want   BatteryStatus
	}{
		{100, StatusExcellent},
		{90, StatusExcellent},
		{89.99, StatusGood},
		{80, StatusGood},
		{79.5, StatusFair},
		{70, StatusFair},
		{69.99, StatusPoor},
		{0, StatusPoor},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, StatusForHealth(c.health), "health=%v", c.health)
	}
}
