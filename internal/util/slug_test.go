package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "running-shoes", Slugify("Running Shoes"))
	assert.Equal(t, "mens-t-shirts", Slugify("  Men's T-Shirts "))
	assert.Equal(t, "category", Slugify("!!!"))
}
