package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	v := Version()

	assert.NotEmpty(t, v)
	assert.True(t, strings.HasPrefix(v, version))
}
