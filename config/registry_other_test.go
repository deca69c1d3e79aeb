//go:build !windows
// +build !windows

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRegistry_UnsupportedOffWindows(t *testing.T) {
	t.Parallel()

	_, err := FromRegistry()
	assert.Error(t, err)
}
