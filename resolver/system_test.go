package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrodns/resolver/config"
)

func TestResolverFromSystemConfig_NoConfigurationIsTranslated(t *testing.T) {
	t.Parallel()

	_, err := resolverFromSystemConfig(nil, config.ErrNoConfiguration)
	assert.ErrorIs(t, err, ErrNoResolverConfiguration)
}

func TestResolverFromSystemConfig_OpaqueErrorPassesThrough(t *testing.T) {
	t.Parallel()

	sentinel := assert.AnError
	_, err := resolverFromSystemConfig(nil, sentinel)
	assert.ErrorIs(t, err, sentinel)
}

func TestResolverFromSystemConfig_PopulatesConfig(t *testing.T) {
	t.Parallel()

	sys := &config.Result{
		Nameservers: []string{"192.0.2.53"},
		Search:      []string{"corp.example.com.", "example..com.", "example.com."},
		Ndots:       2,
		Timeout:     5 * time.Second,
		Attempts:    3,
		Rotate:      true,
	}

	r, err := resolverFromSystemConfig(sys, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"192.0.2.53"}, r.Config.Nameservers)
	require.NotNil(t, r.Config.Ndots)
	assert.Equal(t, 2, *r.Config.Ndots)
	assert.Equal(t, 5*time.Second, r.Config.Timeout)
	assert.Equal(t, 15*time.Second, r.Config.Lifetime, "lifetime must scale with attempts x per-attempt timeout")
	assert.True(t, r.Config.Rotate)

	require.Len(t, r.Config.Search, 2, "malformed search entries must be skipped")
	assert.Equal(t, "corp.example.com.", r.Config.Search[0].String())
	assert.Equal(t, "example.com.", r.Config.Search[1].String())

	assert.NotNil(t, r.Config.Cache)
	assert.NotNil(t, r.Transport)
	assert.NotNil(t, r.Now)
}
