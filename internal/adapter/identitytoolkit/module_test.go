package identitytoolkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/eatery/internal/config"
	pkgAuth "github.com/polkiloo/eatery/internal/pkg/auth"
	"github.com/polkiloo/eatery/internal/usecase"
)

func TestNewProviderSelectsByConfig(t *testing.T) {
	local := &usecase.AuthUseCase{}
	params := providerParams{
		Config:      &config.Config{IdentityProvider: config.IdentityProviderLocal},
		Logger:      testLogger(),
		Revocations: pkgAuth.NewMemoryRevocationList(),
		Local:       local,
	}

	provider, err := newProvider(params)
	require.NoError(t, err)
	assert.Same(t, local, provider)

	params.Config = &config.Config{
		IdentityProvider:      config.IdentityProviderToolkit,
		IdentityToolkitURL:    "https://identity.example.com/v1",
		IdentityToolkitAPIKey: "key",
	}
	provider, err = newProvider(params)
	require.NoError(t, err)
	_, ok := provider.(*HTTPClient)
	assert.True(t, ok)

	params.Config.IdentityToolkitAPIKey = ""
	_, err = newProvider(params)
	assert.Error(t, err)
}
