package identitytoolkit

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/eatery/internal/config"
	pkgAuth "github.com/polkiloo/eatery/internal/pkg/auth"
	"github.com/polkiloo/eatery/internal/usecase"
)

// Module selects the identity provider named in the configuration.
var Module = fx.Provide(newProvider)

var _ usecase.IdentityProvider = (*HTTPClient)(nil)

type providerParams struct {
	fx.In

	Config      *config.Config
	Logger      *slog.Logger
	Revocations pkgAuth.RevocationList
	Local       *usecase.AuthUseCase
}

func newProvider(p providerParams) (usecase.IdentityProvider, error) {
	if p.Config.IdentityProvider != config.IdentityProviderToolkit {
		return p.Local, nil
	}
	client, err := NewHTTPClient(p.Config.IdentityToolkitURL, p.Config.IdentityToolkitAPIKey, p.Revocations, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Logger.Info("using remote identity provider", slog.String("url", p.Config.IdentityToolkitURL))
	return client, nil
}
