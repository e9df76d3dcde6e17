package tls

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/spiffe/go-spiffe/v2/spiffetls/tlsconfig"
	"github.com/spiffe/go-spiffe/v2/workloadapi"
	"go.uber.org/zap"
)

type Options struct {
	Enabled    bool
	SocketPath string
}

// Source keeps the SPIRE X509 source alive for the lifetime of the
// server; SPIRE rotates certificates behind it.
type Source struct {
	x509Source *workloadapi.X509Source
}

// Load builds an mTLS server config from the SPIRE Workload API.
// Returns a nil config when TLS is disabled.
func Load(ctx context.Context, opts Options, logger *zap.Logger) (*tls.Config, *Source, error) {
	if !opts.Enabled {
		logger.Info("TLS is disabled")
		return nil, nil, nil
	}

	source, err := workloadapi.NewX509Source(
		ctx,
		workloadapi.WithClientOptions(
			workloadapi.WithAddr(opts.SocketPath),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create X509Source: %w", err)
	}

	tlsConfig := tlsconfig.MTLSServerConfig(source, source, tlsconfig.AuthorizeAny())
	tlsConfig.MinVersion = tls.VersionTLS12

	logger.Info("SPIRE TLS configuration loaded",
		zap.String("socket_path", opts.SocketPath),
		zap.Bool("mtls_enabled", true))

	return tlsConfig, &Source{x509Source: source}, nil
}

func (s *Source) Close() {
	if s != nil && s.x509Source != nil {
		s.x509Source.Close()
	}
}
