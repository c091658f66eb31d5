// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

package store

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/samber/oops"

	"github.com/quillhub/quillhub/internal/apperr"
)

// tlsPolicy resolves the transport-security configuration for database
// connections. Explicit trust-anchor material always wins; without it, TLS
// is on in production (verified against system roots) and off elsewhere.
func tlsPolicy(host, rootCertPath string, production bool) (*tls.Config, error) {
	if rootCertPath != "" {
		pem, err := os.ReadFile(rootCertPath)
		if err != nil {
			return nil, apperr.Service(oops.Code("DB_ROOT_CERT_UNREADABLE").
				With("operation", "read root certificate").
				With("path", rootCertPath).
				Wrap(err))
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, apperr.Service(oops.Code("DB_ROOT_CERT_INVALID").
				With("path", rootCertPath).
				Errorf("no certificates found in PEM material"))
		}

		return &tls.Config{
			RootCAs:    pool,
			ServerName: host,
			MinVersion: tls.VersionTLS12,
		}, nil
	}

	if production {
		return &tls.Config{
			ServerName: host,
			MinVersion: tls.VersionTLS12,
		}, nil
	}

	return nil, nil
}
