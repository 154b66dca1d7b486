package postgres

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/adapters/catalog"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/config"
)

const defaultPort = 5432

// managedHostMarkers identify hosted Postgres offerings that refuse
// plaintext connections. Connection records carry no ssl_mode field, so
// the choice rides on a host substring match; an explicit field on the
// record is the eventual replacement.
var managedHostMarkers = []string{"neon.tech", "aws", "gcp", "azure"}

// sslMode returns "require" for managed-cloud hosts and "disable" for
// everything else, keyed on the host as entered, before Docker resolution.
func sslMode(host string) string {
	for _, marker := range managedHostMarkers {
		if strings.Contains(host, marker) {
			return "require"
		}
	}
	return "disable"
}

// buildConnString builds a PostgreSQL URL with proper escaping.
// IMPORTANT: All user-provided fields must be URL-escaped to handle special
// characters in passwords (e.g., @, /, #, ?) that would otherwise break URL
// parsing. When running in Docker, localhost is automatically resolved to
// host.docker.internal to reach databases on the host machine.
func buildConnString(desc catalog.Descriptor) string {
	port := desc.Port
	if port == 0 {
		port = defaultPort
	}

	host := config.ResolveHostForDocker(desc.Host)

	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(desc.Username),
		url.QueryEscape(desc.Password),
		host,
		port,
		url.QueryEscape(desc.Database),
		sslMode(desc.Host),
	)
}
