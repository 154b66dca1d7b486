package mysql

import (
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/adapters/catalog"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/config"
)

const (
	defaultPort    = 3306
	connectTimeout = 10 * time.Second
)

// buildDSN builds a driver DSN via mysql.Config rather than string
// concatenation, so credentials with special characters survive the
// driver's own parsing rules. When running in Docker, localhost is
// resolved to host.docker.internal.
func buildDSN(desc catalog.Descriptor) string {
	port := desc.Port
	if port == 0 {
		port = defaultPort
	}

	host := config.ResolveHostForDocker(desc.Host)

	cfg := mysql.NewConfig()
	cfg.User = desc.Username
	cfg.Passwd = desc.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", host, port)
	cfg.DBName = desc.Database
	cfg.Timeout = connectTimeout
	cfg.ReadTimeout = connectTimeout
	cfg.WriteTimeout = connectTimeout

	return cfg.FormatDSN()
}
