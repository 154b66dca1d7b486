package mysql

import (
	"strings"
	"testing"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/adapters/catalog"
)

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(catalog.Descriptor{
		Host:     "db.internal",
		Port:     3307,
		Username: "reader",
		Password: "secret",
		Database: "warehouse",
	})

	for _, want := range []string{
		"reader:secret@tcp(db.internal:3307)/warehouse",
		"timeout=10s",
		"readTimeout=10s",
		"writeTimeout=10s",
	} {
		if !strings.Contains(dsn, want) {
			t.Errorf("expected DSN to contain %q, got: %s", want, dsn)
		}
	}
}

func TestBuildDSN_DefaultPort(t *testing.T) {
	dsn := buildDSN(catalog.Descriptor{
		Host:     "db.internal",
		Username: "reader",
		Password: "secret",
		Database: "warehouse",
	})

	if !strings.Contains(dsn, "tcp(db.internal:3306)") {
		t.Errorf("expected default port 3306, got: %s", dsn)
	}
}
