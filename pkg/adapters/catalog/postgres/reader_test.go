package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/adapters/catalog"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/apperrors"
)

// Port 1 is never listening, so the dial fails immediately without
// needing a live server.
func TestPingUnreachableHost(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reader, err := Open(ctx, catalog.Descriptor{
		Host:     "127.0.0.1",
		Port:     1,
		Username: "reader",
		Password: "hunter2",
		Database: "warehouse",
	}, nil)
	if err != nil {
		t.Fatalf("expected lazy open to succeed, got: %v", err)
	}
	defer reader.Close()

	err = reader.Ping(ctx)
	if err == nil {
		t.Fatal("expected ping to fail against unreachable host")
	}

	if !strings.Contains(err.Error(), "Failed to connect to database") {
		t.Errorf("expected connection failure message, got: %v", err)
	}
	if strings.Contains(err.Error(), "hunter2") {
		t.Errorf("password leaked into error message: %v", err)
	}
	if !errors.Is(err, apperrors.ErrConnectionFailed) {
		t.Errorf("expected error to match ErrConnectionFailed, got: %v", err)
	}
}

func TestListSchemasUnreachableHost(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reader, err := Open(ctx, catalog.Descriptor{
		Host:     "127.0.0.1",
		Port:     1,
		Username: "reader",
		Password: "hunter2",
		Database: "warehouse",
	}, nil)
	if err != nil {
		t.Fatalf("expected lazy open to succeed, got: %v", err)
	}
	defer reader.Close()

	_, err = reader.ListSchemas(ctx)
	if err == nil {
		t.Fatal("expected schema listing to fail against unreachable host")
	}
	if !errors.Is(err, apperrors.ErrConnectionFailed) {
		t.Errorf("expected error to match ErrConnectionFailed, got: %v", err)
	}
}

func TestOpenRejectsUnparsableDescriptor(t *testing.T) {
	ctx := context.Background()

	// Hosts are not URL-escaped, so a space breaks URL parsing.
	_, err := Open(ctx, catalog.Descriptor{
		Host:     "db internal",
		Port:     5432,
		Username: "reader",
		Password: "secret",
		Database: "warehouse",
	}, nil)
	if err == nil {
		t.Fatal("expected open to fail for unparsable descriptor")
	}
	if !errors.Is(err, apperrors.ErrConnectionFailed) {
		t.Errorf("expected error to match ErrConnectionFailed, got: %v", err)
	}
}
