package config

import (
	"os"
	"sync"
)

var (
	dockerOnce sync.Once
	inDocker   bool
)

// IsRunningInDocker reports whether the process is inside a Docker container,
// detected by the /.dockerenv marker. Cached after the first call.
func IsRunningInDocker() bool {
	dockerOnce.Do(func() {
		_, err := os.Stat("/.dockerenv")
		inDocker = err == nil
	})
	return inDocker
}

// ResolveHostForDocker maps loopback hosts to host.docker.internal when the
// backend itself runs in a container, so a stored connection record pointing
// at a database on the host machine still resolves.
func ResolveHostForDocker(host string) string {
	if !IsRunningInDocker() {
		return host
	}

	switch host {
	case "localhost", "127.0.0.1", "::1":
		return "host.docker.internal"
	}

	return host
}
