//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package cli

import "io"

func withEchoDisabled(_ io.Reader, read func() error) error {
	return read()
}
