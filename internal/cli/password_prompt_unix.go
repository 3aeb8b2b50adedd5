//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// withEchoDisabled turns terminal echo off around read. Non-terminal input
// such as a pipe is read as is.
func withEchoDisabled(stdin io.Reader, read func() error) error {
	file, ok := stdin.(*os.File)
	if !ok {
		return read()
	}

	fd := int(file.Fd())
	termios, err := unix.IoctlGetTermios(fd, termiosReadRequest)
	if err != nil {
		return read()
	}
	original := *termios
	silenced := original
	silenced.Lflag &^= unix.ECHO
	if err := unix.IoctlSetTermios(fd, termiosWriteRequest, &silenced); err != nil {
		return err
	}
	defer func() {
		_ = unix.IoctlSetTermios(fd, termiosWriteRequest, &original)
	}()

	return read()
}
