//go:build windows

package cli

import (
	"io"
	"os"

	"golang.org/x/sys/windows"
)

func withEchoDisabled(stdin io.Reader, read func() error) error {
	file, ok := stdin.(*os.File)
	if !ok {
		return read()
	}

	handle := windows.Handle(file.Fd())
	var originalMode uint32
	if err := windows.GetConsoleMode(handle, &originalMode); err != nil {
		return read()
	}
	if err := windows.SetConsoleMode(handle, originalMode&^windows.ENABLE_ECHO_INPUT); err != nil {
		return err
	}
	defer func() {
		_ = windows.SetConsoleMode(handle, originalMode)
	}()

	return read()
}
