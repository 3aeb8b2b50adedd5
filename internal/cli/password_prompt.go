package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errPasswordConfirmation = errors.New("passwords do not match")

// PromptPassword asks the operator for the temporary password twice. Input is
// read without echo when stdin is a terminal.
func PromptPassword(stdin io.Reader, out io.Writer) PasswordSource {
	return func() (string, error) {
		reader := bufio.NewReader(stdin)

		fmt.Fprint(out, "Temporary password: ")
		password, err := readSecretLine(stdin, reader)
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}

		fmt.Fprint(out, "Repeat password: ")
		confirmation, err := readSecretLine(stdin, reader)
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}

		if password != confirmation {
			return "", errPasswordConfirmation
		}
		return password, nil
	}
}

func readSecretLine(stdin io.Reader, reader *bufio.Reader) (string, error) {
	var line string
	err := withEchoDisabled(stdin, func() error {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}
		if readErr != nil && raw == "" {
			return io.ErrUnexpectedEOF
		}
		line = strings.TrimRight(raw, "\r\n")
		return nil
	})
	return line, err
}
