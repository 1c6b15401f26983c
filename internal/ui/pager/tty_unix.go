//go:build !windows

package pager

import "os"

func openConsole() (in, out *os.File, err error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}
	return tty, tty, nil
}

// Unix terminals do not expose a separate scrollback height.
func bufferHeight(t *TTY) (int, error) {
	return t.WindowHeight()
}

func prepareConsole(_, _ *os.File) (func(), error) {
	return func() {}, nil
}
