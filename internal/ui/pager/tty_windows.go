//go:build windows

package pager

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// The console handles work even when stdin or stdout are redirected.
func openConsole() (in, out *os.File, err error) {
	in, err = os.OpenFile("CONIN$", os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}
	out, err = os.OpenFile("CONOUT$", os.O_RDWR, 0)
	if err != nil {
		_ = in.Close()
		return nil, nil, err
	}
	return in, out, nil
}

func bufferHeight(t *TTY) (int, error) {
	if t.output == nil {
		return 0, fmt.Errorf("console buffer info: no output")
	}
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(t.output.Fd()), &info); err != nil {
		return 0, fmt.Errorf("console buffer info: %w", err)
	}
	return int(info.Size.Y), nil
}

// prepareConsole switches the console to VT input and output so key presses
// arrive as escape sequences and our escape sequences are interpreted.
func prepareConsole(in, out *os.File) (func(), error) {
	inHandle := windows.Handle(in.Fd())
	outHandle := windows.Handle(out.Fd())

	var inMode, outMode uint32
	if err := windows.GetConsoleMode(inHandle, &inMode); err != nil {
		return nil, err
	}
	if err := windows.GetConsoleMode(outHandle, &outMode); err != nil {
		return nil, err
	}
	if err := windows.SetConsoleMode(inHandle, inMode|windows.ENABLE_VIRTUAL_TERMINAL_INPUT); err != nil {
		return nil, err
	}
	if err := windows.SetConsoleMode(outHandle, outMode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
		_ = windows.SetConsoleMode(inHandle, inMode)
		return nil, err
	}

	return func() {
		_ = windows.SetConsoleMode(outHandle, outMode)
		_ = windows.SetConsoleMode(inHandle, inMode)
	}, nil
}
