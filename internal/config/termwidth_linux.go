//go:build linux
// +build linux

package config

import (
	"os"

	"golang.org/x/sys/unix"
)

// TerminalInfo reports whether stderr is a TTY and, if so, how wide it
// is. The CLI diagnostic renderer uses this to decide whether to print
// color escapes and how to wrap code-frame lines.
type TerminalInfo struct {
	IsTTY bool
	Width int
}

func GetTerminalInfo(file *os.File) (info TerminalInfo) {
	fd := int(file.Fd())
	if _, err := unix.IoctlGetTermios(fd, unix.TCGETS); err == nil {
		info.IsTTY = true
		if w, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ); err == nil {
			info.Width = int(w.Col)
		}
	}
	return
}
