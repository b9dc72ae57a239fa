//go:build !windows

package audio

import (
	"os"
	"syscall"
)

func interruptSignal() os.Signal { return syscall.SIGINT }
