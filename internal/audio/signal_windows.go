//go:build windows

package audio

import "os"

// Windows has no SIGINT delivery to child processes; Kill is the only
// portable stop. The recording loses ffmpeg's trailer flush, which the
// transcription services tolerate.
func interruptSignal() os.Signal { return os.Kill }
