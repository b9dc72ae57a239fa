// Package audio provides ffmpeg-based microphone capture.
package audio

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"sync"
)

const chunkSize = 4096

// MicSource records from the default input device by shelling out to
// ffmpeg and streaming its stdout. It implements capture.ChunkSource:
// chunks are delivered in read order and the channel is closed once the
// process exits after Stop.
type MicSource struct {
	SampleRate int

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdout io.ReadCloser
}

func NewMicSource() *MicSource {
	return &MicSource{SampleRate: 16000}
}

// CheckFFmpeg verifies ffmpeg is on PATH before a recording is attempted.
func CheckFFmpeg() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}
	return nil
}

func (m *MicSource) Start(ctx context.Context) (<-chan []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cmd != nil {
		return nil, fmt.Errorf("mic source already started")
	}
	if err := CheckFFmpeg(); err != nil {
		return nil, err
	}

	format, device := defaultInput()
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-f", format,
		"-i", device,
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", m.SampleRate),
		"-f", "wav",
		"pipe:1",
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	m.cmd = cmd
	m.stdout = stdout

	ch := make(chan []byte, 64)
	go func() {
		defer close(ch)
		for {
			buf := make([]byte, chunkSize)
			n, rerr := stdout.Read(buf)
			if n > 0 {
				ch <- buf[:n]
			}
			if rerr != nil {
				return
			}
		}
	}()

	return ch, nil
}

func (m *MicSource) Stop() error {
	m.mu.Lock()
	cmd := m.cmd
	m.cmd = nil
	m.mu.Unlock()

	if cmd == nil {
		return fmt.Errorf("mic source not started")
	}
	// ffmpeg flushes and exits on SIGINT; stdout EOF then closes the
	// chunk channel.
	if err := cmd.Process.Signal(interruptSignal()); err != nil {
		_ = cmd.Process.Kill()
	}
	_ = cmd.Wait()
	return nil
}

func (m *MicSource) MIMEType() string { return "audio/wav" }

func defaultInput() (format, device string) {
	switch runtime.GOOS {
	case "darwin":
		return "avfoundation", ":default"
	case "windows":
		return "dshow", "audio=default"
	default:
		return "pulse", "default"
	}
}
