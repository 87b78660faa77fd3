package sound

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/sandeepkv93/weekplan/internal/model"
)

var ErrNoPlayer = errors.New("sound: no audio player available")

// Player is the audio device boundary. At most one playback exists at
// a time; starting a new one stops the previous.
type Player interface {
	Play(s model.AlarmSound) error
	Beep() error
	Stop()
}

// ExecPlayer writes the payload to a temp file and shells out to the
// platform audio tool. Beep rings the terminal bell, the closest thing
// a TUI has to a synthesized tone.
type ExecPlayer struct {
	current *exec.Cmd
	tmpFile string
}

func NewExecPlayer() *ExecPlayer {
	return &ExecPlayer{}
}

func (p *ExecPlayer) Play(s model.AlarmSound) error {
	p.Stop()
	if len(s.Data) == 0 {
		return fmt.Errorf("sound: empty payload for %q", s.Name)
	}

	tool, err := playbackTool()
	if err != nil {
		return err
	}

	f, err := os.CreateTemp("", "weekplan-alarm-*")
	if err != nil {
		return fmt.Errorf("write alarm payload: %w", err)
	}
	if _, err := f.Write(s.Data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("write alarm payload: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("write alarm payload: %w", err)
	}

	cmd := exec.Command(tool, f.Name())
	if err := cmd.Start(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("play %q: %w", s.Name, err)
	}
	p.current = cmd
	p.tmpFile = f.Name()
	go func() { _ = cmd.Wait() }()
	return nil
}

func (p *ExecPlayer) Beep() error {
	p.Stop()
	_, err := fmt.Fprint(os.Stderr, "\a")
	return err
}

func (p *ExecPlayer) Stop() {
	if p.current != nil && p.current.Process != nil {
		_ = p.current.Process.Kill()
	}
	p.current = nil
	if p.tmpFile != "" {
		_ = os.Remove(p.tmpFile)
		p.tmpFile = ""
	}
}

func playbackTool() (string, error) {
	var candidates []string
	switch runtime.GOOS {
	case "linux":
		candidates = []string{"paplay", "aplay", "mpv"}
	case "darwin":
		candidates = []string{"afplay"}
	default:
		return "", ErrNoPlayer
	}
	for _, tool := range candidates {
		if _, err := exec.LookPath(tool); err == nil {
			return tool, nil
		}
	}
	return "", ErrNoPlayer
}
