package sound

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"
	"github.com/hajimehoshi/go-mp3"
)

// go-mp3 always decodes to interleaved 16-bit little-endian stereo.
const channels = 2

type PlayerConfig struct {
	FramesPerBuffer int
}

type PortaudioPlayer struct {
	config PlayerConfig

	mu      sync.Mutex
	playing string
	cancel  context.CancelFunc
}

func NewPortaudioPlayer(config PlayerConfig) *PortaudioPlayer {
	if config.FramesPerBuffer <= 0 {
		config.FramesPerBuffer = GetDefaultConfig().FramesPerBuffer
	}
	return &PortaudioPlayer{config: config}
}

func GetDefaultConfig() PlayerConfig {
	return PlayerConfig{FramesPerBuffer: 1024}
}

func (p *PortaudioPlayer) Initialize() error {
	return portaudio.Initialize()
}

func (p *PortaudioPlayer) Terminate() {
	portaudio.Terminate()
}

func (p *PortaudioPlayer) Play(ctx context.Context, path string) error {
	if err := ValidateFile(path); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := p.start(path, cancel); err != nil {
		return err
	}
	defer p.finish()

	buffer := make([]int16, p.config.FramesPerBuffer*channels)
	stream, err := portaudio.OpenDefaultStream(0, channels, float64(dec.SampleRate()), p.config.FramesPerBuffer, buffer)
	if err != nil {
		return fmt.Errorf("failed to open output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return err
	}
	defer stream.Stop()

	log.Debug("playback started", "path", path, "sample_rate", dec.SampleRate())

	raw := make([]byte, len(buffer)*2)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := io.ReadFull(dec, raw)
		if n > 0 {
			fillSamples(buffer, raw[:n])
			if werr := stream.Write(); werr != nil && !errors.Is(werr, portaudio.OutputUnderflowed) {
				return fmt.Errorf("failed to write audio: %w", werr)
			}
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}
}

func (p *PortaudioPlayer) Stop(path string) error {
	if err := ValidateFile(path); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil && p.playing == path {
		p.cancel()
	}
	return nil
}

func (p *PortaudioPlayer) start(path string, cancel context.CancelFunc) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return fmt.Errorf("already playing %s", p.playing)
	}
	p.playing, p.cancel = path, cancel
	return nil
}

func (p *PortaudioPlayer) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing, p.cancel = "", nil
}

// fillSamples converts little-endian PCM into buf, zero-filling the tail
// when raw is short.
func fillSamples(buf []int16, raw []byte) {
	n := min(len(raw)/2, len(buf))
	for i := 0; i < n; i++ {
		buf[i] = int16(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
	}
	clear(buf[n:])
}
