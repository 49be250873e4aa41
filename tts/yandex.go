package tts

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	ytts "github.com/yandex-cloud/go-genproto/yandex/cloud/ai/tts/v3"
)

const (
	YandexTTSEndpoint = "tts.api.cloud.yandex.net:443"
)

// yandexVoices lists the SpeechKit voices offered per language. SpeechKit
// has no voice listing call.
var yandexVoices = map[string][]Voice{
	"en-US": {
		{ID: "john", Name: "John", LanguageCode: "en-US", Gender: "Male", Engines: []Engine{EngineNeural, EngineStandard}},
	},
}

// yandexModels maps engines to SpeechKit models. An empty model selects
// the service default.
var yandexModels = map[Engine]string{
	EngineNeural:   "",
	EngineStandard: "general",
}

type YandexConfig struct {
	ApiKey   string
	FolderID string
}

// YandexSynthesizer defines the SpeechKit calls used by [Yandex].
type YandexSynthesizer interface {
	UtteranceSynthesis(ctx context.Context, in *ytts.UtteranceSynthesisRequest, opts ...grpc.CallOption) (ytts.Synthesizer_UtteranceSynthesisClient, error)
}

// Yandex synthesizes speech with Yandex SpeechKit v3 over gRPC.
type Yandex struct {
	client   YandexSynthesizer
	conn     *grpc.ClientConn
	apiKey   string
	folderID string
}

// Ensure Yandex implements Synthesizer interface
var _ Synthesizer = (*Yandex)(nil)

func NewYandex(config YandexConfig) (*Yandex, error) {
	if config.ApiKey == "" || config.FolderID == "" {
		return nil, fmt.Errorf("yandex: api key and folder id are required")
	}

	// Create TLS credentials
	creds := credentials.NewTLS(&tls.Config{})

	conn, err := grpc.NewClient(YandexTTSEndpoint, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to TTS service: %w", err)
	}

	y := NewYandexWithClient(ytts.NewSynthesizerClient(conn), config)
	y.conn = conn
	return y, nil
}

// NewYandexWithClient wraps an existing SpeechKit client.
func NewYandexWithClient(client YandexSynthesizer, config YandexConfig) *Yandex {
	return &Yandex{
		client:   client,
		apiKey:   config.ApiKey,
		folderID: config.FolderID,
	}
}

func (c *Yandex) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	model, ok := yandexModels[req.Engine]
	if !ok {
		return nil, &BackendError{
			Kind:    KindUnsupportedEngine,
			Backend: "yandex",
			Engine:  req.Engine,
			Err:     fmt.Errorf("no model for engine %q", req.Engine),
		}
	}

	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Api-Key "+c.apiKey)
	ctx = metadata.AppendToOutgoingContext(ctx, "x-folder-id", c.folderID)

	stream, err := c.client.UtteranceSynthesis(ctx, buildYandexRequest(req, model))
	if err != nil {
		return nil, classifyYandexError(req.Engine, fmt.Errorf("failed to start synthesis: %w", err))
	}

	var audio bytes.Buffer
	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, classifyYandexError(req.Engine, fmt.Errorf("failed to receive audio data: %w", err))
		}
		if chunk := resp.GetAudioChunk(); chunk != nil {
			audio.Write(chunk.GetData())
		}
	}
	return audio.Bytes(), nil
}

func (c *Yandex) Voices(_ context.Context, languageCode string) ([]Voice, error) {
	return append([]Voice(nil), yandexVoices[languageCode]...), nil
}

func buildYandexRequest(req Request, model string) *ytts.UtteranceSynthesisRequest {
	r := &ytts.UtteranceSynthesisRequest{}

	if model != "" {
		r.SetModel(model)
	}
	r.SetText(req.Text)

	voiceHint := &ytts.Hints{}
	voiceHint.SetVoice(req.VoiceID)
	r.SetHints([]*ytts.Hints{voiceHint})

	containerAudio := &ytts.ContainerAudio{}
	switch req.Format {
	case FormatMP3, "":
		containerAudio.SetContainerAudioType(ytts.ContainerAudio_MP3)
	default:
		containerAudio.SetContainerAudioType(ytts.ContainerAudio_WAV)
	}
	audioSpec := &ytts.AudioFormatOptions{}
	audioSpec.SetContainerAudio(containerAudio)
	r.SetOutputAudioSpec(audioSpec)

	r.SetLoudnessNormalizationType(ytts.UtteranceSynthesisRequest_LUFS)
	return r
}

func classifyYandexError(engine Engine, err error) error {
	be := &BackendError{Kind: KindOther, Backend: "yandex", Engine: engine, Err: err}
	if st, ok := status.FromError(err); ok {
		be.Code = st.Code().String()
		if st.Code() == codes.Unimplemented {
			be.Kind = KindUnsupportedEngine
		}
	}
	return be
}

func (c *Yandex) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
