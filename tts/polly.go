package tts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/aws/smithy-go"
)

// PollyClient abstracts the Amazon Polly operations used by [Polly].
// The [polly.Client] type satisfies this interface.
type PollyClient interface {
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
	DescribeVoices(ctx context.Context, params *polly.DescribeVoicesInput, optFns ...func(*polly.Options)) (*polly.DescribeVoicesOutput, error)
}

// Polly synthesizes speech with Amazon Polly.
type Polly struct {
	client PollyClient
}

// Ensure Polly implements Synthesizer interface
var _ Synthesizer = (*Polly)(nil)

// NewPolly creates a Polly backend from a loaded AWS configuration.
func NewPolly(cfg aws.Config) *Polly {
	return NewPollyWithClient(polly.NewFromConfig(cfg))
}

// NewPollyWithClient wraps an existing client.
func NewPollyWithClient(client PollyClient) *Polly {
	return &Polly{client: client}
}

func (p *Polly) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	format := req.Format
	if format == "" {
		format = FormatMP3
	}
	sampleRate := req.SampleRate
	if sampleRate == 0 {
		sampleRate = DefaultSampleRate
	}

	out, err := p.client.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		Text:         aws.String(req.Text),
		TextType:     types.TextTypeText,
		OutputFormat: types.OutputFormat(format),
		VoiceId:      types.VoiceId(req.VoiceID),
		LanguageCode: types.LanguageCode(req.LanguageCode),
		Engine:       types.Engine(req.Engine),
		SampleRate:   aws.String(strconv.Itoa(sampleRate)),
	})
	if err != nil {
		return nil, classifyPollyError(req.Engine, err)
	}
	defer out.AudioStream.Close()

	data, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, &BackendError{
			Kind:    KindOther,
			Backend: "polly",
			Engine:  req.Engine,
			Err:     fmt.Errorf("failed to read audio stream: %w", err),
		}
	}
	return data, nil
}

func (p *Polly) Voices(ctx context.Context, languageCode string) ([]Voice, error) {
	var (
		voices []Voice
		token  *string
	)
	for {
		out, err := p.client.DescribeVoices(ctx, &polly.DescribeVoicesInput{
			LanguageCode: types.LanguageCode(languageCode),
			NextToken:    token,
		})
		if err != nil {
			return nil, classifyPollyError("", err)
		}
		for _, v := range out.Voices {
			voice := Voice{
				ID:           string(v.Id),
				Name:         aws.ToString(v.Name),
				LanguageCode: string(v.LanguageCode),
				Gender:       string(v.Gender),
			}
			for _, e := range v.SupportedEngines {
				voice.Engines = append(voice.Engines, Engine(e))
			}
			voices = append(voices, voice)
		}
		if aws.ToString(out.NextToken) == "" {
			return voices, nil
		}
		token = out.NextToken
	}
}

func (p *Polly) Close() error {
	return nil
}

// classifyPollyError maps SDK errors onto BackendError kinds.
func classifyPollyError(engine Engine, err error) error {
	be := &BackendError{Kind: KindOther, Backend: "polly", Engine: engine, Err: err}

	var notSupported *types.EngineNotSupportedException
	if errors.As(err, &notSupported) {
		be.Kind = KindUnsupportedEngine
		be.Code = notSupported.ErrorCode()
		return be
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		be.Code = apiErr.ErrorCode()
		switch apiErr.ErrorCode() {
		case "EngineNotSupportedException", "UnsupportedEngine":
			be.Kind = KindUnsupportedEngine
		}
	}
	return be
}
