package tts

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apiError implements smithy.APIError for test assertions.
type apiError struct {
	code string
	msg  string
}

func (e *apiError) Error() string                 { return e.msg }
func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return e.msg }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

type mockPolly struct {
	inputs []*polly.SynthesizeSpeechInput
	// synthErr is returned for requests using errEngine.
	synthErr  error
	errEngine types.Engine

	pages    []*polly.DescribeVoicesOutput
	voiceErr error
	tokens   []*string
}

func (m *mockPolly) SynthesizeSpeech(_ context.Context, in *polly.SynthesizeSpeechInput, _ ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error) {
	m.inputs = append(m.inputs, in)
	if m.synthErr != nil && in.Engine == m.errEngine {
		return nil, m.synthErr
	}
	audio := []byte(string(in.Engine) + ":" + aws.ToString(in.Text))
	return &polly.SynthesizeSpeechOutput{AudioStream: io.NopCloser(bytes.NewReader(audio))}, nil
}

func (m *mockPolly) DescribeVoices(_ context.Context, in *polly.DescribeVoicesInput, _ ...func(*polly.Options)) (*polly.DescribeVoicesOutput, error) {
	m.tokens = append(m.tokens, in.NextToken)
	if m.voiceErr != nil {
		return nil, m.voiceErr
	}
	page := m.pages[0]
	m.pages = m.pages[1:]
	return page, nil
}

func TestPollySynthesize(t *testing.T) {
	mock := &mockPolly{}
	p := NewPollyWithClient(mock)

	audio, err := p.Synthesize(context.Background(), Request{
		Text:         "Olá mundo.",
		VoiceID:      "Camila",
		LanguageCode: "pt-BR",
		Engine:       EngineNeural,
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("neural:Olá mundo."), audio)

	require.Len(t, mock.inputs, 1)
	in := mock.inputs[0]
	assert.Equal(t, types.OutputFormatMp3, in.OutputFormat)
	assert.Equal(t, types.TextTypeText, in.TextType)
	assert.Equal(t, types.VoiceId("Camila"), in.VoiceId)
	assert.Equal(t, types.LanguageCode("pt-BR"), in.LanguageCode)
	assert.Equal(t, "24000", aws.ToString(in.SampleRate))
}

func TestPollyClassifiesErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
		code string
	}{
		{"typed exception", &types.EngineNotSupportedException{Message: aws.String("nope")}, KindUnsupportedEngine, "EngineNotSupportedException"},
		{"api code", &apiError{code: "UnsupportedEngine", msg: "unsupported"}, KindUnsupportedEngine, "UnsupportedEngine"},
		{"throttled", &apiError{code: "ThrottlingException", msg: "slow down"}, KindOther, "ThrottlingException"},
		{"transport", errors.New("connection reset"), KindOther, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPollyWithClient(&mockPolly{synthErr: tt.err, errEngine: types.EngineNeural})

			_, err := p.Synthesize(context.Background(), Request{Text: "x", Engine: EngineNeural})
			require.Error(t, err)

			var be *BackendError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tt.kind, be.Kind)
			assert.Equal(t, tt.code, be.Code)
			assert.Equal(t, EngineNeural, be.Engine)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.kind == KindUnsupportedEngine, IsUnsupportedEngine(err))
		})
	}
}

func TestPollyVoicesPaginates(t *testing.T) {
	mock := &mockPolly{pages: []*polly.DescribeVoicesOutput{
		{
			Voices: []types.Voice{{
				Id:               types.VoiceIdCamila,
				Name:             aws.String("Camila"),
				Gender:           types.GenderFemale,
				LanguageCode:     types.LanguageCodePtBr,
				SupportedEngines: []types.Engine{types.EngineNeural, types.EngineStandard},
			}},
			NextToken: aws.String("next"),
		},
		{
			Voices: []types.Voice{{
				Id:               types.VoiceIdRicardo,
				Gender:           types.GenderMale,
				LanguageCode:     types.LanguageCodePtBr,
				SupportedEngines: []types.Engine{types.EngineStandard},
			}},
		},
	}}
	p := NewPollyWithClient(mock)

	voices, err := p.Voices(context.Background(), "pt-BR")
	require.NoError(t, err)
	require.Len(t, voices, 2)

	assert.Equal(t, "Camila", voices[0].ID)
	assert.Equal(t, "Female", voices[0].Gender)
	assert.True(t, voices[0].Supports(EngineNeural))
	assert.False(t, voices[1].Supports(EngineNeural))
	assert.True(t, voices[1].Supports(EngineStandard))

	require.Len(t, mock.tokens, 2)
	assert.Nil(t, mock.tokens[0])
	assert.Equal(t, "next", aws.ToString(mock.tokens[1]))
}

func TestPollyVoicesError(t *testing.T) {
	p := NewPollyWithClient(&mockPolly{voiceErr: &apiError{code: "AccessDenied", msg: "denied"}})

	_, err := p.Voices(context.Background(), "en-US")
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "AccessDenied", be.Code)
	assert.Equal(t, KindOther, be.Kind)
}
