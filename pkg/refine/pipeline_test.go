package refine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vetscribe-be/internal/constant"
	"vetscribe-be/pkg/llm/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorFunc func(ctx context.Context, system, user string, temperature float64) (string, error)

func (f generatorFunc) Generate(ctx context.Context, system, user string, temperature float64) (string, error) {
	return f(ctx, system, user, temperature)
}

const soapNote = "Subjective:\nVomiting\n\nObjective:\nT 102.5\n\nAssessment:\nGastritis\n\nPlan:\nBland diet"

func TestRefineFallsBackToOriginal(t *testing.T) {
	tests := []struct {
		name        string
		gen         Generator
		kind        Kind
		wantOutcome gateway.Outcome
	}{
		{name: "no generator", gen: nil, kind: KindSoap, wantOutcome: gateway.OutcomeNotConfigured},
		{
			name: "provider error",
			gen: generatorFunc(func(context.Context, string, string, float64) (string, error) {
				return "", &gateway.ProviderError{Provider: "fake", Err: errors.New("503")}
			}),
			kind:        KindToolbox,
			wantOutcome: gateway.OutcomeProviderError,
		},
		{
			name: "blank output",
			gen: generatorFunc(func(context.Context, string, string, float64) (string, error) {
				return "   ", nil
			}),
			kind:        KindConsult,
			wantOutcome: gateway.OutcomeEmpty,
		},
		{
			name: "soap headers dropped",
			gen: generatorFunc(func(context.Context, string, string, float64) (string, error) {
				return "Subjective:\nVomiting\n\nObjective:\nT 102.5", nil
			}),
			kind:        KindSoap,
			wantOutcome: OutcomeStructureLost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New(tt.gen).Refine(context.Background(), Request{
				Kind:     tt.kind,
				Original: soapNote,
				Feedback: "shorter",
			})

			assert.Equal(t, soapNote, res.Text)
			assert.False(t, res.Refined)
			assert.Equal(t, tt.wantOutcome, res.Outcome)
			assert.Error(t, res.Err)
		})
	}
}

func TestRefineStructureLostNamesHeaders(t *testing.T) {
	gen := generatorFunc(func(context.Context, string, string, float64) (string, error) {
		return "Subjective:\nVomiting", nil
	})

	res := New(gen).Refine(context.Background(), Request{Kind: KindSoap, Original: soapNote, Feedback: "x"})
	require.ErrorIs(t, res.Err, ErrStructureLost)
	assert.Contains(t, res.Err.Error(), "Objective:, Assessment:, Plan:")
}

func TestRefineSuccess(t *testing.T) {
	revised := strings.Replace(soapNote, "Bland diet", "Bland diet for 3 days", 1)

	var gotSystem, gotUser string
	var gotTemp float64
	gen := generatorFunc(func(_ context.Context, system, user string, temperature float64) (string, error) {
		gotSystem, gotUser, gotTemp = system, user, temperature
		return revised, nil
	})

	res := New(gen).Refine(context.Background(), Request{
		Kind:     KindSoap,
		Original: soapNote,
		Feedback: "Add duration to diet",
		Extra:    "Dog is 12 kg",
	})

	assert.True(t, res.Refined)
	assert.NoError(t, res.Err)
	assert.Equal(t, gateway.OutcomeSuccess, res.Outcome)
	assert.Equal(t, revised, res.Text)
	assert.Equal(t, constant.RefineSoapV1, gotSystem)
	assert.Equal(t, 0.3, gotTemp)
	assert.Contains(t, gotUser, "ORIGINAL:\n"+soapNote)
	assert.Contains(t, gotUser, "FEEDBACK:\nAdd duration to diet")
	assert.Contains(t, gotUser, "ADDITIONAL CONTEXT:\nDog is 12 kg")
}

func TestRefineToolboxSkipsHeaderCheck(t *testing.T) {
	gen := generatorFunc(func(context.Context, string, string, float64) (string, error) {
		return "Dear owner, Max is doing well.", nil
	})

	res := New(gen).Refine(context.Background(), Request{Kind: KindToolbox, Original: soapNote, Feedback: "as email"})
	assert.True(t, res.Refined)
	assert.Equal(t, "Dear owner, Max is doing well.", res.Text)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in     string
		want   Kind
		wantOK bool
	}{
		{in: "", want: KindSoap, wantOK: true},
		{in: "SOAP", want: KindSoap, wantOK: true},
		{in: " toolbox ", want: KindToolbox, wantOK: true},
		{in: "consult", want: KindConsult, wantOK: true},
		{in: "poem", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseKind(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBuildPromptOmitsEmptyExtra(t *testing.T) {
	system, user := BuildPrompt(Request{Kind: KindConsult, Original: "a", Feedback: "b", Extra: "  "})

	assert.Equal(t, constant.RefineConsultV1, system)
	assert.Equal(t, "ORIGINAL:\na\n\nFEEDBACK:\nb", user)
}
