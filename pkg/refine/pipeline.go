package refine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vetscribe-be/internal/constant"
	"vetscribe-be/pkg/document"
	"vetscribe-be/pkg/llm/gateway"
	"vetscribe-be/pkg/prompt"
)

type Kind string

const (
	KindSoap    Kind = "soap"
	KindToolbox Kind = "toolbox"
	KindConsult Kind = "consult"
)

// OutcomeStructureLost marks a soap revision that dropped a section header.
const OutcomeStructureLost gateway.Outcome = "structure_lost"

var ErrStructureLost = errors.New("revised note dropped section headers")

var templates = map[Kind]string{
	KindSoap:    constant.RefineSoapV1,
	KindToolbox: constant.RefineToolboxV1,
	KindConsult: constant.RefineConsultV1,
}

// ParseKind resolves a request kind. Empty means soap.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return KindSoap, true
	}
	_, ok := templates[k]
	return k, ok
}

// Generator is the slice of the gateway the pipeline needs.
type Generator interface {
	Generate(ctx context.Context, system, user string, temperature float64) (string, error)
}

type Request struct {
	Kind     Kind
	Original string
	Feedback string
	Extra    string
}

type Result struct {
	Text    string
	Refined bool
	Outcome gateway.Outcome
	Err     error
}

type Pipeline struct {
	gen Generator
}

func New(gen Generator) *Pipeline {
	return &Pipeline{gen: gen}
}

// Refine asks the generator to apply feedback to the original text. Any
// failure returns the original unchanged.
func (p *Pipeline) Refine(ctx context.Context, req Request) Result {
	keep := func(outcome gateway.Outcome, err error) Result {
		return Result{Text: req.Original, Outcome: outcome, Err: err}
	}

	if p.gen == nil {
		return keep(gateway.OutcomeNotConfigured, gateway.ErrNotConfigured)
	}

	system, user := BuildPrompt(req)
	text, err := p.gen.Generate(ctx, system, user, prompt.TemperatureStructured)
	if err != nil {
		return keep(gateway.Classify(err), err)
	}
	if strings.TrimSpace(text) == "" {
		return keep(gateway.OutcomeEmpty, gateway.ErrEmptyResponse)
	}

	if req.Kind == KindSoap {
		if missing := document.MissingHeaders(req.Original, text, document.SurgeryHeaders); len(missing) > 0 {
			return keep(OutcomeStructureLost, fmt.Errorf("%w: %s", ErrStructureLost, strings.Join(missing, ", ")))
		}
	}

	return Result{Text: text, Refined: true, Outcome: gateway.OutcomeSuccess}
}

// BuildPrompt returns the system/user pair for a refinement request.
func BuildPrompt(req Request) (string, string) {
	system, ok := templates[req.Kind]
	if !ok {
		system = templates[KindSoap]
	}

	var user strings.Builder
	user.WriteString("ORIGINAL:\n")
	user.WriteString(req.Original)
	user.WriteString("\n\nFEEDBACK:\n")
	user.WriteString(req.Feedback)
	if extra := strings.TrimSpace(req.Extra); extra != "" {
		user.WriteString("\n\nADDITIONAL CONTEXT:\n")
		user.WriteString(extra)
	}
	return system, user.String()
}
