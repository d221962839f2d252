package stub

import (
	"strings"

	"vetscribe-be/pkg/document"
	"vetscribe-be/pkg/intake"
	"vetscribe-be/pkg/prompt"
)

const (
	PlaceholderAssessment   = "[Assessment pending clinician review]"
	PlaceholderAftercare    = "[Aftercare instructions not provided]"
	PlaceholderSurgicalPrep = "[Surgical prep not documented]"

	OfflineNotice = "[Generated offline: no text generation provider available]"
)

// Render builds a deterministic document from the intake alone. SOAP modes
// get the full section skeleton; toolbox and consult get a labelled echo.
func Render(in intake.Intake) string {
	switch v := in.(type) {
	case intake.AppointmentIntake:
		return renderAppointment(v)
	case intake.SurgeryIntake:
		return renderSurgery(v)
	case intake.ToolboxIntake:
		return renderToolbox(v)
	case intake.ConsultIntake:
		return renderConsult(v)
	}
	return OfflineNotice
}

func renderAppointment(in intake.AppointmentIntake) string {
	return document.Render([]document.Section{
		{Header: document.Subjective, Lines: []string{
			"Reason for visit: " + in.Reason,
			"History: " + in.History,
		}},
		{Header: document.Objective, Lines: []string{
			"Physical exam: " + in.PE,
			"Diagnostics: " + in.Diagnostics,
			"Attachments: " + prompt.Attachments(in.Files),
		}},
		{Header: document.Assessment, Lines: []string{in.AssessmentHints}},
		{Header: document.Plan, Lines: []string{in.PlanHints}},
		{Header: document.MedicationsDispense, Lines: []string{in.MedsHints}},
		{Header: document.Aftercare, Lines: []string{PlaceholderAftercare}},
	})
}

func renderSurgery(in intake.SurgeryIntake) string {
	subjective := []string{
		"Procedure: " + in.Preset,
		"Signalment: " + in.Signalment,
		"Reason: " + in.Reason,
		"History: " + in.History,
	}
	if !in.Advanced() {
		subjective = append([]string{"Surgery notes: " + in.Notes}, subjective...)
	}

	assessment := []string{PlaceholderAssessment}
	if in.IsDental {
		assessment = append(assessment, "Dental case: yes")
	}

	return document.Render([]document.Section{
		{Header: document.Subjective, Lines: subjective},
		{Header: document.Objective, Lines: []string{
			"Physical exam: " + in.PE,
			"Diagnostics: " + in.Diagnostics,
			"Attachments: " + prompt.Attachments(in.Files),
		}},
		{Header: document.Assessment, Lines: assessment},
		{Header: document.Plan},
		{Header: document.IVCatheterFluids, Lines: []string{
			"Lines: " + in.Lines,
			"Fluids: " + in.Fluids,
		}},
		{Header: document.PreMedications, Lines: []string{in.Premed}},
		{Header: document.InductionMaintenance, Lines: []string{in.Induction}},
		{Header: document.SurgicalPrep, Lines: []string{PlaceholderSurgicalPrep}},
		{Header: document.SurgicalProcedure, Lines: []string{in.ProcedureNotes}},
		{Header: document.IntraOpMedications, Lines: []string{in.IntraOp}},
		{Header: document.Recovery, Lines: []string{
			"Post-op notes: " + in.PostOp,
			"Recovery notes: " + in.Recovery,
		}},
		{Header: document.MedicationsDispense, Lines: []string{in.MedsDispensed}},
		{Header: document.Aftercare, Lines: []string{PlaceholderAftercare}},
	})
}

func renderToolbox(in intake.ToolboxIntake) string {
	out := []string{
		OfflineNotice,
		"Toolbox task: " + in.Task,
	}
	if in.Task == intake.TaskSoapTransform && in.Transform != "" {
		out = append(out, "Transform: "+in.Transform)
	}
	out = append(out, "Text:")
	out = append(out, document.Compact(in.Text)...)
	out = append(out,
		"Notes: "+strings.Join(document.Compact(in.Notes), " "),
		"Attachments: "+prompt.Attachments(in.Files),
	)
	return strings.Join(out, "\n")
}

func renderConsult(in intake.ConsultIntake) string {
	out := []string{
		OfflineNotice,
		"Question: " + strings.Join(document.Compact(in.Question), " "),
		"Attachments: " + prompt.Attachments(in.Files),
		"A consult answer could not be generated right now. Please try again when the generation service is available.",
	}
	return strings.Join(out, "\n")
}
