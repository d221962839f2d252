package prompt

import (
	"fmt"
	"strings"

	"vetscribe-be/internal/constant"
	"vetscribe-be/pkg/document"
	"vetscribe-be/pkg/intake"
)

const (
	TemperatureStructured = 0.3
	TemperatureFreeForm   = 0.4
)

// Prompt is the system/user pair handed to the generation gateway.
type Prompt struct {
	System      string
	User        string
	Temperature float64
}

// Build maps a normalized intake to its prompt. It is pure: the same intake
// always yields byte-identical output.
func Build(in intake.Intake) Prompt {
	switch v := in.(type) {
	case intake.AppointmentIntake:
		return buildAppointment(v)
	case intake.SurgeryIntake:
		return buildSurgery(v)
	case intake.ToolboxIntake:
		return buildToolbox(v)
	case intake.ConsultIntake:
		return buildConsult(v)
	}
	return Prompt{
		System:      joinBlocks(constant.ToolboxRoleInstructionV1, constant.TaskGenericV1, constant.PlainTextRuleV1),
		Temperature: TemperatureFreeForm,
	}
}

func buildAppointment(in intake.AppointmentIntake) Prompt {
	system := joinBlocks(
		constant.SoapRoleInstructionV1,
		"Write these sections in this exact order:\n"+lines(document.AppointmentHeaders),
		"In Objective, report physical exam findings by system in this order: "+strings.Join(document.PhysicalExamSystems, ", ")+".",
		constant.ObjectiveRuleV1,
		constant.DrugConcentrationRuleV1,
		constant.NoAdministrationTimesRuleV1,
		constant.SpacingRuleV1,
	)

	user := fields(
		"Reason for visit", in.Reason,
		"History", in.History,
		"Physical exam", in.PE,
		"Diagnostics", in.Diagnostics,
		"Assessment hints", in.AssessmentHints,
		"Plan hints", in.PlanHints,
		"Medications hints", in.MedsHints,
		"Attachments", Attachments(in.Files),
	)

	return Prompt{System: system, User: user, Temperature: TemperatureStructured}
}

func buildSurgery(in intake.SurgeryIntake) Prompt {
	peSystems := append(append([]string{}, document.PhysicalExamSystems...), "Diagnostics")

	blocks := []string{
		constant.SoapRoleInstructionV1,
		"This is a surgical record. Write these sections in this exact order:\n" + lines([]string{
			document.Subjective, document.Objective, document.Assessment, document.Plan,
		}),
		"In Objective, report physical exam findings by system in this order: " + strings.Join(peSystems, ", ") + ".",
		constant.ObjectiveRuleV1,
		constant.SurgeryPlanRuleV1 + "\n" + lines(document.SurgeryPlanCategories),
		constant.AsaStatusRuleV1,
		constant.DrugConcentrationRuleV1,
		constant.NoAdministrationTimesRuleV1,
		constant.SpacingRuleV1,
	}
	if in.IsDental {
		blocks = append(blocks, constant.DentalGuidanceV1)
	}

	var user string
	if in.Advanced() {
		user = fields(
			"Procedure", in.Preset,
			"Signalment", in.Signalment,
			"Reason", in.Reason,
			"History", in.History,
			"Physical exam", in.PE,
			"Diagnostics", in.Diagnostics,
			"Pre-medications", in.Premed,
			"Induction", in.Induction,
			"Fluids", in.Fluids,
			"Lines", in.Lines,
			"Intra-op", in.IntraOp,
			"Procedure notes", in.ProcedureNotes,
			"Post-op", in.PostOp,
			"Recovery", in.Recovery,
			"Medications dispensed", in.MedsDispensed,
			"Attachments", Attachments(in.Files),
		)
	} else {
		user = fields(
			"Surgery notes", in.Notes,
			"Attachments", Attachments(in.Files),
		)
	}

	return Prompt{System: joinBlocks(blocks...), User: user, Temperature: TemperatureStructured}
}

func buildToolbox(in intake.ToolboxIntake) Prompt {
	system := joinBlocks(
		constant.ToolboxRoleInstructionV1,
		TaskDescription(in.Task, in.Transform),
		constant.DrugConcentrationRuleV1,
		constant.PlainTextRuleV1,
	)

	user := fields(
		"Task", in.Task,
		"Text", in.Text,
		"Notes", in.Notes,
		"Attachments", Attachments(in.Files),
	)

	return Prompt{System: system, User: user, Temperature: TemperatureFreeForm}
}

func buildConsult(in intake.ConsultIntake) Prompt {
	system := joinBlocks(
		constant.ConsultRoleInstructionV1,
		constant.DrugConcentrationRuleV1,
		constant.PlainTextRuleV1,
	)

	user := fields(
		"Question", in.Question,
		"Attachments", Attachments(in.Files),
	)

	return Prompt{System: system, User: user, Temperature: TemperatureFreeForm}
}

// TaskDescription picks the fixed toolbox task description. Unknown tasks and
// unknown soap transforms get the generic description.
func TaskDescription(task, transform string) string {
	switch task {
	case intake.TaskBloodworkSummary:
		return constant.TaskBloodworkSummaryV1
	case intake.TaskLabInterpretation:
		return constant.TaskLabInterpretationV1
	case intake.TaskClientEmail:
		return constant.TaskClientEmailV1
	case intake.TaskWeightConsult:
		return constant.TaskWeightConsultV1
	case intake.TaskSoapTransform:
		if sub, ok := transforms[transform]; ok {
			return constant.TaskSoapTransformV1 + " " + sub
		}
	}
	return constant.TaskGenericV1
}

var transforms = map[string]string{
	intake.TransformEmail:             constant.TransformEmailV1,
	intake.TransformSummary:           constant.TransformSummaryV1,
	intake.TransformHandout:           constant.TransformHandoutV1,
	intake.TransformPlanMedsAftercare: constant.TransformPlanMedsAftercareV1,
	intake.TransformRephrase:          constant.TransformRephraseV1,
}

// Attachments renders file metadata as "name (type)" entries.
func Attachments(files []intake.File) string {
	if len(files) == 0 {
		return intake.PlaceholderNoFiles
	}
	parts := make([]string, len(files))
	for i, f := range files {
		if f.Type == "" {
			parts[i] = f.Name
			continue
		}
		parts[i] = fmt.Sprintf("%s (%s)", f.Name, f.Type)
	}
	return strings.Join(parts, ", ")
}

func joinBlocks(blocks ...string) string {
	return strings.Join(blocks, "\n\n")
}

func lines(items []string) string {
	return strings.Join(items, "\n")
}

// fields renders label/value pairs, one per line.
func fields(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(pairs[i])
		b.WriteString(": ")
		b.WriteString(pairs[i+1])
	}
	return b.String()
}
