package intake

import (
	"strconv"
	"strings"
)

var dentalMarkers = []string{"dental", "cohat"}

// Normalize turns a decoded request body into a typed intake. Absent or blank
// fields are replaced with their placeholders; unknown fields are ignored.
// Only a bad mode or a wrongly shaped value fails.
func Normalize(mode string, raw map[string]any) (Intake, error) {
	r := &fieldReader{values: raw}

	var in Intake
	switch Mode(strings.ToLower(strings.TrimSpace(mode))) {
	case ModeAppointment:
		in = normalizeAppointment(r)
	case ModeSurgery:
		in = normalizeSurgery(r)
	case ModeToolbox:
		in = normalizeToolbox(r)
	case ModeConsult:
		in = normalizeConsult(r)
	case "":
		return nil, invalid("mode", "mode is required")
	default:
		return nil, invalid("mode", "unsupported mode %q", mode)
	}

	if r.err != nil {
		return nil, r.err
	}
	return in, nil
}

// IsDental reports whether a preset or reason names a dental procedure.
func IsDental(values ...string) bool {
	for _, v := range values {
		lower := strings.ToLower(v)
		for _, marker := range dentalMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
	}
	return false
}

func normalizeAppointment(r *fieldReader) AppointmentIntake {
	return AppointmentIntake{
		Reason:          r.text("reason", PlaceholderReason),
		History:         r.text("history", PlaceholderHistory),
		PE:              r.text("pe", PlaceholderPE),
		Diagnostics:     r.text("diagnostics", PlaceholderNotProvided),
		AssessmentHints: r.text("assessmentHints", PlaceholderNotProvided),
		PlanHints:       r.text("planHints", PlaceholderNotProvided),
		MedsHints:       r.text("medsHints", PlaceholderNotProvided),
		Files:           r.files(),
	}
}

func normalizeSurgery(r *fieldReader) SurgeryIntake {
	surgeryMode := strings.ToLower(r.value("surgeryMode"))
	switch surgeryMode {
	case "":
		surgeryMode = SurgerySimple
	case SurgerySimple, SurgeryAdvanced:
	default:
		r.fail(invalid("surgeryMode", "must be %q or %q", SurgerySimple, SurgeryAdvanced))
	}

	rawPreset := r.value("preset")
	rawReason := r.value("reason")

	return SurgeryIntake{
		SurgeryMode:    surgeryMode,
		Notes:          r.text("notes", PlaceholderSurgeryNote),
		Preset:         r.text("preset", PlaceholderPreset),
		Signalment:     r.text("signalment", PlaceholderSignalment),
		Premed:         r.text("premed", PlaceholderNotProvided),
		Induction:      r.text("induction", PlaceholderNotProvided),
		Fluids:         r.text("fluids", PlaceholderNotProvided),
		Lines:          r.text("lines", PlaceholderNotProvided),
		IntraOp:        r.text("intraOp", PlaceholderNotProvided),
		PostOp:         r.text("postOp", PlaceholderNotProvided),
		Recovery:       r.text("recovery", PlaceholderNotProvided),
		ProcedureNotes: r.text("procedureNotes", PlaceholderNotProvided),
		MedsDispensed:  r.text("medsDispensed", PlaceholderNotProvided),
		Reason:         r.text("reason", PlaceholderReason),
		History:        r.text("history", PlaceholderHistory),
		PE:             r.text("pe", PlaceholderPE),
		Diagnostics:    r.text("diagnostics", PlaceholderNotProvided),
		Files:          r.files(),
		IsDental:       IsDental(rawPreset, rawReason),
	}
}

func normalizeToolbox(r *fieldReader) ToolboxIntake {
	task := strings.ToLower(r.value("task"))
	switch task {
	case TaskBloodworkSummary, TaskLabInterpretation, TaskClientEmail, TaskWeightConsult, TaskSoapTransform:
	default:
		task = TaskOther
	}

	return ToolboxIntake{
		Task:      task,
		Transform: strings.ToLower(r.value("transform")),
		Text:      r.text("text", PlaceholderText),
		Notes:     r.text("notes", PlaceholderNone),
		Files:     r.files(),
	}
}

func normalizeConsult(r *fieldReader) ConsultIntake {
	return ConsultIntake{
		Question: r.text("question", PlaceholderQuestion),
		Files:    r.files(),
	}
}

// fieldReader pulls loosely typed JSON values and remembers the first
// shape error it meets.
type fieldReader struct {
	values map[string]any
	err    *ValidationError
}

func (r *fieldReader) fail(err *ValidationError) {
	if r.err == nil {
		r.err = err
	}
}

func (r *fieldReader) value(key string) string {
	v, ok := r.values[key]
	if !ok {
		return ""
	}
	s, ok := scalar(v)
	if !ok {
		r.fail(invalid(key, "expected a text value"))
		return ""
	}
	return s
}

func (r *fieldReader) text(key, placeholder string) string {
	if v := r.value(key); v != "" {
		return v
	}
	return placeholder
}

func (r *fieldReader) files() []File {
	v, ok := r.values["files"]
	if !ok || v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		r.fail(invalid("files", "expected a list of {name, type} objects"))
		return nil
	}

	files := make([]File, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			r.fail(invalid("files", "entry %d is not an object", i))
			return nil
		}
		name, _ := scalar(obj["name"])
		if name == "" {
			continue
		}
		fileType, _ := scalar(obj["type"])
		files = append(files, File{Name: name, Type: fileType})
	}
	return files
}

func scalar(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return strings.TrimSpace(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
