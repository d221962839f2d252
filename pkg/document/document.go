package document

import (
	"strings"
)

// Section headers
const (
	Subjective          = "Subjective:"
	Objective           = "Objective:"
	Assessment          = "Assessment:"
	Plan                = "Plan:"
	MedicationsDispense = "Medications Dispensed:"
	Aftercare           = "Aftercare:"

	IVCatheterFluids     = "IV Catheter/Fluids:"
	PreMedications       = "Pre-medications:"
	InductionMaintenance = "Induction/Maintenance:"
	SurgicalPrep         = "Surgical Prep:"
	SurgicalProcedure    = "Surgical Procedure:"
	IntraOpMedications   = "Intra-op Medications:"
	Recovery             = "Recovery:"
)

// AppointmentHeaders is the fixed section order of an appointment SOAP note.
var AppointmentHeaders = []string{
	Subjective,
	Objective,
	Assessment,
	Plan,
	MedicationsDispense,
	Aftercare,
}

// SurgeryPlanCategories is the fixed order of the surgical Plan breakdown.
var SurgeryPlanCategories = []string{
	IVCatheterFluids,
	PreMedications,
	InductionMaintenance,
	SurgicalPrep,
	SurgicalProcedure,
	IntraOpMedications,
	Recovery,
	MedicationsDispense,
	Aftercare,
}

// SurgeryHeaders is the fixed block order of a surgical SOAP note: the four
// SOAP sections followed by the Plan categories.
var SurgeryHeaders = append([]string{Subjective, Objective, Assessment, Plan}, SurgeryPlanCategories...)

// PhysicalExamSystems is the order physical exam findings are reported in.
var PhysicalExamSystems = []string{
	"General",
	"Vitals",
	"Eyes",
	"Ears",
	"Oral cavity",
	"Nose",
	"Respiratory",
	"Cardiovascular",
	"Abdomen",
	"Urogenital",
	"Musculoskeletal",
	"Neurological",
	"Integument",
	"Lymphatic",
}

// Section is one headed block of a document.
type Section struct {
	Header string
	Lines  []string
}

// knownHeaders holds every section header of both SOAP layouts.
var knownHeaders = append(append([]string{}, AppointmentHeaders...), SurgeryPlanCategories...)

// Render joins sections with exactly one blank line between them. Lines are
// compacted so no section contains a blank line, and a body line that would
// read as a section header is written as a "- " item so every header
// appears once.
func Render(sections []Section) string {
	blocks := make([]string, 0, len(sections))
	for _, s := range sections {
		var b strings.Builder
		b.WriteString(s.Header)
		for _, line := range s.Lines {
			for _, l := range Compact(line) {
				b.WriteString("\n")
				b.WriteString(Neutralize(l))
			}
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

// Neutralize prefixes a line that starts with a section header with "- ".
func Neutralize(line string) string {
	for _, h := range knownHeaders {
		if strings.HasPrefix(line, h) {
			return "- " + line
		}
	}
	return line
}

// Compact splits text into trimmed, non-empty lines.
func Compact(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// HeadersIn returns the headers from the given list that start a line in
// text, in list order.
func HeadersIn(text string, headers []string) []string {
	lines := strings.Split(text, "\n")
	found := make([]string, 0, len(headers))
	for _, h := range headers {
		for _, l := range lines {
			if strings.HasPrefix(strings.TrimSpace(l), h) {
				found = append(found, h)
				break
			}
		}
	}
	return found
}

// MissingHeaders returns the headers present in original but absent in revised.
func MissingHeaders(original, revised string, headers []string) []string {
	have := map[string]bool{}
	for _, h := range HeadersIn(revised, headers) {
		have[h] = true
	}

	var missing []string
	for _, h := range HeadersIn(original, headers) {
		if !have[h] {
			missing = append(missing, h)
		}
	}
	return missing
}
