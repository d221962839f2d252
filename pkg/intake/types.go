package intake

// Mode identifies which intake shape a request carries.
type Mode string

const (
	ModeAppointment Mode = "appointment"
	ModeSurgery     Mode = "surgery"
	ModeToolbox     Mode = "toolbox"
	ModeConsult     Mode = "consult"
)

// Surgery sub-modes
const (
	SurgerySimple   = "simple"
	SurgeryAdvanced = "advanced"
)

// Toolbox task modes
const (
	TaskBloodworkSummary  = "bloodwork-summary"
	TaskLabInterpretation = "lab-interpretation"
	TaskClientEmail       = "client-email"
	TaskWeightConsult     = "weight-consult"
	TaskSoapTransform     = "soap-transform"
	TaskOther             = "other"
)

// SOAP transform sub types (toolbox task soap-transform)
const (
	TransformEmail             = "email"
	TransformSummary           = "summary"
	TransformHandout           = "handout"
	TransformPlanMedsAftercare = "plan-meds-aftercare"
	TransformRephrase          = "rephrase"
)

// Placeholders substituted for absent or blank fields.
const (
	PlaceholderReason      = "[Reason for visit not provided]"
	PlaceholderHistory     = "[History not provided]"
	PlaceholderPE          = "[PE/diagnostics data not provided]"
	PlaceholderNotProvided = "(not provided)"
	PlaceholderSurgeryNote = "[Surgery notes not provided]"
	PlaceholderPreset      = "[Procedure not specified]"
	PlaceholderSignalment  = "[Signalment not provided]"
	PlaceholderText        = "[No text provided]"
	PlaceholderNone        = "(none)"
	PlaceholderQuestion    = "[No question provided]"
	PlaceholderNoFiles     = "(no attachments)"
)

// File is attachment metadata. Content is never carried.
type File struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Intake is implemented by the four per-mode intake variants.
type Intake interface {
	Mode() Mode
}

type AppointmentIntake struct {
	Reason          string
	History         string
	PE              string
	Diagnostics     string
	AssessmentHints string
	PlanHints       string
	MedsHints       string
	Files           []File
}

func (AppointmentIntake) Mode() Mode { return ModeAppointment }

type SurgeryIntake struct {
	SurgeryMode string

	// simple
	Notes string

	// advanced
	Preset         string
	Signalment     string
	Premed         string
	Induction      string
	Fluids         string
	Lines          string
	IntraOp        string
	PostOp         string
	Recovery       string
	ProcedureNotes string
	MedsDispensed  string

	Reason      string
	History     string
	PE          string
	Diagnostics string
	Files       []File

	IsDental bool
}

func (SurgeryIntake) Mode() Mode { return ModeSurgery }

// Advanced reports whether the detailed surgery form was used.
func (s SurgeryIntake) Advanced() bool { return s.SurgeryMode == SurgeryAdvanced }

type ToolboxIntake struct {
	Task      string
	Transform string
	Text      string
	Notes     string
	Files     []File
}

func (ToolboxIntake) Mode() Mode { return ModeToolbox }

type ConsultIntake struct {
	Question string
	Files    []File
}

func (ConsultIntake) Mode() Mode { return ModeConsult }
