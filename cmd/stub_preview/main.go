package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"vetscribe-be/pkg/intake"
	"vetscribe-be/pkg/prompt"
	"vetscribe-be/pkg/stub"

	"github.com/fatih/color"
)

// Sample intakes, one per mode, used to eyeball offline output.
var samples = map[string]map[string]interface{}{
	"appointment": {
		"reason":  "Vomiting x2 days",
		"history": "Ate part of a sock on Sunday. Eating less since.",
		"pe":      "T 102.9F, HR 120, RR 24. Mild cranial abdominal pain on palpation.",
	},
	"surgery": {
		"preset":      "Dental COHAT",
		"signalment":  "8y FS Beagle, 12.4 kg",
		"surgeryMode": "advanced",
		"premed":      "Dexmedetomidine [0.5 mg/mL] + Methadone [10 mg/mL] IM",
		"induction":   "Propofol [10 mg/mL] IV to effect, isoflurane maintenance",
	},
	"toolbox": {
		"task":      "soap-transform",
		"transform": "email",
		"text":      "Subjective: Bright and alert.\n\nPlan: Recheck in 2 weeks.",
	},
	"consult": {
		"question": "Safe NSAID options for a cat with early CKD?",
		"files":    []interface{}{map[string]interface{}{"name": "chem.pdf", "type": "application/pdf"}},
	},
}

func main() {
	mode := flag.String("mode", "", "render only this mode (appointment, surgery, toolbox, consult)")
	showPrompt := flag.Bool("prompt", false, "also print the provider prompt")
	flag.Parse()

	modes := make([]string, 0, len(samples))
	for m := range samples {
		if *mode == "" || *mode == m {
			modes = append(modes, m)
		}
	}
	if len(modes) == 0 {
		color.Red("Unknown mode: %s", *mode)
		os.Exit(1)
	}
	sort.Strings(modes)

	for _, m := range modes {
		in, err := intake.Normalize(m, samples[m])
		if err != nil {
			color.Red("[%s] invalid sample: %v", m, err)
			os.Exit(1)
		}

		color.Cyan("\n=== %s ===", m)
		if *showPrompt {
			p := prompt.Build(in)
			color.Yellow("--- system (temperature %.1f) ---", p.Temperature)
			fmt.Println(p.System)
			color.Yellow("--- user ---")
			fmt.Println(p.User)
		}
		color.Green("--- stub document ---")
		fmt.Println(stub.Render(in))
	}
}
