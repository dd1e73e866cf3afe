package audit

// RiskLevel is the closed set of severity classifications, ordered from
// lowest to highest.  The "ambar" spelling is the instrument's own key and
// is kept as-is because persisted responses reference it.
type RiskLevel string

const (
	RiskGreen  RiskLevel = "green"
	RiskYellow RiskLevel = "yellow"
	RiskAmbar  RiskLevel = "ambar"
	RiskRed    RiskLevel = "red"
)

// Result pairs a risk level with its fixed display metadata.
type Result struct {
	RiskLevel RiskLevel `json:"risk_level"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Color     string    `json:"color"`
}

// display holds the fixed presentation text per risk level.  Green and
// yellow intentionally share the same title while keeping distinct levels
// and colors; yellow's message also lacks the trailing period that green's
// has.  Both quirks come from the clinical instrument's copy and are kept
// verbatim.
var display = map[RiskLevel]Result{
	RiskGreen:  {RiskLevel: RiskGreen, Title: "Consumo de Bajo Riesgo", Message: "Cualquier consumo tiene riesgos.", Color: "green"},
	RiskYellow: {RiskLevel: RiskYellow, Title: "Consumo de Bajo Riesgo", Message: "Cualquier consumo tiene riesgos", Color: "yellow"},
	RiskAmbar:  {RiskLevel: RiskAmbar, Title: "Consumo de Riesgo Medio", Message: "Reduzca su consumo.", Color: "amber"},
	RiskRed:    {RiskLevel: RiskRed, Title: "Consumo de Alto Riesgo", Message: "Hable con su médico.", Color: "red"},
}

// Display returns the fixed presentation metadata for a risk level.
func Display(level RiskLevel) Result { return display[level] }

// Evaluate maps a total AUDIT-C score and biological sex to a risk level.
// The branch order is normative: a score of zero is always green and a
// score of eight or more is always red, regardless of sex.  In between,
// the low-risk (yellow) band is [1,4] for men and [1,3] for women; scores
// above the band but below eight are ambar.  The asymmetry at score 4
// (yellow for men, ambar for women) is part of the clinical standard.
func Evaluate(points int, sex Sex) Result {
	if points == 0 {
		return display[RiskGreen]
	}
	if points >= 8 {
		return display[RiskRed]
	}

	lowRisk := false
	if sex == SexMan {
		if points >= 1 && points <= 4 {
			lowRisk = true
		}
	} else {
		if points >= 1 && points <= 3 {
			lowRisk = true
		}
	}
	if lowRisk {
		return display[RiskYellow]
	}
	return display[RiskAmbar]
}
