// Package audit implements the AUDIT-C screening instrument: the fixed
// three-question catalog, answer validation and scoring, and the mapping
// from a total score plus biological sex to a clinical risk level.
package audit

// Sex is the biological sex of the respondent.  The AUDIT-C risk bands are
// sex-dependent, so this is a clinical input rather than a demographic one.
type Sex string

const (
	SexMan   Sex = "man"
	SexWoman Sex = "woman"
)

// ValidSex reports whether s is one of the two accepted values.
func ValidSex(s Sex) bool { return s == SexMan || s == SexWoman }

// StudyLevel selects which wording of each question is shown to the
// respondent.  The score values are identical across levels; only the
// text changes.
type StudyLevel string

const (
	StudyPrimary   StudyLevel = "sinoprimaria"
	StudySecondary StudyLevel = "secundariabach"
	StudyHigher    StudyLevel = "universitariosup"
)

// ValidStudyLevel reports whether l is a known study level.
func ValidStudyLevel(l StudyLevel) bool {
	switch l {
	case StudyPrimary, StudySecondary, StudyHigher:
		return true
	}
	return false
}

// AnswerOption is one selectable answer for a question.  Value is the score
// contribution (0..4) and Text holds the wording per study level.
type AnswerOption struct {
	Value int                   `json:"value"`
	Text  map[StudyLevel]string `json:"text"`
}

// Question is one entry of the fixed AUDIT-C catalog.
type Question struct {
	ID      string                `json:"id"`
	Text    map[StudyLevel]string `json:"text"`
	Options []AnswerOption        `json:"options"`
}

// MinValue and MaxValue bound every answer option value.
const (
	MinValue = 0
	MaxValue = 4
)

// questions is the fixed AUDIT-C catalog.  Question and option texts are the
// Spanish instrument wordings, one variant per study level.  The order and
// ids are stable; scoring and completeness checks key off this slice.
var questions = []Question{
	{
		ID: "q1",
		Text: map[StudyLevel]string{
			StudyPrimary:   "¿Cada cuánto tiempo bebes alcohol, como cerveza, vino o licores?",
			StudySecondary: "¿Con qué frecuencia ha consumido bebidas alcohólicas en el último año?",
			StudyHigher:    "¿Con qué frecuencia ha ingerido alcohol durante los últimos doce meses?",
		},
		Options: []AnswerOption{
			{Value: 0, Text: map[StudyLevel]string{StudyPrimary: "Nunca", StudySecondary: "Nunca", StudyHigher: "Nunca"}},
			{Value: 1, Text: map[StudyLevel]string{StudyPrimary: "Una vez al mes", StudySecondary: "Mensualmente o menos", StudyHigher: "Mensualmente o menos"}},
			{Value: 2, Text: map[StudyLevel]string{StudyPrimary: "2-4 veces al mes", StudySecondary: "2-4 veces al mes", StudyHigher: "2-4 veces al mes"}},
			{Value: 3, Text: map[StudyLevel]string{StudyPrimary: "2-3 veces por semana", StudySecondary: "2-3 veces por semana", StudyHigher: "2-3 veces por semana"}},
			{Value: 4, Text: map[StudyLevel]string{StudyPrimary: "4 o más veces por semana", StudySecondary: "4 o más veces por semana", StudyHigher: "4 o más veces por semana"}},
		},
	},
	{
		ID: "q2",
		Text: map[StudyLevel]string{
			StudyPrimary:   "¿Cuántas latas, botellines o copas sueles beber en un día bebiendo de normal?",
			StudySecondary: "¿Cuántas bebidas alcohólicas sueles tomar en un día de consumo normal?",
			StudyHigher:    "¿Cuántas consumiciones de bebidas alcohólicas suele realizar en un día de consumo normal?",
		},
		Options: []AnswerOption{
			{Value: 0, Text: map[StudyLevel]string{StudyPrimary: "1-2", StudySecondary: "Uno o dos", StudyHigher: "Uno o dos"}},
			{Value: 1, Text: map[StudyLevel]string{StudyPrimary: "3-4", StudySecondary: "Tres o cuatro", StudyHigher: "Tres o cuatro"}},
			{Value: 2, Text: map[StudyLevel]string{StudyPrimary: "5-6", StudySecondary: "Cinco o seis", StudyHigher: "Cinco o seis"}},
			{Value: 3, Text: map[StudyLevel]string{StudyPrimary: "7-9", StudySecondary: "Siete a nueve", StudyHigher: "Siete a nueve"}},
			{Value: 4, Text: map[StudyLevel]string{StudyPrimary: "10 o +10", StudySecondary: "Diez o más", StudyHigher: "Diez o más"}},
		},
	},
	{
		ID: "q3",
		Text: map[StudyLevel]string{
			StudyPrimary:   "¿Cada cuánto tiempo bebes 6 o +6 bebidas con alcohol?",
			StudySecondary: "¿Con qué frecuencia toma seis o más bebidas con alcohol en una ocasión de consumo?",
			StudyHigher:    "¿Con qué frecuencia toma seis o más bebidas alcohólicas en una ocasión de consumo?",
		},
		Options: []AnswerOption{
			{Value: 0, Text: map[StudyLevel]string{StudyPrimary: "Nunca", StudySecondary: "Nunca", StudyHigher: "Nunca"}},
			{Value: 1, Text: map[StudyLevel]string{StudyPrimary: "Menos de una vez al mes", StudySecondary: "Menos de una vez al mes", StudyHigher: "Menos de una vez al mes"}},
			{Value: 2, Text: map[StudyLevel]string{StudyPrimary: "1 vez al mes", StudySecondary: "Una vez al mes", StudyHigher: "Mensualmente"}},
			{Value: 3, Text: map[StudyLevel]string{StudyPrimary: "1 vez a la semana", StudySecondary: "Una vez a la semana", StudyHigher: "Semanalmente"}},
			{Value: 4, Text: map[StudyLevel]string{StudyPrimary: "1 vez al día o casi 1 vez al día", StudySecondary: "Diariamente o casi", StudyHigher: "A diario o casi a diario"}},
		},
	},
}

// Questions returns the fixed question catalog in presentation order.
// Callers must not mutate the returned slice.
func Questions() []Question { return questions }

// QuestionIDs returns the ids of the catalog in order.
func QuestionIDs() []string {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}
