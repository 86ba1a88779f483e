package models

type DistractorStat struct {
	Option  string  `json:"option"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
	Rating  string  `json:"rating"`
}

type ItemAnalysis struct {
	QuestionID          string           `json:"question_id"`
	QuestionText        string           `json:"question_text"`
	Difficulty          float64          `json:"difficulty"`
	DifficultyLabel     string           `json:"difficulty_label"`
	Discrimination      float64          `json:"discrimination"`
	DiscriminationLabel string           `json:"discrimination_label"`
	Distractors         []DistractorStat `json:"distractors"`
	// DistractorEffectiveness summarizes the distractors as
	// "effective/total", or "-" when the item has none.
	DistractorEffectiveness string  `json:"distractor_effectiveness"`
	Validity                float64 `json:"validity"`
	ValidityLabel           string  `json:"validity_label"`
}

type ItemAnalysisReport struct {
	Participants int            `json:"participants"`
	Reliability  float64        `json:"reliability"`
	Items        []ItemAnalysis `json:"items"`
}

type ScoreBand struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type ClassSummary struct {
	Class     string  `json:"class"`
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Average   float64 `json:"average"`
}

type CohortStatistics struct {
	Participants int            `json:"participants"`
	Average      float64        `json:"average"`
	Highest      float64        `json:"highest"`
	Lowest       float64        `json:"lowest"`
	PassCount    int            `json:"pass_count"`
	FailCount    int            `json:"fail_count"`
	Bands        []ScoreBand    `json:"bands"`
	Classes      []ClassSummary `json:"classes"`
}

// Answer matrix cell values: "1" answered correctly, "-" answered
// incorrectly, "" no answer recorded.
type AnswerMatrixRow struct {
	StudentID string   `json:"student_id"`
	Name      string   `json:"name"`
	Class     string   `json:"class"`
	Score     string   `json:"score"`
	Cells     []string `json:"cells"`
}

type AnswerMatrix struct {
	QuestionIDs []string          `json:"question_ids"`
	Rows        []AnswerMatrixRow `json:"rows"`
}
