package services

// Grading and reporting policy. Labels are the Indonesian pedagogy
// terms reports are expected to carry.
const (
	// Passing threshold on the 0-100 percentage scale, compared
	// against the unrounded percentage.
	PassThreshold = 75.0

	PassLabel = "Memenuhi KKTP"
	FailLabel = "Belum Memenuhi KKTP"

	// Fraction of the cohort forming the upper and lower groups for
	// discrimination analysis.
	GroupFraction = 0.27

	// Minimum share of the cohort that must pick a distractor for it
	// to count as effective.
	DistractorMinPercent = 5.0

	// Proctoring violations tolerated before a forced submit.
	ViolationLimit = 5
)

// Defaults applied to imported questions with blank columns.
const (
	DefaultCorrectFeedback   = "Well done!"
	DefaultIncorrectFeedback = "Sorry, the answer is incorrect..."
	DefaultPoints            = "10"
)

// Item difficulty (proportion correct).
const (
	DifficultyHardMax = 0.30
	DifficultyEasyMin = 0.70

	DifficultyHardLabel   = "Sukar"
	DifficultyMediumLabel = "Sedang"
	DifficultyEasyLabel   = "Mudah"
)

// Discrimination index.
const (
	DiscriminationFairMin = 0.20
	DiscriminationGoodMin = 0.40

	DiscriminationPoorLabel = "Jelek"
	DiscriminationFairLabel = "Cukup"
	DiscriminationGoodLabel = "Baik"
)

// Point-biserial validity.
const (
	ValidityMediumMin = 0.20
	ValidityHighMin   = 0.40

	ValidityLowLabel    = "Rendah"
	ValidityMediumLabel = "Sedang"
	ValidityHighLabel   = "Tinggi"
)

// Per-option distractor ratings.
const (
	DistractorEffectiveLabel   = "Efektif"
	DistractorIneffectiveLabel = "Tidak Efektif"

	// Reported in place of the effective/total ratio when the item has
	// no distractors.
	NoDistractors = "-"
)

// Score distribution band labels, low to high.
var ScoreBandLabels = []string{"0-20", "21-40", "41-60", "61-80", "81-100"}
