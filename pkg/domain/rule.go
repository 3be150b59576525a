package domain

// Signal is a configured pain-point phrase with a strength weight.
// The configured set is process-wide and read-only during a run.
type Signal struct {
	Phrase   string
	Strength float64
}

// IndustryRule pairs an industry label with its associated keywords
type IndustryRule struct {
	Label    string
	Keywords []string
}

// Weights holds the fixed scoring weights for a run
type Weights struct {
	Engagement float64
	Signal     float64
	Industry   float64
}
