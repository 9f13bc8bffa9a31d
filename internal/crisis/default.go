package crisis

// DefaultTiers contains the built-in crisis keyword tiers.
// These are the phrases that are always scanned for, in descending
// severity order. Critical shadows high shadows medium.
var DefaultTiers = Tiers{
	Critical: []string{
		"suicide", "suicidal", "kill myself", "end my life",
		"want to die", "better off dead", "no reason to live",
		"can't go on", "ending it all",
	},
	High: []string{
		"self harm", "self-harm", "cut myself", "cutting",
		"hurt myself", "harm myself", "overdose", "pills",
		"die", "death", "suicide plan",
	},
	Medium: []string{
		"hopeless", "helpless", "worthless", "burden",
		"give up", "can't cope", "no point", "empty inside",
		"numb", "desperate",
	},
}

// Confidence values are fixed per tier. A tier's confidence is reported
// whenever that tier decides the classification.
const (
	ConfidenceCritical = 1.0
	ConfidenceHigh     = 0.8
	ConfidenceMedium   = 0.5
)

// mediumMinMatches is how many distinct medium-tier keywords a message
// must contain before a medium classification is reported. A single
// medium match alone does not qualify.
const mediumMinMatches = 2
