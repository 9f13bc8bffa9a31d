package sentiment

// DefaultPositive is the built-in positive lexicon.
var DefaultPositive = []string{
	"happy", "good", "better", "great", "wonderful", "excellent",
	"hopeful", "optimistic", "grateful", "thankful", "blessed",
	"excited", "joyful", "peaceful", "calm", "confident",
}

// DefaultNegative is the built-in negative lexicon.
var DefaultNegative = []string{
	"sad", "depressed", "anxious", "worried", "stressed", "upset",
	"angry", "frustrated", "hopeless", "helpless", "worthless",
	"lonely", "isolated", "overwhelmed", "afraid", "scared",
	"desperate", "miserable", "terrible", "awful", "horrible",
}
