package normalize

// maxRelatedTerms caps lexicon expansion per token to limit noise.
const maxRelatedTerms = 2

// defaultPhrases lists multi-word symptom phrases preserved as single tokens.
var defaultPhrases = []string{
	"shortness of breath",
	"chest tightness",
	"runny nose",
	"nasal congestion",
	"sore throat",
	"muscle aches",
	"muscle pain",
	"loss of smell",
	"lack of sleep",
	"no sleep",
	"frequent urination",
	"high blood sugar",
	"slurred speech",
	"skin rash",
	"contact dermatitis",
	"atopic dermatitis",
	"urticaria",
}

// defaultSynonyms rewrites colloquial phrasing to canonical domain terms.
// Order matters: earlier pairs win when keys overlap.
var defaultSynonyms = []SynonymPair{
	// fatigue / sleep
	{From: "tired", To: "fatigue"},
	{From: "tiredness", To: "fatigue"},
	{From: "exhausted", To: "fatigue"},
	{From: "exhaustion", To: "fatigue"},
	{From: "sleepy", To: "somnolence"},
	{From: "sleepiness", To: "somnolence"},
	{From: "lack of sleep", To: "sleep deprivation"},
	{From: "no sleep", To: "sleep deprivation"},
	{From: "insomnia", To: "sleep deprivation"},
	// cognition / mood
	{From: "memory issues", To: "memory impairment"},
	{From: "forgetting", To: "memory impairment"},
	{From: "forgetfulness", To: "memory impairment"},
	{From: "can't focus", To: "inattention"},
	{From: "cannot focus", To: "inattention"},
	{From: "unmotivated", To: "low motivation"},
	{From: "no motivation", To: "low motivation"},
	{From: "poor mood", To: "low mood"},
	{From: "sad", To: "low mood"},
	// cardiology
	{From: "palpitations", To: "irregular heartbeat"},
	{From: "skipping beats", To: "irregular heartbeat"},
	{From: "heart skipping", To: "irregular heartbeat"},
	// dizziness / blood pressure
	{From: "dizzy", To: "dizziness"},
	{From: "lightheaded", To: "dizziness"},
	{From: "standing up", To: "postural change"},
	{From: "stand up", To: "postural change"},
	// dermatology
	{From: "itchiness", To: "pruritus"},
	{From: "itchy", To: "pruritus"},
	{From: "hives", To: "urticaria"},
	{From: "skin rash", To: "dermatitis"},
	{From: "rash", To: "dermatitis"},
}

// defaultStopwords returns the articles, conjunctions, and hedging words
// dropped during tokenization.
func defaultStopwords() map[string]struct{} {
	words := []string{
		"the", "and", "or", "with", "of", "to", "in", "for", "on", "a", "an",
		"is", "are", "was", "were", "it", "its", "at", "by", "what", "this",
		"that", "these", "those", "from", "as", "than", "then", "be", "been",
		"being", "can", "may", "might", "will", "would", "should", "could",
		"i", "am", "not", "feeling", "due", "because", "have", "has", "had",
		"very", "severe", "mild", "moderate", "like",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
