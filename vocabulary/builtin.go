package vocabulary

const (
	// KindJohari names the positive-adjective assessment.
	KindJohari = "johari"
	// KindNohari names the negative-adjective assessment.
	KindNohari = "nohari"

	builtinMinSelection = 5
)

var johariNames = []string{
	"accepting", "adaptable", "bold", "brave", "calm", "caring", "cheerful", "confident", "dependable", "dignified",
	"energetic", "extroverted", "friendly", "giving", "happy", "helpful", "idealistic", "independent", "ingenious",
	"intelligent", "introverted", "kind", "knowledgeable", "logical", "loving", "mature", "modest", "nervous", "observant",
	"organised", "patient", "proud", "quiet", "reflective", "relaxed", "responsive", "self_assertive", "self_conscious", "sensible",
	"sentimental", "shy", "silly", "spontaneous", "sympathetic", "tense", "trustworthy", "warm", "witty", "wise",
}

var nohariNames = []string{
	"incompetent", "intolerant", "inflexible", "timid", "cowardly", "violent", "aloof", "glum", "stupid", "simple",
	"insecure", "irresponsible", "vulgar", "lethargic", "withdrawn", "hostile", "selfish", "unhappy", "unhelpful",
	"cynical", "needy", "unimaginative", "inane", "brash", "cruel", "ignorant", "irrational", "distant", "childish", "boastful",
	"blase", "imperceptive", "chaotic", "impatient", "weak", "embarrassed", "loud", "vacuous", "panicky", "unethical", "insensitive",
	"self_satisfied", "passive", "smug", "rash", "dispassionate", "overdramatic", "dull", "predictable", "callous", "inattentive",
	"unreliable", "cold", "foolish", "humourless",
}

// Johari returns the positive-adjective vocabulary of the classic Johari window.
func Johari() *Vocabulary {
	return MustNew(johariNames, WithKind(KindJohari), WithMinSelection(builtinMinSelection))
}

// Nohari returns the negative-adjective vocabulary of the Nohari window.
func Nohari() *Vocabulary {
	return MustNew(nohariNames, WithKind(KindNohari), WithMinSelection(builtinMinSelection))
}

// Builtin returns the built-in vocabulary for kind.
func Builtin(kind string) (*Vocabulary, bool) {
	switch kind {
	case KindJohari:
		return Johari(), true
	case KindNohari:
		return Nohari(), true
	default:
		return nil, false
	}
}
