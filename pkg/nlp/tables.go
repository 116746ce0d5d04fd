package nlp

// Language data for the matchers. Kept apart from the matching logic so the
// wording can change without touching (or retesting) the algorithms.

// punctuation is stripped from messages before tokenization.
const punctuation = ".,/#!$%^&*;:{}=-_`~()"

// searchPhrases mark a message as a product search. Checked before
// infoPhrases; order within the group is the match order.
var searchPhrases = []string{
	"cherche",
	"recherche",
	"trouve",
	"avez-vous",
	"avez vous",
	"proposez",
	"vendez",
}

// infoPhrases mark a message as a request for product details.
var infoPhrases = []string{
	"information",
	"détail",
	"caractéristique",
	"spécification",
	"prix de",
	"coûte",
	"disponible",
}

// stopWords are French articles, pronouns, prepositions, common verb forms
// and domain filler words removed during keyword extraction.
var stopWords = map[string]bool{
	// articles, determiners
	"le": true, "la": true, "les": true, "un": true, "une": true,
	"des": true, "du": true, "de": true, "ce": true, "cet": true,
	"cette": true, "ces": true, "quel": true, "quelle": true,
	"quels": true, "quelles": true,
	// pronouns
	"je": true, "tu": true, "il": true, "elle": true, "on": true,
	"nous": true, "vous": true, "ils": true, "elles": true,
	"mon": true, "ton": true, "son": true, "ma": true, "ta": true,
	"sa": true, "mes": true, "tes": true, "ses": true, "notre": true,
	"votre": true, "leur": true, "nos": true, "vos": true, "leurs": true,
	"qui": true, "que": true, "quoi": true, "dont": true, "où": true,
	// conjunctions, prepositions
	"et": true, "ou": true, "mais": true, "donc": true, "car": true,
	"ni": true, "or": true, "à": true, "au": true, "aux": true,
	"en": true, "dans": true, "par": true, "pour": true, "sur": true,
	"sous": true, "avec": true, "sans": true, "chez": true,
	"entre": true, "vers": true,
	// common verb forms
	"est": true, "sont": true, "suis": true, "es": true,
	"sommes": true, "êtes": true, "été": true, "être": true,
	"avoir": true, "ai": true, "as": true, "a": true, "avons": true,
	"avez": true, "ont": true, "fait": true, "faire": true,
	"peux": true, "peut": true, "pouvez": true, "veux": true,
	"veut": true, "voulez": true, "voudrais": true, "aimerais": true,
	// politeness, domain fillers
	"bonjour": true, "merci": true, "svp": true, "plait": true,
	"cherche": true, "recherche": true, "besoin": true,
}
