package engine

import "math/rand"

// Letter values and bag distribution follow the classic English tile set
// (blanks omitted).
var letterValues = map[rune]int{
	'a': 1, 'b': 3, 'c': 3, 'd': 2, 'e': 1, 'f': 4, 'g': 2, 'h': 4,
	'i': 1, 'j': 8, 'k': 5, 'l': 1, 'm': 3, 'n': 1, 'o': 1, 'p': 3,
	'q': 10, 'r': 1, 's': 1, 't': 1, 'u': 1, 'v': 4, 'w': 4, 'x': 8,
	'y': 4, 'z': 10,
}

var bagDistribution = map[rune]int{
	'a': 9, 'b': 2, 'c': 2, 'd': 4, 'e': 12, 'f': 2, 'g': 3, 'h': 2,
	'i': 9, 'j': 1, 'k': 1, 'l': 4, 'm': 2, 'n': 6, 'o': 8, 'p': 2,
	'q': 1, 'r': 6, 's': 4, 't': 6, 'u': 4, 'v': 2, 'w': 2, 'x': 1,
	'y': 2, 'z': 1,
}

// wordList is intentionally small. Dictionary quality is a non-goal; it only
// has to be large enough that most racks can produce something.
var wordList = []string{
	"ab", "ad", "ae", "ag", "ah", "ai", "am", "an", "ar", "as", "at", "aw", "ax",
	"ba", "be", "bi", "bo", "by", "de", "do", "ed", "ef", "eh", "el", "em", "en",
	"er", "es", "et", "ex", "fa", "go", "ha", "he", "hi", "ho", "id", "if", "in",
	"is", "it", "jo", "ka", "la", "li", "lo", "ma", "me", "mi", "mu", "my", "na",
	"ne", "no", "nu", "od", "oe", "of", "oh", "oi", "om", "on", "op", "or", "os",
	"ow", "ox", "oy", "pa", "pe", "pi", "qi", "re", "sh", "si", "so", "ta", "ti",
	"to", "uh", "um", "un", "up", "us", "ut", "we", "wo", "xi", "xu", "ya", "ye",
	"yo", "za",
	"ace", "act", "age", "ago", "aid", "aim", "air", "ale", "and", "ant", "any",
	"ape", "apt", "arc", "are", "arm", "art", "ash", "ask", "ate", "awe", "axe",
	"bad", "bag", "ban", "bar", "bat", "bed", "bee", "beg", "bet", "bid", "big",
	"bin", "bit", "boa", "bog", "bow", "box", "boy", "bun", "bus", "but", "buy",
	"cab", "can", "cap", "car", "cat", "cob", "cod", "cog", "con", "cot", "cow",
	"cry", "cub", "cue", "cup", "cut", "dab", "dam", "day", "den", "dew", "did",
	"die", "dig", "dim", "din", "dip", "doe", "dog", "don", "dot", "dry", "dub",
	"due", "dug", "dun", "duo", "dye", "ear", "eat", "ebb", "eel", "egg", "ego",
	"elf", "elm", "end", "era", "erg", "eve", "ewe", "eye", "fad", "fan", "far",
	"fat", "fed", "fee", "fen", "few", "fig", "fin", "fir", "fit", "fix", "flu",
	"fly", "foe", "fog", "for", "fox", "fry", "fun", "fur", "gap", "gas", "gel",
	"gem", "get", "gig", "gin", "gnu", "got", "gum", "gun", "gut", "guy", "gym",
	"had", "ham", "has", "hat", "hay", "hen", "her", "hew", "hex", "hid", "him",
	"hip", "his", "hit", "hoe", "hog", "hop", "hot", "how", "hub", "hue", "hug",
	"hum", "hut", "ice", "icy", "ill", "imp", "ink", "inn", "ion", "ire", "irk",
	"its", "ivy", "jab", "jam", "jar", "jaw", "jet", "jig", "job", "jog", "jot",
	"joy", "jug", "jut", "keg", "key", "kid", "kin", "kit", "lab", "lad", "lag",
	"lap", "law", "lay", "lea", "led", "leg", "let", "lid", "lie", "lip", "lit",
	"lob", "log", "lot", "low", "lug", "lye", "mad", "man", "map", "mat", "maw",
	"may", "men", "met", "mid", "mix", "mob", "mop", "mud", "mug", "nab", "nag",
	"nap", "net", "new", "nib", "nil", "nip", "nit", "nod", "nor", "not", "now",
	"nun", "nut", "oak", "oar", "oat", "odd", "ode", "off", "oft", "oil", "old",
	"one", "ore", "our", "out", "owe", "owl", "own", "pad", "pan", "par", "pat",
	"paw", "pay", "pea", "peg", "pen", "pet", "pew", "pie", "pig", "pin", "pit",
	"ply", "pod", "pot", "pro", "pry", "pub", "pun", "pup", "put", "qat", "rag",
	"ram", "ran", "rap", "rat", "raw", "ray", "red", "rib", "rid", "rig", "rim",
	"rip", "rob", "rod", "roe", "rot", "row", "rub", "rue", "rug", "rum", "run",
	"rut", "rye", "sad", "sag", "sap", "sat", "saw", "say", "sea", "set", "sew",
	"she", "shy", "sin", "sip", "sir", "sit", "six", "ski", "sky", "sly", "sob",
	"sod", "son", "sow", "soy", "spa", "spy", "sty", "sub", "sue", "sum", "sun",
	"tab", "tag", "tan", "tap", "tar", "tax", "tea", "ten", "the", "thy", "tie",
	"tin", "tip", "toe", "ton", "too", "top", "tow", "toy", "try", "tub", "tug",
	"two", "urn", "use", "van", "vat", "vet", "vex", "via", "vie", "vow", "wad",
	"wag", "war", "was", "wax", "way", "web", "wed", "wee", "wet", "who", "why",
	"wig", "win", "wit", "woe", "wok", "won", "woo", "wry", "yak", "yam", "yap",
	"yes", "yet", "yew", "you", "zag", "zap", "zed", "zig", "zip", "zoo",
	"able", "ache", "acid", "aide", "ante", "area", "aunt", "away", "axle",
	"band", "bane", "bare", "barn", "bead", "bean", "bear", "beat", "bell",
	"belt", "bend", "bird", "bite", "blue", "boat", "bone", "bore", "born",
	"brew", "brim", "cage", "cake", "calm", "cane", "care", "cart", "case",
	"cave", "cent", "chat", "chin", "city", "clan", "claw", "clay", "clue",
	"coal", "coat", "code", "coin", "cold", "cone", "cool", "cope", "cord",
	"core", "corn", "cost", "cove", "crab", "crew", "crop", "cube", "cure",
	"dare", "darn", "dart", "date", "dawn", "deal", "dean", "dear", "deer",
	"dent", "dial", "dice", "diet", "dine", "dirt", "dish", "dock", "dome",
	"done", "door", "dose", "dote", "doze", "drag", "draw", "drip", "drop",
	"drum", "duet", "dune", "dusk", "dust", "earn", "ease", "east", "echo",
	"edge", "edit", "else", "envy", "epic", "even", "ever", "exam",
	"exit", "face", "fact", "fade", "fair", "fake", "fame", "fare", "farm",
	"fast", "fate", "fear", "feat", "feed", "feel", "fern", "fine", "fire",
	"firm", "fish", "five", "flag", "flat", "flea", "flow", "foam", "fold",
	"fond", "font", "food", "foot", "fore", "fork", "form", "fort", "four",
	"free", "frog", "fuel", "fume", "fund", "gain", "gale", "game", "gate",
	"gaze", "gear", "gene", "gift", "girl", "give", "glad", "glen", "glow",
	"glue", "goal", "goat", "gone", "gown", "grab", "gray", "grew", "grid",
	"grim", "grin", "grow", "hail", "hair", "hale", "halt", "hand", "hard",
	"hare", "harm", "hate", "haul", "have", "haze", "head", "heal", "heap",
	"hear", "heat", "herb", "herd", "here", "hero", "hide", "hill", "hint",
	"hire", "hive", "hold", "hole", "home", "hone", "hood", "hoof", "hook",
	"hope", "horn", "hose", "host", "hour", "hunt", "hurt", "icon", "idea",
	"idle", "inch", "into", "iron", "item", "jade", "joke", "jolt", "judo",
	"jury", "just", "keen", "keep", "kelp", "kind", "kite", "knee", "knit",
	"lace", "lack", "lain", "lair", "lake", "lamb", "lame", "lamp", "land",
	"lane", "lard", "lark", "late", "lava", "lawn", "lazy", "lead", "leaf",
	"lean", "leap", "left", "lend", "lens", "lent", "liar", "lice", "life",
	"lime", "line", "link", "lint", "lion", "list", "live", "load", "loaf",
	"loan", "lock", "lode", "loft", "lone", "long", "look", "loom", "loop",
	"lord", "lore", "lose", "loss", "lost", "loud", "love", "luck", "lure",
	"lute", "made", "mail", "main", "make", "male", "mane", "many", "mare",
	"mark", "mask", "mast", "mate", "maze", "mead", "meal", "mean", "meat",
	"melt", "mend", "menu", "mere", "mesh", "mice", "mild", "mile", "milk",
	"mill", "mind", "mine", "mint", "mist", "mite", "moan", "moat", "mode",
	"mole", "mood", "moon", "more", "moss", "most", "moth", "move", "mule",
	"muse", "mute", "nail", "name", "nape", "navy", "near", "neat", "neon",
	"nest", "news", "next", "nice", "nine", "node", "none", "noon", "nose",
	"note", "noun", "oath", "obey", "odor", "omen", "once", "open", "oral",
	"oval", "oven", "over", "pace", "pack", "page", "paid", "pail", "pain",
	"pair", "pale", "palm", "pane", "pant", "park", "part", "past", "path",
	"pear", "peat", "peel", "peer", "pelt", "pine", "pint", "plan", "play",
	"plea", "plot", "plow", "poem", "poet", "pole", "pond", "pony", "pool",
	"pore", "port", "pose", "post", "pour", "pray", "prey", "prop", "prow",
	"pure", "quit", "quiz", "race", "rack", "raft", "rage", "raid", "rail",
	"rain", "rake", "rant", "rare", "rate", "rave", "read", "real", "reap",
	"rear", "reed", "reef", "reel", "rein", "rend", "rent", "rest", "rice",
	"ride", "rife", "rift", "rind", "ring", "rink", "rise", "rite", "road",
	"roam", "roar", "robe", "rock", "rode", "role", "roll", "roof", "room",
	"root", "rope", "rose", "rote", "rude", "ruin", "rule", "rune", "rung",
	"ruse", "rust", "sage", "said", "sail", "sale", "salt", "same", "sand",
	"sane", "save", "scan", "scar", "seal", "seam", "sear", "seat", "seed",
	"seek", "seem", "seen", "sell", "send", "sent", "shed", "shin", "ship",
	"shoe", "shot", "show", "shut", "side", "sift", "sign", "silk", "sill",
	"silo", "sing", "sink", "sire", "site", "size", "slab", "sled", "slid",
	"slim", "slot", "slow", "snap", "snow", "soap", "soar", "sock", "soda",
	"sofa", "soft", "soil", "sold", "sole", "some", "song", "soon", "sore",
	"sort", "soul", "soup", "sour", "span", "spar", "spin", "spot", "spun",
	"star", "stem", "step", "stir", "stone", "stop", "stow", "stun", "suit",
	"sung", "sunk", "sure", "surf", "swan", "swim", "tale", "talk", "tall",
	"tame", "tape", "tart", "task", "teal", "team", "tear", "tend", "tent",
	"term", "tern", "test", "than", "that", "them", "then", "they", "thin",
	"this", "tide", "tile", "time", "tint", "tiny", "tire", "toad", "toil",
	"told", "toll", "tomb", "tone", "tool", "torn", "tour", "town", "trap",
	"tray", "tree", "trim", "trio", "trot", "true", "tube", "tune", "turn",
	"twig", "twin", "undo", "unit", "upon", "urge", "vain", "vane", "vase",
	"vast", "veal", "veil", "vein", "vent", "very", "vest", "vine", "void",
	"vote", "wade", "wage", "wait", "wake", "walk", "wall", "wand", "want",
	"ward", "ware", "warm", "warn", "wart", "wave", "weak", "wean", "wear",
	"weed", "week", "well", "went", "were", "west", "what", "when", "whim",
	"wide", "wife", "wild", "will", "wind", "wine", "wing", "wire", "wise",
	"wish", "with", "wolf", "wood", "wool", "word", "wore", "worn", "wrap",
	"yard", "yarn", "yawn", "year", "yell", "zeal", "zero", "zest", "zinc",
	"zone",
}

var allowed = make(map[string]struct{}, len(wordList))

func init() {
	for _, w := range wordList {
		allowed[w] = struct{}{}
	}
}

// Allowed reports whether a lowercase word is in the dictionary.
func Allowed(word string) bool {
	_, ok := allowed[word]
	return ok
}

// WordScore sums the letter values of a word.
func WordScore(word string) int {
	total := 0
	for _, r := range word {
		total += letterValues[r]
	}
	return total
}

// BestPlayable returns the highest-scoring dictionary word that can be formed
// from the given rack, or "" when the rack can form nothing.
func BestPlayable(rack []rune) string {
	best, bestScore := "", 0
	for _, w := range wordList {
		if !canForm(rack, w) {
			continue
		}
		if score := WordScore(w); score > bestScore {
			best, bestScore = w, score
		}
	}
	return best
}

func canForm(rack []rune, word string) bool {
	var have [26]int
	for _, r := range rack {
		if r >= 'a' && r <= 'z' {
			have[r-'a']++
		}
	}
	for _, r := range word {
		if r < 'a' || r > 'z' {
			return false
		}
		have[r-'a']--
		if have[r-'a'] < 0 {
			return false
		}
	}
	return true
}

func newBag(r *rand.Rand) []rune {
	bag := make([]rune, 0, 98)
	for letter := 'a'; letter <= 'z'; letter++ {
		for i := 0; i < bagDistribution[letter]; i++ {
			bag = append(bag, letter)
		}
	}
	r.Shuffle(len(bag), func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })
	return bag
}
