package tokenizer

// namedEntities maps character-reference names (without the leading `&`
// and trailing `;`) to their decoded text. This is the subset of the HTML
// named references that component templates use in practice; references
// decoding to multiple code points are intentionally left out so decoded
// text never grows past its raw spelling.
var namedEntities = map[string]string{
	"AMP":      "&",
	"Alpha":    "Α",
	"Beta":     "Β",
	"Dagger":   "‡",
	"Delta":    "Δ",
	"GT":       ">",
	"Gamma":    "Γ",
	"LT":       "<",
	"Lambda":   "Λ",
	"Omega":    "Ω",
	"Phi":      "Φ",
	"Pi":       "Π",
	"Prime":    "″",
	"Psi":      "Ψ",
	"QUOT":     "\"",
	"Sigma":    "Σ",
	"Theta":    "Θ",
	"agrave":   "à",
	"alpha":    "α",
	"amp":      "&",
	"and":      "∧",
	"ang":      "∠",
	"apos":     "'",
	"asymp":    "≈",
	"beta":     "β",
	"bull":     "•",
	"cap":      "∩",
	"cent":     "¢",
	"cong":     "≅",
	"copy":     "©",
	"cup":      "∪",
	"dagger":   "†",
	"darr":     "↓",
	"deg":      "°",
	"delta":    "δ",
	"divide":   "÷",
	"eacute":   "é",
	"egrave":   "è",
	"empty":    "∅",
	"epsilon":  "ε",
	"equiv":    "≡",
	"eta":      "η",
	"euro":     "€",
	"exist":    "∃",
	"forall":   "∀",
	"frac12":   "½",
	"frac14":   "¼",
	"frac34":   "¾",
	"gamma":    "γ",
	"ge":       "≥",
	"gt":       ">",
	"harr":     "↔",
	"hellip":   "…",
	"iexcl":    "¡",
	"infin":    "∞",
	"int":      "∫",
	"iota":     "ι",
	"iquest":   "¿",
	"isin":     "∈",
	"kappa":    "κ",
	"lambda":   "λ",
	"laquo":    "«",
	"larr":     "←",
	"ldquo":    "“",
	"le":       "≤",
	"lowast":   "∗",
	"lsquo":    "‘",
	"lt":       "<",
	"mdash":    "—",
	"micro":    "µ",
	"middot":   "·",
	"minus":    "−",
	"mu":       "μ",
	"nabla":    "∇",
	"nbsp":     " ",
	"ndash":    "–",
	"ne":       "≠",
	"ni":       "∋",
	"notin":    "∉",
	"nu":       "ν",
	"omega":    "ω",
	"oplus":    "⊕",
	"or":       "∨",
	"otimes":   "⊗",
	"para":     "¶",
	"permil":   "‰",
	"perp":     "⊥",
	"phi":      "φ",
	"pi":       "π",
	"plusmn":   "±",
	"pound":    "£",
	"prime":    "′",
	"prod":     "∏",
	"psi":      "ψ",
	"quot":     "\"",
	"radic":    "√",
	"raquo":    "»",
	"rarr":     "→",
	"rdquo":    "”",
	"reg":      "®",
	"rho":      "ρ",
	"rsquo":    "’",
	"sect":     "§",
	"sigma":    "σ",
	"sim":      "∼",
	"sub":      "⊂",
	"sum":      "∑",
	"sup":      "⊃",
	"szlig":    "ß",
	"tau":      "τ",
	"there4":   "∴",
	"theta":    "θ",
	"times":    "×",
	"trade":    "™",
	"uarr":     "↑",
	"upsilon":  "υ",
	"xi":       "ξ",
	"yen":      "¥",
	"zeta":     "ζ",
}

// legacyEntities are the references that the markup specification accepts
// without a terminating semicolon.
var legacyEntities = map[string]string{
	"AMP":  "&",
	"GT":   ">",
	"LT":   "<",
	"QUOT": "\"",
	"amp":  "&",
	"gt":   ">",
	"lt":   "<",
	"nbsp": " ",
	"copy": "©",
	"quot": "\"",
	"reg":  "®",
}

// c1ControlReplacements remaps the numeric references in the 0x80-0x9F
// range that the markup specification redefines.
var c1ControlReplacements = map[rune]rune{
	0x80: 0x20ac,
	0x82: 0x201a,
	0x83: 0x0192,
	0x84: 0x201e,
	0x85: 0x2026,
	0x86: 0x2020,
	0x87: 0x2021,
	0x88: 0x02c6,
	0x89: 0x2030,
	0x8a: 0x0160,
	0x8b: 0x2039,
	0x8c: 0x0152,
	0x8e: 0x017d,
	0x91: 0x2018,
	0x92: 0x2019,
	0x93: 0x201c,
	0x94: 0x201d,
	0x95: 0x2022,
	0x96: 0x2013,
	0x97: 0x2014,
	0x98: 0x02dc,
	0x99: 0x2122,
	0x9a: 0x0161,
	0x9b: 0x203a,
	0x9c: 0x0153,
	0x9e: 0x017e,
	0x9f: 0x0178,
}
