package font

const (
	// GoogleFontsAPI is the base URL for the Google Fonts CSS2 API
	GoogleFontsAPI = "https://fonts.googleapis.com/css2"

	// WebFontsDirectoryURL lists every family with its category and variants
	WebFontsDirectoryURL = "https://www.googleapis.com/webfonts/v1/webfonts"

	// SpecimenBaseURL is the public specimen page for a family
	SpecimenBaseURL = "https://fonts.google.com/specimen/"

	// DefaultFontFormat is the format cached by the font manager
	DefaultFontFormat = "ttf"

	// RegistryFilename is the name of the font registry file
	RegistryFilename = "registry.json"

	// DefaultFontWeight is the weight "regular" and bare "italic" variants map to
	DefaultFontWeight = 400

	// DefaultFontStyle is the standard font style used when not specified
	DefaultFontStyle = "normal"
)

// FallbackWeights are requested for every family shown in the picker,
// before its real weight list matters.
var FallbackWeights = []int{400, 700}

// DefaultCaps bounds how many families of each category the catalog keeps.
var DefaultCaps = map[Category]int{
	SansSerif: 200,
	Serif:     100,
	Display:   100,
	Monospace: 100,
}
