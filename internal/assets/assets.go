package assets

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in stylesheet by name.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a built-in template by name.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// ListStyles returns the built-in theme names, sorted. The shared layout
// stylesheet is not a theme and is left out.
func ListStyles() []string {
	return defaultLoader.Styles()
}
