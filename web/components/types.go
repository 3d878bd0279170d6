package components

// FormatOption is one choice in the output format picker.
type FormatOption struct {
	Value   string
	Label   string
	Hint    string
	Checked bool
}

// DefaultFormats lists the formats the API accepts, SVG first.
func DefaultFormats() []FormatOption {
	return []FormatOption{
		{Value: "svg", Label: "SVG", Hint: "Scalable vector image", Checked: true},
		{Value: "png", Label: "PNG", Hint: "400px raster, base64 data URL"},
	}
}
