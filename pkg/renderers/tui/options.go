package tui

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional message prefixes the renderer applies when printing
// through the driver.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is used unless WithTheme overrides it.
var DefaultTheme = Theme{ErrorPrefix: "! "}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithMaxAttempts bounds how often a field is re-asked while it carries
// advisory messages.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithMaxRounds bounds how many submissions Fill tries before giving up.
func WithMaxRounds(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxRounds = n
		}
	}
}

// WithInlineValidation installs the field rules as prompt validators so the
// terminal refuses invalid input before it reaches the session.
func WithInlineValidation(enabled bool) Option {
	return func(r *Renderer) {
		r.inline = enabled
	}
}
