package render

// RenderOptions carry per-request data that does not belong to the form
// state itself.
type RenderOptions struct {
	// Action is the URL the form posts to. Empty keeps the current URL.
	Action string
	// Method defaults to POST.
	Method string
	// ChangeURL, when set, lets the HTML renderer post each change for live
	// visibility and advisory errors.
	ChangeURL string
	// Hidden inputs emitted alongside the fields (session id, CSRF token).
	Hidden map[string]string
	// Schemas lists the keys offered by a schema switcher; empty hides it.
	Schemas []SchemaLink
	// ShowSchema embeds the JSON schema definition below the form.
	ShowSchema bool
}

// SchemaLink is one entry of the schema switcher.
type SchemaLink struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}
