package crisis

// Resource is one crisis hotline or support channel.
type Resource struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// Resources returns the fixed crisis resource listing surfaced to users
// whenever a crisis is detected. Ordered for display.
func Resources() []Resource {
	return []Resource{
		{Name: "US Crisis Line", Contact: "988 (Suicide & Crisis Lifeline)"},
		{Name: "US Crisis Text", Contact: "Text HOME to 741741 (Crisis Text Line)"},
		{Name: "International", Contact: "+1-800-273-8255"},
		{Name: "Emergency", Contact: "911 (US) or local emergency services"},
		{Name: "Online Chat", Contact: "https://988lifeline.org/chat"},
		{Name: "Trevor Project", Contact: "1-866-488-7386 (LGBTQ+ Youth)"},
		{Name: "Veterans Crisis", Contact: "988 then press 1, or text 838255"},
	}
}
