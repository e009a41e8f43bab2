package agent

// View is the display shape of an agent. The detailed fields are only set
// by Detail.
type View struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Role             string `json:"role"`
	ShortDescription string `json:"shortDescription"`

	FullDescription string   `json:"fullDescription,omitempty"`
	Expertise       []string `json:"expertise,omitempty"`
	Personality     []string `json:"personality,omitempty"`
	Capabilities    []string `json:"capabilities,omitempty"`
	Templates       []string `json:"templates,omitempty"`
	HasMenu         *bool    `json:"hasMenu,omitempty"`
	HasPrompts      *bool    `json:"hasPrompts,omitempty"`
}

// Summarize returns the short view of a.
func Summarize(a *Agent) View {
	return View{
		ID:               a.ID,
		Name:             a.Name,
		Role:             a.Role,
		ShortDescription: firstLine(a.Description),
	}
}

// Detail returns the full view of a.
func Detail(a *Agent) View {
	v := Summarize(a)
	v.FullDescription = a.Description
	v.Expertise = a.Expertise
	v.Personality = a.Personality
	v.Capabilities = a.Capabilities
	v.Templates = a.Templates
	hasMenu := a.Menu != nil
	hasPrompts := len(a.Prompts) > 0
	v.HasMenu = &hasMenu
	v.HasPrompts = &hasPrompts
	return v
}
