package topics

// Renderer formats topic content for display.
type Renderer interface {
	// Render gets the raw content and the topic file extension
	Render(content string, ext string) string
}

// PlainRenderer returns content unchanged.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}
