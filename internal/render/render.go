package render

// Markdown renders a markdown string for terminal display. Renderers
// are borrowed from a pool keyed by the options, so concurrent bubble
// rendering does not rebuild glamour state per call.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(content)
}

// MarkdownWithWidth renders markdown at the given wrap width using the
// default options. Chat bubbles and one-shot answers both come through
// here.
func MarkdownWithWidth(content string, width int) (string, error) {
	return Markdown(content, DefaultOptions().WithWidth(width))
}
