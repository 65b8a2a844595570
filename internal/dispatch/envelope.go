package dispatch

// ContentText is the only content kind this server produces.
const ContentText = "text"

// Content is one segment of an Envelope.
type Content struct {
	Type string `json:"type" yaml:"type"`
	Text string `json:"text" yaml:"text"`
}

// Envelope is the uniform response to every operation call: exactly one
// text segment, flagged when the call failed.
type Envelope struct {
	Content []Content `json:"content" yaml:"content"`
	IsError bool      `json:"isError" yaml:"isError"`
}

// Success wraps operation output.
func Success(text string) Envelope {
	return Envelope{Content: []Content{{Type: ContentText, Text: text}}}
}

// Failure wraps an error message as "Error: <message>".
func Failure(message string) Envelope {
	return Envelope{
		Content: []Content{{Type: ContentText, Text: "Error: " + message}},
		IsError: true,
	}
}

// Text returns the text of the envelope's first segment.
func (e Envelope) Text() string {
	if len(e.Content) == 0 {
		return ""
	}
	return e.Content[0].Text
}
