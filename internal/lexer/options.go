package lexer

const defaultMaxTokenLength = 1 << 16

type Options struct {
	// MaxTokenLength bounds a single lexeme; zero selects the default.
	MaxTokenLength int
}

func (o Options) maxTokenLength() int {
	if o.MaxTokenLength > 0 {
		return o.MaxTokenLength
	}
	return defaultMaxTokenLength
}
