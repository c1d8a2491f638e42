package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// html accumulates markup and remembers the first write error.
type html struct {
	w   io.Writer
	err error
}

func component(fn func(ctx context.Context, h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		fn(ctx, h)
		return h.err
	})
}

func (h *html) raw(parts ...string) {
	for _, part := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, part)
	}
}

func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *html) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// url writes a sanitized URL attribute. Unsafe schemes are replaced by templ.
func (h *html) url(name, value string) {
	h.attr(name, string(templ.URL(value)))
}

func (h *html) open(tag string, attrs ...string) {
	h.raw("<", tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		h.attr(attrs[i], attrs[i+1])
	}
	h.raw(">")
}

func (h *html) close(tag string) {
	h.raw("</", tag, ">")
}

func (h *html) element(tag string, content string, attrs ...string) {
	h.open(tag, attrs...)
	h.text(content)
	h.close(tag)
}

func (h *html) render(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
