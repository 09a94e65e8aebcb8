package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// Render adapts a gomponents node to templ.Component so handlers can call
// component.Render(ctx, w) on every page and partial
func Render(node g.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return node.Render(w)
	})
}

// Lazy builds the node at render time with the render context, which
// carries the locale, CSP nonce and CSRF token
func Lazy(build func(ctx context.Context) g.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return build(ctx).Render(w)
	})
}
