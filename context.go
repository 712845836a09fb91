package textview

// ViewFactory creates views for document elements. The paragraph layout
// pool and host widgets use it to (re)build subtrees after structural
// edits.
type ViewFactory interface {
	// Create returns a view presenting elem.
	Create(elem Element) View
}

// ViewFactoryFunc adapts a function to the ViewFactory interface.
type ViewFactoryFunc func(elem Element) View

// Create implements ViewFactory.
func (f ViewFactoryFunc) Create(elem Element) View {
	return f(elem)
}

// Context carries the per-widget state every layout, paint and mapping call
// needs: the host, its document, the view factory, and the layered
// highlight capability resolved for the current paint pass. It is passed
// explicitly down the view tree; views never reach for globals.
//
// A Context is not safe for concurrent use, matching the engine's
// single-threaded contract.
type Context struct {
	host    Host
	factory ViewFactory

	layered   LayeredHighlights
	layeredOK bool
	resolved  bool
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithFactory overrides the default view factory.
func WithFactory(f ViewFactory) ContextOption {
	return func(c *Context) {
		c.factory = f
	}
}

// NewContext creates a Context for the given host. Without options the
// factory builds a GlyphView per leaf element and a ParagraphView per
// branch element.
func NewContext(host Host, opts ...ContextOption) *Context {
	c := &Context{host: host}
	for _, opt := range opts {
		opt(c)
	}
	if c.factory == nil {
		c.factory = ViewFactoryFunc(defaultViewFor)
	}
	return c
}

// defaultViewFor is the factory used when none is configured.
func defaultViewFor(elem Element) View {
	if elem.IsLeaf() {
		return NewGlyphView(elem)
	}
	return NewParagraphView(elem)
}

// Host returns the widget embedding the view tree.
func (c *Context) Host() Host {
	return c.host
}

// Document returns the host's document.
func (c *Context) Document() Document {
	return c.host.Document()
}

// Factory returns the view factory.
func (c *Context) Factory() ViewFactory {
	return c.factory
}

// BeginPaint resolves the host's layered-highlight capability for the
// coming paint pass. Hosts call it once at the top of each pass; leaf views
// painted outside a full pass resolve lazily on first query.
func (c *Context) BeginPaint() {
	c.layered, c.layeredOK = AsLayered(c.host.Highlights())
	c.resolved = true
}

// layeredHighlights returns the capability resolved by BeginPaint,
// resolving it now if no pass was started.
func (c *Context) layeredHighlights() (LayeredHighlights, bool) {
	if !c.resolved {
		c.BeginPaint()
	}
	return c.layered, c.layeredOK
}
