package renderer

// App mounts a root component into a host container.
type App struct {
	r         *Renderer
	root      *Component
	props     Props
	provides  *provides
	vnode     *VNode
	container HostNode
}

// CreateApp prepares root for mounting. props become the root component's
// props.
func (r *Renderer) CreateApp(root *Component, props Props) *App {
	return &App{
		r:        r,
		root:     root,
		props:    props,
		provides: &provides{values: map[any]any{}},
	}
}

// Provide makes value injectable by every component of the app.
func (a *App) Provide(key, value any) *App {
	a.provides.values[key] = value
	return a
}

// Mount renders the root component into container and returns its
// instance.
func (a *App) Mount(container HostNode) (*Instance, error) {
	a.vnode = H(a.root, a.props, nil)
	a.vnode.app = a
	a.container = container
	if err := a.r.Render(a.vnode, container); err != nil {
		return nil, err
	}
	return a.vnode.Component, nil
}

// Unmount tears down everything the app rendered.
func (a *App) Unmount() error {
	if a.vnode == nil {
		return nil
	}
	a.vnode = nil
	return a.r.Render(nil, a.container)
}
