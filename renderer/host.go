package renderer

// HostNode is an opaque node owned by the host.
type HostNode = any

// Host is the set of tree mutations the renderer needs. A nil anchor means
// append.
type Host interface {
	CreateElement(tag string) HostNode
	CreateText(text string) HostNode
	PatchProp(el HostNode, key string, prev, next any)
	Insert(child, parent, anchor HostNode)
	Remove(child HostNode)
	SetElementText(el HostNode, text string)
	SetText(node HostNode, text string)
	ParentNode(node HostNode) HostNode
	NextSibling(node HostNode) HostNode
}

// Recorder receives renderer activity. *metrics.Collector is a Recorder.
type Recorder interface {
	ObserveHostOp(op string)
	ObserveComponent(event string)
}

type recordingHost struct {
	Host
	rec Recorder
}

func (h recordingHost) CreateElement(tag string) HostNode {
	h.rec.ObserveHostOp("create_element")
	return h.Host.CreateElement(tag)
}

func (h recordingHost) CreateText(text string) HostNode {
	h.rec.ObserveHostOp("create_text")
	return h.Host.CreateText(text)
}

func (h recordingHost) PatchProp(el HostNode, key string, prev, next any) {
	h.rec.ObserveHostOp("patch_prop")
	h.Host.PatchProp(el, key, prev, next)
}

func (h recordingHost) Insert(child, parent, anchor HostNode) {
	h.rec.ObserveHostOp("insert")
	h.Host.Insert(child, parent, anchor)
}

func (h recordingHost) Remove(child HostNode) {
	h.rec.ObserveHostOp("remove")
	h.Host.Remove(child)
}

func (h recordingHost) SetElementText(el HostNode, text string) {
	h.rec.ObserveHostOp("set_element_text")
	h.Host.SetElementText(el, text)
}

func (h recordingHost) SetText(node HostNode, text string) {
	h.rec.ObserveHostOp("set_text")
	h.Host.SetText(node, text)
}
