//go:build js

package window

// Dear ImGui needs cgo, so browser builds run without the inspector.
func newInspectorOverlay(*Runtime) overlay {
	return nil
}
