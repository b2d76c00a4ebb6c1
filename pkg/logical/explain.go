package logical

import "github.com/jedib0t/go-pretty/v6/list"

// FormatTree renders the plan as a connected operator tree, one operator
// per line, children indented under their parent.
func FormatTree(p Plan) string {
	w := list.NewWriter()
	w.SetStyle(list.StyleConnectedLight)
	appendPlan(w, p)
	return w.Render()
}

func appendPlan(w list.Writer, p Plan) {
	w.AppendItem(p.String())
	for _, child := range p.Children() {
		w.Indent()
		appendPlan(w, child)
		w.UnIndent()
	}
}
