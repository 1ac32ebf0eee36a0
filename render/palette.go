package render

// Palette is an ordered set of colors cycled over node and edge types when
// the caller has no hand-written styles.
type Palette struct {
	NodeColors []string
	EdgeColors []string
	Background string
}

// DefaultPalette returns vibrant colors on a light background.
func DefaultPalette() *Palette {
	return &Palette{
		NodeColors: []string{
			"#4285F4", // blue
			"#EA4335", // red
			"#FBBC05", // yellow
			"#34A853", // green
			"#673AB7", // purple
			"#3F51B5", // indigo
			"#00BCD4", // cyan
			"#009688", // teal
			"#FF5722", // deep orange
		},
		EdgeColors: []string{"#666666", "#888888", "#AAAAAA"},
		Background: "#f8f8f8",
	}
}

// SurrealPalette returns high-contrast colors on a dark background.
func SurrealPalette() *Palette {
	return &Palette{
		NodeColors: []string{
			"#FF6D00", "#2979FF", "#00E676", "#F50057", "#651FFF",
			"#C6FF00", "#FF3D00", "#00B0FF", "#76FF03",
		},
		EdgeColors: []string{"#333333", "#9C27B0", "#00BFA5"},
		Background: "#212121",
	}
}

// Config builds a visual config assigning each type a cycled palette color.
// Types already present in an existing config should not be passed here;
// this is the zero-effort styling path.
func Config[T any](p *Palette, nodeTypes, edgeTypes []string) *VisualConfig[T] {
	cfg := NewVisualConfig[T]()
	for i, t := range nodeTypes {
		style := defaultNodeStyle[T]()
		style.Color = p.NodeColors[i%len(p.NodeColors)]
		cfg.Nodes[t] = style
	}
	for i, t := range edgeTypes {
		style := defaultEdgeStyle()
		style.Color = p.EdgeColors[i%len(p.EdgeColors)]
		cfg.Edges[t] = style
	}
	return cfg
}
