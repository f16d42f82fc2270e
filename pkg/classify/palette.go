package classify

// Reserved colors for the non-community tiers. The root color is distinct
// from every palette hue so a root is visually unambiguous.
const (
	ColorRoot       = "#FFD700" // gold
	ColorDirect     = "#8A2BE2" // blue violet
	ColorTransitive = "#4169E1" // royal blue
)

// palette is the fixed qualitative palette for community coloring, in
// index order. 26 distinct hues; community IDs wrap via modulo.
var palette = [...]string{
	"#AA0DFE", "#3283FE", "#85660D", "#782AB6", "#565656", "#1C8356",
	"#16FF32", "#F7E1A0", "#E2E2E2", "#1CBE4F", "#C4451C", "#DEA0FD",
	"#FE00FA", "#325A9B", "#FEAF16", "#F8A19F", "#90AD1C", "#F6222E",
	"#1CFFCE", "#2ED9FF", "#B10DA1", "#C075A6", "#FC1CBF", "#B00068",
	"#FBE426", "#FA0087",
}

// PaletteSize is the number of distinct community hues.
const PaletteSize = len(palette)

// CommunityColor returns the palette color for a community ID. The
// mapping is palette[id mod PaletteSize] and depends only on the ID.
func CommunityColor(id int) string {
	i := id % PaletteSize
	if i < 0 {
		i += PaletteSize
	}
	return palette[i]
}

// Palette returns a copy of the community palette in index order.
func Palette() []string {
	out := make([]string, PaletteSize)
	copy(out, palette[:])
	return out
}
