package video

// RGB is a single framebuffer palette entry.
type RGB struct {
	R, G, B byte
}

// Color indices, in the arbitrary order the reference firmware assigns
// them. The indexed framebuffer's palette is always ordered this way, so
// these constants double as entries into Palette.Color.
const (
	ciBlack = iota
	ciPurple
	ciGreen
	ciBlue
	ciOrange
	ciWhite
	ciMagenta
	ciDarkBlue
	ciDarkGreen
	ciGray1
	ciGray2
	ciLightBlue
	ciBrown
	ciPink
	ciYellow
	ciAqua
)

// Palette is a named set of 16 hardware colors, or a two-color
// monochrome scheme when Mono is true (spec §4.F, §8).
type Palette struct {
	Name      string
	Mono      bool
	MonoColor RGB
	Color     [16]RGB
}

// PaletteCount is the number of selectable palettes (spec §9's resolved
// Open Question: three color palettes plus two monochrome, five total).
const PaletteCount = 5

// Palettes mirrors the reference firmware's five built-in palettes.
var Palettes = [PaletteCount]Palette{
	{
		Name: "Color NTSC",
		Color: [16]RGB{
			ciBlack:     {0x00, 0x00, 0x00},
			ciPurple:    {0xff, 0x44, 0xfd},
			ciGreen:     {0x14, 0xf5, 0x3c},
			ciBlue:      {0x14, 0xcf, 0xfd},
			ciOrange:    {0xff, 0x6a, 0x3c},
			ciWhite:     {0xff, 0xff, 0xff},
			ciMagenta:   {0xe3, 0x1e, 0x60},
			ciDarkBlue:  {0x60, 0x4e, 0xbd},
			ciDarkGreen: {0x00, 0xa3, 0x60},
			ciGray1:     {0x9c, 0x9c, 0x9c},
			ciGray2:     {0x9c, 0x9c, 0x9c},
			ciLightBlue: {0xd0, 0xc3, 0xff},
			ciBrown:     {0x60, 0x72, 0x03},
			ciPink:      {0xff, 0xa0, 0xd0},
			ciYellow:    {0xd0, 0xdd, 0x8d},
			ciAqua:      {0x72, 0xff, 0xd0},
		},
	},
	{
		Name: "NTSC 2",
		Color: [16]RGB{
			ciBlack:     {0x00, 0x00, 0x00},
			ciMagenta:   {0x9F, 0x1B, 0x48},
			ciDarkBlue:  {0x48, 0x32, 0xEB},
			ciPurple:    {0xD6, 0x43, 0xFF},
			ciDarkGreen: {0x19, 0x75, 0x44},
			ciGray1:     {0x81, 0x81, 0x81},
			ciBlue:      {0x36, 0x92, 0xFF},
			ciLightBlue: {0xB8, 0x9E, 0xFF},
			ciBrown:     {0x49, 0x65, 0x00},
			ciOrange:    {0xD8, 0x73, 0x00},
			ciGray2:     {0x81, 0x81, 0x81},
			ciPink:      {0xFB, 0x8F, 0xBC},
			ciGreen:     {0x3C, 0xCC, 0x00},
			ciYellow:    {0xBC, 0xD6, 0x00},
			ciAqua:      {0x6C, 0xE6, 0xB8},
			ciWhite:     {0xF1, 0xF1, 0xF1},
		},
	},
	{
		Name: "Color Mega2",
		Color: [16]RGB{
			ciBlack:     {0x00, 0x00, 0x00},
			ciMagenta:   {0xDB, 0x1F, 0x42},
			ciDarkBlue:  {0x0C, 0x11, 0xA4},
			ciPurple:    {0xDC, 0x43, 0xE1},
			ciDarkGreen: {0x1C, 0x82, 0x31},
			ciGray1:     {0x63, 0x63, 0x63},
			ciBlue:      {0x39, 0x3D, 0xFF},
			ciLightBlue: {0x7A, 0xB3, 0xFF},
			ciBrown:     {0x91, 0x64, 0x00},
			ciOrange:    {0xFA, 0x77, 0x00},
			ciGray2:     {0xB3, 0xB3, 0xB3},
			ciPink:      {0xFB, 0xA5, 0x93},
			ciGreen:     {0x40, 0xDE, 0x00},
			ciYellow:    {0xFE, 0xFE, 0x00},
			ciAqua:      {0x67, 0xFC, 0xA3},
			ciWhite:     {0xFF, 0xFF, 0xFF},
		},
	},
	{
		Name:      "Green",
		Mono:      true,
		MonoColor: RGB{0x14, 0xf5, 0x3c},
	},
	{
		Name:      "Amber",
		Mono:      true,
		MonoColor: RGB{0xfd, 0xcf, 0x14},
	},
}

// NormalizedPaletteIndex wraps idx into [0, PaletteCount) per spec §8's
// boundary test ("palette index >= 5 wraps to 0").
func NormalizedPaletteIndex(idx int) int {
	if idx < 0 {
		idx = -idx
	}
	return idx % PaletteCount
}

// clut maps the raw bit patterns produced by each graphics mode's pixel
// decoder into the color-index space above (spec §4.F artifact rules).
type clut struct {
	lores  [2][16]int // even/odd column variants
	hires  [10]int
	dhires [16]int
	mono   [2]int
}

var baseCLUT = clut{
	lores: [2][16]int{
		{
			ciBlack, ciMagenta, ciDarkBlue, ciPurple,
			ciDarkGreen, ciGray1, ciBlue, ciLightBlue,
			ciBrown, ciOrange, ciGray2, ciPink,
			ciGreen, ciYellow, ciAqua, ciWhite,
		},
		{
			ciBlack, ciDarkBlue, ciDarkGreen, ciBlue,
			ciBrown, ciGray2, ciGreen, ciAqua,
			ciMagenta, ciPurple, ciGray1, ciLightBlue,
			ciOrange, ciPink, ciYellow, ciWhite,
		},
	},
	dhires: [16]int{
		ciBlack, ciMagenta, ciBrown, ciOrange,
		ciDarkGreen, ciGray1, ciGreen, ciYellow,
		ciDarkBlue, ciPurple, ciGray2, ciPink,
		ciBlue, ciLightBlue, ciAqua, ciWhite,
	},
	hires: [10]int{
		ciBlack, ciPurple, ciGreen, ciGreen, ciPurple,
		ciBlue, ciOrange, ciOrange, ciBlue, ciWhite,
	},
	mono: [2]int{ciBlack, ciWhite},
}
