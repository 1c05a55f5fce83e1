package geo

// DefaultRegion is the catch-all region with an empty native table:
// everything resolves as non-native there.
const DefaultRegion = "DEFAULT"

// NativeSpecies is one entry of a regional native table.
type NativeSpecies struct {
	Scientific string
	Common     string
	Points     int
}

// nativeSpeciesByRegion holds the per-region native tables as immutable
// startup data. Slices keep the ladder's tie-breaking deterministic: within
// one match tier, the first listed entry wins.
var nativeSpeciesByRegion = map[string][]NativeSpecies{
	"IN": {
		{"Azadirachta indica", "Neem Tree", 15},
		{"Ficus benghalensis", "Banyan Tree", 20},
		{"Ocimum tenuiflorum", "Tulsi", 10},
		{"Ficus religiosa", "Peepal Tree", 15},
		{"Bambusoideae", "Bamboo", 12},
		{"Nelumbo nucifera", "Indian Lotus", 18},
		{"Madhuca longifolia", "Mahua", 20},
		{"Mangifera indica", "Mango Tree", 10},
		{"Saraca asoca", "Ashoka Tree", 18},
		{"Syzygium cumini", "Jamun", 12},
		{"Phyllanthus emblica", "Amla", 14},
		{"Terminalia arjuna", "Arjuna Tree", 16},
		{"Artocarpus heterophyllus", "Jackfruit", 10},
		{"Moringa oleifera", "Drumstick Tree", 13},
		{"Butea monosperma", "Flame of the Forest", 17},
	},
	"US": {
		{"Cercis canadensis", "Eastern Redbud", 15},
		{"Cornus florida", "Dogwood", 12},
		{"Rudbeckia hirta", "Black-eyed Susan", 10},
		{"Asclepias", "Milkweed", 20},
		{"Acer rubrum", "Red Maple", 10},
		{"Quercus alba", "White Oak", 18},
		{"Pinus strobus", "Eastern White Pine", 14},
		{"Acer saccharum", "Sugar Maple", 12},
	},
	"GB": {
		{"Quercus robur", "English Oak", 20},
		{"Betula pendula", "Silver Birch", 14},
		{"Fraxinus excelsior", "Common Ash", 15},
		{"Prunus avium", "Wild Cherry", 12},
		{"Corylus avellana", "Hazel", 10},
	},
	"AU": {
		{"Eucalyptus", "Gum Tree", 18},
		{"Acacia", "Wattle", 15},
		{"Banksia", "Banksia", 16},
		{"Grevillea", "Grevillea", 14},
		{"Callistemon", "Bottlebrush", 12},
	},
	DefaultRegion: {},
}

type regionBox struct {
	code                           string
	minLat, maxLat, minLng, maxLng float64
}

// regionBoxes is the offline last-resort tier of the region ladder, evaluated
// in this fixed order.
var regionBoxes = []regionBox{
	{"IN", 8.0, 37.0, 68.0, 97.5},
	{"US", 24.0, 72.0, -170.0, -66.0},
	{"GB", 49.5, 61.0, -8.2, 2.0},
	{"AU", -44.0, -10.0, 112.0, 154.0},
}
