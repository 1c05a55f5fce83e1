package classifier

// genericEcoMap groups generic 1000-class indices by the eco category their
// probability mass counts towards when no fine-tuned head is available.
// Immutable startup data: tune the groupings here, not in control flow.
var genericEcoMap = buildGenericEcoMap()

func buildGenericEcoMap() map[Category][]int {
	m := map[Category][]int{
		CategoryWaterBody:  {736, 955, 973, 974, 975, 978, 979, 980},
		CategoryWaste:      {412, 413, 440, 441, 468, 469, 530, 531},
		CategoryUrbanGreen: {580, 716, 726, 733, 832, 833, 866},
	}

	plant := make([]int, 0, 36)
	for i := 0; i < 30; i++ {
		plant = append(plant, i)
	}
	plant = append(plant, 940, 985, 986, 987, 992, 993)
	m[CategoryPlant] = plant

	wildlife := make([]int, 0, 320)
	for i := 80; i < 400; i++ {
		wildlife = append(wildlife, i)
	}
	m[CategoryWildlife] = wildlife

	return m
}
