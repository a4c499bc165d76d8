package slotquality

// Weights именованные веса эвристики оценки качества слота.
// Политика оценки настраивается независимо от алгоритма перебора:
// веса переопределяются в config.toml (секция [scoring])
type Weights struct {
	Base float64 // Базовая оценка любого свободного слота

	MorningBonus   float64 // Слот начинается в предпочитаемом утреннем диапазоне
	AfternoonBonus float64 // Слот начинается в предпочитаемом дневном диапазоне

	HourBoundaryBonus     float64 // Начало ровно в начале часа
	HalfHourBoundaryBonus float64 // Начало в половину часа (меньший бонус)

	ShortDurationBonus  float64 // Запрошенная длительность <= ShortDurationMaxMinutes
	MediumDurationBonus float64 // Длительность <= MediumDurationMaxMinutes (меньший бонус)

	// Границы предпочитаемых диапазонов, часы [Start, End)
	MorningStartHour   int
	MorningEndHour     int
	AfternoonStartHour int
	AfternoonEndHour   int

	ShortDurationMaxMinutes  int
	MediumDurationMaxMinutes int

	// Пороги категорий: оценка > ExcellentThreshold - excellent,
	// > GoodThreshold - good, иначе available
	ExcellentThreshold float64
	GoodThreshold      float64
}

// DefaultWeights возвращает веса по умолчанию
func DefaultWeights() Weights {
	return Weights{
		Base:                     0.5,
		MorningBonus:             0.15,
		AfternoonBonus:           0.1,
		HourBoundaryBonus:        0.1,
		HalfHourBoundaryBonus:    0.05,
		ShortDurationBonus:       0.15,
		MediumDurationBonus:      0.1,
		MorningStartHour:         9,
		MorningEndHour:           12,
		AfternoonStartHour:       14,
		AfternoonEndHour:         16,
		ShortDurationMaxMinutes:  30,
		MediumDurationMaxMinutes: 60,
		ExcellentThreshold:       0.8,
		GoodThreshold:            0.6,
	}
}
