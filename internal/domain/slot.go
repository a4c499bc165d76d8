package domain

// SlotTier категория качества слота, производная от оценки
type SlotTier string

const (
	TierExcellent SlotTier = "excellent"
	TierGood      SlotTier = "good"
	TierAvailable SlotTier = "available"
)

// ScoredSlot свободный слот с оценкой качества
// Вычисляется на лету и никогда не сохраняется
type ScoredSlot struct {
	Window  TimeWindow
	Quality float64 // Оценка в диапазоне [0, 1], больше - лучше
	Tier    SlotTier
}

// IsExcellent returns true if the slot is in the top quality tier
func (s *ScoredSlot) IsExcellent() bool {
	return s.Tier == TierExcellent
}
