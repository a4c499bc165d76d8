package domain

// ConflictReport отчёт о конфликте кандидата с существующим бронированием
// Создается только при обнаружении конфликта
type ConflictReport struct {
	Conflicting *Booking   // Первое (в хронологическом порядке) конфликтующее бронирование
	Requested   TimeWindow // Запрошенное окно
	// Alternatives свободные окна той же длительности рядом с конфликтом:
	// не более одного "до" и одного "после". Каждое окно гарантированно
	// не пересекается ни с одним бронированием из проверенного набора.
	Alternatives []TimeWindow
}
