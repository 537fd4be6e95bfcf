package handler

// setField кладёт в fields только переданные в запросе значения
func setField[T any](fields map[string]interface{}, column string, v *T) {
	if v != nil {
		fields[column] = *v
	}
}
