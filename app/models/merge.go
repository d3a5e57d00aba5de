package models

// Merge returns *provided when the client sent the field and current
// otherwise. A provided zero value overwrites.
func Merge[T any](provided *T, current T) T {
	if provided != nil {
		return *provided
	}
	return current
}
