package usecase

// paginate recorta un slice ya filtrado en memoria. limit <= 0 devuelve todo
// desde offset. Se usa en los listados cuando ?search= obliga a filtrar
// después de cargar.
func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
