// Package lookup resuelve referencias relacionales contra una colección
// hermana ya cargada. Es el mismo contrato en el API y en la consola: una
// referencia vacía resuelve a cadena vacía, una referencia que no coincide
// con nada resuelve al marcador, nunca a un error.
package lookup

// Placeholder se muestra cuando una referencia cuelga (el id no coincide
// con ningún elemento de la colección hermana).
const Placeholder = "—"

// Name resuelve id contra un índice id→nombre ya construido.
func Name(names map[string]string, id string) string {
	if id == "" {
		return ""
	}
	if name, ok := names[id]; ok {
		return name
	}
	return Placeholder
}

// Scan resuelve id por barrido lineal de la colección hermana, tal como lo
// hace la consola sobre sus colecciones cargadas.
func Scan[T any](items []T, idOf, nameOf func(T) string, id string) string {
	if id == "" {
		return ""
	}
	for _, it := range items {
		if idOf(it) == id {
			return nameOf(it)
		}
	}
	return Placeholder
}

// Index construye el índice id→nombre de una colección.
func Index[T any](items []T, idOf, nameOf func(T) string) map[string]string {
	names := make(map[string]string, len(items))
	for _, it := range items {
		names[idOf(it)] = nameOf(it)
	}
	return names
}
