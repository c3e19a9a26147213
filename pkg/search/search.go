// Package search implementa el filtro de texto que comparten el API
// (parámetro ?search= de los listados) y el cliente de consola: coincidencia
// por substring, insensible a mayúsculas y a tildes ("jarabe" encuentra
// "Jarabé Pediátrico").
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer descompone (NFD), elimina las marcas diacríticas y recompone (NFC).
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize devuelve el texto en minúsculas y sin tildes, listo para comparar.
func Normalize(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// Entrada no normalizable: comparar tal cual en minúsculas
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// Matches informa si alguno de los campos contiene el query normalizado.
// Un query vacío (o solo espacios) coincide con todo.
func Matches(query string, fields ...string) bool {
	q := Normalize(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Normalize(f), q) {
			return true
		}
	}
	return false
}

// Filter es una función pura: devuelve los elementos cuyos campos (extraídos
// con fields) contienen el query. Para query vacío devuelve el conjunto
// completo. Nunca modifica el slice de entrada.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	q := strings.TrimSpace(query)
	if q == "" {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Matches(q, fields(it)...) {
			out = append(out, it)
		}
	}
	return out
}
