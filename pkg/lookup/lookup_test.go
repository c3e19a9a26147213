package lookup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jdruizm/Botica-api/pkg/lookup"
)

type ref struct{ id, name string }

func refID(r ref) string   { return r.id }
func refName(r ref) string { return r.name }

// TestScan_ReferenciaValida verifica el barrido lineal con una referencia
// que sí existe en la colección hermana.
func TestScan_ReferenciaValida(t *testing.T) {
	siblings := []ref{{"w1", "Bodega Central"}, {"w2", "Bodega Norte"}}
	assert.Equal(t, "Bodega Norte", lookup.Scan(siblings, refID, refName, "w2"))
}

// TestScan_ReferenciaColgante verifica que un id que no coincide con nada
// resuelve al marcador, nunca a un error.
func TestScan_ReferenciaColgante(t *testing.T) {
	siblings := []ref{{"w1", "Bodega Central"}}
	assert.Equal(t, lookup.Placeholder, lookup.Scan(siblings, refID, refName, "no-existe"))
}

// TestScan_SinReferencia verifica que un id vacío resuelve a cadena vacía
// (el registro simplemente no referencia nada).
func TestScan_SinReferencia(t *testing.T) {
	siblings := []ref{{"w1", "Bodega Central"}}
	assert.Equal(t, "", lookup.Scan(siblings, refID, refName, ""))
}

// TestName_MismoContratoQueScan verifica que la variante indexada respeta
// el mismo contrato que el barrido lineal.
func TestName_MismoContratoQueScan(t *testing.T) {
	names := lookup.Index([]ref{{"c1", "Antibióticos"}}, refID, refName)

	assert.Equal(t, "Antibióticos", lookup.Name(names, "c1"))
	assert.Equal(t, lookup.Placeholder, lookup.Name(names, "c9"))
	assert.Equal(t, "", lookup.Name(names, ""))
}
