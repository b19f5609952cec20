package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gandalltf/prueba-productividad/nomina"
)

func sampleResult(t *testing.T) nomina.WorkerResult {
	t.Helper()
	res, err := nomina.Process(nomina.ProcessInput{
		Records: []map[string]any{
			{"trabajador": "Ana García", "categoria": "FICHAJE", "horas": 5, "fecha": "2025-09-01"},
			{"trabajador": "Ana García", "categoria": "PRODUCTIVIDAD", "horas": 3, "fecha": "2025-09-01"},
		},
		StartDate: "2025-09-01",
		EndDate:   "2025-09-07",
	})
	require.NoError(t, err)
	require.Len(t, res.Workers, 1)
	return res.Workers[0]
}

func TestWorkerHTML(t *testing.T) {
	html, err := WorkerHTML(sampleResult(t))
	require.NoError(t, err)

	assert.Contains(t, html, "Ana García")
	assert.Contains(t, html, "Periodo: Septiembre 2025")
	assert.Contains(t, html, "<th>Fichaje (h)</th>")
	assert.Contains(t, html, "<td>01/09/2025</td>", "dates are dd/mm/yyyy")
	assert.Contains(t, html, "<td>7</td>", "topped-up Monday")
	assert.Contains(t, html, "Totales")
}

func TestWorkerHTML_OneRowPerDay(t *testing.T) {
	html, err := WorkerHTML(sampleResult(t))
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(html, "<td>Lunes</td>"))
	assert.Contains(t, html, "<td>Domingo</td><td>07/09/2025</td>", "rest days still get a row")
}

func TestWorkerHTML_EscapesNotes(t *testing.T) {
	w := sampleResult(t)
	w.Days[0].Notes = `<script>alert("x")</script>`

	html, err := WorkerHTML(w)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}
