/*
Package report renders computed timesheets for humans. The engine's output
stays purely structural; everything presentation-shaped (HTML, dd/mm/yyyy
dates) is attached here.
*/
package report

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/Gandalltf/prueba-productividad/nomina"
)

var workerTemplate = template.Must(template.New("worker").Funcs(template.FuncMap{
	"fecha": func(d nomina.Date) string { return d.Time.Format("02/01/2006") },
	"horas": func(h nomina.Hours) string { return strconv.FormatFloat(h.Float64(), 'g', -1, 64) },
}).Parse(`<div style="font-family:Segoe UI,Arial,sans-serif;font-size:13px">
  <h3 style="margin:0 0 6px 0">{{.Worker}}</h3>
  <div style="color:#444;margin:0 0 8px 0">Periodo: {{.Month}} {{.Year}}</div>
  <table cellpadding="6" cellspacing="0" style="border-collapse:collapse;width:100%;">
    <thead>
      <tr style="border-bottom:1px solid #ddd;text-align:left">
        <th>Día</th><th>Fecha</th><th>Fichaje (h)</th><th>Productividad (h)</th>
        <th>Transferido (h)</th><th>Notas</th>
      </tr>
    </thead>
    <tbody>
      {{range .Days}}<tr><td>{{.Weekday}}</td><td>{{fecha .Date}}</td><td>{{horas .ClockIn}}</td><td>{{horas .Productivity}}</td><td>{{horas .Transferred}}</td><td>{{.Notes}}</td></tr>
      {{end}}
    </tbody>
    <tfoot>
      <tr style="border-top:1px solid #ddd">
        <td colspan="2"><b>Totales</b></td>
        <td><b>{{horas .Totals.ClockIn}}</b></td>
        <td><b>{{horas .Totals.Productivity}}</b></td>
        <td></td><td></td>
      </tr>
    </tfoot>
  </table>
</div>
`))

// WorkerHTML renders one worker's timesheet as a self-contained HTML
// fragment: name, period line, day table and totals footer.
func WorkerHTML(w nomina.WorkerResult) (string, error) {
	var buf bytes.Buffer
	if err := workerTemplate.Execute(&buf, w); err != nil {
		return "", err
	}
	return buf.String(), nil
}
