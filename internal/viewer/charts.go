package viewer

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/magplot/internal/plotting"
)

// missingValue is how echarts marks a gap in a line series.
const missingValue = "-"

// lineData converts a series to echarts points. Non-finite values become gaps
// because JSON cannot carry NaN or Inf.
func lineData(series []float64) ([]int, []opts.LineData) {
	xs := make([]int, len(series))
	data := make([]opts.LineData, len(series))
	for i, v := range series {
		xs[i] = i
		if math.IsNaN(v) || math.IsInf(v, 0) {
			data[i] = opts.LineData{Value: missingValue}
			continue
		}
		data[i] = opts.LineData{Value: v}
	}
	return xs, data
}

// panelSize picks a chart size so a whole figure fits in one browser window.
func panelSize(fig *plotting.Figure) (width, height string) {
	if fig.Cols == 1 && fig.Rows == 1 {
		return "900px", "720px"
	}
	return fmt.Sprintf("%dvw", 94/fig.Cols), fmt.Sprintf("%dvh", 88/fig.Rows)
}

func lineChart(fig *plotting.Figure, p plotting.Panel, color string) *charts.Line {
	width, height := panelSize(fig)
	xs, data := lineData(p.Series)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: fig.Title, Width: width, Height: height}),
		charts.WithTitleOpts(opts.Title{Title: p.Title, Subtitle: fmt.Sprintf("%d samples", len(p.Series))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: p.XLabel, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: p.YLabel}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside", Start: 0, End: 100}),
	)
	line.SetXAxis(xs).
		AddSeries(p.Title, data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: color, Width: 1}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
		)
	return line
}

// Page lays the figure's panels out as go-echarts line charts, row-major.
func Page(fig *plotting.Figure) *components.Page {
	page := components.NewPage()
	page.PageTitle = fig.Title
	if page.PageTitle == "" {
		page.PageTitle = fig.Name
	}
	page.SetLayout(components.PageFlexLayout)

	colors := plotting.HexColors(len(fig.Panels))
	for i, p := range fig.Panels {
		page.AddCharts(lineChart(fig, p, colors[i]))
	}
	return page
}

const closeForm = `<form method="post" action="/close" style="text-align:center;margin:12px">` +
	`<a href="/figure.png">PNG</a> ` +
	`<button type="submit">Close viewer</button></form>`

// RenderPage renders the figure's HTML page, including the dismiss control.
func RenderPage(fig *plotting.Figure) ([]byte, error) {
	if err := fig.Validate(); err != nil {
		return nil, &plotting.RenderError{Op: "layout", Err: err}
	}
	var buf bytes.Buffer
	if err := Page(fig).Render(&buf); err != nil {
		return nil, &plotting.RenderError{Op: "html", Err: err}
	}
	doc := buf.Bytes()
	if i := bytes.LastIndex(doc, []byte("</body>")); i >= 0 {
		out := make([]byte, 0, len(doc)+len(closeForm))
		out = append(out, doc[:i]...)
		out = append(out, closeForm...)
		out = append(out, doc[i:]...)
		return out, nil
	}
	return append(doc, closeForm...), nil
}
