package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
)

// TrafficCharts escreve uma página HTML com a evolução de visitas e os concorrentes
func TrafficCharts(w io.Writer, domain string, detailed *models.DetailedTraffic) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Traffic overview - %s", domain)
	page.AddCharts(visitsChart(domain, detailed.Historical), competitorsChart(detailed.Competitors))

	return page.Render(w)
}

func visitsChart(domain string, history []models.HistoricalPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Monthly visits", Subtitle: domain}),
		charts.WithThemeOpts(opts.Theme{Theme: types.ThemeWesteros}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	months := make([]string, 0, len(history))
	visits := make([]opts.LineData, 0, len(history))
	bounce := make([]opts.LineData, 0, len(history))
	for _, point := range history {
		months = append(months, point.Date)
		visits = append(visits, opts.LineData{Value: point.Visits})
		bounce = append(bounce, opts.LineData{Value: point.BounceRate * 100})
	}

	line.SetXAxis(months).
		AddSeries("Visits", visits).
		AddSeries("Bounce rate (%)", bounce)
	return line
}

func competitorsChart(competitors []models.CompetitorRecord) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Competitors by visits"}),
		charts.WithThemeOpts(opts.Theme{Theme: types.ThemeWesteros}),
	)

	domains := make([]string, 0, len(competitors))
	visits := make([]opts.BarData, 0, len(competitors))
	for _, c := range competitors {
		domains = append(domains, c.Domain)
		visits = append(visits, opts.BarData{Name: c.Category, Value: c.TotalVisits})
	}

	bar.SetXAxis(domains).AddSeries("Visits", visits)
	return bar
}
