package analytics

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
)

// ChartConfig holds chart rendering options.
type ChartConfig struct {
	Width  string
	Height string
	Theme  string
	Colors []string
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:  "900px",
		Height: "500px",
		Theme:  "light",
		Colors: []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE", "#3BA272", "#FC8452", "#9A60B4", "#EA7CCC"},
	}
}

// RenderDeckReport writes an HTML report with category, color, and
// mana curve charts for a deck.
func RenderDeckReport(d deck.Deck, config ChartConfig, outputPath string) error {
	page := components.NewPage()
	page.PageTitle = d.Name
	page.AddCharts(
		categoryPie(d, config),
		colorPie(d, config),
		curveBar(d, config),
	)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render deck report: %w", err)
	}
	return nil
}

func categoryPie(d deck.Deck, config ChartConfig) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Card Types",
			Subtitle: d.Name,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	counts := CategoryCounts(d)
	var data []opts.PieData
	for _, category := range sortedCategories(counts) {
		data = append(data, opts.PieData{Name: string(category), Value: counts[category]})
	}
	pie.AddSeries("categories", data)
	return pie
}

func colorPie(d deck.Deck, config ChartConfig) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{Title: "Color Identity"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	counts := ColorCounts(d.Cards)
	var data []opts.PieData
	for _, color := range sortedColors(counts) {
		name := colorNames[color]
		if name == "" {
			name = color
		}
		data = append(data, opts.PieData{Name: name, Value: counts[color]})
	}
	pie.AddSeries("colors", data)
	return pie
}

func curveBar(d deck.Deck, config ChartConfig) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Mana Curve",
			Subtitle: fmt.Sprintf("Average mana value %.2f", AverageManaValue(d.Cards)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithColorsOpts(opts.Colors{config.Colors[0]}),
	)

	curve := ManaCurve(d.Cards)
	xLabels := make([]string, len(curve))
	yData := make([]opts.BarData, len(curve))
	for i, point := range curve {
		xLabels[i] = point.Label
		yData[i] = opts.BarData{Value: point.Count}
	}
	bar.SetXAxis(xLabels).AddSeries("Cards", yData)
	return bar
}
