package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"tradejournal/config"
	"tradejournal/internal/adapters/logger"
	"tradejournal/internal/adapters/sqlite"
	"tradejournal/internal/analytics/breakdown"
	"tradejournal/internal/analytics/numutil"
	"tradejournal/internal/app"
)

// currency is the display prefix for PnL amounts, set from configuration.
var currency = "$"

func money(v float64) string {
	return currency + numutil.FormatFixed(v, 2)
}

func main() {
	dbPath := flag.String("db", "", "path to the journal database (overrides DB_PATH)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	currency = cfg.BaseCurrency
	path := cfg.DBPath
	if *dbPath != "" {
		path = *dbPath
	}

	appLogger := logger.NewStdLogger(logger.LevelWarn)
	repo, err := sqlite.NewRepository(sqlite.Config{DBPath: path, Logger: appLogger})
	if err != nil {
		log.Fatalf("Error opening journal: %v", err)
	}
	defer repo.Close()

	service, err := app.NewAnalyticsService(appLogger, repo, cfg.KellyPayoffRatio)
	if err != nil {
		log.Fatalf("Error creating service: %v", err)
	}
	report, err := service.BuildReport(context.Background(), time.Now())
	if err != nil {
		log.Fatalf("Error building report: %v", err)
	}

	if report.Summary.TradeCount == 0 {
		fmt.Println("No closed trades in the journal yet.")
		return
	}

	s := report.Summary
	fmt.Println("## Performance Summary")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Trades\t%d\t\n", s.TradeCount)
	fmt.Fprintf(w, "Win rate\t%s%%\t\n", numutil.FormatFixed(s.WinRate, 2))
	fmt.Fprintf(w, "Total PnL\t%s\t\n", money(s.TotalPnL))
	fmt.Fprintf(w, "Avg PnL\t%s\t\n", money(s.AvgPnL))
	fmt.Fprintf(w, "Expectancy\t%s\t\n", money(s.Expectancy))
	fmt.Fprintf(w, "Profit factor\t%s\t\n", numutil.FormatFixed(s.ProfitFactor, 2))
	fmt.Fprintf(w, "Sharpe\t%s\t\n", numutil.FormatFixed(s.Sharpe, 2))
	fmt.Fprintf(w, "Sortino\t%s\t\n", numutil.FormatFixed(s.Sortino, 2))
	fmt.Fprintf(w, "Max drawdown\t%s%%\t\n", numutil.FormatFixed(s.MaxDrawdownPct, 2))
	fmt.Fprintf(w, "Best win streak\t%d\t\n", s.Streaks.MaxWinStreak)
	fmt.Fprintf(w, "Worst loss streak\t%d\t\n", s.Streaks.MaxLossStreak)
	w.Flush()

	if len(s.AssetPnL) > 0 {
		fmt.Println("\n## Per-Asset PnL")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight|tabwriter.Debug)
		fmt.Fprintln(w, "Asset\tTrades\tWinRate\tTotalPnL\t")
		for _, a := range s.AssetPnL {
			fmt.Fprintf(w, "%s\t%d\t%s%%\t%s\t\n",
				a.Asset, a.TradeCount, numutil.FormatFixed(a.WinRate, 2), money(a.TotalPnL))
		}
		w.Flush()
	}

	fmt.Println("\n## Drawdowns")
	fmt.Println(report.Drawdowns.Insights.Summary)

	fmt.Println("\n## Risk/Reward")
	fmt.Println(report.RiskReward.Description)
	fmt.Println(report.StopLoss.Description)

	fmt.Println("\n## Breakdowns")
	for _, res := range []breakdown.Result{
		report.Breakdowns.Conviction,
		report.Breakdowns.PreEmotion,
		report.Breakdowns.PostEmotion,
		report.Breakdowns.Weekday,
		report.Breakdowns.Duration,
		report.Breakdowns.TradeType,
		report.Breakdowns.MarketCondition,
		report.Breakdowns.EntryHour,
	} {
		printBreakdown(res)
	}
	fmt.Println(report.Breakdowns.EmotionShift.Insight)

	fmt.Println("\n## Expected Value Accuracy")
	fmt.Println(report.EVAccuracy.Description)

	fmt.Println("\n## Position Sizing")
	fmt.Println(report.SizeReport.Description)
	fmt.Println(report.Correlation.Description)
}

func printBreakdown(res breakdown.Result) {
	if len(res.Buckets) == 0 {
		return
	}
	fmt.Printf("\n# By %s\n", res.Dimension)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight|tabwriter.Debug)
	fmt.Fprintln(w, "Group\tTrades\tWinRate\tAvgPnL\tTotalPnL\t")
	for _, b := range res.Buckets {
		fmt.Fprintf(w, "%s\t%d\t%s%%\t%s\t%s\t\n",
			b.Key, b.Count,
			numutil.FormatFixed(b.WinRate, 2),
			money(b.AvgPnL),
			money(b.TotalPnL))
	}
	w.Flush()
	fmt.Println(res.Insight)
}
