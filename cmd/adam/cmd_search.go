package main

import (
	"fmt"
	"strings"

	"adam/config"
	"adam/filter"
	"adam/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type searchOptions struct {
	topic string
	level string
	low   float64
	high  float64
	page  int
}

func newSearchCmd(a *app) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <language>",
		Short: "Filter the articles of a language and print one page",
		Long: `Load every article of a language, apply the filters and print the
requested page. Without --level the default level is used: "1" when the
language has level 1 articles, otherwise all levels. Pass --level all to
disable the level filter.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, a, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.topic, "topic", "", "Case-insensitive substring of title or summary")
	cmd.Flags().StringVar(&opts.level, "level", "", `Exact ILR level, or "all"`)
	cmd.Flags().Float64Var(&opts.low, "low", 0, "Lowest accepted ILR range start")
	cmd.Flags().Float64Var(&opts.high, "high", 0, "Highest accepted ILR range end")
	cmd.Flags().IntVar(&opts.page, "page", 1, "Page to print (1-based)")
	return cmd
}

func runSearch(cmd *cobra.Command, a *app, opts *searchOptions, language string) error {
	ctx := cmd.Context()
	loader, closeFn, err := a.openLoader(ctx, a.logger)
	if err != nil {
		return err
	}
	defer closeFn()

	engine := filter.NewEngine(
		filter.WithLogger(a.logger),
		filter.WithRangeCache(config.RangeCacheSize))
	mgr := session.NewManager(engine, a.logger)

	if err := mgr.Load(ctx, loader, language); err != nil {
		return err
	}

	criteria := mgr.View().Criteria
	criteria.Topic = opts.topic
	if cmd.Flags().Changed("level") {
		criteria.Level = opts.level
		if strings.EqualFold(opts.level, "all") {
			criteria.Level = ""
		}
	}
	if cmd.Flags().Changed("low") {
		criteria.LowBound = &opts.low
	}
	if cmd.Flags().Changed("high") {
		criteria.HighBound = &opts.high
	}
	if err := mgr.SetCriteria(criteria); err != nil {
		return err
	}

	v := mgr.View()
	if opts.page < 1 || opts.page > v.TotalPages {
		return fmt.Errorf("page %d out of range (1-%d)", opts.page, v.TotalPages)
	}
	if _, err := mgr.Advance(opts.page - 1); err != nil {
		return err
	}
	v = mgr.View()

	a.logger.Debug("Search complete",
		zap.String("language", language),
		zap.Int("matches", v.TotalMatches),
		zap.Int("range_failures", v.RangeFailures))

	out := cmd.OutOrStdout()
	if v.TotalMatches == 0 {
		fmt.Fprintln(out, "No articles match the current filters")
		return nil
	}
	renderArticles(out, v)
	fmt.Fprintf(out, "\n%d matching articles. Page %d of %d\n", v.TotalMatches, v.CurrentPage, v.TotalPages)
	return nil
}
