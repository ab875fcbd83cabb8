package main

import (
	"errors"
	"fmt"
	"time"

	"adam/catalog"
	"adam/shared/kafka"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newNotifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "notify [language]",
		Short: "Announce a catalog change so servers drop their cached records",
		Long: `Publish a catalog update event on KAFKA_CATALOG_TOPIC. Catalog servers
with a Redis cache evict the language, or the whole catalog when no
language is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(a.settings.KafkaBrokers) == 0 {
				return errors.New("KAFKA_BOOTSTRAP_SERVERS is not set")
			}

			producer, err := kafka.NewProducer(a.settings.KafkaBrokers, a.settings.KafkaTopic)
			if err != nil {
				return err
			}
			defer producer.Close()

			return publishUpdate(cmd, a, producer, args)
		},
	}
}

// publisher is the part of kafka.Producer notify needs
type publisher interface {
	Publish(key string, v any) error
}

func publishUpdate(cmd *cobra.Command, a *app, p publisher, args []string) error {
	event := catalog.CatalogUpdated{UpdatedAt: time.Now().UTC()}
	if len(args) == 1 {
		event.Language = args[0]
	}

	if err := p.Publish(event.Language, event); err != nil {
		return err
	}
	a.logger.Info("Catalog update published",
		zap.String("topic", a.settings.KafkaTopic),
		zap.String("language", event.Language))

	target := event.Language
	if target == "" {
		target = "all languages"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Published catalog update for %s\n", target)
	return nil
}
