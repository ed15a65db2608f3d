/*
Command ecr-cleaner enforces a keep-N-most-recent retention policy over a
tagged ECR repository: it lists images, parses their tags, and deletes the
digests that fall outside every group's keep window. Dry run by default.
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/jessevdk/go-flags"

	cleaner "github.com/juancamilocc/ecr-cleaner"
	"github.com/juancamilocc/ecr-cleaner/internal/registry"
)

type Options struct {
	RepositoryName string `short:"r" long:"repository-name" description:"ECR repository to clean" required:"true"`
	Region         string `short:"R" long:"region"          description:"AWS region of the repository" required:"true"`
	KeepVersions   int    `short:"k" long:"keep-versions"   description:"Newest versions to keep per (environment, client, project) group" default:"3"`
	Execute        bool   `short:"e" long:"execute"         description:"Actually delete images (default is a dry run)"`
	LogLevel       string `short:"l" long:"log-level"       description:"Log verbosity" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
}

func main() {
	var opt Options
	parser := flags.NewParser(&opt, flags.Default)
	parser.LongDescription = `ECR cleaner — retention for CI-published images.
Tags are expected in the form <name>-<hash>-<YYYY-MM-DD-HH-MM-SS>[-<client>]-<environment>;
each (environment, client, name) group keeps its newest builds, the rest are deleted by digest.`
	if _, err := parser.Parse(); err != nil {
		if flagErr, ok := err.(*flags.Error); ok && flagErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if level, err := log.ParseLevel(opt.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	if opt.KeepVersions < 0 {
		logger.Error("--keep-versions must be >= 0", "got", opt.KeepVersions)
		os.Exit(1)
	}

	if err := run(context.Background(), opt, logger); err != nil {
		logger.Error("cleanup failed", "err", err)
		os.Exit(2)
	}
}

func run(ctx context.Context, opt Options, logger *log.Logger) error {
	client, err := registry.New(opt.Region)
	if err != nil {
		return err
	}

	logger.Info("retrieving images", "repository", opt.RepositoryName, "region", opt.Region)
	entries, err := client.ListImages(ctx, opt.RepositoryName)
	if err != nil {
		return err
	}
	logger.Info("retrieved images", "count", len(entries))

	records, rejected := cleaner.Collect(entries)
	for _, e := range rejected {
		logger.Debug("ignored entry (invalid format or missing digest)", "tag", e.Tag, "digest", e.Digest)
	}
	if len(rejected) > 0 {
		logger.Info("ignored entries not governed by policy", "count", len(rejected))
	}

	plan, err := cleaner.Evaluate(records, opt.KeepVersions)
	if err != nil {
		return err
	}

	for _, g := range plan.Groups {
		logger.Info("group evaluated",
			"environment", g.Key.Environment,
			"client", g.Key.Client,
			"project", g.Key.Name,
			"total", g.Total,
			"keep", g.Kept,
			"delete", g.Total-g.Kept,
		)
	}

	if plan.Delete.Len() == 0 {
		logger.Info("no images to delete")
		return nil
	}
	logger.Info("images to delete", "count", plan.Delete.Len())

	if !opt.Execute {
		logger.Warn("--- simulation mode (dry run) ---")
		logger.Info("the following image digests would be deleted:")
		for _, d := range plan.Delete.Sorted() {
			fmt.Println("  - " + d)
		}
		logger.Warn("re-run with --execute to delete")
		return nil
	}

	logger.Warn("--- execution mode ---")
	res, err := client.DeleteDigests(ctx, opt.RepositoryName, plan.Delete.Sorted())
	if err != nil {
		return err
	}

	logger.Info("deleted images", "count", res.Deleted)
	for _, f := range res.Failures {
		logger.Error("failed to delete image", "digest", f.Digest, "code", f.Code, "reason", f.Reason)
	}
	if n := len(res.Failures); n > 0 {
		return fmt.Errorf("%d digest(s) could not be deleted", n)
	}

	return nil
}
