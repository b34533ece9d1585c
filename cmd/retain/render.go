package main

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/vango-dev/retain/internal/config"
	"github.com/vango-dev/retain/internal/demo"
	"github.com/vango-dev/retain/pkg/export"
)

func renderCmd(load func() (*config.Config, error)) *cobra.Command {
	var (
		out    string
		title  string
		todos  []string
		bucket string
		key    string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo tree to static HTML",
		Long: `Mount the demo tree, let it settle and write the resulting page.

Examples:
  retain render --out site/index.html
  retain render --out - --todo milk --todo eggs
  retain render --s3-bucket my-site --s3-key index.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg, cmd.ErrOrStderr())

			res, err := export.RenderResult(demo.Page(title, todos...), export.Options{
				MaxFollowUpPasses: cfg.Render.MaxFollowUpPasses,
				Logger:            logger,
			})
			if err != nil {
				return err
			}
			page := export.Document(title, res.HTML)
			logger.Debug("rendered", "passes", res.Passes, "steps", res.Steps, "live", res.Live)

			switch out {
			case "":
			case "-":
				fmt.Fprint(cmd.OutOrStdout(), page)
			default:
				if err := export.WriteFile(out, page); err != nil {
					return err
				}
				success(cmd.ErrOrStderr(), "wrote %s (%d passes)", out, res.Passes)
			}

			if bucket == "" {
				bucket = cfg.Export.Bucket
			}
			if bucket == "" {
				return nil
			}
			if key == "" {
				key = "index.html"
				if out != "" && out != "-" {
					key = path.Base(out)
				}
			}
			client := export.NewS3Client(export.S3Config{
				Region:       cfg.Export.Region,
				Endpoint:     cfg.Export.Endpoint,
				UsePathStyle: cfg.Export.UsePathStyle,
			})
			up := export.NewS3Uploader(client, bucket, cfg.Export.Prefix)
			if err := up.Upload(cmd.Context(), key, page); err != nil {
				return err
			}
			success(cmd.ErrOrStderr(), "uploaded s3://%s/%s", bucket, up.Key(key))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "index.html", `Output file, "-" for stdout, "" to skip`)
	cmd.Flags().StringVarP(&title, "title", "t", "retain", "Page title")
	cmd.Flags().StringSliceVar(&todos, "todo", nil, "Initial todo items")
	cmd.Flags().StringVar(&bucket, "s3-bucket", "", "Upload to this bucket (default from "+config.ConfigFileName+")")
	cmd.Flags().StringVar(&key, "s3-key", "", "Object name under the configured prefix")
	return cmd
}
