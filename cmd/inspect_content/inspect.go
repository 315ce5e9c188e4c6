package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"content-platform-be/internal/config"
	"content-platform-be/internal/repository/specification"
	"content-platform-be/internal/repository/unitofwork"
	"content-platform-be/pkg/block"
	"content-platform-be/pkg/codec"
	"content-platform-be/pkg/database"
	"content-platform-be/pkg/markdown"
	"content-platform-be/pkg/render"
	"content-platform-be/pkg/seo"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type reportOptions struct {
	markdownInput bool
	showHTML      bool
}

func newFileCommand() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "file <path|->",
		Short: "Inspect a body read from a file or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), string(data), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.markdownInput, "markdown", false, "Read the input as Markdown instead of a stored body")
	cmd.Flags().BoolVar(&opts.showHTML, "html", false, "Include the rendered HTML")
	return cmd
}

func newRecordCommand() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "record <content-id>",
		Short: "Inspect a stored content record (uses DB_CONNECTION_STRING)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid content id: %w", err)
			}

			cfg := config.Load()
			if cfg.Database.Connection == "" {
				return fmt.Errorf("DB_CONNECTION_STRING is not set")
			}
			db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}

			ctx := cmd.Context()
			content, err := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx).
				ContentRepository().FindOne(ctx, specification.ByID{ID: id})
			if err != nil {
				return err
			}
			if content == nil {
				return fmt.Errorf("content %s not found", id)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s, %s)\n", content.Title, content.Type, content.Id)
			if content.IndexedAt != nil {
				fmt.Fprintf(out, "Indexed at %s\n", content.IndexedAt.Format("2006-01-02 15:04:05"))
			}
			return writeReport(out, content.Body, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.showHTML, "html", false, "Include the rendered HTML")
	return cmd
}

func writeReport(w io.Writer, body string, opts reportOptions) error {
	var (
		doc   block.Document
		shape codec.Shape
	)
	if opts.markdownInput {
		doc, shape = markdown.Import([]byte(body), block.NewSequence("b")), "markdown"
	} else {
		doc, shape = codec.New(codec.WithIDGenerator(block.NewSequence("b"))).ParseShape(body)
	}

	fmt.Fprintf(w, "Shape: %s, %d bytes, %d blocks\n\n", shape, len(body), len(doc))
	fmt.Fprintln(w, renderBlocks(doc))

	fmt.Fprintln(w, "\n── Markdown ──")
	fmt.Fprintln(w, render.Markdown(doc))

	if opts.showHTML {
		fmt.Fprintln(w, "\n── HTML ──")
		fmt.Fprintln(w, render.HTML(doc))
	}

	bundle, err := seo.Bundle(seo.Derive(doc))
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, bundle, "", "  "); err != nil {
		return err
	}
	fmt.Fprintln(w, "\n── JSON-LD ──")
	fmt.Fprintln(w, pretty.String())
	return nil
}
