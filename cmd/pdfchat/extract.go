package main

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-chat/internal/analysis"
	"github.com/thywilljoshua/pdf-chat/internal/attachment"
	"github.com/thywilljoshua/pdf-chat/internal/export"
	"github.com/thywilljoshua/pdf-chat/internal/extract"
)

type extractReport struct {
	Attachment *attachment.Attachment `json:"attachment"`
	Stats      analysis.Stats         `json:"stats"`
	KeyInfo    analysis.KeyInfo       `json:"keyInfo"`
	Markdown   string                 `json:"markdown,omitempty"`
}

func extractCmd(a *app) *cobra.Command {
	var textOnly bool
	var out string

	cmd := &cobra.Command{
		Use:   "extract <pdf>",
		Short: "Extract text, statistics and key information from a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc := a.processor()
			att, err := processFile(cmd.Context(), proc, args[0])
			if err != nil {
				return err
			}
			defer proc.Release(att)

			if textOnly {
				fmt.Fprintln(cmd.OutOrStdout(), att.ExtractedText)
				return nil
			}
			report := extractReport{
				Attachment: att,
				Stats:      analysis.ComputeStats(att.ExtractedText, att.PageCount),
				KeyInfo:    analysis.ExtractKeyInfo(att.ExtractedText),
			}
			if out != "" {
				path, err := export.Write(out, att.Name, att.ExtractedText, report.Stats)
				if err != nil {
					return err
				}
				report.Markdown = path
			}
			b, _ := json.MarshalIndent(report, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().BoolVar(&textOnly, "text", false, "print only the extracted text")
	cmd.Flags().StringVarP(&out, "out", "o", "", "also write a Markdown export into this directory")
	return cmd
}

func (a *app) processor() *attachment.Processor {
	pipeline := extract.New(extract.WithLogger(a.logger))
	return attachment.NewProcessor(pipeline, nil, a.logger)
}

// readSource loads a PDF from disk, taking its kind from the file extension
// the way a browser file picker would.
func readSource(path string) (extract.SourceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return extract.SourceFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	return extract.SourceFile{
		Name: filepath.Base(path),
		Size: int64(len(data)),
		Kind: mime.TypeByExtension(filepath.Ext(path)),
		Data: data,
	}, nil
}

func processFile(ctx context.Context, proc *attachment.Processor, path string) (*attachment.Attachment, error) {
	src, err := readSource(path)
	if err != nil {
		return nil, err
	}
	return proc.Process(ctx, src)
}
