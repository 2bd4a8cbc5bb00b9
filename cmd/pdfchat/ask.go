package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-chat/internal/ai"
)

func (a *app) assistant(cmd *cobra.Command) (ai.Assistant, error) {
	g, err := ai.NewGemini(cmd.Context(), a.cfg.APIKey, a.cfg.Model, a.cfg.FallbackModel, a.logger)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func askCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <pdf> <question>",
		Short: "Ask Gemini a question about a PDF",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, err := a.assistant(cmd)
			if err != nil {
				return err
			}
			proc := a.processor()
			att, err := processFile(cmd.Context(), proc, args[0])
			if err != nil {
				return err
			}
			defer proc.Release(att)

			question := strings.Join(args[1:], " ")
			reply, err := assistant.Chat(cmd.Context(), question, nil, att.ExtractedText)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
	return cmd
}

func analyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <pdf>",
		Short: "Summarize a PDF with Gemini",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, err := a.assistant(cmd)
			if err != nil {
				return err
			}
			proc := a.processor()
			att, err := processFile(cmd.Context(), proc, args[0])
			if err != nil {
				return err
			}
			defer proc.Release(att)

			out, err := assistant.Analyze(cmd.Context(), att.ExtractedText, att.Name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	return cmd
}
