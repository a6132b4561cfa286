package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"yulc/internal/diagfmt"
	"yulc/internal/driver"
	"yulc/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.yul",
	Short: "Tokenize a yul source file",
	Long:  `Tokenize breaks down a yul source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("trivia", false, "attach whitespace and comments to tokens")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	trivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return fmt.Errorf("failed to get trivia flag: %w", err)
	}
	cli, err := readCLIOptions(cmd)
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	result, lexErr := driver.Tokenize(cmd.Context(), fs, filePath, trivia)
	if result == nil {
		return fmt.Errorf("tokenization failed: %w", lexErr)
	}

	// Выводим токены в выбранном формате; прочитанные до ошибки тоже
	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	} else {
		err = diagfmt.FormatTokensPretty(out, result.Tokens, fs)
	}
	if err != nil {
		return err
	}

	// Диагностика в stderr
	return reportDiagnostics(os.Stderr, result.Bag, fs, lexErr, cli.pretty())
}
