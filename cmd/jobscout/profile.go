package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-scout/internal/config"
	"github.com/jonathan/job-scout/internal/llm"
	"github.com/jonathan/job-scout/internal/profile"
)

var extractProfileCmd = &cobra.Command{
	Use:   "extract-profile",
	Short: "Extract a search profile from a resume PDF",
	Long:  "Extract the text of a resume PDF, analyze it with an LLM, and write a profile YAML with search keywords, seniority, and scoring keywords.",
	RunE:  runExtractProfile,
}

var generateConfigCmd = &cobra.Command{
	Use:   "generate-config",
	Short: "Generate a settings file from a profile",
	RunE:  runGenerateConfig,
}

var (
	extractResumePath string
	extractOutPath    string
	extractProvider   string
	extractModel      string

	generateProfilePath string
	generateOutPath     string
	generateDatabaseURL string
)

func init() {
	extractProfileCmd.Flags().StringVarP(&extractResumePath, "resume", "r", "", "Path to resume PDF (required)")
	extractProfileCmd.Flags().StringVarP(&extractOutPath, "out", "o", "config/profile.yaml", "Path to output profile YAML")
	extractProfileCmd.Flags().StringVar(&extractProvider, "provider", "gemini", "LLM provider for resume analysis")
	extractProfileCmd.Flags().StringVar(&extractModel, "model", "", "Model override for the provider")
	_ = extractProfileCmd.MarkFlagRequired("resume")

	generateConfigCmd.Flags().StringVarP(&generateProfilePath, "profile", "p", "config/profile.yaml", "Path to profile YAML")
	generateConfigCmd.Flags().StringVarP(&generateOutPath, "out", "o", "config/settings.yaml", "Path to output settings YAML")
	generateConfigCmd.Flags().StringVar(&generateDatabaseURL, "db-url", "", "Database URL to embed in the settings")

	rootCmd.AddCommand(extractProfileCmd)
	rootCmd.AddCommand(generateConfigCmd)
}

func runExtractProfile(_ *cobra.Command, _ []string) error {
	text, err := profile.ExtractTextFromPDF(extractResumePath)
	if err != nil {
		return fmt.Errorf("failed to extract resume text: %w", err)
	}
	fmt.Printf("Extracted %d characters from %s\n", len(text), extractResumePath)

	ctx := context.Background()
	provider, err := llm.Get(ctx, extractProvider)
	if err != nil {
		return err
	}

	fmt.Printf("Analyzing resume with %s...\n", provider.Name())
	prof, err := profile.AnalyzeResume(ctx, text, extractModel, provider)
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	if err := prof.Save(extractOutPath); err != nil {
		return err
	}
	fmt.Printf("Profile written to %s (%d search keywords)\n", extractOutPath, len(prof.SearchKeywords))
	return nil
}

func runGenerateConfig(_ *cobra.Command, _ []string) error {
	prof, err := profile.LoadProfile(generateProfilePath)
	if err != nil {
		return err
	}

	settings := profile.GenerateSettings(prof, generateDatabaseURL)
	settings.ProfilePath = generateProfilePath
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := profile.WriteSettings(settings, generateOutPath); err != nil {
		return err
	}

	// Load it back so a broken generation never goes unnoticed.
	if _, err := config.Load(generateOutPath); err != nil {
		return fmt.Errorf("generated settings failed validation: %w", err)
	}

	fmt.Printf("Settings written to %s (%d searches)\n", generateOutPath, len(settings.Searches))
	return nil
}
