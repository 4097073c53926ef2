package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/google/uuid"

	confmig "github.com/goliatone/go-confmig"
	"github.com/goliatone/go-confmig/internal/artifacts"
	"github.com/goliatone/go-confmig/internal/logging"
	"github.com/goliatone/go-confmig/pkg/config"
	"github.com/goliatone/go-confmig/pkg/document"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	ruleDir := flag.String("rules", "", "rule directory (overrides config file)")
	converterDir := flag.String("converter", "", "converter directory (overrides config file)")
	profile := flag.String("profile", "", "conversion profile (prompts when empty)")
	inputDir := flag.String("configs", "configs", "directory of input configuration files")
	outputDir := flag.String("out", "", "output directory (overrides config file)")
	optionsPath := flag.String("options", "", "JSON file with conversion options")
	ext := flag.String("ext", "", "only convert inputs with this extension, e.g. .cfg")
	examples := flag.Bool("examples", false, "also convert files under <configs>/examples")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *ruleDir != "" {
		cfg.RuleDir = *ruleDir
	}
	if *converterDir != "" {
		cfg.ConverterDir = *converterDir
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	selected := *profile
	if selected == "" {
		selected = cfg.Profile
	}
	if selected == "" {
		selected, err = chooseProfile(cfg.ConverterDir)
		if err != nil {
			log.Fatalf("select profile: %v", err)
		}
	}

	pipeline, err := confmig.New(
		confmig.WithRuleDir(cfg.RuleDir),
		confmig.WithConverterDir(cfg.ConverterDir),
	)
	if err != nil {
		log.Fatalf("build pipeline: %v", err)
	}

	opts, err := loadOptions(*optionsPath, cfg.ConverterDir, selected)
	if err != nil {
		log.Fatalf("load options: %v", err)
	}

	sourceDirs := []string{*inputDir}
	if *examples {
		sourceDirs = append(sourceDirs, filepath.Join(*inputDir, "examples"))
	}

	logger := slog.Default().With("run_id", uuid.NewString(), "profile", selected)
	for _, dir := range sourceDirs {
		if err := run(context.Background(), logger, pipeline, dir, cfg.OutputDir, selected, *ext, opts); err != nil {
			log.Fatalf("convert: %v", err)
		}
	}
}

// run converts every file in sourceDir, writing per-input JSON, XML, and
// target-syntax outputs plus per-table CSV exports under outDir.
func run(ctx context.Context, logger *slog.Logger, pipeline *confmig.Pipeline, sourceDir, outDir, profile, ext string, opts document.Value) error {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return fmt.Errorf("read input directory %q: %w", sourceDir, err)
	}

	converted := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ext != "" && filepath.Ext(name) != ext {
			continue
		}
		if name == "options.json" {
			continue
		}
		if err := convertOne(ctx, logger, pipeline, filepath.Join(sourceDir, name), outDir, profile, opts); err != nil {
			return err
		}
		converted++
	}
	if converted == 0 {
		return fmt.Errorf("no input files found in %q", sourceDir)
	}
	logger.Info("run complete", "inputs", converted)
	return nil
}

func convertOne(ctx context.Context, logger *slog.Logger, pipeline *confmig.Pipeline, path, outDir, profile string, opts document.Value) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	set, err := pipeline.ExtractTables(ctx, string(raw))
	if err != nil {
		return fmt.Errorf("extract %q: %w", path, err)
	}

	rows, err := artifacts.WriteTables(filepath.Join(outDir, "tables", stem), set)
	if err != nil {
		return err
	}
	commands := artifacts.CountCommands(string(raw))
	logger.Info("tables exported",
		"input", stem, "tables", set.Len(), "rows", rows, "commands", commands)
	if commands > 0 {
		fmt.Printf("%s: %d rows from %d commands, %.1f%% parse rate\n",
			stem, rows, commands, 100*float64(rows)/float64(commands))
	}

	doc, err := pipeline.ConvertTables(ctx, set, profile, opts)
	if err != nil {
		return fmt.Errorf("convert %q: %w", path, err)
	}

	jsonOut, err := document.EncodeJSONIndent(doc, "  ")
	if err != nil {
		return fmt.Errorf("encode %q: %w", path, err)
	}
	xmlOut, err := pipeline.Serialize(doc, confmig.SerializerXML)
	if err != nil {
		return fmt.Errorf("serialize %q: %w", path, err)
	}
	targetOut, err := pipeline.Serialize(doc, confmig.SerializerCommands)
	if err != nil {
		return fmt.Errorf("serialize %q: %w", path, err)
	}

	if err := artifacts.WriteFile(filepath.Join(outDir, "json", stem+".json"), jsonOut); err != nil {
		return err
	}
	if err := artifacts.WriteFile(filepath.Join(outDir, "xml", stem+".xml"), xmlOut); err != nil {
		return err
	}
	if err := artifacts.WriteFile(filepath.Join(outDir, "target", stem+".cfg"), targetOut); err != nil {
		return err
	}
	logger.Info("outputs written", "input", stem)
	return nil
}

// loadOptions resolves conversion options: an explicit -options file wins,
// then the profile's bundled options.json, then an empty mapping.
func loadOptions(explicit, converterDir, profile string) (document.Value, error) {
	path := explicit
	if path == "" {
		fallback := filepath.Join(converterDir, profile, "options.json")
		if _, err := os.Stat(fallback); err == nil {
			path = fallback
		}
	}
	if path == "" {
		return document.FromMapping(document.NewMapping()), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return document.Value{}, fmt.Errorf("read options %q: %w", path, err)
	}
	opts, err := document.DecodeJSON(data)
	if err != nil {
		return document.Value{}, fmt.Errorf("parse options %q: %w", path, err)
	}
	return opts, nil
}

// chooseProfile prompts for one of the converter directory's profiles.
func chooseProfile(converterDir string) (string, error) {
	entries, err := os.ReadDir(converterDir)
	if err != nil {
		return "", fmt.Errorf("read converter directory %q: %w", converterDir, err)
	}
	var profiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			profiles = append(profiles, entry.Name())
		}
	}
	sort.Strings(profiles)
	if len(profiles) == 0 {
		return "", fmt.Errorf("no profiles in %q", converterDir)
	}
	if len(profiles) == 1 {
		return profiles[0], nil
	}

	var selected string
	prompt := &survey.Select{
		Message: "Conversion profile:",
		Options: profiles,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return selected, nil
}
