package cmd

import (
	"fmt"
	"os"
	"strings"

	"go-gw2walls/internal/export"
	"go-gw2walls/internal/helpers"
	"go-gw2walls/internal/pipeline"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// csvPath holds the value of the --csv flag
var csvPath string

// listCmd crawls the site without downloading anything.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Crawl the site and list the available wallpapers",
	Long: `Crawls the media and release pages and prints the distinct resolutions,
names, and categories found, without downloading anything. Use --csv to
export the full catalog.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&csvPath, "csv", "", "Write the full catalog to this file as CSV")
}

func runList(cmd *cobra.Command, args []string) error {
	cat, err := pipeline.New(globalConfig).Crawl()
	if err != nil {
		return err
	}

	fmt.Printf("Found %d wallpapers\n\n", cat.Len())
	fmt.Printf("Resolutions: %s\n", strings.Join(cat.Resolutions(), ", "))
	fmt.Printf("Categories:  %s\n", strings.Join(cat.Categories(), ", "))
	fmt.Println("Names:")
	for _, name := range cat.Names() {
		fmt.Printf("  %s\n", name)
	}

	if csvPath == "" {
		return nil
	}
	target, err := helpers.ExpandPath(csvPath)
	if err != nil {
		return fmt.Errorf("invalid csv path: %w", err)
	}
	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	defer f.Close()
	if err := export.WriteCSV(f, cat.Records()); err != nil {
		return fmt.Errorf("exporting catalog: %w", err)
	}
	log.Infof("Wrote catalog CSV to %s", target)
	return nil
}
