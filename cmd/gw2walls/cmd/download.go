package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go-gw2walls/internal/helpers"
	"go-gw2walls/internal/models"
	"go-gw2walls/internal/paths"
	"go-gw2walls/internal/pipeline"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download RESOLUTION SAVE_PATH",
	Short: "Download wallpapers matching a resolution",
	Long: `Crawls the site and downloads every wallpaper advertised at the given
resolution to SAVE_PATH. The save path may contain environment variables and
a leading tilde (~). Use --release and --type to narrow the selection.`,
	Args: cobra.ExactArgs(2),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringP("release", "r", "", "Only download wallpapers for this release name. Example: 'Escape from Lions Arch'")
	downloadCmd.Flags().StringP("type", "t", "", "Only download one category (media or release)")
	downloadCmd.Flags().String("naming", "", "Naming policy: bare, info, info-folders (overrides config)")
	downloadCmd.Flags().IntP("concurrency", "c", 0, "Number of concurrent downloads (overrides config)")
	downloadCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")

	// Bind flags to Viper
	viper.BindPFlag("download.release", downloadCmd.Flags().Lookup("release"))
	viper.BindPFlag("download.type", downloadCmd.Flags().Lookup("type"))
	viper.BindPFlag("download.naming", downloadCmd.Flags().Lookup("naming"))
	viper.BindPFlag("download.concurrency", downloadCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("download.yes", downloadCmd.Flags().Lookup("yes"))
}

// runDownload is the main execution function for the download command.
func runDownload(cmd *cobra.Command, args []string) error {
	resolution := args[0]
	savePath, err := helpers.ExpandPath(args[1])
	if err != nil {
		return fmt.Errorf("invalid save path: %w", err)
	}

	var category models.Category
	if t := viper.GetString("download.type"); t != "" {
		category, err = models.ParseCategory(t)
		if err != nil {
			return err
		}
	}

	namingFlag := viper.GetString("download.naming")
	if namingFlag == "" {
		namingFlag = globalConfig.NamingPolicy
	}
	policy, err := paths.ParsePolicy(namingFlag)
	if err != nil {
		return err
	}

	concurrency := viper.GetInt("download.concurrency")
	if concurrency <= 0 {
		concurrency = globalConfig.Concurrency
	}
	log.Infof("Using concurrency level: %d", concurrency)

	opts := pipeline.Options{
		Resolution:  resolution,
		SavePath:    savePath,
		ReleaseName: viper.GetString("download.release"),
		Category:    category,
		Policy:      policy,
		Concurrency: concurrency,
	}
	if !viper.GetBool("download.yes") && !globalConfig.SkipConfirmation {
		opts.Confirm = confirmDownload
	}

	summary, err := pipeline.New(globalConfig).Run(opts)
	if err != nil {
		return err
	}

	log.Infof("Done: %s", summary)
	fmt.Printf("Found %d wallpapers, selected %d, downloaded %d, failed %d\n",
		summary.Found, summary.Filtered, summary.Downloaded, summary.Failed)
	return nil
}

// confirmDownload prompts on stdin before the download phase starts.
func confirmDownload(found, filtered int) bool {
	fmt.Printf("Found %d wallpapers, %d match your filters. Proceed with download? (y/N): ", found, filtered)
	reader := bufio.NewReader(os.Stdin)
	confirm, _ := reader.ReadString('\n')
	return strings.TrimSpace(strings.ToLower(confirm)) == "y"
}
