package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/lyricpipe/core/normalize"
	"github.com/gaurav-prasanna/lyricpipe/sites"
)

var (
	fileKoreanPath  string
	fileEnglishPath string
	fileFlags       songFlags
)

var fileGetCmd = &cobra.Command{
	Use:   "file-get",
	Short: "Merge Korean lyrics and an English translation from two text files",
	Long: `File-get reads the Korean lyrics and the English translation from local
UTF-8 text files. A blank line separates stanzas.

Example:
  lyricpipe file-get -k psycho.ko.txt -e psycho.en.txt -t "Red Velvet - Psycho"`,
	Args: cobra.NoArgs,
	RunE: runFileGet,
}

func init() {
	rootCmd.AddCommand(fileGetCmd)

	fileGetCmd.Flags().StringVarP(&fileKoreanPath, "korean-path", "k", "", "Text file with the Korean lyrics")
	fileGetCmd.Flags().StringVarP(&fileEnglishPath, "english-path", "e", "", "Text file with the English translation")
	addSongFlags(fileGetCmd, &fileFlags, false)

	_ = fileGetCmd.MarkFlagRequired("korean-path")
	_ = fileGetCmd.MarkFlagRequired("english-path")
}

func runFileGet(cmd *cobra.Command, args []string) error {
	file := sites.NewTextFile()
	return writeHybrid(cmd, file, file, fileKoreanPath, fileEnglishPath, &fileFlags, normalize.Options{})
}
