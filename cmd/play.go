/*
Copyright © 2020 Gal Amiram <galamiram1@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/galamiram/sonoctl/internal/history"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play SPEAKER PLAYLIST",
	Short: "Play a playlist on a speaker",
	Long: `Start a playlist on the named speaker. Use "all" as the speaker to
group the whole fleet and play everywhere.

Examples:
  sonoctl play kitchen jazz
  sonoctl play all altwave`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		speaker, playlist := args[0], args[1]
		if err := newClient().Play(speaker, playlist); err != nil {
			log.WithError(err).Fatal("failed to play")
		}
		history.RecordPlay(playlist)
		fmt.Printf("Playing %s on %s\n", playlist, speaker)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
