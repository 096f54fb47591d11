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
)

// speakersCmd represents the speakers command
var speakersCmd = &cobra.Command{
	Use:   "speakers",
	Short: "List the speaker fleet",
	Long: `Print a one-shot snapshot of every speaker known to the daemon:
name, volume, playback state and group membership.

Examples:
  sonoctl speakers`,
	Run: func(cmd *cobra.Command, args []string) {
		speakers, err := newClient().ListSpeakers()
		if err != nil {
			log.WithError(err).Fatal("failed to list speakers")
		}
		for _, sp := range speakers {
			group := ""
			if sp.IsCoordinator() {
				group = " [coordinator]"
			} else if sp.IsFollower() {
				group = fmt.Sprintf(" [follows %s]", sp.GroupCoordinator)
			}
			fmt.Printf("%-16s vol %3d  %-16s%s\n", sp.ID(), sp.Volume, sp.State, group)
		}
	},
}

func init() {
	rootCmd.AddCommand(speakersCmd)
}
