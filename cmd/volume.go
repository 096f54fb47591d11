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
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// volumeCmd represents the volume command
var volumeCmd = &cobra.Command{
	Use:   "volume SPEAKER LEVEL",
	Short: "Set a speaker's volume",
	Long: `Set the volume of a speaker to an absolute level between 0 and 100.
Use "all" as the speaker to set the whole fleet.

Examples:
  sonoctl volume kitchen 40
  sonoctl volume all 25`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		speaker := args[0]
		level, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Printf("Error: '%s' is not a valid volume level.\n", args[1])
			fmt.Println("Volume levels are integers between 0 and 100.")
			return
		}
		if level < 0 {
			level = 0
		}
		if level > 100 {
			level = 100
		}
		if err := newClient().SetVolume(speaker, level); err != nil {
			log.WithError(err).Fatal("failed to set volume")
		}
		fmt.Printf("Volume of %s set to %d\n", speaker, level)
	},
}

func init() {
	rootCmd.AddCommand(volumeCmd)
}
