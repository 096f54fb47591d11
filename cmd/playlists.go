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
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/galamiram/sonoctl/internal/history"
	"github.com/galamiram/sonoctl/internal/sonod"
)

// playlistsCmd represents the playlists command
var playlistsCmd = &cobra.Command{
	Use:   "playlists",
	Short: "List playlists and favorites",
	Long: `Print the merged playlist library: named playlists plus Sonos
favorites not already covered by one. When the daemon's sort mode is
"popularity" the list is ordered by 7-day play counts from the local play
history.

Examples:
  sonoctl playlists`,
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		playlists, err := client.ListPlaylists()
		if err != nil {
			log.WithError(err).Fatal("failed to list playlists")
		}
		if favorites, err := client.ListFavorites(); err == nil {
			playlists = sonod.MergeFavorites(playlists, favorites)
		} else {
			log.WithError(err).Debug("failed to list favorites")
		}
		if mode, err := client.PlaylistSortMode(); err == nil && mode == "popularity" {
			history.PopularitySort(playlists, history.Load(), time.Now())
		}
		for _, pl := range playlists {
			fmt.Printf("%-12s %s\n", pl.Alias, pl.FavoriteName)
		}
	},
}

func init() {
	rootCmd.AddCommand(playlistsCmd)
}
