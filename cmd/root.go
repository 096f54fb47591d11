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
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/galamiram/sonoctl/internal/sonod"
	"github.com/galamiram/sonoctl/tui"
)

var cfgFile string
var debug bool
var logToFile bool

// rootCmd represents the base command when called without any subcommands.
// Running sonoctl with no arguments launches the dashboard.
var rootCmd = &cobra.Command{
	Use:   "sonoctl",
	Short: "Terminal dashboard for a Sonos speaker fleet",
	Long: `sonoctl is an interactive terminal dashboard for a multi-speaker Sonos
fleet controlled through a local sonosd daemon.

It shows live speaker and group state, the playlist library and now-playing
details, and turns keystrokes and typed commands into fleet operations.

Keyboard shortcuts:
  tab        - Cycle panel focus
  ↑/↓ (k/j)  - Navigate the focused list
  enter      - Play selected playlist on selected speaker
  space      - Pause/resume selected speaker
  +/-        - Volume step
  v          - Type an exact volume
  n/p        - Next/previous track
  g          - Group or ungroup the whole fleet
  :          - Command line (play, vol, group all, ungroup, sleep, reload)
  ?          - Toggle help
  q          - Quit

Examples:
  sonoctl                  # Launch the dashboard
  sonoctl speakers         # One-shot fleet listing`,
	Run: func(cmd *cobra.Command, args []string) {
		app := tui.NewApp(newClient())

		var logFile *os.File
		if logToFile || debug {
			f, err := openLogFile()
			if err != nil {
				log.WithError(err).Warn("Failed to open log file, logs stay in the overlay only")
			} else {
				logFile = f
				defer f.Close()
			}
		}
		tui.SetupLogging(app, logFile)
		if debug {
			log.SetLevel(log.DebugLevel)
		}

		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Printf("Error running dashboard: %v\n", err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sonoctl.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logToFile, "log-to-file", false, "write logs to ~/.sonoctl_logs/sonoctl.log")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.SetConfigType("yaml")
		viper.AddConfigPath(home)
		viper.SetConfigName(".sonoctl")
	}

	viper.SetEnvPrefix("SONO")
	viper.AutomaticEnv()
	viper.SetDefault("server", sonod.DefaultBaseURL)

	if err := viper.ReadInConfig(); err == nil {
		log.WithField("configFile", viper.ConfigFileUsed()).Debug("Loaded config file")
	} else {
		log.WithError(err).Debug("No config file found (using defaults)")
	}
}

// newClient builds the daemon client from configuration.
func newClient() *sonod.Client {
	server := viper.GetString("server")
	log.WithField("server", server).Debug("Using sonosd server")
	return sonod.NewClient(server)
}

// openLogFile creates ~/.sonoctl_logs/sonoctl.log for appending.
func openLogFile() (*os.File, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %v", err)
	}
	logDir := filepath.Join(home, ".sonoctl_logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}
	return os.OpenFile(filepath.Join(logDir, "sonoctl.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
