// Command reportctl runs the EduVerse reports from the command line, against
// PostgreSQL or a YAML fixture snapshot, and prints them as JSON.
package main

import (
	"os"

	"github.com/yigit/eduverse/internal/pkg/logger"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("reportctl failed")
		os.Exit(1)
	}
}
