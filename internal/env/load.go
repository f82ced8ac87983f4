package env

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DefaultFile is the dotenv file read at startup.
const DefaultFile = ".env"

// Load reads the given file (e.g. ".env") and sets environment variables for each
// KEY=VALUE entry. Variables already set in the environment win over the file.
// The file may be missing; that is not an error.
func Load(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("env: load %s: %w", path, err)
	}
	return nil
}
