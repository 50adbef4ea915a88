package bootstrap

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// Loadenv loads local .env files when present. Values already present in the
// environment win. A missing file is not an error.
func Loadenv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
