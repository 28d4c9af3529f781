package util

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"

	"github.com/pkg/errors"
)

// MD5File returns the hex encoded md5 sum of the contents of fileName.
func MD5File(fileName string) (string, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return "", errors.Wrap(err, "opening file for checksum")
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", errors.Wrapf(err, "reading %s", fileName)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
