package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// OutputName derives a default output file name from the input path:
//
//	<input-stem>_<suffix>_YYYYMMDD_HHMMSS<ext>
func OutputName(inputPath, suffix, ext string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return fmt.Sprintf("%s_%s_%s%s", stem, suffix, time.Now().Format("20060102_150405"), ext)
}
